package parser

import (
	"strconv"
	"strings"

	"setslice/internal/ast"
	"setslice/internal/diag"
	"setslice/internal/token"
)

// parseElem: "-"? INT | IDENT
func (p *Parser) parseElem() (ast.Elem, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Ident:
		p.advance()
		return ast.Elem{Kind: ast.ElemName, Name: tok.Text, Span: tok.Span}, true
	case token.IntLit:
		p.advance()
		return p.intElem(tok.Text, false, tok)
	case token.Minus:
		minus := p.advance()
		num, ok := p.expect(token.IntLit, diag.SynExpectExpression, "expected integer after '-'")
		if !ok {
			return ast.Elem{}, false
		}
		elem, ok := p.intElem(num.Text, true, num)
		elem.Span = minus.Span.Cover(num.Span)
		return elem, ok
	default:
		p.err(diag.SynExpectExpression, "expected integer or name, got "+describe(tok))
		return ast.Elem{}, false
	}
}

func (p *Parser) intElem(text string, negative bool, tok token.Token) (ast.Elem, bool) {
	digits := strings.ReplaceAll(text, "_", "")
	if negative {
		digits = "-" + digits
	}
	v, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		p.report(diag.SynIntOutOfRange, diag.SevError, tok.Span, "integer literal "+digits+" does not fit in 64 bits")
		return ast.Elem{}, false
	}
	return ast.Elem{Kind: ast.ElemInt, Value: v, Span: tok.Span}, true
}

// parseElemList: elem ("," elem)* ","?  до закрывающего токена end.
func (p *Parser) parseElemList(end token.Kind) ([]ast.Elem, bool) {
	var out []ast.Elem
	for !p.at(end) {
		e, ok := p.parseElem()
		if !ok {
			return nil, false
		}
		out = append(out, e)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	return out, true
}
