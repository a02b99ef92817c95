package parser

import (
	"setslice/internal/ast"
	"setslice/internal/diag"
	"setslice/internal/token"
)

// parsePrintItem: "print" IDENT ";"
func (p *Parser) parsePrintItem() (ast.ItemID, bool) {
	kw := p.advance()
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected identifier after 'print'")
	if !ok {
		return ast.NoItemID, false
	}
	semi, ok := p.expectSemicolon("punctuation is missing: expected ';' after print")
	if !ok {
		return ast.NoItemID, false
	}
	return p.prog.Items.NewPrint(ast.PrintItem{
		Name:     name.Text,
		NameSpan: name.Span,
		Span:     kw.Span.Cover(semi.Span),
	}), true
}
