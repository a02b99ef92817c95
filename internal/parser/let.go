package parser

import (
	"setslice/internal/ast"
	"setslice/internal/diag"
	"setslice/internal/token"
)

// parseLetItem: "let" IDENT "=" init ";"
func (p *Parser) parseLetItem() (ast.ItemID, bool) {
	letTok := p.advance()

	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected identifier after 'let'")
	if !ok {
		return ast.NoItemID, false
	}
	if _, ok := p.expect(token.Assign, diag.SynMissingPunctuation, "punctuation is missing: expected '=' after name"); !ok {
		return ast.NoItemID, false
	}

	let := ast.LetItem{Name: name.Text, NameSpan: name.Span}
	if !p.parseInit(&let) {
		return ast.NoItemID, false
	}
	semi, ok := p.expectSemicolon("punctuation is missing: expected ';' after let")
	if !ok {
		return ast.NoItemID, false
	}
	let.Span = letTok.Span.Cover(semi.Span)
	return p.prog.Items.NewLet(let), true
}

// init := elem | "[" "]" | "[" elems "]" | "[" elem ";" elem "]"
func (p *Parser) parseInit(let *ast.LetItem) bool {
	if !p.at(token.LBracket) {
		e, ok := p.parseElem()
		if !ok {
			return false
		}
		let.Init = ast.InitScalar
		let.Elems = []ast.Elem{e}
		return true
	}
	open := p.advance()
	if p.at(token.RBracket) {
		p.advance()
		let.Init = ast.InitList
		return true
	}

	first, ok := p.parseElem()
	if !ok {
		return false
	}
	if p.at(token.Semicolon) {
		p.advance()
		count, ok := p.parseElem()
		if !ok {
			return false
		}
		if !p.closeBracket(open) {
			return false
		}
		let.Init = ast.InitRepeat
		let.Elems = []ast.Elem{first, count}
		return true
	}

	elems := []ast.Elem{first}
	if p.at(token.Comma) {
		p.advance()
		rest, ok := p.parseElemList(token.RBracket)
		if !ok {
			return false
		}
		elems = append(elems, rest...)
	}
	if !p.closeBracket(open) {
		return false
	}
	let.Init = ast.InitList
	let.Elems = elems
	return true
}

func (p *Parser) closeBracket(open token.Token) bool {
	if p.at(token.RBracket) {
		p.advance()
		return true
	}
	if p.countError() {
		diag.ReportError(p.opts.Reporter, diag.SynUnclosedDelimiter, p.getDiagnosticSpan(), "expected ']'").
			WithNote(open.Span, "'[' opened here").
			Emit()
	}
	return false
}
