package parser

import (
	"setslice/internal/ast"
	"setslice/internal/diag"
	"setslice/internal/source"
	"setslice/internal/token"
)

// parseSetItem: "set" "{" assign* "}"
// Ошибочные присваивания репортятся и пропускаются; блок с ошибками
// всё равно попадает в AST, исполнять его драйвер не станет.
func (p *Parser) parseSetItem() (ast.ItemID, bool) {
	kw := p.advance()
	open, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after 'set'")
	if !ok {
		return ast.NoItemID, false
	}

	set := ast.SetItem{}
	for !p.atOr(token.RBrace, token.EOF) {
		if p.opts.Enough() {
			return ast.NoItemID, false
		}
		id, ok := p.parseAssign()
		if !ok {
			p.resyncStmt()
			continue
		}
		set.Assigns = append(set.Assigns, id)
	}

	if !p.at(token.RBrace) {
		if p.countError() {
			diag.ReportError(p.opts.Reporter, diag.SynUnclosedDelimiter, p.getDiagnosticSpan(), "unclosed set block").
				WithNote(open.Span, "'{' opened here").
				Emit()
		}
		return ast.NoItemID, false
	}
	closing := p.advance()
	set.Span = kw.Span.Cover(closing.Span)
	return p.prog.Items.NewSet(set), true
}

// resyncStmt прокручивает до конца текущего присваивания внутри блока.
func (p *Parser) resyncStmt() {
	p.resyncUntil(token.Semicolon, token.RBrace)
	if p.at(token.Semicolon) {
		p.advance()
	}
}

// parseAssign разбирает одно присваивание:
//
//	["unsafe"] target [":" "(" size ")"] "=" rhs ";"
//
// Сочетания unsafe/ref/size проверяются после разбора, в том же порядке,
// в каком их отвергает исходный синтаксис.
func (p *Parser) parseAssign() (ast.AssignID, bool) {
	start := p.lx.Peek().Span
	var as ast.Assign

	if p.at(token.LBracket) {
		p.err(diag.SynMissingIdentifier, "missing identifier, there is a range, but no slice")
		return ast.NoAssignID, false
	}
	if p.at(token.KwUnsafe) {
		p.advance()
		as.Unsafe = true
	}
	if !p.at(token.Ident) {
		p.err(diag.SynExpectIdentifier, "missing target, there seems to be a missing slice to assign to")
		return ast.NoAssignID, false
	}

	target, ok := p.parseTarget()
	if !ok {
		return ast.NoAssignID, false
	}
	as.Target = target

	if p.at(token.Colon) {
		p.advance()
		if !p.at(token.LParen) {
			p.err(diag.SynInvalidSize, "invalid size: size must be an expression surrounded by parentheses")
			return ast.NoAssignID, false
		}
		p.advance()
		size, ok := p.parseElem()
		if !ok {
			return ast.NoAssignID, false
		}
		if _, ok := p.expect(token.RParen, diag.SynInvalidSize, "invalid size: size must be an expression surrounded by parentheses"); !ok {
			return ast.NoAssignID, false
		}
		as.Size, as.HasSize = size, true
	}

	if _, ok := p.expect(token.Assign, diag.SynMissingPunctuation, "punctuation is missing: expected '='"); !ok {
		return ast.NoAssignID, false
	}
	if !p.parseRHS(&as) {
		return ast.NoAssignID, false
	}
	semi, ok := p.expectSemicolon("punctuation is missing: expected ';'")
	if !ok {
		return ast.NoAssignID, false
	}
	as.Span = start.Cover(semi.Span)

	if !p.checkAssignForm(&as) {
		return ast.NoAssignID, false
	}
	return p.prog.Assigns.New(as), true
}

func (p *Parser) parseTarget() (ast.Target, bool) {
	name := p.advance()
	t := ast.Target{Name: name.Text, NameSpan: name.Span, Span: name.Span}
	if p.at(token.LBracket) {
		r, ok := p.parseRange()
		if !ok {
			return t, false
		}
		t.Range, t.HasRange = r, true
		t.Span = name.Span.Cover(r.Span)
	}
	return t, true
}

// rhs := "move" (IDENT | "[" elems "]")
//
//	| ("copy" | "clone" | "ref") ref
//	| elem ("," elem)*
func (p *Parser) parseRHS(as *ast.Assign) bool {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Semicolon:
		p.err(diag.SynEmptyList, "there must be a non-zero number of arguments in a list")
		return false

	case token.KwMove:
		p.advance()
		as.Mode = ast.ModeMove
		return p.parseMoveOperand(as)

	case token.KwCopy, token.KwClone, token.KwRef:
		p.advance()
		switch tok.Kind {
		case token.KwCopy:
			as.Mode = ast.ModeCopy
		case token.KwClone:
			as.Mode = ast.ModeClone
		default:
			as.Mode = ast.ModeRef
		}
		op, ok := p.parseBorrow()
		as.Source = op
		return ok

	case token.Amp:
		p.err(diag.SynMissingOption, "option is missing: value should be of the form {copy, clone} &value")
		return false

	case token.Ident:
		// `frob &v`: неизвестная опция
		p.advance()
		if p.at(token.Amp) {
			p.report(diag.SynInvalidOption, diag.SevError, tok.Span,
				"invalid option "+tok.Text+", valid options are copy, clone")
			return false
		}
		first := ast.Elem{Kind: ast.ElemName, Name: tok.Text, Span: tok.Span}
		return p.parseSugarList(as, first)

	default:
		first, ok := p.parseElem()
		if !ok {
			return false
		}
		return p.parseSugarList(as, first)
	}
}

// parseSugarList дочитывает `v = 1, 2, 3;` и превращает его в move списка.
func (p *Parser) parseSugarList(as *ast.Assign, first ast.Elem) bool {
	list := []ast.Elem{first}
	for p.at(token.Comma) {
		p.advance()
		e, ok := p.parseElem()
		if !ok {
			return false
		}
		list = append(list, e)
	}
	as.Mode = ast.ModeMove
	as.Sugar = true
	as.Source = ast.Operand{IsList: true, List: list, Span: first.Span.Cover(list[len(list)-1].Span)}
	return true
}

func (p *Parser) parseMoveOperand(as *ast.Assign) bool {
	switch p.lx.Peek().Kind {
	case token.Ident:
		name := p.advance()
		as.Source = ast.Operand{Name: name.Text, NameSpan: name.Span, Span: name.Span}
		return true
	case token.LBracket:
		list, ok := p.parseListLiteral()
		as.Source = list
		return ok
	case token.Amp:
		p.err(diag.SynUnexpectedToken, "move takes its value by name, not by reference")
		return false
	default:
		p.err(diag.SynExpectExpression, "expected a name or a list after 'move'")
		return false
	}
}

// ref := "&" (IDENT ("[" range "]")? | "[" elems "]")
func (p *Parser) parseBorrow() (ast.Operand, bool) {
	amp, ok := p.expect(token.Amp, diag.SynUnexpectedToken, "expected '&' before the borrowed value")
	if !ok {
		return ast.Operand{}, false
	}
	if p.at(token.LBracket) {
		op, ok := p.parseListLiteral()
		op.Borrowed = true
		op.Span = amp.Span.Cover(op.Span)
		return op, ok
	}
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected a name or a list after '&'")
	if !ok {
		return ast.Operand{}, false
	}
	op := ast.Operand{Name: name.Text, NameSpan: name.Span, Borrowed: true, Span: amp.Span.Cover(name.Span)}
	if p.at(token.LBracket) {
		r, ok := p.parseRange()
		if !ok {
			return op, false
		}
		op.Range, op.HasRange = r, true
		op.Span = op.Span.Cover(r.Span)
	}
	return op, true
}

func (p *Parser) parseListLiteral() (ast.Operand, bool) {
	open := p.advance()
	elems, ok := p.parseElemList(token.RBracket)
	if !ok || !p.closeBracket(open) {
		return ast.Operand{}, false
	}
	return ast.Operand{IsList: true, List: elems, Span: open.Span.Cover(p.lastSpan)}, true
}

// checkAssignForm отвергает недопустимые сочетания unsafe/ref/size.
func (p *Parser) checkAssignForm(as *ast.Assign) bool {
	fail := func(code diag.Code, sp source.Span, msg string) bool {
		p.report(code, diag.SevError, sp, msg)
		return false
	}
	switch {
	case as.Unsafe && as.Mode != ast.ModeRef:
		return fail(diag.SynUnsafeValue, as.Span, "moving values into the slice is safe")
	case !as.Unsafe && as.Mode == ast.ModeRef:
		return fail(diag.SynRefWithoutUnsafe, as.Span, "copying arbitrary references is unsafe")
	case as.Unsafe && !as.HasSize:
		return fail(diag.SynUnknownSize, as.Target.Span, "unknown size: size must be an expression surrounded by parentheses")
	case !as.Unsafe && as.HasSize:
		return fail(diag.SynInvalidSize, as.Size.Span, "invalid size: a size is only allowed on unsafe ref statements")
	}
	return true
}
