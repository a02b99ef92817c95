package parser

import (
	"setslice/internal/ast"
	"setslice/internal/diag"
	"setslice/internal/token"
)

// parseRange: "[" elem? (".." | "..=") elem? "]"
func (p *Parser) parseRange() (ast.Range, bool) {
	open := p.advance()
	var r ast.Range

	if !p.atOr(token.DotDot, token.DotDotEq) {
		lo, ok := p.parseElem()
		if !ok {
			return r, false
		}
		r.Lo, r.HasLo = lo, true
	}

	switch {
	case p.at(token.DotDot):
		p.advance()
	case p.at(token.DotDotEq):
		p.advance()
		r.Inclusive = true
	default:
		p.err(diag.SynBadRange, "expected '..' or '..=' in range")
		return r, false
	}

	if !p.at(token.RBracket) {
		hi, ok := p.parseElem()
		if !ok {
			return r, false
		}
		r.Hi, r.HasHi = hi, true
	}
	if r.Inclusive && !r.HasHi {
		p.err(diag.SynBadRange, "inclusive range must have an upper bound")
		return r, false
	}
	if !p.closeBracket(open) {
		return r, false
	}
	r.Span = open.Span.Cover(p.lastSpan)
	return r, true
}
