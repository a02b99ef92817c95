package parser

import (
	"setslice/internal/diag"
	"setslice/internal/source"
	"setslice/internal/token"
)

// advance: съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

// getDiagnosticSpan: возвращает лучший span для диагностики.
// На EOF указываем сразу за последним съеденным токеном.
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.lx.Peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return p.lastSpan.ZeroideToEnd()
	}
	return peek.Span
}

// expect: ожидаем конкретный токен. Если нет: репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	diagSpan := p.getDiagnosticSpan()
	p.report(code, diag.SevError, diagSpan, msg)
	return token.Token{Kind: token.Invalid, Span: diagSpan}, false
}

// expectSemicolon репортит отсутствие ';' с готовой правкой.
func (p *Parser) expectSemicolon(msg string) (token.Token, bool) {
	if p.at(token.Semicolon) {
		return p.advance(), true
	}
	at := p.lastSpan.ZeroideToEnd()
	if p.countError() {
		diag.ReportError(p.opts.Reporter, diag.SynExpectSemicolon, p.getDiagnosticSpan(), msg).
			WithFix("insert ';'", diag.FixEdit{Span: at, NewText: ";"}).
			Emit()
	}
	return token.Token{Kind: token.Invalid, Span: at}, false
}

// репортует ошибку и передает текущий спан
func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.getDiagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if sev == diag.SevError && !p.countError() {
		return false
	}
	if p.opts.Reporter == nil {
		return false
	}
	p.opts.Reporter.Report(code, sev, sp, msg, nil, nil)
	return true
}

// countError увеличивает счётчик и сообщает, можно ли ещё репортить.
func (p *Parser) countError() bool {
	if p.opts.Enough() {
		return false
	}
	p.opts.CurrentErrors++
	return p.opts.Reporter != nil
}
