package parser

import (
	"slices"

	"setslice/internal/ast"
	"setslice/internal/diag"
	"setslice/internal/lexer"
	"setslice/internal/source"
	"setslice/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	Program *ast.Program
	Errors  uint
}

// Parser: состояние парсера на один файл
type Parser struct {
	lx       *lexer.Lexer // поток токенов (Peek/Next)
	prog     *ast.Program
	opts     Options
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
}

// ParseFile: входная точка для разбора одного файла.
func ParseFile(file *source.File, opts Options) Result {
	lx := lexer.New(file, lexer.Options{Reporter: opts.Reporter})
	return Parse(file.ID, lx, opts)
}

// Parse разбирает поток токенов уже созданного лексера.
func Parse(file source.FileID, lx *lexer.Lexer, opts Options) Result {
	p := Parser{
		lx:       lx,
		prog:     ast.NewProgram(file, ast.Hints{}),
		opts:     opts,
		lastSpan: source.Span{File: file},
	}
	p.parseItems()
	return Result{Program: p.prog, Errors: p.opts.CurrentErrors}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

// parseItems: основной цикл верхнего уровня: пока не EOF: parseItem.
func (p *Parser) parseItems() {
	start := p.lx.Peek().Span
	for !p.at(token.EOF) {
		if p.opts.Enough() {
			break
		}
		itemID, ok := p.parseItem()
		if !ok {
			p.resyncTop()
			continue
		}
		p.prog.Push(itemID)
	}
	p.prog.Span = start.Cover(p.lx.Peek().Span)
}

// parseItem выбирает по первому токену нужный распознаватель top-level конструкции.
func (p *Parser) parseItem() (ast.ItemID, bool) {
	switch p.lx.Peek().Kind {
	case token.KwLet:
		return p.parseLetItem()
	case token.KwSet:
		return p.parseSetItem()
	case token.KwPrint:
		return p.parsePrintItem()
	default:
		tok := p.advance()
		p.report(diag.SynUnexpectedTopLevel, diag.SevError, tok.Span,
			"unexpected "+describe(tok)+", expected 'let', 'set' or 'print'")
		return ast.NoItemID, false
	}
}

// resyncTop: восстановление после ошибки на верхнем уровне:
// прокручиваем до ';' ИЛИ до стартового токена следующего item ИЛИ EOF.
func (p *Parser) resyncTop() {
	p.resyncUntil(token.Semicolon, token.KwLet, token.KwSet, token.KwPrint)
	if p.at(token.Semicolon) {
		p.advance()
	}
}

func (p *Parser) resyncUntil(kinds ...token.Kind) {
	for !p.at(token.EOF) && !p.atOr(kinds...) {
		p.advance()
	}
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of file"
	case token.Ident:
		return "identifier '" + tok.Text + "'"
	case token.IntLit:
		return "integer '" + tok.Text + "'"
	case token.Invalid:
		return "invalid token"
	}
	return "'" + tok.Kind.String() + "'"
}
