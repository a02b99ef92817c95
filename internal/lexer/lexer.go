// Package lexer turns a setslice script into tokens. Whitespace and comments
// are attached to the following token as leading trivia.
package lexer

import (
	"setslice/internal/diag"
	"setslice/internal/source"
	"setslice/internal/token"
)

// maxTokenLength caps a single lexeme; past it the lexer reports and stops.
const maxTokenLength = 4096

type Options struct {
	// Reporter may be nil; errors are then dropped but lexing goes on.
	Reporter diag.Reporter
}

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	peeked *token.Token
	trivia []token.Trivia // leading trivia of the token being built
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{file: file, cursor: NewCursor(file), opts: opts}
}

// Next returns the next significant token with its leading trivia. After the
// end of input it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	if tok := lx.peeked; tok != nil {
		lx.peeked = nil
		return *tok
	}

	lx.collectTrivia()
	if lx.cursor.EOF() {
		// хвостовые комментарии достаются EOF, чтобы tokenize их показал
		off := lx.cursor.Off()
		tok := token.Token{Kind: token.EOF, Span: source.Span{File: lx.file.ID, Start: off, End: off}, Leading: lx.trivia}
		lx.trivia = nil
		return tok
	}

	tok := lx.scanToken()
	if tok.Span.Len() > maxTokenLength {
		lx.report(diag.LexTokenTooLong, tok.Span, "token is too long")
		lx.cursor.SkipToEnd()
		tok = token.Token{Kind: token.Invalid, Span: tok.Span}
	}
	tok.Leading = lx.trivia
	lx.trivia = nil
	return tok
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	tok := lx.Next()
	lx.peeked = &tok
	return tok
}

// All drains the lexer; the final EOF is included.
func (lx *Lexer) All() []token.Token {
	var out []token.Token
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func (lx *Lexer) report(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil, nil)
	}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}
