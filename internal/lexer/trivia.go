package lexer

import (
	"setslice/internal/diag"
	"setslice/internal/token"
)

func isBlank(b byte) bool   { return b == ' ' || b == '\t' || b == '\r' }
func isNewline(b byte) bool { return b == '\n' }

// collectTrivia gathers whitespace and comments in front of the next token.
// Runs of blanks and runs of newlines each become one trivia entry; block
// comments nest.
func (lx *Lexer) collectTrivia() {
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		var kind token.TriviaKind
		switch b := lx.cursor.Peek(); {
		case isBlank(b):
			lx.cursor.EatWhile(isBlank)
			kind = token.TriviaSpace
		case isNewline(b):
			lx.cursor.EatWhile(isNewline)
			kind = token.TriviaNewline
		case lx.cursor.EatSeq("//"):
			lx.cursor.EatWhile(func(b byte) bool { return b != '\n' })
			kind = token.TriviaLineComment
		case lx.cursor.EatSeq("/*"):
			lx.skipBlockComment(start)
			kind = token.TriviaBlockComment
		default:
			// одиночный '/' уйдёт в scanToken как неизвестный символ
			return
		}
		sp := lx.cursor.SpanFrom(start)
		lx.trivia = append(lx.trivia, token.Trivia{Kind: kind, Span: sp, Text: lx.text(sp)})
	}
}

// skipBlockComment consumes the rest of a comment opened at start. An
// unterminated comment is reported and runs to EOF.
func (lx *Lexer) skipBlockComment(start Mark) {
	depth := 1
	for depth > 0 && !lx.cursor.EOF() {
		switch {
		case lx.cursor.EatSeq("/*"):
			depth++
		case lx.cursor.EatSeq("*/"):
			depth--
		default:
			lx.cursor.Bump()
		}
	}
	if depth > 0 {
		lx.report(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
	}
}
