package lexer

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"setslice/internal/diag"
	"setslice/internal/token"
)

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isIdentStartByte(b byte) bool {
	return b == '_' || (b|0x20 >= 'a' && b|0x20 <= 'z')
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDigit(b)
}

func isIdentStartRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinueRune(r rune) bool {
	return isIdentStartRune(r) || unicode.IsDigit(r) || unicode.In(r, unicode.Mn, unicode.Mc)
}

// punct maps single-byte punctuation; ".." and "..=" are matched first.
var punct = map[byte]token.Kind{
	'=': token.Assign,
	'&': token.Amp,
	'-': token.Minus,
	':': token.Colon,
	';': token.Semicolon,
	',': token.Comma,
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
	'[': token.LBracket,
	']': token.RBracket,
}

func (lx *Lexer) scanToken() token.Token {
	switch b := lx.cursor.Peek(); {
	case isIdentStartByte(b), b >= utf8.RuneSelf:
		return lx.scanIdent()
	case isDigit(b):
		return lx.scanNumber()
	default:
		return lx.scanPunct()
	}
}

func (lx *Lexer) make(kind token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) invalid(code diag.Code, start Mark, msg string) token.Token {
	tok := lx.make(token.Invalid, start)
	lx.report(code, tok.Span, msg)
	return tok
}

func (lx *Lexer) scanPunct() token.Token {
	start := lx.cursor.Mark()
	// жадно: сначала ..=, потом ..
	if lx.cursor.EatSeq("..=") {
		return lx.make(token.DotDotEq, start)
	}
	if lx.cursor.EatSeq("..") {
		return lx.make(token.DotDot, start)
	}
	if kind, ok := punct[lx.cursor.Bump()]; ok {
		return lx.make(kind, start)
	}
	return lx.invalid(diag.LexUnknownChar, start, "unknown character")
}

// scanNumber reads [0-9][0-9_]*; the sign is a separate Minus token. A
// letter tail ("12ab") is swallowed and reported.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.EatWhile(func(b byte) bool { return isDigit(b) || b == '_' })
	if isIdentStartByte(lx.cursor.Peek()) {
		lx.cursor.EatWhile(isIdentContinueByte)
		return lx.invalid(diag.LexBadNumber, start, "invalid digit in integer literal")
	}
	return lx.make(token.IntLit, start)
}

// peekRune decodes the rune at the cursor; size 0 at EOF.
func (lx *Lexer) peekRune() (rune, uint32) {
	if lx.cursor.EOF() {
		return utf8.RuneError, 0
	}
	if b := lx.cursor.Peek(); b < utf8.RuneSelf {
		return rune(b), 1
	}
	r, size := utf8.DecodeRune(lx.file.Content[lx.cursor.Off():])
	return r, uint32(size) // size <= utf8.UTFMax
}

// scanIdent reads an identifier or keyword. Keywords are lowercase ASCII;
// identifier text is NFC-normalised so equal-looking names match.
func (lx *Lexer) scanIdent() token.Token {
	start := lx.cursor.Mark()
	r, size := lx.peekRune()
	if !isIdentStartRune(r) {
		lx.cursor.Skip(max(size, 1))
		return lx.invalid(diag.LexUnknownChar, start, "unknown character")
	}
	for size > 0 && isIdentContinueRune(r) {
		lx.cursor.Skip(size)
		r, size = lx.peekRune()
	}

	tok := lx.make(token.Ident, start)
	if kw, ok := token.LookupKeyword(tok.Text); ok {
		tok.Kind = kw
		return tok
	}
	if !norm.NFC.IsNormalString(tok.Text) {
		tok.Text = norm.NFC.String(tok.Text)
	}
	return tok
}
