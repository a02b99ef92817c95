package token_test

import (
	"testing"

	"setslice/internal/source"
	"setslice/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestClassification(t *testing.T) {
	kws := []token.Kind{
		token.KwLet, token.KwSet, token.KwPrint, token.KwMove,
		token.KwCopy, token.KwClone, token.KwRef, token.KwUnsafe,
	}
	for _, k := range kws {
		if !tok(k).IsKeyword() || tok(k).IsPunctOrOp() {
			t.Fatalf("%v should be keyword only", k)
		}
	}
	ops := []token.Kind{
		token.Assign, token.Amp, token.Minus, token.Colon, token.Semicolon,
		token.Comma, token.DotDot, token.DotDotEq, token.LParen, token.RParen,
		token.LBrace, token.RBrace, token.LBracket, token.RBracket,
	}
	for _, k := range ops {
		if !tok(k).IsPunctOrOp() || tok(k).IsKeyword() {
			t.Fatalf("%v should be punct/op only", k)
		}
	}
	if !tok(token.IntLit).IsLiteral() || tok(token.Ident).IsLiteral() {
		t.Fatal("only IntLit is a literal")
	}
	if !tok(token.Ident).IsIdent() || tok(token.KwLet).IsIdent() {
		t.Fatal("IsIdent misclassified")
	}
}

func TestTransferModes(t *testing.T) {
	for _, k := range []token.Kind{token.KwMove, token.KwCopy, token.KwClone, token.KwRef} {
		if !tok(k).IsTransferMode() {
			t.Fatalf("%v should open a source", k)
		}
	}
	if tok(token.KwUnsafe).IsTransferMode() {
		t.Fatal("unsafe is a statement prefix, not a source mode")
	}
}

func TestKindString(t *testing.T) {
	cases := map[token.Kind]string{
		token.DotDotEq:  "..=",
		token.KwClone:   "clone",
		token.EOF:       "EOF",
		token.Kind(250): "Kind(?)",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("String(%d) = %q, want %q", k, got, want)
		}
	}
}
