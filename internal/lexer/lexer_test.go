package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"setslice/internal/diag"
	"setslice/internal/lexer"
	"setslice/internal/source"
	"setslice/internal/token"
)

// makeTestLexer создаёт лексер для тестовой строки
func makeTestLexer(input string) (*lexer.Lexer, *diag.Bag) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.sl", []byte(input))
	bag := diag.NewBag(16)
	lx := lexer.New(fs.Get(fileID), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return lx, bag
}

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(tokens))
	for _, t := range tokens {
		if t.Kind == token.EOF {
			break
		}
		out = append(out, t.Kind)
	}
	return out
}

func tokensToString(tokens []token.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = fmt.Sprintf("%v(%q)", tok.Kind, tok.Text)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// expectTokens проверяет последовательность токенов
func expectTokens(t *testing.T, input string, expected ...token.Kind) {
	t.Helper()
	lx, bag := makeTestLexer(input)
	tokens := lx.All()
	got := kinds(tokens)
	if len(got) != len(expected) {
		t.Fatalf("expected %d tokens, got %d\ninput: %q\ntokens: %s\ndiags: %v",
			len(expected), len(got), input, tokensToString(tokens), bag.Items())
	}
	for i := range got {
		if got[i] != expected[i] {
			t.Errorf("token %d: expected %v, got %v (text %q)", i, expected[i], got[i], tokens[i].Text)
		}
	}
}

func TestSetBlockTokens(t *testing.T) {
	expectTokens(t, "set { v[1..=2] = move w; }",
		token.KwSet, token.LBrace,
		token.Ident, token.LBracket, token.IntLit, token.DotDotEq, token.IntLit, token.RBracket,
		token.Assign, token.KwMove, token.Ident, token.Semicolon,
		token.RBrace)
}

func TestUnsafeStatementTokens(t *testing.T) {
	expectTokens(t, "unsafe v[..]: (3) = ref &w[0..3];",
		token.KwUnsafe, token.Ident, token.LBracket, token.DotDot, token.RBracket,
		token.Colon, token.LParen, token.IntLit, token.RParen, token.Assign,
		token.KwRef, token.Amp, token.Ident, token.LBracket, token.IntLit, token.DotDot, token.IntLit, token.RBracket,
		token.Semicolon)
}

func TestLetAndListTokens(t *testing.T) {
	expectTokens(t, "let v = [0; 5];\nlet n = -3;",
		token.KwLet, token.Ident, token.Assign, token.LBracket, token.IntLit, token.Semicolon, token.IntLit, token.RBracket, token.Semicolon,
		token.KwLet, token.Ident, token.Assign, token.Minus, token.IntLit, token.Semicolon)
}

func TestRangeOperatorsAreGreedy(t *testing.T) {
	expectTokens(t, "1..2", token.IntLit, token.DotDot, token.IntLit)
	expectTokens(t, "1..=2", token.IntLit, token.DotDotEq, token.IntLit)
	expectTokens(t, "..", token.DotDot)
	expectTokens(t, "..=", token.DotDotEq)
}

func TestKeywordsAreCaseSensitive(t *testing.T) {
	lx, _ := makeTestLexer("clone Clone copy COPY")
	got := kinds(lx.All())
	want := []token.Kind{token.KwClone, token.Ident, token.KwCopy, token.Ident}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestNumbersWithSeparators(t *testing.T) {
	lx, bag := makeTestLexer("1_000 0 42")
	toks := lx.All()
	if toks[0].Text != "1_000" || toks[1].Text != "0" || toks[2].Text != "42" {
		t.Fatalf("tokens: %s", tokensToString(toks))
	}
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestBadNumber(t *testing.T) {
	lx, bag := makeTestLexer("12ab;")
	toks := lx.All()
	if toks[0].Kind != token.Invalid || toks[0].Text != "12ab" || toks[1].Kind != token.Semicolon {
		t.Fatalf("tokens: %s", tokensToString(toks))
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LexBadNumber {
		t.Fatalf("diags: %v", bag.Items())
	}
}

func TestUnknownCharacter(t *testing.T) {
	lx, bag := makeTestLexer("v = 1 + 2;")
	toks := lx.All()
	if toks[3].Kind != token.Invalid || toks[3].Text != "+" {
		t.Fatalf("tokens: %s", tokensToString(toks))
	}
	if bag.Items()[0].Code != diag.LexUnknownChar {
		t.Fatalf("diags: %v", bag.Items())
	}
	// одиночный '/' не комментарий
	lx, bag = makeTestLexer("/")
	if lx.Next().Kind != token.Invalid || bag.Len() != 1 {
		t.Fatal("lone slash should be an unknown character")
	}
}

func TestCommentsBecomeTrivia(t *testing.T) {
	lx, bag := makeTestLexer("// head\nprint /* a /* nested */ b */ v;")
	tok := lx.Next()
	if tok.Kind != token.KwPrint {
		t.Fatalf("got %v", tok.Kind)
	}
	if len(tok.Leading) != 2 || tok.Leading[0].Kind != token.TriviaLineComment || tok.Leading[1].Kind != token.TriviaNewline {
		t.Fatalf("leading trivia: %+v", tok.Leading)
	}
	next := lx.Next()
	if next.Kind != token.Ident || next.Text != "v" {
		t.Fatalf("got %v %q", next.Kind, next.Text)
	}
	var sawBlock bool
	for _, tv := range next.Leading {
		sawBlock = sawBlock || tv.Kind == token.TriviaBlockComment
	}
	if !sawBlock || bag.Len() != 0 {
		t.Fatalf("block comment missing or diags: %v", bag.Items())
	}
}

func TestUnterminatedBlockComment(t *testing.T) {
	lx, bag := makeTestLexer("let /* open")
	lx.All()
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LexUnterminatedBlockComment {
		t.Fatalf("diags: %v", bag.Items())
	}
}

func TestIdentifiersAreNFC(t *testing.T) {
	// "e" + combining acute → "é"
	lx, bag := makeTestLexer("cafe\u0301 = 1")
	tok := lx.Next()
	if tok.Kind != token.Ident || tok.Text != "caf\u00e9" {
		t.Fatalf("got %v %q", tok.Kind, tok.Text)
	}
	if tok.Span.Len() != 6 {
		t.Fatalf("span must cover source bytes, got %d", tok.Span.Len())
	}
	if lx.Next().Kind != token.Assign || bag.Len() != 0 {
		t.Fatalf("unexpected diags: %v", bag.Items())
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("let x")
	if lx.Peek().Kind != token.KwLet || lx.Next().Kind != token.KwLet {
		t.Fatal("peek consumed the token")
	}
	if lx.Next().Kind != token.Ident || lx.Next().Kind != token.EOF || lx.Next().Kind != token.EOF {
		t.Fatal("EOF must be sticky")
	}
}

func TestSpansMatchText(t *testing.T) {
	input := "set { a[..] = copy &b[2..]; }"
	fs := source.NewFileSet()
	id := fs.AddVirtual("spans.sl", []byte(input))
	lx := lexer.New(fs.Get(id), lexer.Options{})
	for _, tok := range lx.All() {
		if tok.Kind == token.EOF {
			continue
		}
		if got := input[tok.Span.Start:tok.Span.End]; got != tok.Text {
			t.Errorf("span %v covers %q, text %q", tok.Span, got, tok.Text)
		}
	}
}

func TestEOFKeepsTrailingTrivia(t *testing.T) {
	lx, _ := makeTestLexer("v; // tail\n")
	toks := lx.All()
	eof := toks[len(toks)-1]
	if eof.Kind != token.EOF || len(eof.Leading) != 3 {
		t.Fatalf("EOF trivia: %+v", eof.Leading)
	}
	if eof.Leading[1].Kind != token.TriviaLineComment || eof.Leading[1].Text != "// tail" {
		t.Fatalf("comment trivia: %+v", eof.Leading[1])
	}
	if again := lx.Next(); again.Kind != token.EOF || len(again.Leading) != 0 {
		t.Fatalf("repeated EOF must be bare: %+v", again)
	}
}
