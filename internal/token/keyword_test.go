package token

import "testing"

func TestLookupKeyword(t *testing.T) {
	for lexeme, want := range keywords {
		got, ok := LookupKeyword(lexeme)
		if !ok || got != want {
			t.Fatalf("LookupKeyword(%q) = %v,%v; want %v", lexeme, got, ok, want)
		}
	}
	// регистр важен
	for _, s := range []string{"Let", "MOVE", "cloned", "v", "set_"} {
		if _, ok := LookupKeyword(s); ok {
			t.Fatalf("LookupKeyword(%q) returned ok=true", s)
		}
	}
}
