package token

import "testing"

func TestKindStringCoversAllKinds(t *testing.T) {
	for k := Kind(0); k < kindCount; k++ {
		if k.String() == "Unknown" {
			t.Errorf("kind %d has no name", k)
		}
	}
	if Kind(200).String() != "Unknown" {
		t.Error("out-of-range kind should stringify as Unknown")
	}
}

func TestLookupKeyword(t *testing.T) {
	cases := map[string]Kind{
		"let":    KwLet,
		"fn":     KwFn,
		"if":     KwIf,
		"else":   KwElse,
		"while":  KwWhile,
		"return": KwReturn,
		"letter": Ident,
		"true":   Ident,
		"":       Ident,
	}
	for ident, want := range cases {
		if got := LookupKeyword(ident); got != want {
			t.Errorf("LookupKeyword(%q) = %v, want %v", ident, got, want)
		}
	}
}

func TestKindPredicates(t *testing.T) {
	if !IntLit.IsLiteral() || !StringLit.IsLiteral() {
		t.Error("literal kinds should report IsLiteral")
	}
	if Plus.IsLiteral() {
		t.Error("Plus is not a literal")
	}
	if !KwLet.IsKeyword() {
		t.Error("KwLet should report IsKeyword")
	}
	if Ident.IsKeyword() {
		t.Error("Ident is not a keyword")
	}
}
