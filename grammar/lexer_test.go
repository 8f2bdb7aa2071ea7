package grammar

import (
	"testing"
)

func kinds(toks []Token) []TokenKind {
	out := make([]TokenKind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestLexBasicClause(t *testing.T) {
	toks, err := Lex("MATCH (a:Person) RETURN a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []TokenKind{
		TokKeyword, TokLParen, TokIdent, TokColon, TokIdent, TokRParen,
		TokKeyword, TokIdent, TokEOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("token count = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token[%d] kind = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexStringEscapes(t *testing.T) {
	toks, err := Lex(`RETURN "a\nb"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[1].Kind != TokString {
		t.Fatalf("expected string token, got %v", toks[1].Kind)
	}
	if toks[1].Text != "a\nb" {
		t.Errorf("text = %q, want %q", toks[1].Text, "a\nb")
	}
}

func TestLexBacktickIdentifier(t *testing.T) {
	toks, err := Lex("MATCH (`my var`:Person)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[2].Kind != TokIdent || toks[2].Text != "my var" {
		t.Errorf("got %+v, want ident \"my var\"", toks[2])
	}
}

func TestLexNumbers(t *testing.T) {
	toks, err := Lex("RETURN 42, 3.14, 1e10, 2.5e-3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantKinds := []TokenKind{TokKeyword, TokInt, TokComma, TokFloat, TokComma, TokFloat, TokComma, TokFloat, TokEOF}
	got := kinds(toks)
	if len(got) != len(wantKinds) {
		t.Fatalf("token count = %d, want %d (%v)", len(got), len(wantKinds), got)
	}
	for i := range wantKinds {
		if got[i] != wantKinds[i] {
			t.Errorf("token[%d] kind = %v, want %v", i, got[i], wantKinds[i])
		}
	}
}

func TestLexParameter(t *testing.T) {
	toks, err := Lex("RETURN $name")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[1].Kind != TokParam || toks[1].Text != "name" {
		t.Errorf("got %+v, want param \"name\"", toks[1])
	}
}

func TestLexComments(t *testing.T) {
	toks, err := Lex("MATCH (a) // comment\nRETURN a /* block */ ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []TokenKind{TokKeyword, TokLParen, TokIdent, TokRParen, TokKeyword, TokIdent, TokEOF}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("token count = %d, want %d (%v)", len(got), len(want), got)
	}
}

func TestLexArrowsAndComparisons(t *testing.T) {
	toks, err := Lex("-> <- <> <= >= =")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []TokenKind{TokArrowRight, TokArrowLeft, TokNeq, TokLte, TokGte, TokEq, TokEOF}
	got := kinds(toks)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token[%d] kind = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexUnterminatedStringErrors(t *testing.T) {
	_, err := Lex(`RETURN "abc`)
	if err == nil {
		t.Fatal("expected error for unterminated string")
	}
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if pe.Kind != KindNomParsingError {
		t.Errorf("Kind = %v, want %v", pe.Kind, KindNomParsingError)
	}
}

func TestLexUnexpectedCharacterErrors(t *testing.T) {
	_, err := Lex("RETURN #")
	if err == nil {
		t.Fatal("expected error for unexpected character")
	}
}
