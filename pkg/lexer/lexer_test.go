package lexer

import (
	"testing"

	"alanfl/pkg/token"
)

func kinds(src string) []token.Kind {
	l := New(src)
	var out []token.Kind
	for {
		t := l.Next()
		out = append(out, t.Kind)
		if t.Kind == token.EOF {
			return out
		}
	}
}

func TestNextSkipsWhitespace(t *testing.T) {
	got := kinds("  var   x = 1 ;  ")
	want := []token.Kind{token.KwVar, token.Identifier, token.Assign, token.Integer, token.Semicolon, token.EOF}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestTwoCharOperators(t *testing.T) {
	cases := map[string]token.Kind{
		"==": token.Eq,
		"!=": token.Neq,
		"<=": token.LtEq,
		">=": token.GtEq,
		"&&": token.LAnd,
		"||": token.LOr,
		"++": token.Inc,
		"--": token.Dec,
	}
	for src, want := range cases {
		l := New(src)
		got := l.Next()
		if got.Kind != want {
			t.Errorf("%q: got %s, want %s", src, got.Kind, want)
		}
	}
}

func TestDecimalLiteral(t *testing.T) {
	l := New("3.5")
	tok := l.Next()
	if tok.Kind != token.Decimal || tok.Text != "3.5" {
		t.Fatalf("got %v", tok)
	}
}

func TestIntegerLiteral(t *testing.T) {
	l := New("42")
	tok := l.Next()
	if tok.Kind != token.Integer || tok.Text != "42" {
		t.Fatalf("got %v", tok)
	}
}

func TestKeywordsVsIdentifiers(t *testing.T) {
	l := New("while whiled")
	first := l.Next()
	if first.Kind != token.KwWhile {
		t.Fatalf("got %v", first)
	}
	second := l.Next()
	if second.Kind != token.Identifier || second.Text != "whiled" {
		t.Fatalf("got %v", second)
	}
}

func TestSpanTracksLinesAndColumns(t *testing.T) {
	l := New("var\nx")
	l.Next() // var
	tok := l.Next()
	if tok.Begin.Line != 2 || tok.Begin.Column != 1 {
		t.Fatalf("got begin %v", tok.Begin)
	}
}

func TestUnknownCharacter(t *testing.T) {
	l := New("@")
	tok := l.Next()
	if tok.Kind != token.Unknown {
		t.Fatalf("got %v", tok)
	}
}
