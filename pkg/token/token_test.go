package token

import "testing"

func TestPositionLess(t *testing.T) {
	a := Position{Line: 1, Column: 5}
	b := Position{Line: 2, Column: 1}
	if !a.Less(b) {
		t.Fatal("expected earlier line to sort first")
	}
	c := Position{Line: 1, Column: 2}
	if !c.Less(a) {
		t.Fatal("expected earlier column on the same line to sort first")
	}
}

func TestKeywordsMapMatchesNames(t *testing.T) {
	for text, kind := range Keywords {
		if kind.String() != text {
			t.Errorf("keyword %q maps to kind %s", text, kind.String())
		}
	}
}

func TestUnknownKindFormatsWithoutPanicking(t *testing.T) {
	var k Kind = 9999
	if k.String() == "" {
		t.Fatal("expected a non-empty fallback string")
	}
}
