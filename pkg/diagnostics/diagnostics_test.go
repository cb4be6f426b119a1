package diagnostics

import (
	"strings"
	"testing"

	"alanfl/pkg/token"
)

func TestAddAndEmpty(t *testing.T) {
	var l List
	if !l.Empty() {
		t.Fatal("expected a fresh list to be empty")
	}
	l.Add(token.Position{Line: 1, Column: 1}, "bad thing")
	if l.Empty() {
		t.Fatal("expected list to be non-empty after Add")
	}
}

func TestDumpFormat(t *testing.T) {
	var l List
	l.Add(token.Position{Line: 3, Column: 7}, "unexpected token")
	var b strings.Builder
	l.Dump(&b)
	if b.String() != "3:7\tunexpected token\n" {
		t.Fatalf("got %q", b.String())
	}
}

func TestStringJoinsWithNewlines(t *testing.T) {
	var l List
	l.Add(token.Position{Line: 1, Column: 1}, "a")
	l.Add(token.Position{Line: 2, Column: 2}, "b")
	if l.String() != "1:1\ta\n2:2\tb" {
		t.Fatalf("got %q", l.String())
	}
}
