// Package diagnostics holds the recoverable diagnostic list the parser
// accumulates during panic-mode recovery and the CLI driver renders.
package diagnostics

import (
	"fmt"
	"io"
	"strings"

	"alanfl/pkg/token"
)

// Diagnostic is a single recoverable parse-time complaint.
type Diagnostic struct {
	Pos     token.Position
	Message string
}

// String renders a diagnostic as "line:col\tmessage".
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s\t%s", d.Pos, d.Message)
}

// List accumulates diagnostics in the order they were raised.
type List struct {
	items []Diagnostic
}

// Add appends a diagnostic at pos with the given message.
func (l *List) Add(pos token.Position, message string) {
	l.items = append(l.items, Diagnostic{Pos: pos, Message: message})
}

// Empty reports whether no diagnostics were recorded.
func (l *List) Empty() bool {
	return len(l.items) == 0
}

// Items returns the recorded diagnostics in order.
func (l *List) Items() []Diagnostic {
	return l.items
}

// Dump writes one diagnostic per line to w, per the "line:col\tmessage" wire
// format.
func (l *List) Dump(w io.Writer) {
	for _, d := range l.items {
		fmt.Fprintln(w, d.String())
	}
}

// String joins the diagnostics with newlines, mainly for tests.
func (l *List) String() string {
	var b strings.Builder
	for i, d := range l.items {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(d.String())
	}
	return b.String()
}
