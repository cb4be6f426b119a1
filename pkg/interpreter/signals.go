package interpreter

import (
	"fmt"

	"alanfl/pkg/runtime"
)

// breakSignal is how a `break N` statement unwinds through ordinary Go
// error returns rather than a panic: each enclosing While decrements Count
// and re-raises it until a While sees Count reach 1, which it absorbs.
type breakSignal struct {
	Count uint
}

func (s *breakSignal) Error() string {
	return fmt.Sprintf("break %d outside of any loop", s.Count)
}

// returnSignal carries a `return` statement's value up to the function
// call machinery that's waiting for it, the same way.
type returnSignal struct {
	Value runtime.Value
}

func (s *returnSignal) Error() string {
	return "return outside of any function call"
}
