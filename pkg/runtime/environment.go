package runtime

import "fmt"

// Cell is the storage slot a scope keys by variable name. Assignment
// replaces a cell's Value; it never mutates a Value in place.
type Cell struct {
	Value Value
}

// Scope is an unordered name -> cell map forming one level of a frame's
// lexical nesting (§3.5).
type Scope struct {
	vars map[string]*Cell
}

// NewScope creates an empty scope.
func NewScope() *Scope {
	return &Scope{vars: make(map[string]*Cell)}
}

// Lookup returns the cell bound to name in this scope only, without
// consulting outer scopes.
func (s *Scope) Lookup(name string) (*Cell, bool) {
	c, ok := s.vars[name]
	return c, ok
}

// Define binds name to value in this scope, shadowing any outer binding of
// the same name and replacing any prior binding of the same name in this
// scope.
func (s *Scope) Define(name string, value Value) {
	s.vars[name] = &Cell{Value: value}
}

// Bindings exposes the scope's name -> cell map directly.
func (s *Scope) Bindings() map[string]*Cell {
	return s.vars
}

// Frame is a call's ordered stack of scopes, scopes[0] outermost (§3.5).
// Frames are pushed on function call and popped on return; scopes are
// pushed on block entry / call setup and popped on block exit, on every
// exit path (normal, break, return, or runtime error).
type Frame struct {
	scopes []*Scope
}

// NewFrame creates a frame with a single, empty top-level scope.
func NewFrame() *Frame {
	return &Frame{scopes: []*Scope{NewScope()}}
}

// PushScope adds a new innermost scope.
func (f *Frame) PushScope() {
	f.scopes = append(f.scopes, NewScope())
}

// PopScope removes the innermost scope. Callers must guarantee a matching
// PushScope precedes every PopScope, on every exit path.
func (f *Frame) PopScope() {
	f.scopes = f.scopes[:len(f.scopes)-1]
}

// Top returns the innermost scope, the target for `var` declarations and
// first-time writes.
func (f *Frame) Top() *Scope {
	return f.scopes[len(f.scopes)-1]
}

// Lookup searches this frame's scopes inner-to-outer, without falling back
// to global.
func (f *Frame) Lookup(name string) (*Cell, bool) {
	for i := len(f.scopes) - 1; i >= 0; i-- {
		if c, ok := f.scopes[i].Lookup(name); ok {
			return c, true
		}
	}
	return nil, false
}

// Environment is the process-wide runtime environment: one global scope
// plus a LIFO call stack of frames, exactly the model §3.5/§4.3 describe.
type Environment struct {
	Global    *Scope
	callStack []*Frame
}

// NewEnvironment creates an environment with an empty global scope and no
// active frames.
func NewEnvironment() *Environment {
	return &Environment{Global: NewScope()}
}

// PushFrame pushes a new call frame, becoming the current frame.
func (e *Environment) PushFrame() {
	e.callStack = append(e.callStack, NewFrame())
}

// PopFrame pops the current call frame. Callers must guarantee a matching
// PushFrame precedes every PopFrame, on every exit path (including runtime
// errors and non-local control transfer).
func (e *Environment) PopFrame() {
	e.callStack = e.callStack[:len(e.callStack)-1]
}

// CurrentFrame returns the active frame, or nil if the call stack is empty.
func (e *Environment) CurrentFrame() *Frame {
	if len(e.callStack) == 0 {
		return nil
	}
	return e.callStack[len(e.callStack)-1]
}

// Lookup implements the VM's name-resolution rule: search the current
// frame, then fall back to global.
func (e *Environment) Lookup(name string) (*Cell, error) {
	if f := e.CurrentFrame(); f != nil {
		if c, ok := f.Lookup(name); ok {
			return c, nil
		}
	}
	if c, ok := e.Global.Lookup(name); ok {
		return c, nil
	}
	return nil, fmt.Errorf("variable %q not found", name)
}
