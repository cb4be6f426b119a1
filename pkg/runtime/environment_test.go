package runtime

import "testing"

func TestScopeDefineAndLookup(t *testing.T) {
	s := NewScope()
	s.Define("x", IntegerValue{})
	if _, ok := s.Lookup("x"); !ok {
		t.Fatal("expected x to be defined")
	}
	if _, ok := s.Lookup("y"); ok {
		t.Fatal("y should not be defined")
	}
}

func TestFrameLookupSearchesInnerToOuter(t *testing.T) {
	f := NewFrame()
	f.Top().Define("x", BooleanValue{Val: false})
	f.PushScope()
	f.Top().Define("y", BooleanValue{Val: true})

	if _, ok := f.Lookup("x"); !ok {
		t.Fatal("expected to find x in outer scope")
	}
	if _, ok := f.Lookup("y"); !ok {
		t.Fatal("expected to find y in inner scope")
	}

	f.PopScope()
	if _, ok := f.Lookup("y"); ok {
		t.Fatal("y should be gone after popping its scope")
	}
}

func TestEnvironmentLookupFallsBackToGlobal(t *testing.T) {
	e := NewEnvironment()
	e.Global.Define("g", BooleanValue{Val: true})
	e.PushFrame()
	defer e.PopFrame()

	cell, err := e.Lookup("g")
	if err != nil {
		t.Fatal(err)
	}
	if cell.Value.(BooleanValue).Val != true {
		t.Fatal("expected global value")
	}
}

func TestEnvironmentLookupPrefersCurrentFrame(t *testing.T) {
	e := NewEnvironment()
	e.Global.Define("x", BooleanValue{Val: false})
	e.PushFrame()
	defer e.PopFrame()
	e.CurrentFrame().Top().Define("x", BooleanValue{Val: true})

	cell, err := e.Lookup("x")
	if err != nil {
		t.Fatal(err)
	}
	if cell.Value.(BooleanValue).Val != true {
		t.Fatal("expected frame-local value to shadow global")
	}
}

func TestEnvironmentLookupMissingName(t *testing.T) {
	e := NewEnvironment()
	if _, err := e.Lookup("nope"); err == nil {
		t.Fatal("expected an error for an undefined name")
	}
}
