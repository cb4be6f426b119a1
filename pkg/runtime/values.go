// Package runtime holds AlanFL's runtime value representation and the
// scope/frame/global environment model the evaluator walks against.
package runtime

import (
	"math/big"

	"alanfl/pkg/ast"
)

// Kind identifies a value's runtime type tag.
type Kind int

const (
	KindNothing Kind = iota
	KindInteger
	KindDecimal
	KindBoolean
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindNothing:
		return "nothing"
	case KindInteger:
		return "integer"
	case KindDecimal:
		return "decimal"
	case KindBoolean:
		return "boolean"
	case KindFunction:
		return "function"
	default:
		return "unknown"
	}
}

// Value is the shared behavior of every AlanFL runtime value. Values are
// logically immutable and reference-shared; mutation happens by replacing a
// cell's contents in an environment, never by mutating a value in place.
type Value interface {
	Kind() Kind
}

// NothingValue is the sole inhabitant of the unit type Nothing.
type NothingValue struct{}

func (NothingValue) Kind() Kind { return KindNothing }

// BooleanValue wraps a Go bool.
type BooleanValue struct {
	Val bool
}

func (BooleanValue) Kind() Kind { return KindBoolean }

// IntegerValue wraps an arbitrary-precision integer.
type IntegerValue struct {
	Val *big.Int
}

func (IntegerValue) Kind() Kind { return KindInteger }

// DecimalValue wraps an arbitrary-precision decimal.
type DecimalValue struct {
	Val *big.Float
}

func (DecimalValue) Kind() Kind { return KindDecimal }

// FunctionValue is a closure: the ast.Fn node it closes over, plus the
// capture-list bindings snapshotted at the moment the Fn expression was
// evaluated (§3.4). Captures are copied by value into this map — mutating a
// captured name later, inside or outside the closure, never reaches here.
type FunctionValue struct {
	Node     *ast.Fn
	Captured map[string]Value
}

func (*FunctionValue) Kind() Kind { return KindFunction }
