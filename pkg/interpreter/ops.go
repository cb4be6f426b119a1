package interpreter

import (
	"fmt"
	"math/big"

	"alanfl/pkg/ast"
	"alanfl/pkg/numeric"
	"alanfl/pkg/runtime"
)

// numericOperand extracts a value's numeric payload, reporting whether it
// has one at all. Both arithmetic and comparison operators use this to
// decide whether to stay in Integer or widen to Decimal.
func numericOperand(v runtime.Value) (z *big.Int, f *big.Float, ok bool) {
	switch val := v.(type) {
	case runtime.IntegerValue:
		return val.Val, nil, true
	case runtime.DecimalValue:
		return nil, val.Val, true
	default:
		return nil, nil, false
	}
}

// widen brings two numeric operands to a common representation: Integer
// only when both already are, Decimal otherwise.
func widen(lz *big.Int, lf *big.Float, rz *big.Int, rf *big.Float) (bothInt bool, la, ra *big.Float) {
	if lz != nil && rz != nil {
		return true, nil, nil
	}
	if lz != nil {
		la = numeric.IntToDecimal(lz)
	} else {
		la = lf
	}
	if rz != nil {
		ra = numeric.IntToDecimal(rz)
	} else {
		ra = rf
	}
	return false, la, ra
}

func (vm *VM) arith(op ast.BinaryOperator, l, r runtime.Value) (runtime.Value, error) {
	lz, lf, lok := numericOperand(l)
	rz, rf, rok := numericOperand(r)
	if !lok || !rok {
		return nil, fmt.Errorf("cannot perform arithmetic operation on non-numeric type")
	}

	bothInt, la, ra := widen(lz, lf, rz, rf)
	if bothInt {
		switch op {
		case ast.OpAdd:
			return vm.cache.Int(new(big.Int).Add(lz, rz)), nil
		case ast.OpSub:
			return vm.cache.Int(new(big.Int).Sub(lz, rz)), nil
		case ast.OpMul:
			return vm.cache.Int(new(big.Int).Mul(lz, rz)), nil
		case ast.OpDiv:
			q, err := numeric.DivInt(lz, rz)
			if err != nil {
				return nil, err
			}
			return vm.cache.Int(q), nil
		}
	}

	switch op {
	case ast.OpAdd:
		return vm.cache.Decimal(new(big.Float).SetPrec(numeric.DecimalPrecision).Add(la, ra)), nil
	case ast.OpSub:
		return vm.cache.Decimal(new(big.Float).SetPrec(numeric.DecimalPrecision).Sub(la, ra)), nil
	case ast.OpMul:
		return vm.cache.Decimal(new(big.Float).SetPrec(numeric.DecimalPrecision).Mul(la, ra)), nil
	case ast.OpDiv:
		q, err := numeric.DivDecimal(la, ra)
		if err != nil {
			return nil, err
		}
		return vm.cache.Decimal(q), nil
	}
	panic("interpreter: unreachable arithmetic operator")
}

func (vm *VM) compare(op ast.BinaryOperator, l, r runtime.Value) (runtime.Value, error) {
	lz, lf, lok := numericOperand(l)
	rz, rf, rok := numericOperand(r)
	if !lok || !rok {
		return nil, fmt.Errorf("cannot perform arithmetic comparison on non-numeric type")
	}

	var cmp int
	if bothInt, la, ra := widen(lz, lf, rz, rf); bothInt {
		cmp = lz.Cmp(rz)
	} else {
		cmp = la.Cmp(ra)
	}

	var result bool
	switch op {
	case ast.OpLt:
		result = cmp < 0
	case ast.OpLtEq:
		result = cmp <= 0
	case ast.OpGt:
		result = cmp > 0
	case ast.OpGtEq:
		result = cmp >= 0
	case ast.OpEq:
		result = cmp == 0
	case ast.OpNeq:
		result = cmp != 0
	default:
		panic("interpreter: unreachable comparison operator")
	}
	return vm.cache.Bool(result), nil
}

func asBoolean(v runtime.Value) (bool, bool) {
	b, ok := v.(runtime.BooleanValue)
	return b.Val, ok
}

func (vm *VM) logical(op ast.BinaryOperator, l, r runtime.Value) (runtime.Value, error) {
	lb, lok := asBoolean(l)
	rb, rok := asBoolean(r)
	if !lok || !rok {
		return nil, fmt.Errorf("cannot perform logical operation on non-boolean type")
	}
	switch op {
	case ast.OpLAnd:
		return vm.cache.Bool(lb && rb), nil
	case ast.OpLOr:
		return vm.cache.Bool(lb || rb), nil
	default:
		panic("interpreter: unreachable logical operator")
	}
}

func (vm *VM) negate(v runtime.Value) (runtime.Value, error) {
	switch val := v.(type) {
	case runtime.IntegerValue:
		return vm.cache.Int(new(big.Int).Neg(val.Val)), nil
	case runtime.DecimalValue:
		return vm.cache.Decimal(new(big.Float).SetPrec(numeric.DecimalPrecision).Neg(val.Val)), nil
	default:
		return nil, fmt.Errorf("cannot negate a non-numeric type")
	}
}

func (vm *VM) logicalNot(v runtime.Value) (runtime.Value, error) {
	b, ok := asBoolean(v)
	if !ok {
		return nil, fmt.Errorf("cannot apply logical not to a non-boolean type")
	}
	return vm.cache.Bool(!b), nil
}
