package interpreter

import (
	"fmt"
	"math/big"

	"alanfl/pkg/ast"
	"alanfl/pkg/numeric"
	"alanfl/pkg/runtime"
)

// installIntrinsics defines the VM's handful of native functions into the
// global scope, each as an ordinary FunctionValue whose body is an
// *ast.Intrinsic rather than a parsed block — built the same way
// vm::get_intrinsic assembles a synthetic function node in the reference
// implementation.
func installIntrinsics(vm *VM) {
	define := func(name string, params []string, body ast.IntrinsicFunc) {
		var vars []*ast.VarInit
		for _, p := range params {
			vars = append(vars, ast.NewVarInit(ast.NewIdentifier(p), nil))
		}
		node := ast.NewFn(nil, vars, ast.NewIntrinsic(body))
		vm.env.Global.Define(name, &runtime.FunctionValue{Node: node, Captured: nil})
	}

	define("print_line", []string{"val"}, intrinsicPrintLine)
	define("read_int", nil, intrinsicReadInt)
	define("sqrt", []string{"x"}, intrinsicSqrt)
}

func intrinsicArg(vmAny any, name string) (runtime.Value, error) {
	vm, ok := vmAny.(*VM)
	if !ok {
		return nil, fmt.Errorf("interpreter: intrinsic invoked outside a VM")
	}
	cell, err := vm.lookup(name)
	if err != nil {
		return nil, err
	}
	return cell.Value, nil
}

func intrinsicPrintLine(vmAny any) error {
	vm := vmAny.(*VM)
	val, err := intrinsicArg(vmAny, "val")
	if err != nil {
		return err
	}
	fmt.Fprintln(vm.Out, formatValue(val))
	return &returnSignal{Value: vm.cache.Nothing()}
}

func intrinsicReadInt(vmAny any) error {
	vm := vmAny.(*VM)

	var digits []byte
	for {
		b, err := vm.stdin.ReadByte()
		if err != nil {
			break
		}
		if b == ' ' || b == '\t' || b == '\n' || b == '\r' {
			if len(digits) > 0 {
				break
			}
			continue
		}
		digits = append(digits, b)
	}
	if len(digits) == 0 {
		return fmt.Errorf("read_int: no integer available on input")
	}

	z, ok := new(big.Int).SetString(string(digits), 10)
	if !ok {
		return fmt.Errorf("read_int: %q is not a valid integer", digits)
	}
	return &returnSignal{Value: vm.cache.Int(z)}
}

func intrinsicSqrt(vmAny any) error {
	vm := vmAny.(*VM)
	val, err := intrinsicArg(vmAny, "x")
	if err != nil {
		return err
	}

	var f *big.Float
	switch v := val.(type) {
	case runtime.IntegerValue:
		f = numeric.IntToDecimal(v.Val)
	case runtime.DecimalValue:
		f = v.Val
	default:
		return fmt.Errorf("sqrt: argument must be a number")
	}
	if f.Sign() < 0 {
		return fmt.Errorf("sqrt: argument must not be negative")
	}
	return &returnSignal{Value: vm.cache.Decimal(numeric.Sqrt(f))}
}

func formatValue(v runtime.Value) string {
	switch val := v.(type) {
	case runtime.NothingValue:
		return "nothing"
	case runtime.BooleanValue:
		if val.Val {
			return "true"
		}
		return "false"
	case runtime.IntegerValue:
		return val.Val.String()
	case runtime.DecimalValue:
		return numeric.FormatDecimal(val.Val)
	case *runtime.FunctionValue:
		return "<function>"
	default:
		return fmt.Sprintf("<%s>", v.Kind())
	}
}
