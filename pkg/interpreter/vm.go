// Package interpreter is AlanFL's tree-walking evaluator: an r-value
// evaluator, an l-value evaluator defined only for identifiers, and a
// statement executor, all closing over a single VM that owns the runtime
// environment and value cache.
package interpreter

import (
	"bufio"
	"fmt"
	"io"

	"alanfl/pkg/ast"
	"alanfl/pkg/runtime"
)

// VM is one running AlanFL program: its environment, its value cache, and
// the I/O streams the print_line/read_int intrinsics use.
type VM struct {
	env   *runtime.Environment
	cache *runtime.ValueCache
	In    io.Reader
	Out   io.Writer
	Err   io.Writer
	stdin *bufio.Reader
}

// New builds a VM with its global intrinsics installed, reading from in and
// writing to out/errw. stdin is wrapped once here so read_int's byte-at-a-time
// scan keeps whatever bufio read ahead across calls, instead of losing it to
// a discarded reader each time.
func New(in io.Reader, out, errw io.Writer) *VM {
	vm := &VM{
		env:   runtime.NewEnvironment(),
		cache: runtime.NewValueCache(),
		In:    in,
		Out:   out,
		Err:   errw,
		stdin: bufio.NewReader(in),
	}
	installIntrinsics(vm)
	return vm
}

// Exec evaluates every module-level var declaration against the global
// scope, then looks up and calls the program's `entry` function with no
// arguments. It returns the first runtime error encountered, or nil on a
// normal return (or fall-through) from entry.
func (vm *VM) Exec(module *ast.Module) error {
	for _, decl := range module.Decls {
		if err := vm.execVarDecl(decl); err != nil {
			return err
		}
	}

	cell, ok := vm.env.Global.Lookup("entry")
	if !ok {
		return fmt.Errorf("module has no top-level %q declaration", "entry")
	}
	fn, ok := cell.Value.(*runtime.FunctionValue)
	if !ok {
		return fmt.Errorf("entry should be a function to call")
	}

	_, err := vm.call(fn, nil)
	return err
}

//-----------------------------------------------------------------------------
// r-value / l-value evaluation
//-----------------------------------------------------------------------------

// rvalue evaluates expr to produce a value.
func (vm *VM) rvalue(expr ast.Expression) (runtime.Value, error) {
	switch e := expr.(type) {
	case *ast.Bool:
		return vm.cache.Bool(e.Value), nil
	case *ast.Integer:
		return vm.cache.Int(e.Value), nil
	case *ast.Decimal:
		return vm.cache.Decimal(e.Value), nil
	case *ast.Identifier:
		cell, err := vm.lookup(e.Name)
		if err != nil {
			return nil, err
		}
		return cell.Value, nil
	case *ast.UnOp:
		operand, err := vm.rvalue(e.Operand)
		if err != nil {
			return nil, err
		}
		switch e.Operator {
		case ast.OpNeg:
			return vm.negate(operand)
		case ast.OpLNot:
			return vm.logicalNot(operand)
		default:
			panic("interpreter: unreachable unary operator")
		}
	case *ast.BinOp:
		return vm.evalBinOp(e)
	case *ast.FnCall:
		return vm.evalFnCall(e)
	case *ast.Fn:
		return vm.evalFn(e)
	default:
		return nil, fmt.Errorf("cannot evaluate expression of type %s", expr.NodeType())
	}
}

// lvalue resolves expr to the cell an assignment writes through. It is
// defined only for identifiers; every other expression form is a parse-time
// legal but semantically invalid assignment target.
func (vm *VM) lvalue(expr ast.Expression) (*runtime.Cell, error) {
	id, ok := expr.(*ast.Identifier)
	if !ok {
		return nil, fmt.Errorf("expression cannot be used as lvalue")
	}
	return vm.lookup(id.Name)
}

func (vm *VM) lookup(name string) (*runtime.Cell, error) {
	return vm.env.Lookup(name)
}

func (vm *VM) evalBinOp(e *ast.BinOp) (runtime.Value, error) {
	if e.Operator == ast.OpAssign {
		rhs, err := vm.rvalue(e.Right)
		if err != nil {
			return nil, err
		}
		cell, err := vm.lvalue(e.Left)
		if err != nil {
			return nil, err
		}
		cell.Value = rhs
		return rhs, nil
	}

	left, err := vm.rvalue(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := vm.rvalue(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv:
		return vm.arith(e.Operator, left, right)
	case ast.OpLt, ast.OpLtEq, ast.OpGt, ast.OpGtEq, ast.OpEq, ast.OpNeq:
		return vm.compare(e.Operator, left, right)
	case ast.OpLAnd, ast.OpLOr:
		return vm.logical(e.Operator, left, right)
	default:
		panic("interpreter: unreachable binary operator")
	}
}

// evalFn snapshots a lambda's captures at the moment the Fn expression is
// evaluated (§3.4): each capture's value is resolved against whatever scope
// is active right now — the enclosing function's frame, or global at module
// level — and copied into an owned map, not linked to that scope. A later
// assignment to the same name, inside or outside the closure, never changes
// what's already been captured.
func (vm *VM) evalFn(e *ast.Fn) (runtime.Value, error) {
	captured := make(map[string]runtime.Value, len(e.Captures))
	for _, capture := range e.Captures {
		var v runtime.Value
		var err error
		if capture.Init != nil {
			v, err = vm.rvalue(capture.Init)
		} else {
			var cell *runtime.Cell
			cell, err = vm.lookup(capture.ID.Name)
			if err == nil {
				v = cell.Value
			}
		}
		if err != nil {
			return nil, err
		}
		captured[capture.ID.Name] = v
	}

	return &runtime.FunctionValue{Node: e, Captured: captured}, nil
}

func (vm *VM) evalFnCall(e *ast.FnCall) (runtime.Value, error) {
	calleeVal, err := vm.rvalue(e.Callee)
	if err != nil {
		return nil, err
	}
	fn, ok := calleeVal.(*runtime.FunctionValue)
	if !ok {
		return nil, fmt.Errorf("can not call a non-function object")
	}
	if len(e.Args) > len(fn.Node.Params) {
		return nil, fmt.Errorf("too many arguments: expected at most %d, got %d", len(fn.Node.Params), len(e.Args))
	}

	args := make([]runtime.Value, len(e.Args))
	for i, argExpr := range e.Args {
		v, err := vm.rvalue(argExpr)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	return vm.call(fn, args)
}

// call pushes a fresh frame for fn, installs its captures, binds args to
// params (evaluating defaults for the rest), runs its body, and pops the
// frame on every exit path.
func (vm *VM) call(fn *runtime.FunctionValue, args []runtime.Value) (runtime.Value, error) {
	vm.env.PushFrame()
	defer vm.env.PopFrame()

	scope := vm.topScope()
	for name, v := range fn.Captured {
		scope.Define(name, v)
	}

	for i, param := range fn.Node.Params {
		if i < len(args) {
			scope.Define(param.ID.Name, args[i])
			continue
		}
		if param.Init == nil {
			return nil, fmt.Errorf("unprovided call argument %q must have a default", param.ID.Name)
		}
		v, err := vm.rvalue(param.Init)
		if err != nil {
			return nil, err
		}
		scope.Define(param.ID.Name, v)
	}

	err := vm.exec(fn.Node.Body)
	if err == nil {
		return vm.cache.Nothing(), nil
	}
	if ret, ok := err.(*returnSignal); ok {
		return ret.Value, nil
	}
	return nil, err
}

//-----------------------------------------------------------------------------
// Frame/scope helpers
//-----------------------------------------------------------------------------

func (vm *VM) pushScope() {
	if f := vm.env.CurrentFrame(); f != nil {
		f.PushScope()
		return
	}
	vm.env.PushFrame()
}

func (vm *VM) popScope() {
	if f := vm.env.CurrentFrame(); f != nil {
		f.PopScope()
	}
}

func (vm *VM) topScope() *runtime.Scope {
	if f := vm.env.CurrentFrame(); f != nil {
		return f.Top()
	}
	return vm.env.Global
}
