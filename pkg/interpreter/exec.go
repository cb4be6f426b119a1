package interpreter

import (
	"fmt"

	"alanfl/pkg/ast"
)

// exec runs stmt for effect. A non-nil error is either a genuine runtime
// error, or a *breakSignal / *returnSignal in flight toward the While or
// call frame that will absorb it.
func (vm *VM) exec(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.Empty:
		return nil
	case *ast.ExprStmt:
		_, err := vm.rvalue(s.Expr)
		return err
	case *ast.VarDecl:
		return vm.execVarDecl(s)
	case *ast.Block:
		return vm.execBlock(s)
	case *ast.If:
		return vm.execIf(s)
	case *ast.While:
		return vm.execWhile(s)
	case *ast.Break:
		return &breakSignal{Count: s.Count}
	case *ast.Return:
		v := vm.cache.Nothing()
		if s.Expr != nil {
			var err error
			v, err = vm.rvalue(s.Expr)
			if err != nil {
				return err
			}
		}
		return &returnSignal{Value: v}
	case *ast.Intrinsic:
		return s.Body(vm)
	default:
		return fmt.Errorf("cannot execute statement of type %s", stmt.NodeType())
	}
}

// execVarDecl defines each of decl's names into the innermost active
// scope — a function's current block scope, or the global scope when no
// frame is active (module top level).
func (vm *VM) execVarDecl(decl *ast.VarDecl) error {
	scope := vm.topScope()
	for _, vi := range decl.Vars {
		v := vm.cache.Nothing()
		if vi.Init != nil {
			var err error
			v, err = vm.rvalue(vi.Init)
			if err != nil {
				return err
			}
		}
		scope.Define(vi.ID.Name, v)
	}
	return nil
}

func (vm *VM) execBlock(b *ast.Block) error {
	vm.pushScope()
	defer vm.popScope()

	for _, stmt := range b.Stmts {
		if err := vm.exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (vm *VM) execIf(s *ast.If) error {
	condVal, err := vm.rvalue(s.Cond)
	if err != nil {
		return err
	}
	cond, ok := asBoolean(condVal)
	if !ok {
		return fmt.Errorf("if condition must be a boolean")
	}
	if cond {
		return vm.exec(s.Then)
	}
	if s.Else != nil {
		return vm.exec(s.Else)
	}
	return nil
}

func (vm *VM) execWhile(s *ast.While) error {
	for {
		condVal, err := vm.rvalue(s.Cond)
		if err != nil {
			return err
		}
		cond, ok := asBoolean(condVal)
		if !ok {
			return fmt.Errorf("while condition must be a boolean")
		}
		if !cond {
			return nil
		}

		err = vm.exec(s.Body)
		if err == nil {
			continue
		}
		if brk, ok := err.(*breakSignal); ok {
			if brk.Count <= 1 {
				return nil
			}
			return &breakSignal{Count: brk.Count - 1}
		}
		return err
	}
}
