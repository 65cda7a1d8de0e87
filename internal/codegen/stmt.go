package codegen

import (
	"github.com/llir/llvm/ir/types"

	"plcc/internal/ast"
	"plcc/internal/codegen/cgerr"
	"plcc/internal/source"
)

// generateStatements lowers a statement sequence into the current block.
func (fg *funcGen) generateStatements(stmts []ast.Stmt) error {
	for _, s := range stmts {
		if err := fg.generateStatement(s); err != nil {
			return err
		}
	}
	return nil
}

func (fg *funcGen) generateStatement(s ast.Stmt) error {
	switch s := s.(type) {
	case *ast.AssignStmt:
		return fg.generateAssignment(s.Target, s.Value)
	case *ast.ExprStmt:
		if call, ok := s.X.(*ast.CallExpr); ok {
			_, err := fg.generateCall(call)
			return err
		}
		_, err := fg.generateExpression(s.X)
		return err
	case *ast.EmptyStmt:
		return nil
	default:
		return cgerr.Errorf(s.Span(), "unsupported statement %T", s)
	}
}

// generateAssignment stores rhs into the storage named by lhs.
func (fg *funcGen) generateAssignment(lhs, rhs ast.Expr) error {
	dst, err := fg.address(lhs)
	if err != nil {
		return err
	}
	val, err := fg.generateExpression(rhs)
	if err != nil {
		return err
	}
	return fg.store(dst, val, rhs.Span())
}

// store writes val into dst: strings by bounded copy, other aggregates by
// value, scalars after conversion to dst's type.
func (fg *funcGen) store(dst variable, val typedValue, sp source.Span) error {
	switch {
	case dst.dt.IsString():
		if !val.dt.IsString() {
			return cgerr.Errorf(sp, "cannot assign %s to %s", val.dt.Name, dst.dt.Name)
		}
		return fg.copyString(dst, val)
	case dst.dt.IsAggregate():
		t, err := fg.g.llvmType(dst.dt.Name)
		if err != nil {
			return err
		}
		src, err := fg.g.llvmType(val.dt.Name)
		if err != nil || !types.Equal(t, src) {
			return cgerr.Errorf(sp, "cannot assign %s to %s", val.dt.Name, dst.dt.Name)
		}
		if val.v == dst.ptr {
			return nil
		}
		fg.block.NewStore(fg.block.NewLoad(t, val.v), dst.ptr)
		return nil
	default:
		v, err := fg.cast(val, dst.dt, sp)
		if err != nil {
			return err
		}
		fg.block.NewStore(v, dst.ptr)
		return nil
	}
}
