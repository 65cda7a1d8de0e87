package codegen

import (
	"github.com/llir/llvm/ir/value"

	"plcc/internal/ast"
	"plcc/internal/codegen/cgerr"
	"plcc/internal/ident"
	"plcc/internal/typesystem"
)

// variable is the storage a name resolves to inside a body.
type variable struct {
	ptr  value.Value
	dt   *typesystem.DataType
	name string // declared spelling, used for value names
}

// lookupVariable resolves name in this order: members and the return slot
// of the current POU, VAR_GLOBALs, program instances.
func (fg *funcGen) lookupVariable(name string) (variable, bool) {
	idx := fg.g.idx
	if ptr, ok := fg.scope.LookupLocal(fg.pou.Name, name); ok {
		if m, ok := idx.FindMember(fg.pou.Name, name); ok {
			if dt, ok := idx.FindType(m.TypeName); ok {
				return variable{ptr: ptr, dt: dt, name: m.Name}, true
			}
		}
	}
	if gv, ok := idx.FindGlobalVariable(name); ok {
		if glob, ok := fg.scope.LookupGlobal(gv.Name); ok {
			if dt, ok := idx.FindType(gv.TypeName); ok {
				return variable{ptr: glob, dt: dt, name: gv.Name}, true
			}
		}
	}
	if pou, ok := idx.FindPOU(name); ok && LifetimeOf(pou.Kind).Singleton {
		if glob, ok := fg.scope.LookupGlobal(pou.Name); ok {
			if dt, ok := idx.FindType(pou.Name); ok {
				return variable{ptr: glob, dt: dt, name: pou.Name}, true
			}
		}
	}
	return variable{}, false
}

// address computes the storage of an assignable expression.
func (fg *funcGen) address(e ast.Expr) (variable, error) {
	switch e := e.(type) {
	case *ast.Ident:
		v, ok := fg.lookupVariable(e.Name)
		if !ok {
			return variable{}, cgerr.Errorf(e.Sp, "unknown variable %s in %s", e.Name, fg.pou.Name)
		}
		return v, nil
	case *ast.MemberExpr:
		base, err := fg.address(e.X)
		if err != nil {
			return variable{}, err
		}
		return fg.member(base, e)
	default:
		return variable{}, cgerr.Errorf(e.Span(), "expression cannot be assigned to")
	}
}

// member addresses field e.Name of the struct stored at base.
func (fg *funcGen) member(base variable, e *ast.MemberExpr) (variable, error) {
	if !base.dt.IsStruct() {
		return variable{}, cgerr.Errorf(e.Sp, "%s is not a struct or instance", base.name)
	}
	st, ok := fg.g.structShell(base.dt.Name)
	if !ok {
		return variable{}, cgerr.NewUnknownType(base.dt.Name, e.Sp)
	}
	for i, m := range base.dt.Info.Members {
		if !ident.Equal(m.Name, e.Name) {
			continue
		}
		dt, ok := fg.g.idx.FindType(m.TypeName)
		if !ok {
			return variable{}, cgerr.NewUnknownType(m.TypeName, e.Sp)
		}
		gep := fg.block.NewGetElementPtr(st, base.ptr, i32(0), i32(int64(i)))
		gep.InBounds = true
		gep.SetName(fg.names.name(base.name + "." + m.Name))
		return variable{ptr: gep, dt: dt, name: m.Name}, nil
	}
	return variable{}, cgerr.Errorf(e.Sp, "%s has no member %s", base.dt.Name, e.Name)
}
