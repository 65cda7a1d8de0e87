package codegen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"plcc/internal/ast"
	"plcc/internal/codegen/cgerr"
	"plcc/internal/ident"
	"plcc/internal/index"
)

// callTarget is a resolved callee plus the instance the call runs on.
type callTarget struct {
	pou      *index.POU
	fn       *ir.Func
	iface    *types.StructType
	instance value.Value // nil until materialized for transient instances
}

// binding pairs a formal parameter with the argument supplying it.
type binding struct {
	param *index.Member
	field int
	arg   ast.Arg
}

func calleeName(e ast.Expr) string {
	switch e := e.(type) {
	case *ast.Ident:
		return e.Name
	case *ast.MemberExpr:
		return calleeName(e.X) + "." + e.Name
	default:
		return "<expr>"
	}
}

// generateCall lowers a call. The callee gets one argument, a pointer to
// its instance: a fresh frame for functions, the global singleton for
// programs, the instance variable for function blocks. Inputs are written
// into the instance before the call, outputs and in-outs are copied back
// after it. The result has a nil value for void callees.
func (fg *funcGen) generateCall(call *ast.CallExpr) (typedValue, error) {
	target, err := fg.resolveCallee(call.Callee)
	if err != nil {
		return typedValue{}, err
	}
	bindings, err := fg.bindArguments(target.pou, call)
	if err != nil {
		return typedValue{}, err
	}

	if target.instance == nil {
		target.instance = fg.materializeFrame(target)
	}
	for _, b := range bindings {
		if isOutputBinding(b) {
			continue
		}
		val, err := fg.generateExpression(b.arg.Value)
		if err != nil {
			return typedValue{}, err
		}
		field, err := fg.field(target, b)
		if err != nil {
			return typedValue{}, err
		}
		if err := fg.store(field, val, b.arg.Value.Span()); err != nil {
			return typedValue{}, err
		}
	}

	inst := fg.block.NewCall(target.fn, target.instance)
	var result typedValue
	if !types.Equal(target.fn.Sig.RetType, types.Void) {
		inst.SetName(fg.names.name("call"))
		result, err = fg.callResult(target, inst)
		if err != nil {
			return typedValue{}, err
		}
	}

	for _, b := range bindings {
		if !isOutputBinding(b) && b.param.Block != ast.VarInOut {
			continue
		}
		if err := fg.copyBack(target, b); err != nil {
			return typedValue{}, err
		}
	}
	return result, nil
}

// resolveCallee finds the POU and instance for a call. Function and
// program names resolve to the POU itself; any other name must be a
// function block instance.
func (fg *funcGen) resolveCallee(callee ast.Expr) (callTarget, error) {
	idx := fg.g.idx
	var (
		pou      *index.POU
		instance value.Value
	)
	if id, ok := callee.(*ast.Ident); ok {
		if p, ok := idx.FindPOU(id.Name); ok && p.Kind != ast.PouFunctionBlock {
			pou = p
		}
	}
	if pou == nil {
		v, err := fg.address(callee)
		if err != nil {
			return callTarget{}, cgerr.Errorf(callee.Span(), "unknown function or instance %s", calleeName(callee))
		}
		p, ok := idx.FindPOU(v.dt.Name)
		if !ok || p.Kind != ast.PouFunctionBlock {
			return callTarget{}, cgerr.Errorf(callee.Span(), "%s is not callable", calleeName(callee))
		}
		pou, instance = p, v.ptr
	}

	fn, ok := fg.scope.LookupCallable(pou.Name)
	if !ok {
		return callTarget{}, cgerr.NewMissingFunction(pou.Name, callee.Span())
	}
	iface, ok := fg.g.structShell(pou.Name)
	if !ok {
		return callTarget{}, cgerr.NewUnknownType(pou.Name, callee.Span())
	}
	if instance == nil && LifetimeOf(pou.Kind).Singleton {
		glob, err := fg.scope.FindGlobal(pou.Name)
		if err != nil {
			return callTarget{}, err
		}
		instance = glob
	}
	return callTarget{pou: pou, fn: fn, iface: iface, instance: instance}, nil
}

// materializeFrame allocates a transient instance and sets it to the
// callee's initial value. Every call gets its own frame.
func (fg *funcGen) materializeFrame(t callTarget) value.Value {
	frame := fg.block.NewAlloca(t.iface)
	var init constant.Constant
	if c, ok := fg.scope.FindInitialValue(t.pou.Name); ok {
		init = c
	} else {
		init = constant.NewZeroInitializer(t.iface)
	}
	fg.block.NewStore(init, frame)
	return frame
}

// bindArguments maps positional arguments onto the inputs, in-outs and
// outputs in declaration order, and named arguments onto the parameter of
// that name.
func (fg *funcGen) bindArguments(pou *index.POU, call *ast.CallExpr) ([]binding, error) {
	var params []*index.Member
	for _, m := range fg.g.idx.Members(pou.Name) {
		switch m.Block {
		case ast.VarInput, ast.VarInOut, ast.VarOutput:
			params = append(params, m)
		}
	}

	out := make([]binding, 0, len(call.Args))
	seen := make(map[string]bool, len(call.Args))
	next := 0
	for _, arg := range call.Args {
		var p *index.Member
		switch arg.Kind {
		case ast.ArgPositional:
			if next >= len(params) {
				return nil, cgerr.Errorf(arg.Sp, "too many arguments in call to %s", pou.Name)
			}
			p = params[next]
			next++
		default:
			m, ok := fg.g.idx.FindMember(pou.Name, arg.Name)
			if !ok || m.IsReturn() || !isParameter(m) {
				return nil, cgerr.Errorf(arg.Sp, "%s has no parameter %s", pou.Name, arg.Name)
			}
			if arg.Kind == ast.ArgOutput && m.Block == ast.VarInput {
				return nil, cgerr.Errorf(arg.Sp, "%s is an input of %s; use :=", m.Name, pou.Name)
			}
			if arg.Kind == ast.ArgInput && m.Block == ast.VarOutput {
				return nil, cgerr.Errorf(arg.Sp, "%s is an output of %s; use =>", m.Name, pou.Name)
			}
			p = m
		}
		key := ident.Fold(p.Name)
		if seen[key] {
			return nil, cgerr.Errorf(arg.Sp, "parameter %s of %s is assigned twice", p.Name, pou.Name)
		}
		seen[key] = true
		if p.Block != ast.VarInput {
			if err := assignable(arg.Value); err != nil {
				return nil, err
			}
		}
		out = append(out, binding{param: p, field: p.Field, arg: arg})
	}
	return out, nil
}

func isParameter(m *index.Member) bool {
	return m.Block == ast.VarInput || m.Block == ast.VarInOut || m.Block == ast.VarOutput
}

func isOutputBinding(b binding) bool {
	return b.param.Block == ast.VarOutput
}

func assignable(e ast.Expr) error {
	switch e.(type) {
	case *ast.Ident, *ast.MemberExpr:
		return nil
	default:
		return cgerr.Errorf(e.Span(), "output and in-out arguments must be variables")
	}
}

// field addresses a parameter inside the callee's instance.
func (fg *funcGen) field(t callTarget, b binding) (variable, error) {
	dt, ok := fg.g.idx.FindType(b.param.TypeName)
	if !ok {
		return variable{}, cgerr.NewUnknownType(b.param.TypeName, b.param.Span)
	}
	gep := fg.block.NewGetElementPtr(t.iface, t.instance, i32(0), i32(int64(b.field)))
	gep.InBounds = true
	return variable{ptr: gep, dt: dt, name: b.param.Name}, nil
}

// copyBack writes an output or in-out parameter into the caller's
// variable.
func (fg *funcGen) copyBack(t callTarget, b binding) error {
	dst, err := fg.address(b.arg.Value)
	if err != nil {
		return err
	}
	src, err := fg.field(t, b)
	if err != nil {
		return err
	}
	val, err := fg.load(src)
	if err != nil {
		return err
	}
	return fg.store(dst, val, b.arg.Sp)
}

// callResult wraps the returned value. Array and string results are
// spilled so they are addressed like any other aggregate.
func (fg *funcGen) callResult(t callTarget, inst *ir.InstCall) (typedValue, error) {
	dt, ok := fg.g.idx.FindReturnType(t.pou.Name)
	if !ok {
		return typedValue{}, cgerr.NewUnknownType(t.pou.ReturnType, t.pou.Span)
	}
	if !dt.IsAggregate() {
		return typedValue{v: inst, dt: dt}, nil
	}
	tmp := fg.block.NewAlloca(inst.Type())
	fg.block.NewStore(inst, tmp)
	return typedValue{v: tmp, dt: dt}, nil
}
