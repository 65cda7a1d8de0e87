package codegen

import (
	"context"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"

	"plcc/internal/ast"
	"plcc/internal/codegen/cgerr"
	"plcc/internal/index"
	"plcc/internal/trace"
	"plcc/internal/typedindex"
)

// funcGen emits one POU body. pou and fn form the linking context used to
// resolve the return slot and the instance members.
type funcGen struct {
	g     *Generator
	scope *typedindex.Index
	pou   *index.POU
	fn    *ir.Func
	block *ir.Block
	names *namer
}

// generateBodies runs after every stub exists. Each body gets its own child
// scope, dropped when the body is done.
func (g *Generator) generateBodies(ctx context.Context) error {
	for _, impl := range g.idx.Implementations() {
		if impl.External {
			continue
		}
		_, sp := trace.StartSpan(ctx, trace.ScopeModule, "pou:"+impl.CallName)
		err := g.generateBody(impl)
		sp.WithExtra("kind", impl.Kind.String()).End("")
		if err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) generateBody(impl *index.Implementation) error {
	pou, ok := g.idx.FindPOU(impl.TypeName)
	if !ok {
		return cgerr.NewUnknownType(impl.TypeName, noSpan)
	}
	fn, ok := g.types.LookupCallable(impl.CallName)
	if !ok {
		return cgerr.NewMissingFunction(impl.CallName, pou.Span)
	}

	fg := &funcGen{
		g:     g,
		scope: g.types.CreateChild(),
		pou:   pou,
		fn:    fn,
		names: newNamer(),
	}
	fg.block = fn.NewBlock("entry")

	if err := fg.allocateReturnSlot(); err != nil {
		return err
	}
	if err := fg.bindMembers(); err != nil {
		return err
	}
	if LifetimeOf(pou.Kind).ReplayInitializers {
		if err := fg.replayInitializers(); err != nil {
			return err
		}
	}
	var stmts []ast.Stmt
	if impl.Body != nil {
		stmts = impl.Body.Statements
	}
	if err := fg.generateStatements(stmts); err != nil {
		return err
	}
	return fg.emitReturn()
}

// allocateReturnSlot creates the local named like the POU that accumulates
// the return value. It is an ordinary local for the body.
func (fg *funcGen) allocateReturnSlot() error {
	ret := fg.fn.Sig.RetType
	if types.Equal(ret, types.Void) {
		return nil
	}
	slot := fg.block.NewAlloca(ret)
	slot.SetName(fg.names.name(fg.pou.Name))
	fg.block.NewStore(zeroOf(ret), slot)
	return fg.scope.RegisterLocal(fg.pou.Name, fg.pou.Name, slot)
}

// bindMembers binds every variable to its field in the instance struct
// reached through the function's only parameter.
func (fg *funcGen) bindMembers() error {
	members := fg.g.idx.Members(fg.pou.Name)
	if len(members) == 0 {
		return nil
	}
	if len(fg.fn.Params) == 0 {
		return cgerr.NewMissingFunction(fg.fn.Name(), members[0].Span)
	}
	param := fg.fn.Params[0]
	ptr, ok := param.Typ.(*types.PointerType)
	if !ok {
		return cgerr.NewMissingFunction(fg.fn.Name(), members[0].Span)
	}
	for i, m := range members {
		gep := fg.block.NewGetElementPtr(ptr.ElemType, param, i32(0), i32(int64(i)))
		gep.InBounds = true
		gep.SetName(fg.names.name(m.Name))
		if err := fg.scope.RegisterLocal(fg.pou.Name, m.Name, gep); err != nil {
			return err
		}
	}
	return nil
}

// replayInitializers assigns VAR initializers in declaration order.
func (fg *funcGen) replayInitializers() error {
	for _, m := range fg.g.idx.Members(fg.pou.Name) {
		if m.Block != ast.VarLocal || m.Initializer == nil {
			continue
		}
		target := &ast.Ident{Name: m.Name, Sp: m.Span}
		if err := fg.generateAssignment(target, m.Initializer); err != nil {
			return err
		}
	}
	return nil
}

func (fg *funcGen) emitReturn() error {
	ret := fg.fn.Sig.RetType
	if types.Equal(ret, types.Void) {
		fg.block.NewRet(nil)
		return nil
	}
	slot, err := fg.scope.FindLocal(fg.pou.Name, fg.pou.Name)
	if err != nil {
		return err
	}
	v := fg.block.NewLoad(ret, slot)
	v.SetName(fg.names.name(fg.pou.Name + "_ret"))
	fg.block.NewRet(v)
	return nil
}

func i32(v int64) *constant.Int {
	return constant.NewInt(types.I32, v)
}
