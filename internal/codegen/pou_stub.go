package codegen

import (
	"context"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"

	"plcc/internal/codegen/cgerr"
	"plcc/internal/index"
	"plcc/internal/trace"
)

// generateStubs declares one function per implementation. Nothing is
// emitted into function bodies here.
func (g *Generator) generateStubs(ctx context.Context) error {
	for _, impl := range g.idx.Implementations() {
		_, sp := trace.StartSpan(ctx, trace.ScopeModule, "stub:"+impl.CallName)
		err := g.generateStub(impl)
		sp.End("")
		if err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) generateStub(impl *index.Implementation) error {
	pou, ok := g.idx.FindPOU(impl.TypeName)
	if !ok {
		return cgerr.NewUnknownType(impl.TypeName, noSpan)
	}
	iface, err := g.types.FindType(impl.TypeName)
	if err != nil {
		return err
	}

	ret, err := g.stubReturnType(pou)
	if err != nil {
		return err
	}
	fn := g.mod.NewFunc(impl.CallName, ret, ir.NewParam("", types.NewPointer(iface)))
	if err := g.types.RegisterCallable(impl.CallName, fn); err != nil {
		return err
	}

	if !LifetimeOf(impl.Kind).Singleton {
		return nil
	}
	if impl.External {
		// Storage lives in the defining module.
		decl := g.mod.NewGlobal(instanceName(pou.Name), iface)
		decl.Linkage = enum.LinkageExternal
		return g.types.RegisterGlobal(pou.Name, decl)
	}
	init, ok := g.types.FindInitialValue(impl.TypeName)
	if !ok {
		init = constant.NewZeroInitializer(iface)
	}
	glob := g.mod.NewGlobalDef(instanceName(pou.Name), init)
	return g.types.RegisterGlobal(pou.Name, glob)
}

// stubReturnType applies the return ABI: integers, floats and fixed-size
// arrays (strings included) are returned by value, anything else is not
// supported.
func (g *Generator) stubReturnType(pou *index.POU) (types.Type, error) {
	dt, ok := g.idx.FindReturnType(pou.Name)
	if !ok {
		if pou.ReturnType != "" {
			return nil, cgerr.NewUnknownType(pou.ReturnType, pou.Span)
		}
		return types.Void, nil
	}
	t, err := g.types.FindType(dt.Name)
	if err != nil {
		return nil, err
	}
	switch t.(type) {
	case *types.IntType, *types.FloatType, *types.ArrayType:
		return t, nil
	}
	ce := cgerr.NewUnsupportedReturnType(pou.Name, dt.Name, pou.Span)
	if g.opts.UnsupportedReturn == ReturnAbort {
		panic(ce.Message)
	}
	return nil, ce
}
