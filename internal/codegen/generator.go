// Package codegen lowers an indexed compilation unit to LLVM IR.
//
// Generation runs in strict phases: datatypes, instance structs, globals,
// the stub pass declaring every POU function, and finally the body pass.
// Every stub exists before the first body is generated, so POUs may call
// each other in any order.
package codegen

import (
	"context"
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"

	"plcc/internal/ident"
	"plcc/internal/index"
	"plcc/internal/layout"
	"plcc/internal/trace"
	"plcc/internal/typedindex"
)

// Generator holds the state of one module generation.
type Generator struct {
	idx    *index.Index
	opts   Options
	mod    *ir.Module
	types  *typedindex.Index
	layout *layout.LayoutEngine

	structs    map[string]*types.StructType // folded datatype name -> shell
	literals   map[string]*ir.Global
	intrinsics map[string]*ir.Func
}

// GenerateModule runs all phases over idx. A failure in any phase aborts
// the unit; the partial module is never returned.
func GenerateModule(ctx context.Context, idx *index.Index, opts Options) (mod *ir.Module, err error) {
	if idx == nil {
		return nil, fmt.Errorf("codegen: nil index")
	}
	g := newGenerator(idx, opts)

	ctx, span := trace.StartSpan(ctx, trace.ScopePass, "codegen")
	defer func() {
		detail := "ok"
		if err != nil {
			detail = err.Error()
		}
		span.End(detail)
	}()

	phases := []struct {
		name string
		run  func(context.Context) error
	}{
		{"codegen.datatypes", g.generateDataTypes},
		{"codegen.structs", g.generateStructs},
		{"codegen.globals", g.generateGlobals},
		{"codegen.stubs", g.generateStubs},
		{"codegen.bodies", g.generateBodies},
	}
	for _, ph := range phases {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		phCtx, sp := trace.StartSpan(ctx, trace.ScopePass, ph.name)
		err := ph.run(phCtx)
		sp.End("")
		if err != nil {
			return nil, err
		}
	}
	return g.mod, nil
}

func newGenerator(idx *index.Index, opts Options) *Generator {
	if opts.Target.Triple == "" {
		opts.Target = layout.X86_64LinuxGNU()
	}
	if opts.ModuleName == "" {
		opts.ModuleName = "main"
	}
	m := ir.NewModule()
	m.SourceFilename = opts.ModuleName
	m.TargetTriple = opts.Target.Triple
	m.DataLayout = opts.Target.DataLayout
	return &Generator{
		idx:        idx,
		opts:       opts,
		mod:        m,
		types:      typedindex.New(),
		layout:     layout.New(opts.Target, idx),
		structs:    make(map[string]*types.StructType),
		literals:   make(map[string]*ir.Global),
		intrinsics: make(map[string]*ir.Func),
	}
}

func (g *Generator) structShell(name string) (*types.StructType, bool) {
	st, ok := g.structs[ident.Fold(name)]
	return st, ok
}
