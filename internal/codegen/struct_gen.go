package codegen

import (
	"context"
	"fmt"

	"github.com/llir/llvm/ir/constant"

	"plcc/internal/ast"
	"plcc/internal/codegen/cgerr"
	"plcc/internal/ident"
	"plcc/internal/index"
	"plcc/internal/trace"
	"plcc/internal/typesystem"
)

// generateStructs fills every declared struct with its fields, then
// registers each (struct type, initial value) pair in the Typed Index under
// the datatype name. For POUs that name is the POU name.
func (g *Generator) generateStructs(ctx context.Context) error {
	var structs []*typesystem.DataType
	for _, dt := range g.idx.Types() {
		if dt.IsStruct() {
			structs = append(structs, dt)
		}
	}
	for _, dt := range structs {
		if err := g.defineFields(dt); err != nil {
			return err
		}
	}
	visiting := make(map[string]bool)
	for _, dt := range structs {
		_, sp := trace.StartSpan(ctx, trace.ScopeModule, "struct:"+dt.Name)
		err := g.registerStruct(dt, visiting)
		sp.End("")
		if err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) defineFields(dt *typesystem.DataType) error {
	st, ok := g.structShell(dt.Name)
	if !ok {
		return cgerr.NewUnknownType(dt.Name, noSpan)
	}
	st.Fields = st.Fields[:0]
	members := g.idx.Members(dt.Name)
	for i, m := range dt.Info.Members {
		t, err := g.llvmType(m.TypeName)
		if err != nil {
			if i < len(members) {
				return cgerr.NewUnknownType(m.TypeName, members[i].Span)
			}
			return err
		}
		st.Fields = append(st.Fields, t)
	}
	return nil
}

// registerStruct computes the initial value of dt after those of its
// struct-typed members. A struct whose fields are all zero registers no
// initial value; its instances are zeroinitializer.
func (g *Generator) registerStruct(dt *typesystem.DataType, visiting map[string]bool) error {
	if _, done := g.types.LookupType(dt.Name); done {
		return nil
	}
	key := ident.Fold(dt.Name)
	if visiting[key] {
		return cgerr.Errorf(noSpan, "struct %s contains itself", dt.Name)
	}
	visiting[key] = true
	defer delete(visiting, key)

	st, _ := g.structShell(dt.Name)
	pou, isPOU := g.idx.FindPOU(dt.Name)
	members := g.idx.Members(dt.Name)

	fields := make([]constant.Constant, len(dt.Info.Members))
	explicit := false
	for i, m := range dt.Info.Members {
		mdt, ok := g.idx.FindType(m.TypeName)
		if !ok {
			return cgerr.NewUnknownType(m.TypeName, noSpan)
		}
		if mdt.IsStruct() {
			if err := g.registerStruct(mdt, visiting); err != nil {
				return err
			}
		}

		var c constant.Constant
		if isPOU && i < len(members) && hasStaticInitializer(pou, members[i]) {
			v, err := constantOf(members[i].Initializer, st.Fields[i])
			if err != nil {
				return withMessagePrefix(err, fmt.Sprintf("%s.%s: ", dt.Name, m.Name))
			}
			c = v
		} else if init, ok := g.types.FindInitialValue(m.TypeName); ok {
			c = init
		}
		if c == nil {
			c = zeroOf(st.Fields[i])
		} else {
			explicit = true
		}
		fields[i] = c
	}

	var initial constant.Constant
	if explicit {
		initial = constant.NewStruct(st, fields...)
	}
	return g.types.RegisterType(dt.Name, st, initial)
}

// hasStaticInitializer reports whether m's initializer belongs in the
// instance's initial value. Function locals are assigned at the start of
// every call instead.
func hasStaticInitializer(pou *index.POU, m *index.Member) bool {
	if m.Initializer == nil {
		return false
	}
	return !(LifetimeOf(pou.Kind).ReplayInitializers && m.Block == ast.VarLocal)
}

func withMessagePrefix(err error, prefix string) error {
	if ce, ok := err.(*cgerr.CompileError); ok {
		ce.Message = prefix + ce.Message
		return ce
	}
	return err
}
