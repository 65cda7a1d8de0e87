package codegen

import (
	"context"

	"fortio.org/safecast"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"

	"plcc/internal/codegen/cgerr"
	"plcc/internal/ident"
	"plcc/internal/index"
	"plcc/internal/source"
	"plcc/internal/typesystem"
)

var noSpan = source.NoSpan

var (
	interfaceName = index.InterfaceName
	instanceName  = index.InstanceName
)

// generateDataTypes maps every indexed datatype to an LLVM type. Struct
// types are only declared here; their fields and initial values are filled
// in by generateStructs.
func (g *Generator) generateDataTypes(context.Context) error {
	for _, dt := range g.idx.Types() {
		if !dt.IsStruct() {
			continue
		}
		key := ident.Fold(dt.Name)
		if _, ok := g.structs[key]; ok {
			continue
		}
		name := dt.Name
		if _, isPOU := g.idx.FindPOU(dt.Name); isPOU {
			name = interfaceName(dt.Name)
		}
		st := types.NewStruct()
		g.mod.NewTypeDef(name, st)
		g.structs[key] = st
	}

	for _, dt := range g.idx.Types() {
		if dt.IsStruct() || dt.Info.Kind == typesystem.KindVoid {
			continue
		}
		t, err := g.llvmType(dt.Name)
		if err != nil {
			return err
		}
		if err := g.types.RegisterType(dt.Name, t, nil); err != nil {
			return err
		}
	}
	return nil
}

// llvmType resolves a datatype name to its LLVM type.
func (g *Generator) llvmType(name string) (types.Type, error) {
	if t, ok := g.types.LookupType(name); ok {
		return t, nil
	}
	if st, ok := g.structShell(name); ok {
		return st, nil
	}
	dt, ok := g.idx.FindType(name)
	if !ok {
		return nil, cgerr.NewUnknownType(name, noSpan)
	}
	return g.llvmTypeOf(dt)
}

func (g *Generator) llvmTypeOf(dt *typesystem.DataType) (types.Type, error) {
	switch dt.Info.Kind {
	case typesystem.KindVoid:
		return types.Void, nil
	case typesystem.KindBool:
		return types.I1, nil
	case typesystem.KindInt:
		return types.NewInt(uint64(dt.Info.Size)), nil
	case typesystem.KindFloat:
		if dt.Info.Size == 32 {
			return types.Float, nil
		}
		return types.Double, nil
	case typesystem.KindString:
		n, err := safecast.Conv[uint64](dt.Info.Capacity + 1)
		if err != nil {
			return nil, cgerr.Errorf(noSpan, "string type %s has invalid capacity %d", dt.Name, dt.Info.Capacity)
		}
		return types.NewArray(n, types.I8), nil
	case typesystem.KindArray:
		n, err := safecast.Conv[uint64](dt.Len())
		if err != nil || n == 0 {
			return nil, cgerr.Errorf(noSpan, "array type %s has no elements", dt.Name)
		}
		inner, err := g.llvmType(dt.Info.Inner)
		if err != nil {
			return nil, err
		}
		return types.NewArray(n, inner), nil
	case typesystem.KindStruct:
		if st, ok := g.structShell(dt.Name); ok {
			return st, nil
		}
		return nil, cgerr.NewUnknownType(dt.Name, noSpan)
	default:
		return nil, cgerr.Errorf(noSpan, "no LLVM type for %s", dt.Name)
	}
}

// zeroOf is the literal zero of a scalar type, zeroinitializer otherwise.
func zeroOf(t types.Type) constant.Constant {
	switch t := t.(type) {
	case *types.IntType:
		return constant.NewInt(t, 0)
	case *types.FloatType:
		return constant.NewFloat(t, 0)
	default:
		return constant.NewZeroInitializer(t)
	}
}
