package codegen

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"plcc/internal/codegen/cgerr"
	"plcc/internal/index"
	"plcc/internal/typesystem"
)

const (
	memsetName = "llvm.memset.p0i8.i64"
	memcpyName = "llvm.memcpy.p0i8.p0i8.i32"
)

// stringLiteral returns the constant global holding s and NUL, shared by all
// uses of the same text. The literal's capacity is its byte length.
func (g *Generator) stringLiteral(s string) (*ir.Global, *typesystem.DataType) {
	glob, ok := g.literals[s]
	if !ok {
		name := fmt.Sprintf("%s%d", index.LiteralPrefix, len(g.literals))
		glob = g.mod.NewGlobalDef(name, constant.NewCharArrayFromString(s+"\x00"))
		glob.Immutable = true
		glob.UnnamedAddr = enum.UnnamedAddrUnnamedAddr
		g.literals[s] = glob
	}
	n := int64(len(s))
	return glob, &typesystem.DataType{
		Name: fmt.Sprintf("__STRING_%d", n),
		Info: typesystem.Info{Kind: typesystem.KindString, Capacity: n},
	}
}

// intrinsic declares an LLVM intrinsic on first use.
func (g *Generator) intrinsic(name string, ret types.Type, params ...types.Type) *ir.Func {
	if f, ok := g.intrinsics[name]; ok {
		return f
	}
	ps := make([]*ir.Param, len(params))
	for i, t := range params {
		ps[i] = ir.NewParam("", t)
	}
	f := g.mod.NewFunc(name, ret, ps...)
	g.intrinsics[name] = f
	return f
}

func (g *Generator) memset() *ir.Func {
	return g.intrinsic(memsetName, types.Void, types.I8Ptr, types.I8, types.I64, types.I1)
}

func (g *Generator) memcpy() *ir.Func {
	return g.intrinsic(memcpyName, types.Void, types.I8Ptr, types.I8Ptr, types.I32, types.I1)
}

// copyString zero-fills dst and copies at most min(src, dst) capacity bytes
// from src, so trailing bytes are always zero.
func (fg *funcGen) copyString(dst variable, src typedValue) error {
	if src.v == dst.ptr {
		return nil
	}
	size, err := fg.g.layout.SizeOf(dst.dt.Name)
	if err != nil {
		return cgerr.Errorf(noSpan, "size of %s: %v", dst.dt.Name, err)
	}
	fg.block.NewCall(fg.g.memset(),
		fg.bytePtr(dst.ptr),
		constant.NewInt(types.I8, 0),
		constant.NewInt(types.I64, int64(size)),
		constant.False)

	n := min(src.dt.Info.Capacity, dst.dt.Info.Capacity)
	if n == 0 {
		return nil
	}
	fg.block.NewCall(fg.g.memcpy(),
		fg.bytePtr(dst.ptr),
		fg.bytePtr(src.v),
		constant.NewInt(types.I32, n),
		constant.False)
	return nil
}

// bytePtr views an aggregate pointer as i8*. Globals fold to a constant
// getelementptr.
func (fg *funcGen) bytePtr(v value.Value) value.Value {
	if glob, ok := v.(*ir.Global); ok {
		gep := constant.NewGetElementPtr(glob.ContentType, glob, i32(0), i32(0))
		gep.InBounds = true
		return gep
	}
	return fg.block.NewBitCast(v, types.I8Ptr)
}
