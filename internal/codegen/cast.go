package codegen

import (
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"plcc/internal/codegen/cgerr"
	"plcc/internal/source"
	"plcc/internal/typesystem"
)

// cast converts a scalar value to the LLVM type of to. Integer and float
// literals are re-typed without emitting instructions.
func (fg *funcGen) cast(v typedValue, to *typesystem.DataType, sp source.Span) (value.Value, error) {
	toT, err := fg.g.llvmType(to.Name)
	if err != nil {
		return nil, err
	}
	if types.Equal(v.v.Type(), toT) {
		return v.v, nil
	}
	if v.dt.IsAggregate() || to.IsAggregate() {
		return nil, cgerr.Errorf(sp, "cannot convert %s to %s", v.dt.Name, to.Name)
	}
	if c, ok := castConstant(v.v, toT); ok {
		return c, nil
	}

	from := v.dt
	switch dst := toT.(type) {
	case *types.IntType:
		switch {
		case to.IsBool() && from.IsFloat():
			return fg.block.NewFCmp(enum.FPredONE, v.v, constant.NewFloat(v.v.Type().(*types.FloatType), 0)), nil
		case to.IsBool():
			return fg.block.NewICmp(enum.IPredNE, v.v, constant.NewInt(v.v.Type().(*types.IntType), 0)), nil
		case from.IsFloat() && to.Info.Signed:
			return fg.block.NewFPToSI(v.v, dst), nil
		case from.IsFloat():
			return fg.block.NewFPToUI(v.v, dst), nil
		}
		srcBits := v.v.Type().(*types.IntType).BitSize
		switch {
		case srcBits > dst.BitSize:
			return fg.block.NewTrunc(v.v, dst), nil
		case from.IsInteger() && from.Info.Signed:
			return fg.block.NewSExt(v.v, dst), nil
		default:
			return fg.block.NewZExt(v.v, dst), nil
		}
	case *types.FloatType:
		switch {
		case from.IsFloat() && from.Info.Size < to.Info.Size:
			return fg.block.NewFPExt(v.v, dst), nil
		case from.IsFloat():
			return fg.block.NewFPTrunc(v.v, dst), nil
		case from.IsInteger() && from.Info.Signed:
			return fg.block.NewSIToFP(v.v, dst), nil
		default:
			return fg.block.NewUIToFP(v.v, dst), nil
		}
	}
	return nil, cgerr.Errorf(sp, "cannot convert %s to %s", from.Name, to.Name)
}

func castConstant(v value.Value, to types.Type) (constant.Constant, bool) {
	switch c := v.(type) {
	case *constant.Int:
		switch t := to.(type) {
		case *types.IntType:
			if t.BitSize == 1 {
				return constant.NewBool(c.X.Sign() != 0), true
			}
			return constant.NewInt(t, c.X.Int64()), true
		case *types.FloatType:
			return constant.NewFloat(t, float64(c.X.Int64())), true
		}
	case *constant.Float:
		if t, ok := to.(*types.FloatType); ok {
			f, _ := c.X.Float64()
			return constant.NewFloat(t, f), true
		}
	}
	return nil, false
}
