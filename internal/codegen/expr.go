package codegen

import (
	"math"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"plcc/internal/ast"
	"plcc/internal/codegen/cgerr"
	"plcc/internal/typesystem"
)

// typedValue is a generated expression. Scalars are SSA values; strings,
// arrays and structs are pointers to their storage.
type typedValue struct {
	v  value.Value
	dt *typesystem.DataType
}

func (g *Generator) builtin(name string) *typesystem.DataType {
	if dt, ok := g.idx.FindType(name); ok {
		return dt
	}
	dt, _ := typesystem.Builtin(name)
	return &dt
}

// generateExpression lowers e into the current block.
func (fg *funcGen) generateExpression(e ast.Expr) (typedValue, error) {
	switch e := e.(type) {
	case *ast.IntLit:
		dt := fg.g.builtin(typesystem.DintName)
		t := types.I32
		if e.Value > math.MaxInt32 || e.Value < math.MinInt32 {
			dt, t = fg.g.builtin(typesystem.LintName), types.I64
		}
		return typedValue{v: constant.NewInt(t, e.Value), dt: dt}, nil
	case *ast.RealLit:
		return typedValue{v: constant.NewFloat(types.Double, e.Value), dt: fg.g.builtin(typesystem.LrealName)}, nil
	case *ast.BoolLit:
		return typedValue{v: constant.NewBool(e.Value), dt: fg.g.builtin(typesystem.BoolName)}, nil
	case *ast.StringLit:
		glob, dt := fg.g.stringLiteral(e.Value)
		return typedValue{v: glob, dt: dt}, nil
	case *ast.Ident, *ast.MemberExpr:
		v, err := fg.address(e)
		if err != nil {
			return typedValue{}, err
		}
		return fg.load(v)
	case *ast.UnaryExpr:
		return fg.generateUnary(e)
	case *ast.BinaryExpr:
		return fg.generateBinary(e)
	case *ast.CallExpr:
		res, err := fg.generateCall(e)
		if err != nil {
			return typedValue{}, err
		}
		if res.v == nil {
			return typedValue{}, cgerr.Errorf(e.Sp, "%s does not return a value", calleeName(e.Callee))
		}
		return res, nil
	default:
		return typedValue{}, cgerr.Errorf(e.Span(), "unsupported expression %T", e)
	}
}

// load reads a scalar variable. Aggregates stay addressed by pointer.
func (fg *funcGen) load(v variable) (typedValue, error) {
	if v.dt.IsAggregate() {
		return typedValue{v: v.ptr, dt: v.dt}, nil
	}
	t, err := fg.g.llvmType(v.dt.Name)
	if err != nil {
		return typedValue{}, err
	}
	ld := fg.block.NewLoad(t, v.ptr)
	ld.SetName(fg.names.name("load_" + v.name))
	return typedValue{v: ld, dt: v.dt}, nil
}

func (fg *funcGen) generateUnary(e *ast.UnaryExpr) (typedValue, error) {
	x, err := fg.generateExpression(e.X)
	if err != nil {
		return typedValue{}, err
	}
	if x.dt.IsAggregate() {
		return typedValue{}, cgerr.Errorf(e.Sp, "operator %s is not defined for %s", e.Op, x.dt.Name)
	}
	switch e.Op {
	case ast.OpNeg:
		if c, ok := x.v.(*constant.Int); ok && x.dt.IsInteger() {
			return typedValue{v: constant.NewInt(c.Typ, -c.X.Int64()), dt: x.dt}, nil
		}
		if x.dt.IsFloat() {
			inst := fg.block.NewFNeg(x.v)
			inst.SetName(fg.names.name("tmpVar"))
			return typedValue{v: inst, dt: x.dt}, nil
		}
		if !x.dt.IsInteger() {
			return typedValue{}, cgerr.Errorf(e.Sp, "operator - is not defined for %s", x.dt.Name)
		}
		it := x.v.Type().(*types.IntType)
		inst := fg.block.NewSub(constant.NewInt(it, 0), x.v)
		inst.SetName(fg.names.name("tmpVar"))
		return typedValue{v: inst, dt: x.dt}, nil
	default:
		it, ok := x.v.Type().(*types.IntType)
		if !ok {
			return typedValue{}, cgerr.Errorf(e.Sp, "operator NOT is not defined for %s", x.dt.Name)
		}
		var ones constant.Constant = constant.NewInt(it, -1)
		if it.BitSize == 1 {
			ones = constant.True
		}
		inst := fg.block.NewXor(x.v, ones)
		inst.SetName(fg.names.name("tmpVar"))
		return typedValue{v: inst, dt: x.dt}, nil
	}
}

func (fg *funcGen) generateBinary(e *ast.BinaryExpr) (typedValue, error) {
	x, err := fg.generateExpression(e.X)
	if err != nil {
		return typedValue{}, err
	}
	y, err := fg.generateExpression(e.Y)
	if err != nil {
		return typedValue{}, err
	}
	if x.dt.IsAggregate() || y.dt.IsAggregate() {
		return typedValue{}, cgerr.Errorf(e.Sp, "operator %s is not defined for %s and %s", e.Op, x.dt.Name, y.dt.Name)
	}
	common, ok := operandType(x, y)
	if !ok {
		return typedValue{}, cgerr.Errorf(e.Sp, "operator %s is not defined for %s and %s", e.Op, x.dt.Name, y.dt.Name)
	}
	xv, err := fg.cast(x, common, e.X.Span())
	if err != nil {
		return typedValue{}, err
	}
	yv, err := fg.cast(y, common, e.Y.Span())
	if err != nil {
		return typedValue{}, err
	}

	var inst value.Named
	resultType := common
	switch {
	case e.Op.IsComparison():
		resultType = fg.g.builtin(typesystem.BoolName)
		if common.IsFloat() {
			inst = fg.block.NewFCmp(floatPredicate(e.Op), xv, yv)
		} else {
			inst = fg.block.NewICmp(intPredicate(e.Op, common.Info.Signed), xv, yv)
		}
	case e.Op == ast.OpAnd || e.Op == ast.OpOr || e.Op == ast.OpXor:
		if common.IsFloat() {
			return typedValue{}, cgerr.Errorf(e.Sp, "operator %s is not defined for %s", e.Op, common.Name)
		}
		switch e.Op {
		case ast.OpAnd:
			inst = fg.block.NewAnd(xv, yv)
		case ast.OpOr:
			inst = fg.block.NewOr(xv, yv)
		default:
			inst = fg.block.NewXor(xv, yv)
		}
	case common.IsFloat():
		switch e.Op {
		case ast.OpAdd:
			inst = fg.block.NewFAdd(xv, yv)
		case ast.OpSub:
			inst = fg.block.NewFSub(xv, yv)
		case ast.OpMul:
			inst = fg.block.NewFMul(xv, yv)
		case ast.OpDiv:
			inst = fg.block.NewFDiv(xv, yv)
		default:
			inst = fg.block.NewFRem(xv, yv)
		}
	default:
		if common.IsBool() {
			return typedValue{}, cgerr.Errorf(e.Sp, "operator %s is not defined for BOOL", e.Op)
		}
		signed := common.Info.Signed
		switch e.Op {
		case ast.OpAdd:
			inst = fg.block.NewAdd(xv, yv)
		case ast.OpSub:
			inst = fg.block.NewSub(xv, yv)
		case ast.OpMul:
			inst = fg.block.NewMul(xv, yv)
		case ast.OpDiv:
			if signed {
				inst = fg.block.NewSDiv(xv, yv)
			} else {
				inst = fg.block.NewUDiv(xv, yv)
			}
		default:
			if signed {
				inst = fg.block.NewSRem(xv, yv)
			} else {
				inst = fg.block.NewURem(xv, yv)
			}
		}
	}
	inst.SetName(fg.names.name("tmpVar"))
	return typedValue{v: inst, dt: resultType}, nil
}

// operandType picks the type both operands are converted to. An untyped
// integer literal takes the type of the other operand.
func operandType(x, y typedValue) (*typesystem.DataType, bool) {
	_, xLit := x.v.(*constant.Int)
	_, yLit := y.v.(*constant.Int)
	switch {
	case xLit && !yLit && x.dt.IsInteger() && y.dt.IsNumeric():
		return y.dt, true
	case yLit && !xLit && y.dt.IsInteger() && x.dt.IsNumeric():
		return x.dt, true
	}
	if sameScalar(x.dt, y.dt) {
		return x.dt, true
	}
	common, ok := typesystem.CommonType(x.dt, y.dt)
	if !ok {
		return nil, false
	}
	return &common, true
}

func sameScalar(a, b *typesystem.DataType) bool {
	return a.Info.Kind == b.Info.Kind && a.Info.Size == b.Info.Size && a.Info.Signed == b.Info.Signed
}

func intPredicate(op ast.BinaryOp, signed bool) enum.IPred {
	switch op {
	case ast.OpEq:
		return enum.IPredEQ
	case ast.OpNotEq:
		return enum.IPredNE
	case ast.OpLt:
		if signed {
			return enum.IPredSLT
		}
		return enum.IPredULT
	case ast.OpLtEq:
		if signed {
			return enum.IPredSLE
		}
		return enum.IPredULE
	case ast.OpGt:
		if signed {
			return enum.IPredSGT
		}
		return enum.IPredUGT
	default:
		if signed {
			return enum.IPredSGE
		}
		return enum.IPredUGE
	}
}

func floatPredicate(op ast.BinaryOp) enum.FPred {
	switch op {
	case ast.OpEq:
		return enum.FPredOEQ
	case ast.OpNotEq:
		return enum.FPredONE
	case ast.OpLt:
		return enum.FPredOLT
	case ast.OpLtEq:
		return enum.FPredOLE
	case ast.OpGt:
		return enum.FPredOGT
	default:
		return enum.FPredOGE
	}
}
