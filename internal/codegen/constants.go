package codegen

import (
	"math"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"

	"plcc/internal/ast"
	"plcc/internal/codegen/cgerr"
)

// evalConst folds literal expressions to int64, float64, bool or string.
func evalConst(e ast.Expr) (any, bool) {
	switch e := e.(type) {
	case *ast.IntLit:
		return e.Value, true
	case *ast.RealLit:
		return e.Value, true
	case *ast.BoolLit:
		return e.Value, true
	case *ast.StringLit:
		return e.Value, true
	case *ast.UnaryExpr:
		v, ok := evalConst(e.X)
		if !ok {
			return nil, false
		}
		switch x := v.(type) {
		case int64:
			if e.Op == ast.OpNeg {
				return -x, true
			}
			return ^x, true
		case float64:
			if e.Op == ast.OpNeg {
				return -x, true
			}
		case bool:
			if e.Op == ast.OpNot {
				return !x, true
			}
		}
		return nil, false
	case *ast.BinaryExpr:
		x, ok := evalConst(e.X)
		if !ok {
			return nil, false
		}
		y, ok := evalConst(e.Y)
		if !ok {
			return nil, false
		}
		return foldBinary(e.Op, x, y)
	default:
		return nil, false
	}
}

func foldBinary(op ast.BinaryOp, x, y any) (any, bool) {
	xi, xInt := x.(int64)
	yi, yInt := y.(int64)
	if xInt && yInt {
		switch op {
		case ast.OpAdd:
			return xi + yi, true
		case ast.OpSub:
			return xi - yi, true
		case ast.OpMul:
			return xi * yi, true
		case ast.OpDiv:
			if yi == 0 {
				return nil, false
			}
			return xi / yi, true
		case ast.OpMod:
			if yi == 0 {
				return nil, false
			}
			return xi % yi, true
		}
		return nil, false
	}
	xf, xOk := toFloat(x)
	yf, yOk := toFloat(y)
	if !xOk || !yOk {
		return nil, false
	}
	switch op {
	case ast.OpAdd:
		return xf + yf, true
	case ast.OpSub:
		return xf - yf, true
	case ast.OpMul:
		return xf * yf, true
	case ast.OpDiv:
		return xf / yf, true
	}
	return nil, false
}

func toFloat(v any) (float64, bool) {
	switch v := v.(type) {
	case int64:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}

// constantOf evaluates an initializer to a constant of type t.
func constantOf(e ast.Expr, t types.Type) (constant.Constant, error) {
	v, ok := evalConst(e)
	if !ok {
		return nil, cgerr.Errorf(e.Span(), "initial value must be a constant expression")
	}
	switch t := t.(type) {
	case *types.IntType:
		switch v := v.(type) {
		case int64:
			if t.BitSize == 1 {
				return constant.NewBool(v != 0), nil
			}
			return constant.NewInt(t, v), nil
		case bool:
			if v {
				return constant.NewInt(t, 1), nil
			}
			return constant.NewInt(t, 0), nil
		}
	case *types.FloatType:
		if f, ok := toFloat(v); ok {
			if t.Kind == types.FloatKindFloat && math.Abs(f) > math.MaxFloat32 {
				return nil, cgerr.Errorf(e.Span(), "constant %v overflows REAL", f)
			}
			return constant.NewFloat(t, f), nil
		}
	case *types.ArrayType:
		if s, ok := v.(string); ok && types.Equal(t.ElemType, types.I8) {
			return stringConst(s, t.Len), nil
		}
	}
	return nil, cgerr.Errorf(e.Span(), "constant of type %T cannot initialize %s", v, t.LLString())
}

// stringConst pads or truncates s to a char array of n bytes that always
// ends in at least one NUL.
func stringConst(s string, n uint64) *constant.CharArray {
	buf := make([]byte, n)
	if n > 0 {
		copy(buf[:n-1], s)
	}
	return constant.NewCharArray(buf)
}
