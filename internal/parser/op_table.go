package parser

import (
	"plcc/internal/ast"
	"plcc/internal/token"
)

// Binary operator precedence, higher binds tighter.
const (
	precOr             = 1
	precXor            = 2
	precAnd            = 3
	precComparison     = 4 // = <> < <= > >=
	precAdditive       = 5
	precMultiplicative = 6 // * / MOD
)

// binaryOp maps a token to its operator and precedence. All binary
// operators are left-associative.
func binaryOp(k token.Kind) (ast.BinaryOp, int, bool) {
	switch k {
	case token.KwOr:
		return ast.OpOr, precOr, true
	case token.KwXor:
		return ast.OpXor, precXor, true
	case token.KwAnd:
		return ast.OpAnd, precAnd, true
	case token.Eq:
		return ast.OpEq, precComparison, true
	case token.NotEq:
		return ast.OpNotEq, precComparison, true
	case token.Lt:
		return ast.OpLt, precComparison, true
	case token.LtEq:
		return ast.OpLtEq, precComparison, true
	case token.Gt:
		return ast.OpGt, precComparison, true
	case token.GtEq:
		return ast.OpGtEq, precComparison, true
	case token.Plus:
		return ast.OpAdd, precAdditive, true
	case token.Minus:
		return ast.OpSub, precAdditive, true
	case token.Star:
		return ast.OpMul, precMultiplicative, true
	case token.Slash:
		return ast.OpDiv, precMultiplicative, true
	case token.KwMod:
		return ast.OpMod, precMultiplicative, true
	default:
		return 0, 0, false
	}
}
