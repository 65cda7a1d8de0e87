package token

import (
	"plcc/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether the token is a numeric, boolean, or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, StringLit, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsVarBlockStart reports whether the token opens a variable block.
func (t Token) IsVarBlockStart() bool {
	switch t.Kind {
	case KwVar, KwVarInput, KwVarOutput, KwVarInOut, KwVarTemp, KwVarGlobal:
		return true
	default:
		return false
	}
}

// IsControlFlow reports whether the token starts a control-flow statement.
func (t Token) IsControlFlow() bool {
	switch t.Kind {
	case KwIf, KwFor, KwWhile, KwRepeat, KwCase:
		return true
	default:
		return false
	}
}

func (t Token) IsIdent() bool { return t.Kind == Ident }
