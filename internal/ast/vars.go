package ast

import "plcc/internal/source"

type VarBlockKind uint8

const (
	VarLocal VarBlockKind = iota
	VarInput
	VarOutput
	VarInOut
	VarTemp
	VarGlobal
)

func (k VarBlockKind) String() string {
	switch k {
	case VarLocal:
		return "VAR"
	case VarInput:
		return "VAR_INPUT"
	case VarOutput:
		return "VAR_OUTPUT"
	case VarInOut:
		return "VAR_IN_OUT"
	case VarTemp:
		return "VAR_TEMP"
	case VarGlobal:
		return "VAR_GLOBAL"
	default:
		return "unknown"
	}
}

type Variable struct {
	Name        string
	Type        *TypeRef
	Initializer Expr // nil when absent
	Span        source.Span
}

type VariableBlock struct {
	Kind      VarBlockKind
	Variables []*Variable
	Span      source.Span
}
