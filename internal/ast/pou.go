package ast

import "plcc/internal/source"

type PouKind uint8

const (
	PouProgram PouKind = iota
	PouFunction
	PouFunctionBlock
)

func (k PouKind) String() string {
	switch k {
	case PouProgram:
		return "PROGRAM"
	case PouFunction:
		return "FUNCTION"
	case PouFunctionBlock:
		return "FUNCTION_BLOCK"
	default:
		return "unknown"
	}
}

// POU is the declaration half of a program organization unit.
type POU struct {
	Name           string
	Kind           PouKind
	VariableBlocks []*VariableBlock
	ReturnType     *TypeRef // functions only
	External       bool     // declared with @EXTERNAL, no body is generated
	Span           source.Span
	NameSpan       source.Span
}

// Implementation is the body half of a POU.
type Implementation struct {
	CallName   string // linkage name of the generated function
	TypeName   string // name of the instance struct's owner
	Kind       PouKind
	Statements []Stmt
	External   bool
	Span       source.Span
}
