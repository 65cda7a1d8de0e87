// Package cgerr defines the errors raised while lowering to LLVM IR. It sits
// below both codegen and typedindex so the two can share one error type.
package cgerr

import (
	"fmt"

	"plcc/internal/diag"
	"plcc/internal/source"
)

type Kind uint8

const (
	UnknownType Kind = iota + 1
	MissingFunction
	UnsupportedReturnType
	DuplicateRegistration
	CodegenError
)

func (k Kind) String() string {
	switch k {
	case UnknownType:
		return "UnknownType"
	case MissingFunction:
		return "MissingFunction"
	case UnsupportedReturnType:
		return "UnsupportedReturnType"
	case DuplicateRegistration:
		return "DuplicateRegistration"
	case CodegenError:
		return "CodegenError"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Code maps the kind onto its diagnostic code.
func (k Kind) Code() diag.Code {
	switch k {
	case UnknownType:
		return diag.CgnUnknownType
	case MissingFunction:
		return diag.CgnMissingFunction
	case UnsupportedReturnType:
		return diag.CgnUnsupportedReturnType
	case DuplicateRegistration:
		return diag.CgnDuplicateRegistration
	default:
		return diag.CgnError
	}
}

// CompileError aborts code generation of a compilation unit.
type CompileError struct {
	Kind     Kind
	Name     string // offending type, POU or symbol when known
	Message  string
	Location source.Span
}

func (e *CompileError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

// Is matches on Kind, so errors.Is(err, &CompileError{Kind: MissingFunction}) works.
func (e *CompileError) Is(target error) bool {
	t, ok := target.(*CompileError)
	return ok && t.Kind == e.Kind
}

// ToDiagnostic converts e for the driver's diagnostic bag.
func (e *CompileError) ToDiagnostic() diag.Diagnostic {
	return diag.NewError(e.Kind.Code(), e.Location, e.Message)
}

func NewUnknownType(name string, loc source.Span) *CompileError {
	return &CompileError{Kind: UnknownType, Name: name, Location: loc, Message: "Unknown type " + name}
}

func NewMissingFunction(name string, loc source.Span) *CompileError {
	return &CompileError{Kind: MissingFunction, Name: name, Location: loc, Message: "Cannot generate code outside of function context: " + name}
}

func NewUnsupportedReturnType(pou, typ string, loc source.Span) *CompileError {
	return &CompileError{
		Kind:     UnsupportedReturnType,
		Name:     pou,
		Location: loc,
		Message:  fmt.Sprintf("Function %s: return type %s is not supported, only integer, float and fixed-size array returns are", pou, typ),
	}
}

func NewDuplicateRegistration(namespace, name string) *CompileError {
	return &CompileError{
		Kind:     DuplicateRegistration,
		Name:     name,
		Location: source.NoSpan,
		Message:  fmt.Sprintf("Duplicate %s %s", namespace, name),
	}
}

// Errorf reports a failure inside a statement or expression generator.
func Errorf(loc source.Span, format string, args ...any) *CompileError {
	return &CompileError{Kind: CodegenError, Location: loc, Message: fmt.Sprintf(format, args...)}
}
