package codegen

import "plcc/internal/codegen/cgerr"

// CompileError is the single error type returned by GenerateModule.
type CompileError = cgerr.CompileError

type ErrorKind = cgerr.Kind

const (
	UnknownType           = cgerr.UnknownType
	MissingFunction       = cgerr.MissingFunction
	UnsupportedReturnType = cgerr.UnsupportedReturnType
	DuplicateRegistration = cgerr.DuplicateRegistration
	CodegenError          = cgerr.CodegenError
)
