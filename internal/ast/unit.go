// Package ast holds the syntax tree produced by the parser.
package ast

import "plcc/internal/source"

// CompilationUnit is everything declared in one source file.
type CompilationUnit struct {
	File            source.FileID
	POUs            []*POU
	Implementations []*Implementation
	Types           []*UserType
	GlobalVars      []*VariableBlock
}

// Merge appends the declarations of other to u.
func (u *CompilationUnit) Merge(other *CompilationUnit) {
	if other == nil {
		return
	}
	u.POUs = append(u.POUs, other.POUs...)
	u.Implementations = append(u.Implementations, other.Implementations...)
	u.Types = append(u.Types, other.Types...)
	u.GlobalVars = append(u.GlobalVars, other.GlobalVars...)
}
