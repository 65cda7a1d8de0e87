package index

import (
	"strings"

	"plcc/internal/ast"
	"plcc/internal/ident"
)

// LiteralPrefix starts the name of every string literal global.
const LiteralPrefix = "utf08_literal_"

// InterfaceName is the LLVM name of a POU's instance struct.
func InterfaceName(pou string) string { return pou + "_interface" }

// InstanceName is the LLVM name of a program's global singleton.
func InstanceName(program string) string { return program + "_instance" }

// generatedNames holds the folded names code generation derives from the
// POUs, keyed to the POU that owns them.
type generatedNames struct {
	types   map[string]string
	symbols map[string]string
}

func collectGeneratedNames(units []*ast.CompilationUnit) generatedNames {
	g := generatedNames{types: make(map[string]string), symbols: make(map[string]string)}
	for _, u := range units {
		for _, p := range u.POUs {
			g.types[ident.Fold(InterfaceName(p.Name))] = p.Name
			if p.Kind == ast.PouProgram {
				g.symbols[ident.Fold(InstanceName(p.Name))] = p.Name
			}
		}
	}
	return g
}

// typeOwner reports what a user type called name would collide with.
func (g generatedNames) typeOwner(name string) (string, bool) {
	if p, ok := g.types[ident.Fold(name)]; ok {
		return "the instance struct of " + p, true
	}
	return "", false
}

// symbolOwner reports what a user global or POU called name would collide
// with.
func (g generatedNames) symbolOwner(name string) (string, bool) {
	key := ident.Fold(name)
	if p, ok := g.symbols[key]; ok {
		return "the instance of program " + p, true
	}
	if strings.HasPrefix(key, LiteralPrefix) {
		return "string literal storage", true
	}
	return "", false
}
