package parser

import (
	"fmt"
	"strings"
	"testing"

	"plcc/internal/ast"
	"plcc/internal/diag"
	"plcc/internal/source"
)

func parseTestInput(t *testing.T, input string) (*ast.CompilationUnit, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.st", []byte(input))
	bag := diag.NewBag(100)
	res := ParseSource(fs, id, Options{Reporter: diag.BagReporter{Bag: bag}})
	return res.Unit, bag
}

func mustParse(t *testing.T, input string) *ast.CompilationUnit {
	t.Helper()
	unit, bag := parseTestInput(t, input)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	return unit
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func hasDiagnosticCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}

// bodyOf parses a PROGRAM wrapping body and returns its statements.
func bodyOf(t *testing.T, body string) []ast.Stmt {
	t.Helper()
	unit := mustParse(t, "PROGRAM prg\n"+body+"\nEND_PROGRAM")
	return unit.Implementations[0].Statements
}
