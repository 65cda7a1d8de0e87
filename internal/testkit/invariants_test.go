package testkit

import (
	"strings"
	"testing"

	"plcc/internal/ast"
	"plcc/internal/diag"
	"plcc/internal/parser"
	"plcc/internal/source"
)

func parse(t *testing.T, src string) (*ast.CompilationUnit, *source.File) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("unit.st", []byte(src))
	bag := diag.NewBag(16)
	res := parser.ParseSource(fs, id, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %d", bag.Len())
	}
	return res.Unit, fs.Get(id)
}

func TestParsedUnitHoldsInvariants(t *testing.T) {
	u, f := parse(t, `TYPE point : STRUCT x : INT; y : INT; END_STRUCT END_TYPE
VAR_GLOBAL origin : point; END_VAR

FUNCTION add : DINT
VAR_INPUT a : DINT; b : DINT; END_VAR
add := a + b;
END_FUNCTION

PROGRAM main
VAR total : DINT := 1; END_VAR
total := add(total, 2);
END_PROGRAM
`)
	if err := CheckSpanInvariants(u, f); err != nil {
		t.Fatal(err)
	}
}

func TestCheckSpanInvariantsReportsViolations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(u *ast.CompilationUnit)
		want   string
	}{
		{"empty POU span", func(u *ast.CompilationUnit) { u.POUs[0].Span.End = u.POUs[0].Span.Start }, "empty"},
		{"variable escapes block", func(u *ast.CompilationUnit) {
			blk := u.POUs[0].VariableBlocks[0]
			blk.Variables[0].Span.End = blk.Span.End + 1
		}, "escapes"},
		{"foreign file", func(u *ast.CompilationUnit) { u.POUs[1].Span.File++ }, "points to file"},
		{"overlap", func(u *ast.CompilationUnit) { u.POUs[1].Span.Start = u.POUs[0].Span.Start }, "overlaps"},
		{"beyond content", func(u *ast.CompilationUnit) { u.POUs[1].Span.End += 1000 }, "beyond content"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, f := parse(t, `FUNCTION f : INT
VAR_INPUT x : INT; END_VAR
f := x;
END_FUNCTION
PROGRAM main
END_PROGRAM
`)
			tt.mutate(u)
			err := CheckSpanInvariants(u, f)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want %q", err, tt.want)
			}
		})
	}
}
