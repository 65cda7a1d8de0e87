package codegen

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"

	"plcc/internal/ast"
	"plcc/internal/diag"
	"plcc/internal/index"
	"plcc/internal/parser"
	"plcc/internal/source"
)

func buildIndex(t *testing.T, src string) *index.Index {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.st", []byte(src))
	bag := diag.NewBag(100)
	r := diag.BagReporter{Bag: bag}
	res := parser.ParseSource(fs, id, parser.Options{Reporter: r})
	idx := index.Build([]*ast.CompilationUnit{res.Unit}, r)
	if bag.HasErrors() {
		var lines []string
		for _, d := range bag.Items() {
			lines = append(lines, fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message))
		}
		t.Fatalf("unexpected diagnostics: %s", strings.Join(lines, "; "))
	}
	return idx
}

func compile(t *testing.T, src string) (*ir.Module, error) {
	t.Helper()
	return GenerateModule(context.Background(), buildIndex(t, src), DefaultOptions("main"))
}

func mustCompile(t *testing.T, src string) *ir.Module {
	t.Helper()
	m, err := compile(t, src)
	if err != nil {
		t.Fatalf("GenerateModule: %v", err)
	}
	return m
}

func findFunc(t *testing.T, m *ir.Module, name string) *ir.Func {
	t.Helper()
	for _, f := range m.Funcs {
		if f.Name() == name {
			return f
		}
	}
	t.Fatalf("function %s not found", name)
	return nil
}

func findStruct(t *testing.T, m *ir.Module, name string) *types.StructType {
	t.Helper()
	for _, td := range m.TypeDefs {
		if td.Name() != name {
			continue
		}
		st, ok := td.(*types.StructType)
		if !ok {
			t.Fatalf("%s is %T, not a struct", name, td)
		}
		return st
	}
	t.Fatalf("type %s not found", name)
	return nil
}

// funcBody returns the printed definition of one function.
func funcBody(t *testing.T, m *ir.Module, name string) string {
	t.Helper()
	text := m.String()
	var out []string
	inside := false
	for _, line := range strings.Split(text, "\n") {
		if !inside && strings.HasPrefix(line, "define ") && strings.Contains(line, " @"+name+"(") {
			inside = true
		}
		if inside {
			out = append(out, line)
			if line == "}" {
				return strings.Join(out, "\n")
			}
		}
	}
	t.Fatalf("function %s not defined in:\n%s", name, text)
	return ""
}

func assertContains(t *testing.T, text string, wants ...string) {
	t.Helper()
	for _, w := range wants {
		if !strings.Contains(text, w) {
			t.Errorf("missing %q in:\n%s", w, text)
		}
	}
}

func assertOrder(t *testing.T, text string, parts ...string) {
	t.Helper()
	pos := 0
	for _, p := range parts {
		i := strings.Index(text[pos:], p)
		if i < 0 {
			t.Fatalf("%q not found after offset %d in:\n%s", p, pos, text)
		}
		pos += i + len(p)
	}
}
