package index

import (
	"strings"
	"testing"

	"plcc/internal/ast"
	"plcc/internal/diag"
	"plcc/internal/parser"
	"plcc/internal/source"
	"plcc/internal/typesystem"
)

func buildFrom(t *testing.T, srcs ...string) (*Index, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	bag := diag.NewBag(100)
	rep := diag.BagReporter{Bag: bag}
	units := make([]*ast.CompilationUnit, 0, len(srcs))
	for i, src := range srcs {
		id := fs.AddVirtual("unit"+string(rune('a'+i))+".st", []byte(src))
		res := parser.ParseSource(fs, id, parser.Options{Reporter: rep})
		units = append(units, res.Unit)
	}
	if bag.HasErrors() {
		t.Fatalf("parse errors: %+v", bag.Items())
	}
	return Build(units, rep), bag
}

func hasCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}

func TestIndexPOUsMembersAndReturn(t *testing.T) {
	idx, bag := buildFrom(t, `
FUNCTION foo : INT
VAR_INPUT a : INT; END_VAR
VAR_OUTPUT o : DINT; END_VAR
VAR tmp : BOOL; END_VAR
END_FUNCTION

PROGRAM Main
VAR x : INT; END_VAR
END_PROGRAM
`)
	if bag.HasErrors() {
		t.Fatalf("diagnostics: %+v", bag.Items())
	}
	pou, ok := idx.FindPOU("FOO")
	if !ok || pou.Kind != ast.PouFunction || pou.ReturnType != "INT" {
		t.Fatalf("foo: %+v", pou)
	}

	members := idx.Members("foo")
	wantNames := []string{"a", "o", "tmp"}
	if len(members) != len(wantNames) {
		t.Fatalf("got %d members", len(members))
	}
	for i, m := range members {
		if m.Name != wantNames[i] || m.Field != i {
			t.Errorf("member %d: %+v", i, m)
		}
	}

	ret, ok := idx.FindMember("foo", "Foo")
	if !ok || !ret.IsReturn() {
		t.Fatalf("return member: %+v", ret)
	}
	rt, ok := idx.FindReturnType("foo")
	if !ok || rt.Name != "INT" {
		t.Fatalf("return type: %+v", rt)
	}
	if _, ok := idx.FindReturnType("main"); ok {
		t.Fatal("program must not have a return type")
	}

	st, ok := idx.FindType("main")
	if !ok || !st.IsStruct() || len(st.Info.Members) != 1 {
		t.Fatalf("program struct type: %+v", st)
	}

	impls := idx.Implementations()
	if len(impls) != 2 || impls[0].CallName != "foo" || impls[1].CallName != "Main" {
		t.Fatalf("implementations: %+v", impls)
	}
}

func TestIndexSyntheticTypes(t *testing.T) {
	idx, _ := buildFrom(t, `
PROGRAM p
VAR
  s : STRING[5];
  plain : STRING;
  arr : ARRAY[0..3] OF INT;
  strs : ARRAY[1..2] OF STRING[5];
END_VAR
END_PROGRAM
`)
	s, ok := idx.FindType("__STRING_5")
	if !ok || s.Info.Kind != typesystem.KindString || s.Info.Capacity != 5 {
		t.Fatalf("__STRING_5: %+v", s)
	}
	arr, ok := idx.FindType("__ARRAY_0_3_INT")
	if !ok || arr.Info.Inner != "INT" || arr.Len() != 4 {
		t.Fatalf("__ARRAY_0_3_INT: %+v", arr)
	}
	m, _ := idx.FindMember("p", "strs")
	nested, ok := idx.FindType(m.TypeName)
	if !ok || nested.Info.Inner != "__STRING_5" {
		t.Fatalf("nested array: %s %+v", m.TypeName, nested)
	}
	plain, _ := idx.FindMember("p", "plain")
	if plain.TypeName != "STRING" {
		t.Fatalf("plain string type %s", plain.TypeName)
	}
}

func TestIndexUserTypesAndGlobals(t *testing.T) {
	idx, bag := buildFrom(t, `
TYPE
  Point : STRUCT x : DINT; y : DINT; END_STRUCT
  Short : Name;
  Name : STRING[12];
END_TYPE
VAR_GLOBAL
  origin : Point;
  limit : INT := 10;
END_VAR
`)
	if bag.HasErrors() {
		t.Fatalf("diagnostics: %+v", bag.Items())
	}
	pt, ok := idx.FindType("POINT")
	if !ok || len(pt.Info.Members) != 2 || pt.Info.Members[1].TypeName != "DINT" {
		t.Fatalf("Point: %+v", pt)
	}
	short, ok := idx.FindType("Short")
	if !ok || short.Info.Kind != typesystem.KindString || short.Info.Capacity != 12 {
		t.Fatalf("alias chain: %+v", short)
	}
	globals := idx.GlobalVariables()
	if len(globals) != 2 || globals[1].Name != "limit" || globals[1].Initializer == nil {
		t.Fatalf("globals: %+v", globals)
	}
	if _, ok := idx.FindGlobalVariable("ORIGIN"); !ok {
		t.Fatal("origin not found")
	}
}

func TestIndexAcrossUnits(t *testing.T) {
	idx, bag := buildFrom(t,
		"FUNCTION_BLOCK counter VAR_INPUT step : INT; END_VAR END_FUNCTION_BLOCK",
		"PROGRAM main VAR c : counter; END_VAR END_PROGRAM",
	)
	if bag.HasErrors() {
		t.Fatalf("diagnostics: %+v", bag.Items())
	}
	c, _ := idx.FindMember("main", "c")
	fb, ok := idx.FindType(c.TypeName)
	if !ok || !fb.IsStruct() || fb.Info.Members[0].Name != "step" {
		t.Fatalf("fb instance type: %+v", fb)
	}
}

func TestIndexDiagnostics(t *testing.T) {
	tests := []struct {
		name string
		srcs []string
		code diag.Code
	}{
		{"duplicate pou", []string{"PROGRAM a END_PROGRAM", "FUNCTION A : INT END_FUNCTION"}, diag.SemaDuplicateSymbol},
		{"pou clashes with type", []string{"TYPE p : STRUCT x : INT; END_STRUCT END_TYPE PROGRAM p END_PROGRAM"}, diag.SemaDuplicateSymbol},
		{"type clashes with builtin", []string{"TYPE int : STRUCT x : INT; END_STRUCT END_TYPE"}, diag.SemaDuplicateSymbol},
		{"duplicate member", []string{"PROGRAM p VAR a : INT; END_VAR VAR_INPUT A : INT; END_VAR END_PROGRAM"}, diag.SemaDuplicateMember},
		{"unknown member type", []string{"PROGRAM p VAR a : Missing; END_VAR END_PROGRAM"}, diag.SemaUnknownType},
		{"unknown return type", []string{"FUNCTION f : Missing END_FUNCTION"}, diag.SemaUnknownType},
		{"unknown array element", []string{"PROGRAM p VAR a : ARRAY[0..1] OF Missing; END_VAR END_PROGRAM"}, diag.SemaUnknownType},
		{"shadowed return", []string{"FUNCTION f : INT VAR f : INT; END_VAR END_FUNCTION"}, diag.SemaMemberShadowsPOU},
		{"duplicate global", []string{"VAR_GLOBAL g : INT; END_VAR VAR_GLOBAL G : INT; END_VAR"}, diag.SemaDuplicateSymbol},
		{"missing return type", []string{"FUNCTION f END_FUNCTION"}, diag.SemaMissingReturn},
		{"alias cycle", []string{"TYPE a : b; b : a; END_TYPE"}, diag.SemaError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, bag := buildFrom(t, tt.srcs...)
			if !hasCode(bag, tt.code) {
				t.Fatalf("expected %s, got %+v", tt.code.ID(), bag.Items())
			}
		})
	}
}

func TestIndexRejectsGeneratedNames(t *testing.T) {
	const prog = "PROGRAM main END_PROGRAM\n"
	tests := []struct {
		name  string
		src   string
		check func(*Index) bool
		want  string
	}{
		{
			"global takes program instance",
			prog + "VAR_GLOBAL main_instance : INT; END_VAR",
			func(idx *Index) bool { _, ok := idx.FindGlobalVariable("main_instance"); return ok },
			"the instance of program main",
		},
		{
			"type takes instance struct",
			prog + "TYPE Main_Interface : STRUCT x : INT; END_STRUCT END_TYPE",
			func(idx *Index) bool { _, ok := idx.FindType("main_interface"); return ok },
			"the instance struct of main",
		},
		{
			"global takes literal storage",
			"VAR_GLOBAL utf08_literal_0 : STRING; END_VAR\n" + prog,
			func(idx *Index) bool { _, ok := idx.FindGlobalVariable("utf08_literal_0"); return ok },
			"string literal storage",
		},
		{
			"pou takes program instance",
			"FUNCTION main_instance : INT END_FUNCTION\n" + prog,
			func(idx *Index) bool { _, ok := idx.FindPOU("main_instance"); return ok },
			"the instance of program main",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, bag := buildFrom(t, tt.src)
			var found bool
			for _, d := range bag.Items() {
				if d.Code == diag.SemaDuplicateSymbol && strings.Contains(d.Message, tt.want) {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected %s naming %q, got %+v", diag.SemaDuplicateSymbol.ID(), tt.want, bag.Items())
			}
			if tt.check(idx) {
				t.Error("clashing declaration was indexed")
			}
		})
	}
}

func TestIndexAllowsNamesOfOtherKinds(t *testing.T) {
	// Only programs get a singleton, and struct names live apart from globals.
	_, bag := buildFrom(t, `
PROGRAM main END_PROGRAM
FUNCTION_BLOCK fb END_FUNCTION_BLOCK
VAR_GLOBAL fb_instance : fb; main_interface : INT; END_VAR
`)
	if hasCode(bag, diag.SemaDuplicateSymbol) {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
}
