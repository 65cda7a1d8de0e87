package codegen

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/llir/llvm/ir/types"

	"plcc/internal/trace"
)

func TestFunctionReturnsItsNamedSlot(t *testing.T) {
	m := mustCompile(t, `
FUNCTION func : DINT
VAR_INPUT x : DINT; END_VAR
func := x + 1;
END_FUNCTION
`)
	body := funcBody(t, m, "func")
	assertContains(t, body, "define i32 @func(%func_interface* %0)")
	assertOrder(t, body,
		"entry:",
		"%func = alloca i32",
		"store i32 0, i32* %func",
		"%x = getelementptr inbounds %func_interface, %func_interface* %0, i32 0, i32 0",
		"%load_x = load i32, i32* %x",
		"%tmpVar = add i32 %load_x, 1",
		"store i32 %tmpVar, i32* %func",
		"%func_ret = load i32, i32* %func",
		"ret i32 %func_ret",
	)
}

func TestProgramsAndFunctionBlocksReturnVoid(t *testing.T) {
	m := mustCompile(t, `
PROGRAM main
VAR a : DINT; END_VAR
VAR_OUTPUT b : INT; END_VAR
a := 1;
END_PROGRAM

FUNCTION_BLOCK fb
VAR_INPUT x : DINT; END_VAR
VAR_OUTPUT main2 : DINT; END_VAR
main2 := x;
END_FUNCTION_BLOCK
`)
	for _, name := range []string{"main", "fb"} {
		f := findFunc(t, m, name)
		if !types.Equal(f.Sig.RetType, types.Void) {
			t.Errorf("%s returns %s, want void", name, f.Sig.RetType)
		}
		if len(f.Params) != 1 {
			t.Errorf("%s has %d params, want 1", name, len(f.Params))
		}
		assertContains(t, funcBody(t, m, name), "ret void")
	}
}

func TestInstanceStructFollowsDeclarationOrder(t *testing.T) {
	m := mustCompile(t, `
FUNCTION_BLOCK fb
VAR_INPUT a : INT; END_VAR
VAR_OUTPUT b : REAL; END_VAR
VAR_IN_OUT c : DINT; END_VAR
VAR d : BOOL; END_VAR
VAR_TEMP e : LREAL; END_VAR
VAR_INPUT f : STRING[3]; END_VAR
END_FUNCTION_BLOCK
`)
	st := findStruct(t, m, "fb_interface")
	want := []types.Type{types.I16, types.Float, types.I32, types.I1, types.Double, types.NewArray(4, types.I8)}
	if len(st.Fields) != len(want) {
		t.Fatalf("got %d fields, want %d", len(st.Fields), len(want))
	}
	for i, w := range want {
		if !types.Equal(st.Fields[i], w) {
			t.Errorf("field %d is %s, want %s", i, st.Fields[i], w)
		}
	}
	assertContains(t, funcBody(t, m, "fb"),
		"%a = getelementptr inbounds %fb_interface, %fb_interface* %0, i32 0, i32 0",
		"%f = getelementptr inbounds %fb_interface, %fb_interface* %0, i32 0, i32 5",
	)
}

func TestSingletonPerProgramOnly(t *testing.T) {
	m := mustCompile(t, `
PROGRAM main
VAR a : DINT; END_VAR
END_PROGRAM

PROGRAM other
END_PROGRAM

FUNCTION f : DINT
VAR_INPUT x : DINT; END_VAR
END_FUNCTION

FUNCTION_BLOCK fb
VAR x : DINT; END_VAR
END_FUNCTION_BLOCK
`)
	var instances []string
	for _, g := range m.Globals {
		if strings.HasSuffix(g.Name(), "_instance") {
			instances = append(instances, g.Name())
		}
	}
	if len(instances) != 2 || instances[0] != "main_instance" || instances[1] != "other_instance" {
		t.Fatalf("instances = %v, want [main_instance other_instance]", instances)
	}
	assertContains(t, m.String(),
		"@main_instance = global %main_interface zeroinitializer",
		"@other_instance = global %other_interface zeroinitializer",
	)
}

func TestExternalProgramSingletonIsDeclared(t *testing.T) {
	m := mustCompile(t, `
@EXTERNAL PROGRAM ext
VAR_INPUT v : INT := 3; END_VAR
END_PROGRAM

PROGRAM main
ext(v := 1);
END_PROGRAM
`)
	text := m.String()
	assertContains(t, text,
		"@ext_instance = external global %ext_interface",
		"declare void @ext(",
		"@main_instance = global %main_interface ",
	)
	if strings.Contains(text, "@ext_instance = global") {
		t.Errorf("external program instance is defined:\n%s", text)
	}
	assertContains(t, funcBody(t, m, "main"), "call void @ext(%ext_interface* @ext_instance)")
}

func TestInitializerReplayOnlyForFunctions(t *testing.T) {
	m := mustCompile(t, `
FUNCTION f : DINT
VAR y : DINT := 7; END_VAR
f := y;
END_FUNCTION

PROGRAM main
VAR y : DINT := 7; END_VAR
END_PROGRAM

FUNCTION_BLOCK fb
VAR y : DINT := 7; END_VAR
END_FUNCTION_BLOCK
`)
	assertOrder(t, funcBody(t, m, "f"), "store i32 7, i32* %y", "%load_y = load i32, i32* %y")
	for _, name := range []string{"main", "fb"} {
		if body := funcBody(t, m, name); strings.Contains(body, "store i32 7") {
			t.Errorf("%s replays its initializer:\n%s", name, body)
		}
	}
	assertContains(t, m.String(), "@main_instance = global %main_interface { i32 7 }")
}

func TestGlobalVariables(t *testing.T) {
	m := mustCompile(t, `
VAR_GLOBAL
  limit : INT := 3;
  label : STRING[4];
END_VAR

PROGRAM main
VAR x : DINT; END_VAR
x := limit;
END_PROGRAM
`)
	assertContains(t, m.String(),
		"@limit = global i16 3",
		"@label = global [5 x i8] zeroinitializer",
	)
	assertOrder(t, funcBody(t, m, "main"),
		"%load_limit = load i16, i16* @limit",
		"sext i16 %load_limit to i32",
	)
}

func TestScalarConversions(t *testing.T) {
	m := mustCompile(t, `
PROGRAM main
VAR i : INT; d : DINT; r : REAL; b : BOOL; END_VAR
d := i;
i := d;
r := d;
b := i;
END_PROGRAM
`)
	assertContains(t, funcBody(t, m, "main"),
		"sext i16 %load_i to i32",
		"trunc i32 %load_d to i16",
		"sitofp i32 %load_d1 to float",
		"icmp ne i16 %load_i2, 0",
	)
}

func TestMemberAccessOnProgramInstance(t *testing.T) {
	m := mustCompile(t, `
PROGRAM other
VAR_OUTPUT v : DINT; END_VAR
v := 5;
END_PROGRAM

PROGRAM main
VAR x : DINT; END_VAR
x := other.v;
END_PROGRAM
`)
	assertOrder(t, funcBody(t, m, "main"),
		"%other.v = getelementptr inbounds %other_interface, %other_interface* @other_instance, i32 0, i32 0",
		"%load_v = load i32, i32* %other.v",
		"store i32 %load_v, i32* %x",
	)
}

func TestUnsupportedReturnTypeIsReported(t *testing.T) {
	src := `
TYPE point : STRUCT x : INT; y : INT; END_STRUCT END_TYPE

FUNCTION f : point
END_FUNCTION
`
	m, err := compile(t, src)
	if m != nil {
		t.Fatal("module returned despite stub failure")
	}
	var ce *CompileError
	if !errors.As(err, &ce) || ce.Kind != UnsupportedReturnType {
		t.Fatalf("err = %v, want UnsupportedReturnType", err)
	}
	if !ce.Location.IsKnown() {
		t.Error("UnsupportedReturnType carries no location")
	}
}

func TestUnsupportedReturnTypeAbortPolicy(t *testing.T) {
	idx := buildIndex(t, `
TYPE point : STRUCT x : INT; END_STRUCT END_TYPE
FUNCTION f : point
END_FUNCTION
`)
	opts := DefaultOptions("main")
	opts.UnsupportedReturn = ReturnAbort
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		if msg, ok := r.(string); !ok || !strings.Contains(msg, "point") {
			t.Fatalf("panic value %v does not name the type", r)
		}
	}()
	_, _ = GenerateModule(context.Background(), idx, opts) //nolint:errcheck
}

func TestArrayAndStringReturnsByValue(t *testing.T) {
	m := mustCompile(t, `
FUNCTION arr : ARRAY[0..3] OF INT
END_FUNCTION

FUNCTION str : STRING[10]
END_FUNCTION

FUNCTION real_fn : LREAL
END_FUNCTION
`)
	text := m.String()
	assertContains(t, text,
		"define [4 x i16] @arr(%arr_interface* %0)",
		"define [11 x i8] @str(%str_interface* %0)",
		"define double @real_fn(%real_fn_interface* %0)",
		"store [4 x i16] zeroinitializer, [4 x i16]* %arr",
	)
}

func TestBodyWithoutStubIsMissingFunction(t *testing.T) {
	idx := buildIndex(t, `
PROGRAM main
VAR a : DINT; END_VAR
END_PROGRAM
`)
	g := newGenerator(idx, DefaultOptions("main"))
	ctx := context.Background()
	for _, phase := range []func(context.Context) error{g.generateDataTypes, g.generateStructs, g.generateGlobals} {
		if err := phase(ctx); err != nil {
			t.Fatal(err)
		}
	}
	impl := idx.Implementations()[0]
	err := g.generateBody(impl)
	var ce *CompileError
	if !errors.As(err, &ce) || ce.Kind != MissingFunction {
		t.Fatalf("err = %v, want MissingFunction", err)
	}
	pou, _ := idx.FindPOU("main")
	if ce.Location != pou.Span {
		t.Errorf("location = %v, want %v", ce.Location, pou.Span)
	}
}

func TestStubWithoutParameterIsMissingFunction(t *testing.T) {
	idx := buildIndex(t, `
PROGRAM main
VAR a : DINT; END_VAR
END_PROGRAM
`)
	g := newGenerator(idx, DefaultOptions("main"))
	ctx := context.Background()
	if err := g.generateDataTypes(ctx); err != nil {
		t.Fatal(err)
	}
	if err := g.generateStructs(ctx); err != nil {
		t.Fatal(err)
	}
	if err := g.types.RegisterCallable("main", g.mod.NewFunc("main", types.Void)); err != nil {
		t.Fatal(err)
	}
	err := g.generateBody(idx.Implementations()[0])
	var ce *CompileError
	if !errors.As(err, &ce) || ce.Kind != MissingFunction {
		t.Fatalf("err = %v, want MissingFunction", err)
	}
	a, _ := idx.FindMember("main", "a")
	if ce.Location != a.Span {
		t.Errorf("location = %v, want the variable's %v", ce.Location, a.Span)
	}
}

func TestStubBeforeStructsIsUnknownType(t *testing.T) {
	idx := buildIndex(t, "PROGRAM main END_PROGRAM")
	g := newGenerator(idx, DefaultOptions("main"))
	if err := g.generateDataTypes(context.Background()); err != nil {
		t.Fatal(err)
	}
	err := g.generateStub(idx.Implementations()[0])
	if !errors.Is(err, &CompileError{Kind: UnknownType}) {
		t.Fatalf("err = %v, want UnknownType", err)
	}
}

func TestSecondStubPassIsDuplicateRegistration(t *testing.T) {
	idx := buildIndex(t, "FUNCTION f : INT END_FUNCTION")
	g := newGenerator(idx, DefaultOptions("main"))
	ctx := context.Background()
	for _, phase := range []func(context.Context) error{g.generateDataTypes, g.generateStructs, g.generateGlobals, g.generateStubs} {
		if err := phase(ctx); err != nil {
			t.Fatal(err)
		}
	}
	err := g.generateStubs(ctx)
	if !errors.Is(err, &CompileError{Kind: DuplicateRegistration}) {
		t.Fatalf("err = %v, want DuplicateRegistration", err)
	}
}

func TestBodyScopesAreDiscarded(t *testing.T) {
	idx := buildIndex(t, `
PROGRAM main
VAR a : DINT; END_VAR
a := 1;
END_PROGRAM
`)
	g := newGenerator(idx, DefaultOptions("main"))
	ctx := context.Background()
	for _, phase := range []func(context.Context) error{g.generateDataTypes, g.generateStructs, g.generateGlobals, g.generateStubs, g.generateBodies} {
		if err := phase(ctx); err != nil {
			t.Fatal(err)
		}
	}
	if _, ok := g.types.LookupLocal("main", "a"); ok {
		t.Fatal("local binding leaked into the root index")
	}
	if _, ok := g.types.LookupCallable("main"); !ok {
		t.Fatal("callable missing from the root index")
	}
}

func TestUnknownVariableIsCodegenError(t *testing.T) {
	_, err := compile(t, `
PROGRAM main
missing := 1;
END_PROGRAM
`)
	var ce *CompileError
	if !errors.As(err, &ce) || ce.Kind != CodegenError {
		t.Fatalf("err = %v, want CodegenError", err)
	}
	if !strings.Contains(ce.Message, "missing") {
		t.Errorf("message %q does not name the variable", ce.Message)
	}
	if d := ce.ToDiagnostic(); d.Code.ID() != "CGN5005" {
		t.Errorf("diagnostic code = %s", d.Code.ID())
	}
}

func TestModuleHeaderAndTracing(t *testing.T) {
	var buf bytes.Buffer
	tr := trace.NewStreamTracer(&buf, trace.LevelDetail, trace.FormatText)
	ctx := trace.WithTracer(context.Background(), tr)

	m, err := GenerateModule(ctx, buildIndex(t, "PROGRAM main END_PROGRAM"), DefaultOptions("demo"))
	if err != nil {
		t.Fatal(err)
	}
	assertContains(t, m.String(),
		`source_filename = "demo"`,
		`target triple = "x86_64-unknown-linux-gnu"`,
	)
	assertContains(t, buf.String(), "→ codegen.stubs", "← pou:main {kind=PROGRAM}", "← codegen (ok)")
}
