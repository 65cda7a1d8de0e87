package parser

import (
	"testing"

	"plcc/internal/ast"
	"plcc/internal/diag"
)

func TestParsePOUHeaders(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKind ast.PouKind
		wantName string
		wantRet  string
		external bool
	}{
		{"program", "PROGRAM mainProg END_PROGRAM", ast.PouProgram, "mainProg", "", false},
		{"function", "FUNCTION foo : INT END_FUNCTION", ast.PouFunction, "foo", "INT", false},
		{"function without return", "FUNCTION noRet END_FUNCTION", ast.PouFunction, "noRet", "", false},
		{"function block", "FUNCTION_BLOCK counter END_FUNCTION_BLOCK", ast.PouFunctionBlock, "counter", "", false},
		{"external", "@EXTERNAL FUNCTION puts : DINT VAR_INPUT s : STRING; END_VAR END_FUNCTION", ast.PouFunction, "puts", "DINT", true},
		{"string return", "FUNCTION name : STRING[10] END_FUNCTION", ast.PouFunction, "name", "STRING[10]", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unit := mustParse(t, tt.input)
			if len(unit.POUs) != 1 || len(unit.Implementations) != 1 {
				t.Fatalf("got %d POUs, %d implementations", len(unit.POUs), len(unit.Implementations))
			}
			pou := unit.POUs[0]
			if pou.Kind != tt.wantKind || pou.Name != tt.wantName || pou.External != tt.external {
				t.Fatalf("got %s %s external=%v", pou.Kind, pou.Name, pou.External)
			}
			gotRet := ""
			if pou.ReturnType != nil {
				gotRet = pou.ReturnType.String()
			}
			if gotRet != tt.wantRet {
				t.Fatalf("return type %q, want %q", gotRet, tt.wantRet)
			}
			impl := unit.Implementations[0]
			if impl.CallName != tt.wantName || impl.TypeName != tt.wantName || impl.Kind != tt.wantKind {
				t.Fatalf("implementation %+v", impl)
			}
		})
	}
}

func TestParseVariableBlocks(t *testing.T) {
	unit := mustParse(t, `
FUNCTION_BLOCK fb
VAR_INPUT
  a, b : INT;
  s : STRING[5] := 'hi';
END_VAR
VAR_OUTPUT o : DINT; END_VAR
VAR_IN_OUT io : REAL; END_VAR
VAR
  arr : ARRAY[0..3] OF INT;
  neg : ARRAY[-2..2] OF BOOL;
END_VAR
VAR_TEMP tmp : LREAL; END_VAR
END_FUNCTION_BLOCK
`)
	pou := unit.POUs[0]
	wantKinds := []ast.VarBlockKind{ast.VarInput, ast.VarOutput, ast.VarInOut, ast.VarLocal, ast.VarTemp}
	if len(pou.VariableBlocks) != len(wantKinds) {
		t.Fatalf("got %d blocks", len(pou.VariableBlocks))
	}
	for i, k := range wantKinds {
		if pou.VariableBlocks[i].Kind != k {
			t.Errorf("block %d is %s, want %s", i, pou.VariableBlocks[i].Kind, k)
		}
	}

	inputs := pou.VariableBlocks[0].Variables
	if len(inputs) != 3 || inputs[0].Name != "a" || inputs[1].Name != "b" || inputs[2].Name != "s" {
		t.Fatalf("inputs: %+v", inputs)
	}
	if inputs[2].Type.Kind != ast.TypeString || inputs[2].Type.Length != 5 {
		t.Fatalf("s type: %s", inputs[2].Type)
	}
	if lit, ok := inputs[2].Initializer.(*ast.StringLit); !ok || lit.Value != "hi" {
		t.Fatalf("s initializer: %#v", inputs[2].Initializer)
	}

	locals := pou.VariableBlocks[3].Variables
	if locals[0].Type.SyntheticName() != "__ARRAY_0_3_INT" {
		t.Errorf("arr synthetic name %q", locals[0].Type.SyntheticName())
	}
	if locals[1].Type.Lo != -2 || locals[1].Type.Hi != 2 {
		t.Errorf("neg bounds %d..%d", locals[1].Type.Lo, locals[1].Type.Hi)
	}
}

func TestParseTypesAndGlobals(t *testing.T) {
	unit := mustParse(t, `
TYPE
  Point : STRUCT
    x : DINT;
    y : DINT := 7;
  END_STRUCT
  Name : STRING[20];
END_TYPE

VAR_GLOBAL
  origin : Point;
  count : INT := 3;
END_VAR
`)
	if len(unit.Types) != 2 {
		t.Fatalf("got %d types", len(unit.Types))
	}
	pt := unit.Types[0]
	if !pt.IsStruct() || pt.Name != "Point" || len(pt.Members) != 2 {
		t.Fatalf("Point: %+v", pt)
	}
	if unit.Types[1].IsStruct() || unit.Types[1].Alias.Length != 20 {
		t.Fatalf("Name: %+v", unit.Types[1])
	}
	if len(unit.GlobalVars) != 1 || len(unit.GlobalVars[0].Variables) != 2 {
		t.Fatalf("globals: %+v", unit.GlobalVars)
	}
}

func TestParsePOUErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  diag.Code
	}{
		{"return type on program", "PROGRAM p : INT END_PROGRAM", diag.SynReturnTypeNotAllowed},
		{"return type on fb", "FUNCTION_BLOCK f : INT END_FUNCTION_BLOCK", diag.SynReturnTypeNotAllowed},
		{"missing end", "PROGRAM p VAR a : INT; END_VAR", diag.SynMissingEnd},
		{"missing name", "PROGRAM END_PROGRAM", diag.SynExpectIdentifier},
		{"bad array bounds", "PROGRAM p VAR a : ARRAY[3..1] OF INT; END_VAR END_PROGRAM", diag.SynBadArrayBounds},
		{"bad string length", "PROGRAM p VAR a : STRING[0]; END_VAR END_PROGRAM", diag.SynBadStringLength},
		{"missing type", "PROGRAM p VAR a : ; END_VAR END_PROGRAM", diag.SynExpectType},
		{"top level junk", "x := 1;", diag.SynUnexpectedTopLevel},
		{"global inside pou", "PROGRAM p VAR_GLOBAL g : INT; END_VAR END_PROGRAM", diag.SynUnexpectedToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, bag := parseTestInput(t, tt.input)
			if !hasDiagnosticCode(bag, tt.code) {
				t.Fatalf("expected %s, got %s", tt.code.ID(), diagnosticsSummary(bag))
			}
		})
	}
}

func TestParseRecoversAfterBrokenDeclaration(t *testing.T) {
	unit, bag := parseTestInput(t, `
PROGRAM p
VAR
  a : ;
  b : INT;
END_VAR
END_PROGRAM
FUNCTION f : INT END_FUNCTION
`)
	if !bag.HasErrors() {
		t.Fatal("expected errors")
	}
	if len(unit.POUs) != 2 {
		t.Fatalf("got %d POUs after recovery", len(unit.POUs))
	}
	vars := unit.POUs[0].VariableBlocks[0].Variables
	if len(vars) != 1 || vars[0].Name != "b" {
		t.Fatalf("recovered vars: %+v", vars)
	}
}
