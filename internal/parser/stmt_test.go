package parser

import (
	"testing"

	"plcc/internal/ast"
	"plcc/internal/diag"
)

func TestParseAssignmentAndCalls(t *testing.T) {
	stmts := bodyOf(t, `
x := 1;
foo();
foo(1, 2);
fb(a := 1, b := x + 1, o => y);
;
`)
	if len(stmts) != 5 {
		t.Fatalf("got %d statements", len(stmts))
	}
	as, ok := stmts[0].(*ast.AssignStmt)
	if !ok {
		t.Fatalf("stmt 0: %T", stmts[0])
	}
	if id, ok := as.Target.(*ast.Ident); !ok || id.Name != "x" {
		t.Fatalf("target: %#v", as.Target)
	}

	call := stmts[2].(*ast.ExprStmt).X.(*ast.CallExpr)
	if len(call.Args) != 2 || call.Args[0].Kind != ast.ArgPositional {
		t.Fatalf("positional args: %+v", call.Args)
	}

	named := stmts[3].(*ast.ExprStmt).X.(*ast.CallExpr)
	wantKinds := []ast.ArgKind{ast.ArgInput, ast.ArgInput, ast.ArgOutput}
	wantNames := []string{"a", "b", "o"}
	for i := range wantKinds {
		if named.Args[i].Kind != wantKinds[i] || named.Args[i].Name != wantNames[i] {
			t.Errorf("arg %d: %+v", i, named.Args[i])
		}
	}
	if _, ok := named.Args[1].Value.(*ast.BinaryExpr); !ok {
		t.Errorf("arg b value: %T", named.Args[1].Value)
	}
	if _, ok := stmts[4].(*ast.EmptyStmt); !ok {
		t.Errorf("stmt 4: %T", stmts[4])
	}
}

func TestParseMemberAccess(t *testing.T) {
	stmts := bodyOf(t, "x := inst.out; inst.a := 3; prg.fb.o := 1;")
	m, ok := stmts[0].(*ast.AssignStmt).Value.(*ast.MemberExpr)
	if !ok || m.Name != "out" {
		t.Fatalf("value: %#v", stmts[0].(*ast.AssignStmt).Value)
	}
	nested := stmts[2].(*ast.AssignStmt).Target.(*ast.MemberExpr)
	if inner, ok := nested.X.(*ast.MemberExpr); !ok || inner.Name != "fb" {
		t.Fatalf("nested: %#v", nested.X)
	}
}

func TestParseControlFlowIsRejected(t *testing.T) {
	unit, bag := parseTestInput(t, `
PROGRAM p
a := 1;
IF a > 0 THEN
  IF a > 1 THEN b := 2; END_IF;
  b := 1;
END_IF;
FOR i := 0 TO 10 DO a := i; END_FOR
c := 3;
END_PROGRAM
`)
	if !hasDiagnosticCode(bag, diag.SynControlFlow) {
		t.Fatalf("expected %s, got %s", diag.SynControlFlow.ID(), diagnosticsSummary(bag))
	}
	stmts := unit.Implementations[0].Statements
	if len(stmts) != 2 {
		t.Fatalf("got %d statements around skipped control flow", len(stmts))
	}
	last := stmts[1].(*ast.AssignStmt).Target.(*ast.Ident)
	if last.Name != "c" {
		t.Fatalf("last statement assigns %s", last.Name)
	}
}

func TestParseStatementErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  diag.Code
	}{
		{"missing semicolon", "x := 1 y := 2;", diag.SynExpectSemicolon},
		{"missing expression", "x := ;", diag.SynExpectExpression},
		{"unclosed call", "foo(1, 2;", diag.SynUnclosedParen},
		{"unclosed group", "x := (1 + 2;", diag.SynUnclosedParen},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, bag := parseTestInput(t, "PROGRAM p "+tt.input+" END_PROGRAM")
			if !hasDiagnosticCode(bag, tt.code) {
				t.Fatalf("expected %s, got %s", tt.code.ID(), diagnosticsSummary(bag))
			}
		})
	}
}

func TestMaxErrorsStopsReporting(t *testing.T) {
	fsInput := "PROGRAM p x := ; y := ; z := ; END_PROGRAM"
	unit, bag := parseTestInputWithLimit(t, fsInput, 1)
	if unit == nil {
		t.Fatal("nil unit")
	}
	if bag.Len() != 1 {
		t.Fatalf("got %d diagnostics, want 1", bag.Len())
	}
}
