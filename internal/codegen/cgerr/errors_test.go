package cgerr

import (
	"errors"
	"fmt"
	"testing"

	"plcc/internal/diag"
	"plcc/internal/source"
)

func TestKindsMapToDiagnosticCodes(t *testing.T) {
	tests := []struct {
		err  *CompileError
		code diag.Code
	}{
		{NewUnknownType("FOO", source.NoSpan), diag.CgnUnknownType},
		{NewMissingFunction("foo", source.NoSpan), diag.CgnMissingFunction},
		{NewUnsupportedReturnType("foo", "Point", source.NoSpan), diag.CgnUnsupportedReturnType},
		{NewDuplicateRegistration("type", "foo"), diag.CgnDuplicateRegistration},
		{Errorf(source.NoSpan, "boom %d", 1), diag.CgnError},
	}
	for _, tt := range tests {
		d := tt.err.ToDiagnostic()
		if d.Code != tt.code || d.Severity != diag.SevError || d.Message != tt.err.Error() {
			t.Errorf("%s: %+v", tt.err.Kind, d)
		}
	}
}

func TestErrorsIsMatchesKind(t *testing.T) {
	wrapped := fmt.Errorf("stub pass: %w", NewMissingFunction("foo", source.NoSpan))
	if !errors.Is(wrapped, &CompileError{Kind: MissingFunction}) {
		t.Fatal("expected MissingFunction match")
	}
	if errors.Is(wrapped, &CompileError{Kind: UnknownType}) {
		t.Fatal("unexpected UnknownType match")
	}
	var ce *CompileError
	if !errors.As(wrapped, &ce) || ce.Name != "foo" {
		t.Fatalf("errors.As: %+v", ce)
	}
}
