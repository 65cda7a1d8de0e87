package diag

import (
	"testing"

	"plcc/internal/source"
)

func TestWithNoteDoesNotShareNotes(t *testing.T) {
	base := NewError(SemaDuplicateSymbol, source.NoSpan, "dup").WithNote(source.NoSpan, "first")
	a := base.WithNote(source.NoSpan, "a")
	b := base.WithNote(source.NoSpan, "b")
	if len(base.Notes) != 1 {
		t.Fatalf("base has %d notes", len(base.Notes))
	}
	if a.Notes[1].Msg != "a" || b.Notes[1].Msg != "b" {
		t.Errorf("notes shared: %q, %q", a.Notes[1].Msg, b.Notes[1].Msg)
	}
}

func TestDiagnosticString(t *testing.T) {
	d := New(SevWarning, SemaMissingReturn, source.NoSpan, "function f never assigns its result")
	want := "WARNING " + SemaMissingReturn.ID() + ": function f never assigns its result"
	if got := d.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
