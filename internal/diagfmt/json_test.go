package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"plcc/internal/diag"
	"plcc/internal/source"
	"plcc/internal/token"
)

func TestJSONOutput(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("dir/test.st", []byte("PROGRAM main\n  x := 'open\nEND_PROGRAM\n"))

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.LexUnterminatedString,
		source.Span{File: id, Start: 20, End: 25}, "Unterminated string literal").
		WithNote(source.Span{File: id, Start: 0, End: 7}, "inside this program"))
	bag.Add(diag.NewError(diag.CgnMissingFunction, source.NoSpan, "missing main"))

	tests := []struct {
		name      string
		opts      JSONOpts
		count     int
		wantNotes bool
	}{
		{"all", JSONOpts{IncludePositions: true, PathMode: PathModeBasename, IncludeNotes: true}, 2, true},
		{"truncated", JSONOpts{Max: 1}, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := JSON(&buf, bag, fs, tt.opts); err != nil {
				t.Fatal(err)
			}
			var out DiagnosticsOutput
			if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
				t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
			}
			if out.Count != tt.count || len(out.Diagnostics) != tt.count {
				t.Fatalf("count = %d, want %d", out.Count, tt.count)
			}
			first := out.Diagnostics[0]
			if first.Severity != "ERROR" || first.Code != "LEX1002" || first.Title != "Unterminated string literal" {
				t.Errorf("unexpected header %+v", first)
			}
			if (len(first.Notes) > 0) != tt.wantNotes {
				t.Errorf("notes = %v", first.Notes)
			}
		})
	}

	all := BuildDiagnosticsOutput(bag, fs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename})
	loc := all.Diagnostics[0].Location
	if loc.File != "test.st" || loc.StartLine != 2 || loc.StartCol != 8 || loc.EndCol != 13 {
		t.Errorf("location = %+v", loc)
	}
	if synth := all.Diagnostics[1].Location; synth.File != "<synthetic>" || synth.StartLine != 0 {
		t.Errorf("synthetic location = %+v", synth)
	}
}

func TestTimingsAlwaysCarryNotes(t *testing.T) {
	bag := diag.NewBag(1)
	bag.Add(diag.New(diag.SevInfo, diag.ObsTimings, source.NoSpan, "pipeline timings").
		WithNote(source.NoSpan, "parse: 1.00ms"))
	out := BuildDiagnosticsOutput(bag, source.NewFileSet(), JSONOpts{})
	if len(out.Diagnostics[0].Notes) != 1 {
		t.Fatalf("notes = %+v", out.Diagnostics[0].Notes)
	}
}

func TestFormatTokens(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.st", []byte("x := 1;"))
	toks := []token.Token{
		{Kind: token.Ident, Text: "x", Span: source.Span{File: id, Start: 0, End: 1}},
		{Kind: token.EOF, Span: source.Span{File: id, Start: 7, End: 7}},
		{Kind: token.Ident, Text: "after", Span: source.Span{File: id, Start: 7, End: 7}},
	}

	var pretty bytes.Buffer
	if err := FormatTokensPretty(&pretty, toks, fs); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(pretty.String(), `"x" at 1:1-1:2`) || strings.Contains(pretty.String(), "after") {
		t.Errorf("pretty tokens:\n%s", pretty.String())
	}

	var js bytes.Buffer
	if err := FormatTokensJSON(&js, toks); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(js.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 || out[1].Kind != "EOF" {
		t.Errorf("json tokens = %+v", out)
	}
}
