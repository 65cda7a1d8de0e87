package observ

import (
	"errors"
	"strings"
	"testing"
	"time"

	"plcc/internal/diag"
)

// fakeClock advances by step on every reading.
func fakeClock(step time.Duration) func() time.Time {
	now := time.Unix(0, 0)
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	tm.now = fakeClock(time.Millisecond)

	parse := tm.Begin("parse")
	tm.End(parse, "2 files")
	if err := tm.Time("codegen", func() error { return errors.New("boom") }); err == nil {
		t.Fatal("Time swallowed the error")
	}
	tm.End(99, "ignored")

	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("phases = %+v", r.Phases)
	}
	if r.Phases[0].DurationMS != 1 || r.Phases[0].Note != "2 files" {
		t.Errorf("parse = %+v", r.Phases[0])
	}
	if r.Phases[1].Note != "failed" {
		t.Errorf("codegen = %+v", r.Phases[1])
	}
	if r.TotalMS != 2 {
		t.Errorf("total = %v", r.TotalMS)
	}

	sum := tm.Summary()
	for _, want := range []string{"parse", "// 2 files", "total"} {
		if !strings.Contains(sum, want) {
			t.Errorf("summary missing %q:\n%s", want, sum)
		}
	}
}

func TestTimerDiagnostic(t *testing.T) {
	tm := NewTimer()
	tm.now = fakeClock(time.Millisecond)
	tm.End(tm.Begin("index"), "")

	d := tm.Diagnostic()
	if d.Code != diag.ObsTimings || d.Severity != diag.SevInfo {
		t.Fatalf("diagnostic = %+v", d)
	}
	if len(d.Notes) != 1 || d.Notes[0].Msg != "index: 1.00 ms" {
		t.Errorf("notes = %+v", d.Notes)
	}
}

func TestEmptyReport(t *testing.T) {
	if r := NewTimer().Report(); r.TotalMS != 0 || len(r.Phases) != 0 {
		t.Errorf("report = %+v", r)
	}
}
