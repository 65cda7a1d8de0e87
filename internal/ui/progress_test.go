package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"plcc/internal/buildpipeline"
)

func newTestModel(files ...string) *progressModel {
	m, ok := NewProgressModel("build", files, nil).(*progressModel)
	if !ok {
		panic("unexpected model type")
	}
	return m
}

func TestApplyEventUpdatesFileStatus(t *testing.T) {
	m := newTestModel("a.st", "b.st")
	m.applyEvent(buildpipeline.Event{File: "a.st", Stage: buildpipeline.StageParse, Status: buildpipeline.StatusWorking})
	m.applyEvent(buildpipeline.Event{File: "b.st", Stage: buildpipeline.StageIndex, Status: buildpipeline.StatusError})
	m.applyEvent(buildpipeline.Event{File: "other.st", Stage: buildpipeline.StageParse, Status: buildpipeline.StatusDone})

	if got := m.items[0].status; got != "parsing" {
		t.Errorf("a.st status = %q, want parsing", got)
	}
	if got := m.items[1].status; got != "error" {
		t.Errorf("b.st status = %q, want error", got)
	}
	if got, want := m.percent(), (0.25+1.0)/2; got != want {
		t.Errorf("percent = %v, want %v", got, want)
	}
}

func TestPipelineEventSetsHeaderLabel(t *testing.T) {
	m := newTestModel("a.st")
	m.applyEvent(buildpipeline.Event{Stage: buildpipeline.StageEmit, Status: buildpipeline.StatusWorking})
	if m.stageLabel != "writing" {
		t.Fatalf("stage label = %q", m.stageLabel)
	}
	if !strings.Contains(m.View(), "build (writing)") {
		t.Errorf("header missing from view:\n%s", m.View())
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		name   string
		stage  buildpipeline.Stage
		status buildpipeline.Status
		want   float64
	}{
		{"queued", buildpipeline.StageParse, buildpipeline.StatusQueued, 0.25},
		{"indexing", buildpipeline.StageIndex, buildpipeline.StatusWorking, 0.5},
		{"parsed", buildpipeline.StageParse, buildpipeline.StatusDone, 0.25},
		{"generated", buildpipeline.StageCodegen, buildpipeline.StatusDone, 1},
		{"cached", buildpipeline.StageCodegen, buildpipeline.StatusCached, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel("a.st")
			m.applyEvent(buildpipeline.Event{File: "a.st", Stage: tt.stage, Status: tt.status})
			if got := m.percent(); got != tt.want {
				t.Errorf("percent = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestViewListsFiles(t *testing.T) {
	m := newTestModel("src/main.st", "src/lib.st")
	m.applyEvent(buildpipeline.Event{File: "src/lib.st", Stage: buildpipeline.StageCodegen, Status: buildpipeline.StatusCached})
	view := m.View()
	for _, want := range []string{"src/main.st", "src/lib.st", "queued", "cached"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if newTestModel().View() != "" {
		t.Error("empty model rendered output")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short.st", 20, "short.st"},
		{"very/long/path/file.st", 10, "very/lo..."},
		{"abcdef", 3, "abc"},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestViewShowsFailureAndElapsed(t *testing.T) {
	m := newTestModel("bad.st")
	m.applyEvent(buildpipeline.Event{
		File:    "bad.st",
		Stage:   buildpipeline.StageParse,
		Status:  buildpipeline.StatusError,
		Err:     errors.New("no such file"),
		Elapsed: 1500 * time.Microsecond,
	})
	view := m.View()
	for _, want := range []string{"error", "no such file", "1.5ms"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}
