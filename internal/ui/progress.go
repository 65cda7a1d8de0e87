// Package ui renders `plcc build` progress as a Bubble Tea program.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"plcc/internal/buildpipeline"
)

const (
	statusWidth = 12
	minName     = 20
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
	statusStyle = map[string]lipgloss.Style{
		"done":       lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		"cached":     lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		"error":      errorStyle,
		"parsing":    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		"indexing":   lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		"generating": lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		"writing":    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	}
	defaultStatusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
)

var stageWeight = map[buildpipeline.Stage]float64{
	buildpipeline.StageParse:   0.25,
	buildpipeline.StageIndex:   0.5,
	buildpipeline.StageCodegen: 0.75,
	buildpipeline.StageEmit:    0.9,
}

var stageVerb = map[buildpipeline.Stage]string{
	buildpipeline.StageParse:   "parsing",
	buildpipeline.StageIndex:   "indexing",
	buildpipeline.StageCodegen: "generating",
	buildpipeline.StageEmit:    "writing",
}

type fileItem struct {
	path    string
	status  string
	stage   buildpipeline.Stage
	elapsed time.Duration
	err     string
}

// finished reports whether the file needs no further work.
func (f fileItem) finished() bool {
	switch f.status {
	case "error", "cached":
		return true
	case "done":
		return f.stage == buildpipeline.StageCodegen
	}
	return false
}

type progressModel struct {
	title      string
	events     <-chan buildpipeline.Event
	spinner    spinner.Model
	bar        progress.Model
	items      []fileItem
	byPath     map[string]int
	stageLabel string
	width      int
	done       bool
}

type eventMsg buildpipeline.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders one line per
// file and an overall bar. The model quits when events is closed.
func NewProgressModel(title string, files []string, events <-chan buildpipeline.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 76

	m := &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     bar,
		items:   make([]fileItem, len(files)),
		byPath:  make(map[string]int, len(files)),
		width:   80,
	}
	for i, file := range files {
		m.items[i] = fileItem{path: file, status: "queued"}
		m.byPath[file] = i
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.applyEvent(buildpipeline.Event(msg)), m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	header := m.title
	if m.stageLabel != "" {
		header = fmt.Sprintf("%s (%s)", header, m.stageLabel)
	}
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	nameWidth := max(m.width-statusWidth-14, minName)
	for _, item := range m.items {
		status := styleStatus(item.status).Render(fmt.Sprintf("%*s", statusWidth, item.status))
		fmt.Fprintf(&b, "  %s %s", status, truncate(item.path, nameWidth))
		if item.elapsed > 0 {
			b.WriteString(faintStyle.Render(fmt.Sprintf(" %.1fms", float64(item.elapsed)/float64(time.Millisecond))))
		}
		b.WriteString("\n")
		if item.err != "" {
			fmt.Fprintf(&b, "  %*s %s\n", statusWidth, "", errorStyle.Render(truncate(item.err, nameWidth)))
		}
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.bar.ViewAs(1.0))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteString("\n")
	return b.String()
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

// applyEvent updates one file, or the header for pipeline-wide events.
func (m *progressModel) applyEvent(ev buildpipeline.Event) tea.Cmd {
	label := statusLabel(ev.Stage, ev.Status)
	if label == "" {
		return nil
	}
	if ev.File == "" {
		m.stageLabel = label
		return nil
	}
	i, ok := m.byPath[ev.File]
	if !ok {
		return nil
	}
	item := &m.items[i]
	item.status, item.stage = label, ev.Stage
	if ev.Elapsed > 0 {
		item.elapsed += ev.Elapsed
	}
	if ev.Err != nil && ev.Status == buildpipeline.StatusError {
		item.err = ev.Err.Error()
	}
	return m.bar.SetPercent(m.percent())
}

// percent averages per-file progress.
func (m *progressModel) percent() float64 {
	if len(m.items) == 0 {
		return 0
	}
	total := 0.0
	for _, item := range m.items {
		if item.finished() {
			total++
		} else {
			total += stageWeight[item.stage]
		}
	}
	return total / float64(len(m.items))
}

func statusLabel(stage buildpipeline.Stage, status buildpipeline.Status) string {
	if status == buildpipeline.StatusWorking {
		return stageVerb[stage]
	}
	return string(status)
}

func styleStatus(status string) lipgloss.Style {
	if st, ok := statusStyle[status]; ok {
		return st
	}
	return defaultStatusStyle
}

func truncate(value string, width int) string {
	switch {
	case width <= 0 || runewidth.StringWidth(value) <= width:
		return value
	case width <= 3:
		return runewidth.Truncate(value, width, "")
	default:
		return runewidth.Truncate(value, width-3, "...")
	}
}
