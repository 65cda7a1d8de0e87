package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"plcc/internal/diag"
	"plcc/internal/source"
)

type palette struct {
	err, warn, info, code, path, gutter, caret, note *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Faint),
		path:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
		note:   color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.path, p.gutter, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty writes bag in compiler style, in bag order (call bag.Sort first):
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//
// followed by the source line with ^~~~ under the span and, when enabled,
// the notes. Diagnostics without a location print only the header.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		writeHeader(w, p, fs, d.Primary, opts, func() {
			fmt.Fprintf(w, "%s %s: %s\n",
				p.severity(d.Severity).Sprint(d.Severity.String()),
				p.code.Sprint(d.Code.ID()),
				d.Message)
		})
		writeSnippet(w, p, fs, d.Primary, opts.Context)
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			fmt.Fprint(w, "  ")
			writeHeader(w, p, fs, n.Span, opts, func() {
				fmt.Fprintf(w, "%s: %s\n", p.note.Sprint("note"), n.Msg)
			})
			writeSnippet(w, p, fs, n.Span, 0)
		}
	}
}

func writeHeader(w io.Writer, p palette, fs *source.FileSet, sp source.Span, opts PrettyOpts, rest func()) {
	path := displayPath(fs, sp, opts.PathMode, opts.BaseDir)
	if sp.IsKnown() && fs.Get(sp.File) != nil {
		start, _ := fs.Resolve(sp)
		path = fmt.Sprintf("%s:%d:%d", path, start.Line, start.Col)
	}
	fmt.Fprintf(w, "%s: ", p.path.Sprint(path))
	rest()
}

func writeSnippet(w io.Writer, p palette, fs *source.FileSet, sp source.Span, context int8) {
	if !sp.IsKnown() {
		return
	}
	f := fs.Get(sp.File)
	if f == nil {
		return
	}
	start, end := fs.Resolve(sp)
	first := max(int64(start.Line)-int64(context), 1)
	width := len(fmt.Sprint(start.Line))

	for n := uint32(first); n <= start.Line; n++ { // #nosec G115 -- first >= 1
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", width, n), f.Line(n))
	}

	line := f.Line(start.Line)
	lead := columnWidth(line, start.Col)
	span := 1
	if end.Line == start.Line && end.Col > start.Col {
		span = max(columnWidth(line, end.Col)-lead, 1)
	}
	marker := "^" + strings.Repeat("~", span-1)
	fmt.Fprintf(w, "%s %s%s\n", p.gutter.Sprintf("%*s |", width, ""), strings.Repeat(" ", lead), p.caret.Sprint(marker))
}

// columnWidth is the display width of line up to the 1-based byte column col.
func columnWidth(line string, col uint32) int {
	n := int(col) - 1
	if n <= 0 {
		return 0
	}
	if n > len(line) {
		n = len(line)
	}
	return runewidth.StringWidth(strings.ReplaceAll(line[:n], "\t", " "))
}
