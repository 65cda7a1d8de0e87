package layout

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// WriteReport prints size, alignment and field offsets of each named type.
// Used by `plcc build --emit-layout`.
func (e *LayoutEngine) WriteReport(w io.Writer, names []string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tSIZE\tALIGN\tOFFSETS")
	for _, name := range names {
		l, err := e.LayoutOf(name)
		if err != nil {
			fmt.Fprintf(tw, "%s\t-\t-\t%v\n", name, err)
			continue
		}
		offsets := "-"
		if len(l.FieldOffsets) > 0 {
			offsets = fmt.Sprint(l.FieldOffsets)
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", name, l.Size, l.Align, offsets)
	}
	return tw.Flush()
}
