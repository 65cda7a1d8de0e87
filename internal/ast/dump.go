package ast

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes a human-readable outline of u: POUs with their variable
// blocks, user types and globals. Used by `plcc parse`.
func Dump(w io.Writer, u *CompilationUnit) error {
	var b strings.Builder
	for _, t := range u.Types {
		if t.IsStruct() {
			fmt.Fprintf(&b, "TYPE %s : STRUCT\n", t.Name)
			for _, m := range t.Members {
				fmt.Fprintf(&b, "  %s : %s\n", m.Name, m.Type)
			}
			continue
		}
		fmt.Fprintf(&b, "TYPE %s : %s\n", t.Name, t.Alias)
	}
	for _, blk := range u.GlobalVars {
		dumpBlock(&b, blk, "")
	}
	for _, p := range u.POUs {
		fmt.Fprintf(&b, "%s %s", p.Kind, p.Name)
		if p.ReturnType != nil {
			fmt.Fprintf(&b, " : %s", p.ReturnType)
		}
		if p.External {
			b.WriteString(" @EXTERNAL")
		}
		b.WriteByte('\n')
		for _, blk := range p.VariableBlocks {
			dumpBlock(&b, blk, "  ")
		}
	}
	for _, impl := range u.Implementations {
		fmt.Fprintf(&b, "IMPL %s (%d statements)\n", impl.CallName, len(impl.Statements))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func dumpBlock(b *strings.Builder, blk *VariableBlock, indent string) {
	fmt.Fprintf(b, "%s%s\n", indent, blk.Kind)
	for _, v := range blk.Variables {
		fmt.Fprintf(b, "%s  %s : %s", indent, v.Name, v.Type)
		if v.Initializer != nil {
			b.WriteString(" := <init>")
		}
		b.WriteByte('\n')
	}
}
