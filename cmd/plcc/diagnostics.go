package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"plcc/internal/diag"
	"plcc/internal/diagfmt"
	"plcc/internal/source"
)

func useColor(cmd *cobra.Command, f *os.File) bool {
	value, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false
	}
	mode, err := readSwitchMode("color", value)
	if err != nil {
		return false
	}
	return mode.enabled(f)
}

// printDiagnostics renders bag to stderr in the requested format.
func printDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet, format, baseDir string) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	bag.Sort()
	bag.Dedup()
	return writeDiagnostics(os.Stderr, bag, fs, format, baseDir, useColor(cmd, os.Stderr))
}

func writeDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet, format, baseDir string, color bool) error {
	switch format {
	case "", "pretty":
		diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
			Color:     color,
			Context:   2,
			PathMode:  diagfmt.PathModeRelative,
			BaseDir:   baseDir,
			ShowNotes: true,
		})
		return nil
	case "json":
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         diagfmt.PathModeRelative,
			BaseDir:          baseDir,
			IncludeNotes:     true,
		})
	default:
		return fmt.Errorf("unknown diagnostics format: %s", format)
	}
}
