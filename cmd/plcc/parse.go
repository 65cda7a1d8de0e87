package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"plcc/internal/ast"
	"plcc/internal/buildpipeline"
	"plcc/internal/diag"
	"plcc/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.st|directory>...",
	Short: "Parse Structured Text and print an outline of its POUs",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
}

func runParse(cmd *cobra.Command, args []string) error {
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	files, err := buildpipeline.CollectSources(args)
	if err != nil {
		return err
	}
	baseDir, _ := os.Getwd()
	display := buildpipeline.DisplayNames(files, baseDir)

	fs := source.NewFileSet()
	results, err := buildpipeline.ParseFiles(cmd.Context(), fs, files, display, jobs, maxDiagnostics, nil)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	bag := diag.NewBag(maxDiagnostics)
	for _, r := range results {
		bag.Merge(r.Bag)
	}
	if err := printDiagnostics(cmd, bag, fs, "pretty", baseDir); err != nil {
		return err
	}

	for i, r := range results {
		if r.Unit == nil {
			continue
		}
		if !quiet && len(results) > 1 {
			if i > 0 {
				fmt.Fprintln(os.Stdout)
			}
			fmt.Fprintf(os.Stdout, "== %s ==\n", r.Display)
		}
		if err := ast.Dump(os.Stdout, r.Unit); err != nil {
			return err
		}
	}
	if bag.HasErrors() {
		return errors.New("parse failed")
	}
	return nil
}
