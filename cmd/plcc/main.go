// Command plcc compiles IEC 61131-3 Structured Text to LLVM IR.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"plcc/internal/prof"
	"plcc/internal/version"
)

var rootCmd = &cobra.Command{
	Use:          "plcc",
	Short:        "Structured Text compiler",
	Long:         `plcc compiles IEC 61131-3 Structured Text programs to LLVM IR`,
	SilenceUsage: true,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	flags := rootCmd.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("timings", false, "show timing information")
	flags.Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	flags.String("trace", "", "trace output file (\"-\" for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	flags.String("cpu-profile", "", "write a CPU profile to file")
	flags.String("mem-profile", "", "write a heap profile to file on exit")
	flags.String("runtime-trace", "", "write a Go runtime trace to file")

	var (
		cleanup  func()
		profiler *prof.Session
	)
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		colorValue, err := cmd.Root().PersistentFlags().GetString("color")
		if err != nil {
			return err
		}
		if _, err = readSwitchMode("color", colorValue); err != nil {
			return err
		}
		if profiler, err = setupProfiling(cmd); err != nil {
			return err
		}
		cleanup, err = setupTracing(cmd)
		return err
	}

	err := rootCmd.Execute()
	if cleanup != nil {
		cleanup()
	}
	if stopErr := profiler.Stop(); stopErr != nil {
		fmt.Fprintf(os.Stderr, "profile: %v\n", stopErr)
	}
	if err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
