package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"plcc/internal/buildpipeline"
	"plcc/internal/codegen"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] [files or directories...]",
	Short: "Compile Structured Text to LLVM IR",
	Long: `Build compiles the given .st files (or every .st file below the given
directories) into one LLVM IR module. Without arguments the sources listed in
plcc.toml are built.`,
	RunE: buildExecution,
}

func init() {
	buildCmd.Flags().String("out", "", "output directory (default: [build].out or ./build)")
	buildCmd.Flags().String("name", "", "output module name (default: [package].name)")
	buildCmd.Flags().Bool("emit-layout", false, "also write a struct layout report")
	buildCmd.Flags().Int("jobs", 0, "max parallel parse workers (0=auto)")
	buildCmd.Flags().Bool("no-cache", false, "disable the build cache")
	buildCmd.Flags().String("ui", "auto", "user interface (auto|on|off)")
	buildCmd.Flags().String("format", "pretty", "diagnostics format (pretty|json)")
	buildCmd.Flags().String("unsupported-return", "", "override [codegen].unsupported_return (error|abort)")
}

func buildExecution(cmd *cobra.Command, args []string) error {
	outFlag, err := cmd.Flags().GetString("out")
	if err != nil {
		return err
	}
	nameFlag, err := cmd.Flags().GetString("name")
	if err != nil {
		return err
	}
	emitLayout, err := cmd.Flags().GetBool("emit-layout")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	returnFlag, err := cmd.Flags().GetString("unsupported-return")
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return err
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown diagnostics format: %s", format)
	}
	uiModeValue, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	manifest, manifestFound, err := loadProjectManifest(".")
	if err != nil {
		return err
	}

	var (
		inputs  []string
		baseDir string
		outDir  string
		opts    codegen.Options
	)
	switch {
	case len(args) > 0:
		inputs = args
		opts = codegen.DefaultOptions(outputNameFromPath(args[0]))
		if manifestFound {
			opts = manifest.codegenOptions()
		}
	case manifestFound:
		inputs = manifest.sourcePaths()
		opts = manifest.codegenOptions()
	default:
		return errors.New(noManifestMessage)
	}
	if manifestFound {
		baseDir = manifest.Root
		outDir = manifest.outDir()
	} else {
		if baseDir, err = os.Getwd(); err != nil {
			baseDir = "."
		}
		outDir = filepath.Join(baseDir, "build")
	}
	if outFlag != "" {
		outDir = outFlag
	}
	if nameFlag != "" {
		opts.ModuleName = nameFlag
	}
	if returnFlag != "" {
		if opts.UnsupportedReturn, err = codegen.ParseReturnPolicy(returnFlag); err != nil {
			return err
		}
	}

	files, err := buildpipeline.CollectSources(inputs)
	if err != nil {
		return err
	}

	var cache *buildpipeline.DiskCache
	if !noCache {
		cache, err = buildpipeline.OpenDiskCache("plcc")
		if err != nil && !quiet {
			fmt.Fprintf(os.Stderr, "warning: build cache disabled: %v\n", err)
		}
	}

	req := buildpipeline.BuildRequest{
		CompileRequest: buildpipeline.CompileRequest{
			Files:          files,
			BaseDir:        baseDir,
			Codegen:        opts,
			Jobs:           jobs,
			MaxDiagnostics: maxDiagnostics,
			Cache:          cache,
		},
		OutDir:     outDir,
		OutputName: opts.ModuleName,
		EmitLayout: emitLayout,
	}

	var res buildpipeline.BuildResult
	if shouldUseTUI(uiModeValue) && !quiet {
		res, err = runBuildWithUI(cmd.Context(), "plcc build", buildpipeline.DisplayNames(files, baseDir), &req)
	} else {
		res, err = buildpipeline.Build(cmd.Context(), &req)
	}

	if printErr := printDiagnostics(cmd, res.Bag, res.FileSet, format, baseDir); printErr != nil {
		return printErr
	}
	if showTimings {
		printStageTimings(os.Stdout, res.Timings)
	}
	if err != nil {
		if errors.Is(err, buildpipeline.ErrDiagnostics) {
			// already printed
			return errors.New("build failed")
		}
		return err
	}

	if !quiet {
		suffix := ""
		if res.CacheHit {
			suffix = " (cached)"
		}
		fmt.Fprintf(os.Stdout, "built %s%s\n", formatPathForOutput(baseDir, res.IRPath), suffix)
		if res.LayoutPath != "" {
			fmt.Fprintf(os.Stdout, "layout %s\n", formatPathForOutput(baseDir, res.LayoutPath))
		}
	}
	return nil
}

func outputNameFromPath(inputPath string) string {
	base := filepath.Base(filepath.Clean(inputPath))
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "main"
	}
	return name
}

func formatPathForOutput(root, path string) string {
	if root == "" || path == "" {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	if strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}
