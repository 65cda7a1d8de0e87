package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new plcc project",
	Long: `Initialize a new project by creating a manifest (plcc.toml) and a sample
program (src/main.st). Without an argument the current directory is used; a
non-existing name is created as a directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	target := wd
	if len(args) > 0 && args[0] != "." {
		target = args[0]
		if !filepath.IsAbs(target) {
			target = filepath.Join(wd, target)
		}
	}

	created, err := initProject(target)
	if err != nil {
		return err
	}

	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if quiet {
		return nil
	}
	rel := target
	if r, err := filepath.Rel(wd, target); err == nil {
		rel = r
	}
	fmt.Fprintf(os.Stdout, "Initialized plcc project in %s\n", rel)
	for _, f := range created {
		fmt.Fprintf(os.Stdout, "  - %s\n", f)
	}
	return nil
}

// initProject writes plcc.toml and src/main.st below target and returns the
// created files, relative to target. An existing main.st is kept.
func initProject(target string) ([]string, error) {
	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		if err = os.MkdirAll(target, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return nil, fmt.Errorf("%q is not a directory", target)
	}

	manifestPath := filepath.Join(target, manifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		return nil, fmt.Errorf("project already initialized: %s exists", manifestPath)
	}
	if err := os.WriteFile(manifestPath, []byte(buildDefaultManifest(projectName(target))), 0o600); err != nil {
		return nil, fmt.Errorf("failed to write manifest: %w", err)
	}
	created := []string{manifestName}

	srcDir := filepath.Join(target, "src")
	if err := os.MkdirAll(srcDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %q: %w", srcDir, err)
	}
	mainPath := filepath.Join(srcDir, "main.st")
	if _, err := os.Stat(mainPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(mainPath, []byte(defaultMainST), 0o600); err != nil {
			return nil, fmt.Errorf("failed to write main.st: %w", err)
		}
		created = append(created, "src/main.st")
	}
	return created, nil
}

// projectName derives the module name from the directory name.
func projectName(dir string) string {
	name := strings.TrimSpace(filepath.Base(dir))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "plcc-project"
	}
	return strings.ReplaceAll(name, " ", "_")
}

func buildDefaultManifest(name string) string {
	return fmt.Sprintf(`# plcc project manifest
[package]
name = %q
version = "0.1.0"

[build]
sources = ["src"]
out = "build"

[codegen]
unsupported_return = "error"
`, name)
}

const defaultMainST = `FUNCTION add : DINT
VAR_INPUT
    a : DINT;
    b : DINT;
END_VAR
add := a + b;
END_FUNCTION

PROGRAM main
VAR
    total : DINT;
END_VAR
total := add(a := total, b := 1);
END_PROGRAM
`
