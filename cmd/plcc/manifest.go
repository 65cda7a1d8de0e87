package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"plcc/internal/codegen"
)

const manifestName = "plcc.toml"

const noManifestMessage = "no plcc.toml found\nplease pass the sources explicitly, e.g.:\n  plcc build src/main.st"

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Package packageConfig `toml:"package"`
	Build   buildConfig   `toml:"build"`
	Codegen codegenConfig `toml:"codegen"`
}

type packageConfig struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

type buildConfig struct {
	Sources []string `toml:"sources"`
	Out     string   `toml:"out"`
}

type codegenConfig struct {
	UnsupportedReturn string `toml:"unsupported_return"`
}

func findManifest(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, manifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	path, ok, err := findManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadProjectConfig(path)
	if err != nil {
		return nil, true, err
	}
	return &projectManifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, true, nil
}

func loadProjectConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if err := validateProjectConfig(cfg, meta); err != nil {
		return projectConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func validateProjectConfig(cfg projectConfig, meta toml.MetaData) error {
	if !meta.IsDefined("package") {
		return errors.New("missing [package]")
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return errors.New("missing [package].name")
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown key %s", undecoded[0])
	}
	if _, err := codegen.ParseReturnPolicy(cfg.Codegen.UnsupportedReturn); err != nil {
		return fmt.Errorf("[codegen]: %w", err)
	}
	return nil
}

// sourcePaths returns [build].sources resolved against the manifest root.
// An empty list means the root itself.
func (m *projectManifest) sourcePaths() []string {
	if len(m.Config.Build.Sources) == 0 {
		return []string{m.Root}
	}
	paths := make([]string, 0, len(m.Config.Build.Sources))
	for _, s := range m.Config.Build.Sources {
		paths = append(paths, m.resolve(s))
	}
	return paths
}

// outDir returns [build].out, defaulting to <root>/build.
func (m *projectManifest) outDir() string {
	if strings.TrimSpace(m.Config.Build.Out) == "" {
		return filepath.Join(m.Root, "build")
	}
	return m.resolve(m.Config.Build.Out)
}

func (m *projectManifest) codegenOptions() codegen.Options {
	opts := codegen.DefaultOptions(strings.TrimSpace(m.Config.Package.Name))
	// validated on load
	opts.UnsupportedReturn, _ = codegen.ParseReturnPolicy(m.Config.Codegen.UnsupportedReturn)
	return opts
}

func (m *projectManifest) resolve(p string) string {
	p = filepath.FromSlash(strings.TrimSpace(p))
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(m.Root, p)
}
