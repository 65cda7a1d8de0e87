package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"plcc/internal/codegen"
)

func writeManifest(t *testing.T, dir, data string) string {
	t.Helper()
	path := filepath.Join(dir, manifestName)
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write %s: %v", manifestName, err)
	}
	return path
}

func TestLoadProjectConfig(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
[package]
name = "demo"

[build]
sources = ["src", "lib/util.st"]
out = "out"

[codegen]
unsupported_return = "abort"
`)
	cfg, err := loadProjectConfig(path)
	if err != nil {
		t.Fatalf("loadProjectConfig: %v", err)
	}
	if cfg.Package.Name != "demo" {
		t.Errorf("name = %q", cfg.Package.Name)
	}
	if len(cfg.Build.Sources) != 2 || cfg.Build.Out != "out" {
		t.Errorf("build = %+v", cfg.Build)
	}
	if cfg.Codegen.UnsupportedReturn != "abort" {
		t.Errorf("unsupported_return = %q", cfg.Codegen.UnsupportedReturn)
	}
}

func TestLoadProjectConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"no package", "[build]\nout = \"x\"\n", "missing [package]"},
		{"no name", "[package]\nversion = \"1\"\n", "missing [package].name"},
		{"blank name", "[package]\nname = \"  \"\n", "missing [package].name"},
		{"bad policy", "[package]\nname = \"x\"\n[codegen]\nunsupported_return = \"ignore\"\n", "unsupported_return"},
		{"unknown key", "[package]\nname = \"x\"\nmain = \"a.st\"\n", "unknown key package.main"},
		{"bad toml", "[package\n", "failed to parse TOML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, t.TempDir(), tt.data)
			_, err := loadProjectConfig(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[package]\nname = \"demo\"\n")
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	m, ok, err := loadProjectManifest(nested)
	if err != nil || !ok {
		t.Fatalf("loadProjectManifest = %v, %v", ok, err)
	}
	if m.Root != root {
		t.Errorf("root = %q, want %q", m.Root, root)
	}
}

func TestManifestPaths(t *testing.T) {
	m := &projectManifest{Root: "/work/demo", Config: projectConfig{Package: packageConfig{Name: "demo"}}}
	if got := m.sourcePaths(); len(got) != 1 || got[0] != "/work/demo" {
		t.Errorf("default sources = %v", got)
	}
	if got := m.outDir(); got != "/work/demo/build" {
		t.Errorf("default out = %q", got)
	}

	m.Config.Build = buildConfig{Sources: []string{"src", "/abs/lib"}, Out: "target/ir"}
	got := m.sourcePaths()
	if len(got) != 2 || got[0] != "/work/demo/src" || got[1] != "/abs/lib" {
		t.Errorf("sources = %v", got)
	}
	if got := m.outDir(); got != "/work/demo/target/ir" {
		t.Errorf("out = %q", got)
	}
}

func TestManifestCodegenOptions(t *testing.T) {
	m := &projectManifest{Config: projectConfig{
		Package: packageConfig{Name: " demo "},
		Codegen: codegenConfig{UnsupportedReturn: "abort"},
	}}
	opts := m.codegenOptions()
	if opts.ModuleName != "demo" {
		t.Errorf("module name = %q", opts.ModuleName)
	}
	if opts.UnsupportedReturn != codegen.ReturnAbort {
		t.Errorf("policy = %v", opts.UnsupportedReturn)
	}
}
