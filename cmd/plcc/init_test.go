package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"plcc/internal/buildpipeline"
)

func TestInitProjectBuilds(t *testing.T) {
	target := filepath.Join(t.TempDir(), "my plant")
	created, err := initProject(target)
	if err != nil {
		t.Fatalf("initProject: %v", err)
	}
	if strings.Join(created, ",") != "plcc.toml,src/main.st" {
		t.Errorf("created = %v", created)
	}

	m, ok, err := loadProjectManifest(target)
	if err != nil || !ok {
		t.Fatalf("loadProjectManifest = %v, %v", ok, err)
	}
	if m.Config.Package.Name != "my_plant" {
		t.Errorf("name = %q", m.Config.Package.Name)
	}

	files, err := buildpipeline.CollectSources(m.sourcePaths())
	if err != nil {
		t.Fatal(err)
	}
	res, err := buildpipeline.Build(context.Background(), &buildpipeline.BuildRequest{
		CompileRequest: buildpipeline.CompileRequest{
			Files:          files,
			BaseDir:        m.Root,
			Codegen:        m.codegenOptions(),
			MaxDiagnostics: 50,
		},
		OutDir: m.outDir(),
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if res.IRPath != filepath.Join(target, "build", "my_plant.ll") {
		t.Errorf("IR path = %q", res.IRPath)
	}
	if !strings.Contains(res.IR, "define void @main(%main_interface* %0)") {
		t.Errorf("sample program missing from IR:\n%s", res.IR)
	}
}

func TestInitProjectRefusesExistingManifest(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[package]\nname = \"x\"\n")
	if _, err := initProject(dir); err == nil || !strings.Contains(err.Error(), "already initialized") {
		t.Fatalf("err = %v", err)
	}
}

func TestInitProjectKeepsExistingMain(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "src"), 0o755); err != nil {
		t.Fatal(err)
	}
	mainPath := filepath.Join(dir, "src", "main.st")
	if err := os.WriteFile(mainPath, []byte("PROGRAM main\nEND_PROGRAM\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	created, err := initProject(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(created) != 1 {
		t.Errorf("created = %v", created)
	}
	data, _ := os.ReadFile(mainPath)
	if string(data) != "PROGRAM main\nEND_PROGRAM\n" {
		t.Error("main.st was overwritten")
	}
}

func TestOutputNameFromPath(t *testing.T) {
	tests := map[string]string{
		"src/main.st": "main",
		"motor.ST":    "motor",
		"src/":        "src",
		".":           "main",
	}
	for in, want := range tests {
		if got := outputNameFromPath(in); got != want {
			t.Errorf("outputNameFromPath(%q) = %q, want %q", in, got, want)
		}
	}
}
