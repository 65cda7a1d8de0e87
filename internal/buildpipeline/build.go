package buildpipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// BuildRequest configures output generation for a compilation.
type BuildRequest struct {
	CompileRequest
	OutDir     string
	OutputName string // base name without extension; defaults to the module name
	EmitLayout bool
}

// BuildResult captures build artefacts and timings.
type BuildResult struct {
	CompileResult
	IRPath     string
	LayoutPath string
}

// Build compiles and writes <out>/<name>.ll, plus <name>.layout.txt with
// EmitLayout.
func Build(ctx context.Context, req *BuildRequest) (BuildResult, error) {
	var result BuildResult
	if req == nil {
		return result, fmt.Errorf("missing build request")
	}
	compiled, err := Compile(ctx, &req.CompileRequest)
	result.CompileResult = compiled
	if err != nil {
		return result, err
	}

	name := req.OutputName
	if name == "" {
		name = req.Codegen.ModuleName
	}
	if name == "" {
		name = "main"
	}
	outDir := req.OutDir
	if outDir == "" {
		outDir = "."
	}

	start := time.Now()
	emitStage(req.Progress, nil, StageEmit, StatusWorking, nil, 0)
	if err := os.MkdirAll(outDir, 0o750); err != nil {
		err = fmt.Errorf("failed to create output dir: %w", err)
		emitStage(req.Progress, nil, StageEmit, StatusError, err, 0)
		return result, err
	}

	result.IRPath = filepath.Join(outDir, name+".ll")
	if err := os.WriteFile(result.IRPath, []byte(compiled.IR), 0o600); err != nil {
		err = fmt.Errorf("failed to write LLVM IR: %w", err)
		emitStage(req.Progress, nil, StageEmit, StatusError, err, 0)
		return result, err
	}
	if req.EmitLayout {
		result.LayoutPath = filepath.Join(outDir, name+".layout.txt")
		if err := os.WriteFile(result.LayoutPath, []byte(compiled.Layout), 0o600); err != nil {
			err = fmt.Errorf("failed to write layout report: %w", err)
			emitStage(req.Progress, nil, StageEmit, StatusError, err, 0)
			return result, err
		}
	}

	result.Timings.Set(StageEmit, time.Since(start))
	emitStage(req.Progress, nil, StageEmit, StatusDone, nil, result.Timings.Duration(StageEmit))
	return result, nil
}
