// Package buildpipeline orchestrates the compilation process.
package buildpipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"plcc/internal/ast"
	"plcc/internal/codegen"
	"plcc/internal/diag"
	"plcc/internal/index"
	"plcc/internal/layout"
	"plcc/internal/observ"
	"plcc/internal/source"
	"plcc/internal/trace"
)

// ErrDiagnostics reports that the unit has error diagnostics; they are in
// CompileResult.Bag.
var ErrDiagnostics = errors.New("compilation reported errors")

// CompileRequest configures the shared compilation pipeline.
type CompileRequest struct {
	Files          []string
	BaseDir        string // display paths relative to this directory
	Codegen        codegen.Options
	Jobs           int
	MaxDiagnostics int
	Cache          *DiskCache // nil disables caching
	Progress       ProgressSink
}

// CompileResult captures compilation artefacts and stage timings.
type CompileResult struct {
	FileSet  *source.FileSet
	Bag      *diag.Bag
	IR       string
	Layout   string
	CacheHit bool
	Timings  Timings
	Timer    *observ.Timer
}

// Compile parses all files, builds the index and generates one LLVM
// module. Parse, index and codegen errors end up in the result's Bag and
// return ErrDiagnostics.
func Compile(ctx context.Context, req *CompileRequest) (result CompileResult, err error) {
	result.FileSet = source.NewFileSet()
	result.Timer = observ.NewTimer()
	if req == nil {
		return result, fmt.Errorf("missing compile request")
	}
	if len(req.Files) == 0 {
		return result, fmt.Errorf("no source files")
	}
	result.Bag = diag.NewBag(req.MaxDiagnostics)

	ctx, span := trace.StartSpan(ctx, trace.ScopeDriver, "compile")
	defer func() {
		detail := "ok"
		if err != nil {
			detail = err.Error()
		}
		span.WithExtra("files", fmt.Sprint(len(req.Files))).End(detail)
	}()

	display := DisplayNames(req.Files, req.BaseDir)
	emitQueued(req.Progress, display)

	// parse
	start := time.Now()
	var parsed []ParsedFile
	err = result.Timer.Time(string(StageParse), func() error {
		var perr error
		parsed, perr = ParseFiles(ctx, result.FileSet, req.Files, display, req.Jobs, req.MaxDiagnostics, req.Progress)
		return perr
	})
	result.Timings.Set(StageParse, time.Since(start))
	if err != nil {
		return result, err
	}
	units := make([]*ast.CompilationUnit, 0, len(parsed))
	ids := make([]source.FileID, 0, len(parsed))
	for _, p := range parsed {
		result.Bag.Merge(p.Bag)
		if p.Unit != nil {
			units = append(units, p.Unit)
			ids = append(ids, p.FileID)
		}
	}
	if result.Bag.HasErrors() {
		return result, ErrDiagnostics
	}

	// index
	start = time.Now()
	emitStage(req.Progress, display, StageIndex, StatusWorking, nil, 0)
	var idx *index.Index
	_ = result.Timer.Time(string(StageIndex), func() error {
		_, sp := trace.StartSpan(ctx, trace.ScopePass, "index")
		idx = index.Build(units, diag.BagReporter{Bag: result.Bag})
		sp.End("")
		return nil
	})
	result.Timings.Set(StageIndex, time.Since(start))
	if result.Bag.HasErrors() {
		emitStage(req.Progress, display, StageIndex, StatusError, ErrDiagnostics, 0)
		return result, ErrDiagnostics
	}
	emitStage(req.Progress, display, StageIndex, StatusDone, nil, result.Timings.Duration(StageIndex))

	// A hit skips codegen only; index diagnostics are already in the bag.
	opts := req.Codegen
	key := CacheKey(result.FileSet, ids, opts)
	if entry, ok, cerr := req.Cache.Get(key); cerr == nil && ok {
		result.IR, result.Layout, result.CacheHit = entry.IR, entry.Layout, true
		trace.Mark(ctx, trace.ScopePass, "cache.hit", key.String())
		emitStage(req.Progress, display, StageCodegen, StatusCached, nil, 0)
		return result, nil
	}

	// codegen
	start = time.Now()
	emitStage(req.Progress, display, StageCodegen, StatusWorking, nil, 0)
	err = result.Timer.Time(string(StageCodegen), func() error {
		mod, gerr := codegen.GenerateModule(ctx, idx, opts)
		if gerr != nil {
			return gerr
		}
		result.IR = mod.String()
		return nil
	})
	result.Timings.Set(StageCodegen, time.Since(start))
	if err != nil {
		emitStage(req.Progress, display, StageCodegen, StatusError, err, 0)
		var ce *codegen.CompileError
		if errors.As(err, &ce) {
			result.Bag.Add(ce.ToDiagnostic())
			return result, ErrDiagnostics
		}
		return result, err
	}
	result.Layout, err = layoutReport(idx, opts.Target)
	if err != nil {
		return result, err
	}
	emitStage(req.Progress, display, StageCodegen, StatusDone, nil, result.Timings.Duration(StageCodegen))

	if perr := req.Cache.Put(key, &CacheEntry{ModuleName: opts.ModuleName, Files: req.Files, IR: result.IR, Layout: result.Layout}); perr != nil {
		result.Bag.Add(diag.New(diag.SevWarning, diag.IOCacheWriteError, source.NoSpan, "cache write failed: "+perr.Error()))
	}
	return result, nil
}

// layoutReport lists every user struct and POU instance struct.
func layoutReport(idx *index.Index, target layout.Target) (string, error) {
	var names []string
	for _, dt := range idx.Types() {
		if dt.IsStruct() {
			names = append(names, dt.Name)
		}
	}
	var b strings.Builder
	if err := layout.New(target, idx).WriteReport(&b, names); err != nil {
		return "", err
	}
	return b.String(), nil
}
