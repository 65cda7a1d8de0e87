package buildpipeline

import (
	"context"
	"runtime"
	"time"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"plcc/internal/ast"
	"plcc/internal/diag"
	"plcc/internal/parser"
	"plcc/internal/source"
)

// ParsedFile is the outcome of parsing one source.
type ParsedFile struct {
	Path    string
	Display string
	FileID  source.FileID
	Unit    *ast.CompilationUnit // nil when the file could not be loaded
	Bag     *diag.Bag
}

// ParseFiles loads paths into fileSet, then parses them in parallel with at
// most jobs workers. Results keep the order of paths. A file that cannot be
// read yields an IO4001 diagnostic, not an error; the returned error is
// only the context's.
func ParseFiles(ctx context.Context, fileSet *source.FileSet, paths, display []string, jobs, maxDiagnostics int, sink ProgressSink) ([]ParsedFile, error) {
	results := make([]ParsedFile, len(paths))
	loadErrors := make(map[int]error)
	for i, path := range paths {
		results[i] = ParsedFile{Path: path, Display: display[i], FileID: source.NoFileID}
		id, err := fileSet.Load(path)
		if err != nil {
			loadErrors[i] = err
			continue
		}
		results[i].FileID = id
	}

	maxErrors, err := safecast.Conv[uint](maxDiagnostics)
	if err != nil {
		maxErrors = 0
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(min(jobs, len(paths)), 1))

	for i := range results {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := &results[i]
			res.Bag = diag.NewBag(maxDiagnostics)
			start := time.Now()
			emitFile(sink, res.Display, StageParse, StatusWorking, nil, 0)

			if loadErr, failed := loadErrors[i]; failed {
				res.Bag.Add(diag.NewError(diag.IOLoadFileError, source.NoSpan, "failed to load file: "+loadErr.Error()))
				emitFile(sink, res.Display, StageParse, StatusError, loadErr, time.Since(start))
				return nil
			}

			r := diag.BagReporter{Bag: res.Bag}
			parsed := parser.ParseSource(fileSet, res.FileID, parser.Options{Reporter: r, MaxErrors: maxErrors})
			res.Unit = parsed.Unit

			status := StatusDone
			if res.Bag.HasErrors() {
				status = StatusError
			}
			emitFile(sink, res.Display, StageParse, status, nil, time.Since(start))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
