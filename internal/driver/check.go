package driver

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"setslice/internal/diag"
	"setslice/internal/interp"
	"setslice/internal/observ"
	"setslice/internal/pipeline"
	"setslice/internal/project"
	"setslice/internal/source"
	"setslice/internal/trace"
)

// CheckResult is the outcome of dry-running one script.
type CheckResult struct {
	Path     string
	FileID   source.FileID
	Bag      *diag.Bag
	Stats    interp.Stats
	CacheHit bool
	Timing   *observ.Report
}

// Failed reports whether the script has errors.
func (r CheckResult) Failed() bool { return r.Bag.HasErrors() }

// ListScripts returns the sorted *.sl files under target, or target itself
// when it is a file.
func ListScripts(target string) ([]string, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{target}, nil
	}

	var files []string
	err = filepath.WalkDir(target, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == project.ScriptExt {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// CheckDir parses and dry-runs every script under target in parallel. print
// output is discarded. Results follow ListScripts order.
func CheckDir(ctx context.Context, target string, opts Options) (*source.FileSet, []CheckResult, error) {
	files, err := ListScripts(target)
	if err != nil {
		return nil, nil, err
	}
	base := target
	if len(files) == 1 && files[0] == target {
		base = filepath.Dir(target)
	}

	fileSet := source.NewFileSetWithBase(base)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopeDriver, "check", trace.ParentSpan(ctx))
	span.WithExtra("files", fmt.Sprint(len(files)))
	ctx = trace.WithSpan(ctx, span)
	defer span.End("")

	for _, path := range files {
		pipeline.Emit(opts.Sink, pipeline.Event{File: path, Stage: pipeline.StageLoad, Status: pipeline.StatusQueued})
	}
	pipeline.Emit(opts.Sink, pipeline.Event{Stage: pipeline.StageCheck, Status: pipeline.StatusWorking})

	// FileSet не потокобезопасен: загружаем всё заранее
	fileIDs := make([]source.FileID, len(files))
	loadErrors := make(map[int]error)
	for i, path := range files {
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[i] = err
			continue
		}
		fileIDs[i] = fileID
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]CheckResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			bag := diag.NewBag(opts.maxDiagnostics())
			if loadErr, failed := loadErrors[i]; failed {
				bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, "failed to load file: "+loadErr.Error()))
				results[i] = CheckResult{Path: path, Bag: bag}
				pipeline.Emit(opts.Sink, pipeline.Event{File: path, Stage: pipeline.StageLoad, Status: pipeline.StatusError, Err: loadErr})
				return nil
			}

			res, err := checkFile(gctx, fileSet.Get(fileIDs[i]), bag, opts)
			res.Path = path
			results[i] = res
			return err
		})
	}

	if err := g.Wait(); err != nil {
		pipeline.Emit(opts.Sink, pipeline.Event{Stage: pipeline.StageCheck, Status: pipeline.StatusError, Err: err})
		return fileSet, results, err
	}
	pipeline.Emit(opts.Sink, pipeline.Event{Stage: pipeline.StageCheck, Status: pipeline.StatusDone})
	return fileSet, results, nil
}

func checkFile(ctx context.Context, file *source.File, bag *diag.Bag, opts Options) (CheckResult, error) {
	started := time.Now()
	timer := observ.NewTimer()
	res := CheckResult{FileID: file.ID, Bag: bag}
	emit := func(stage pipeline.Stage, status pipeline.Status, err error) {
		pipeline.Emit(opts.Sink, pipeline.Event{File: file.Path, Stage: stage, Status: status, Err: err, Elapsed: time.Since(started)})
	}

	emit(pipeline.StageParse, pipeline.StatusWorking, nil)
	pr := &ParseResult{File: file, Bag: bag}
	pr.Program, pr.CacheHit = parseFile(ctx, file, bag, opts, timer)
	res.CacheHit = pr.CacheHit
	if bag.HasErrors() {
		pr.finish(opts, timer, "check")
		res.Timing = pr.Timing
		emit(pipeline.StageParse, pipeline.StatusError, nil)
		return res, nil
	}

	emit(pipeline.StageCheck, pipeline.StatusWorking, nil)
	runOpts := opts
	runOpts.Stdout = io.Discard
	stats, err := execProgram(ctx, pr, runOpts, timer)
	res.Stats = stats
	pr.finish(opts, timer, "check")
	res.Timing = pr.Timing
	if err != nil {
		emit(pipeline.StageCheck, pipeline.StatusError, err)
		return res, err
	}
	if bag.HasErrors() {
		emit(pipeline.StageCheck, pipeline.StatusError, nil)
		return res, nil
	}
	emit(pipeline.StageCheck, pipeline.StatusDone, nil)
	return res, nil
}
