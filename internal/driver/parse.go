package driver

import (
	"context"
	"fmt"
	"time"

	"fortio.org/safecast"

	"setslice/internal/ast"
	"setslice/internal/diag"
	"setslice/internal/observ"
	"setslice/internal/parser"
	"setslice/internal/project"
	"setslice/internal/source"
	"setslice/internal/trace"
)

type ParseResult struct {
	FileSet  *source.FileSet
	File     *source.File
	Program  *ast.Program
	Bag      *diag.Bag
	CacheHit bool
	Timing   *observ.Report
}

// Parse loads and parses one script. The error is only non-nil when the file
// cannot be read; syntax errors are in Bag.
func Parse(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	timer := observ.NewTimer()
	fs, file, err := loadFile(path, timer)
	if err != nil {
		return nil, err
	}
	res := &ParseResult{FileSet: fs, File: file, Bag: diag.NewBag(opts.maxDiagnostics())}
	res.Program, res.CacheHit = parseFile(ctx, file, res.Bag, opts, timer)
	res.finish(opts, timer, "parse")
	return res, nil
}

func loadFile(path string, timer *observ.Timer) (*source.FileSet, *source.File, error) {
	done := timer.Track("load")
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		done("failed")
		return nil, nil, err
	}
	done("")
	return fs, fs.Get(fileID), nil
}

func (r *ParseResult) finish(opts Options, timer *observ.Timer, kind string) {
	if !opts.Timings {
		return
	}
	report := timer.Report()
	r.Timing = &report
	appendTimingDiagnostic(r.Bag, timingPayload{
		Kind:    kind,
		Path:    r.File.Path,
		TotalMS: report.TotalMS,
		Phases:  report.Phases,
	}, r.File.ID)
}

// parseFile returns the program of file, from the cache when possible. Only
// programs that parsed without any diagnostic are cached.
func parseFile(ctx context.Context, file *source.File, bag *diag.Bag, opts Options, timer *observ.Timer) (*ast.Program, bool) {
	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopePass, "parse", trace.ParentSpan(ctx))
	key := project.CacheKey(file.Hash, CacheSchemaVersion)

	if opts.Cache != nil {
		start := time.Now()
		if prog, ok := loadCached(opts.Cache, key, file, bag); ok {
			timer.Record("lex+parse", time.Since(start), "cache hit")
			span.WithExtra("cache", "hit").End(file.Path)
			return prog, true
		}
	}

	done := timer.Track("lex+parse")
	maxErrors, err := safecast.Conv[uint](opts.maxDiagnostics())
	if err != nil {
		maxErrors = DefaultMaxDiagnostics
	}
	res := parser.ParseFile(file, parser.Options{
		Reporter:  diag.BagReporter{Bag: bag},
		MaxErrors: maxErrors,
	})
	done(fmt.Sprintf("%d items", len(res.Program.Order)))

	if opts.Cache != nil && bag.Len() == 0 {
		storeCached(opts.Cache, key, file, res.Program, bag)
	}
	span.WithExtra("cache", "miss").End(file.Path)
	return res.Program, false
}

func loadCached(cache *DiskCache, key project.Digest, file *source.File, bag *diag.Bag) (*ast.Program, bool) {
	var payload ProgramPayload
	ok, err := cache.Get(key, &payload)
	if err != nil {
		reportCacheError(bag, file, err)
		return nil, false
	}
	if !ok || payload.Schema != CacheSchemaVersion || payload.ContentHash != file.Hash || payload.Program == nil {
		return nil, false
	}
	// записи хранят FileID того запуска, который их создал
	payload.Program.Rebind(file.ID)
	return payload.Program, true
}

func storeCached(cache *DiskCache, key project.Digest, file *source.File, prog *ast.Program, bag *diag.Bag) {
	err := cache.Put(key, &ProgramPayload{
		Schema:      CacheSchemaVersion,
		Path:        file.Path,
		ContentHash: file.Hash,
		Program:     prog,
	})
	if err != nil {
		reportCacheError(bag, file, err)
	}
}

// reportCacheError records a cache failure as a warning; the cache never
// fails a run.
func reportCacheError(bag *diag.Bag, file *source.File, err error) {
	bag.Add(diag.New(diag.SevWarning, diag.IOCacheError,
		source.Span{File: file.ID}, "parse cache: "+err.Error()))
}
