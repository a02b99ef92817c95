package driver

import (
	"context"
	"errors"
	"fmt"

	"setslice/internal/diag"
	"setslice/internal/interp"
	"setslice/internal/observ"
	"setslice/internal/trace"
)

type RunResult struct {
	*ParseResult
	Stats interp.Stats
	// Executed is false when parsing failed and nothing ran.
	Executed bool
}

// Run parses and executes one script, writing print output to opts.Stdout.
// Diagnostics, including runtime ones, end up in Bag; the error is reserved
// for I/O failures.
func Run(ctx context.Context, path string, opts Options) (*RunResult, error) {
	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopeDriver, "run", trace.ParentSpan(ctx))
	ctx = trace.WithSpan(ctx, span)
	status := "ok"
	defer func() { span.End(status) }()

	timer := observ.NewTimer()
	fs, file, err := loadFile(path, timer)
	if err != nil {
		status = "load failed"
		return nil, err
	}
	res := &RunResult{ParseResult: &ParseResult{FileSet: fs, File: file, Bag: diag.NewBag(opts.maxDiagnostics())}}
	res.Program, res.CacheHit = parseFile(ctx, file, res.Bag, opts, timer)
	if res.Bag.HasErrors() {
		status = "parse failed"
		res.finish(opts, timer, "run")
		return res, nil
	}

	stats, err := execProgram(ctx, res.ParseResult, opts, timer)
	res.Stats, res.Executed = stats, true
	res.finish(opts, timer, "run")
	if err != nil {
		status = "failed"
		return res, err
	}
	if res.Bag.HasErrors() {
		status = "aborted"
	}
	return res, nil
}

func execProgram(ctx context.Context, pr *ParseResult, opts Options, timer *observ.Timer) (interp.Stats, error) {
	done := timer.Track("exec")
	in := interp.New(interp.Options{
		Reporter: diag.NewDedupReporter(diag.BagReporter{Bag: pr.Bag}),
		Out:      opts.Stdout,
	})
	stats, err := in.Exec(ctx, pr.Program)
	done(fmt.Sprintf("%d batches, %d statements", stats.Batches, stats.Statements))
	if err != nil && !errors.Is(err, interp.ErrAborted) {
		return stats, err
	}
	return stats, nil
}
