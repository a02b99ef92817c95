package interp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"setslice/internal/ast"
	"setslice/internal/batch"
	"setslice/internal/diag"
	"setslice/internal/trace"
)

// ErrAborted is returned by Exec when a diagnostic stopped the program.
// The diagnostic itself has already been reported.
var ErrAborted = errors.New("execution aborted")

// Options configures an Interpreter.
type Options struct {
	Reporter diag.Reporter
	// Out receives print output; nil discards it.
	Out io.Writer
	// SkipCheck runs without the static pass (the caller already ran Check).
	SkipCheck bool
}

// Stats summarises one Exec call.
type Stats struct {
	Batches    int
	Statements int
	Prints     int
}

// Interpreter runs one program against its own environment.
type Interpreter struct {
	opts Options
	env  *Env
	prog *ast.Program
}

// New returns an Interpreter with an empty environment.
func New(opts Options) *Interpreter {
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	return &Interpreter{opts: opts, env: NewEnv()}
}

// Env exposes the buffers after (or during) execution.
func (in *Interpreter) Env() *Env { return in.env }

// Exec checks prog and runs its items in order.
func (in *Interpreter) Exec(ctx context.Context, prog *ast.Program) (Stats, error) {
	var stats Stats
	in.prog = prog
	tr := trace.FromContext(ctx)

	if !in.opts.SkipCheck && !Check(prog, in.opts.Reporter) {
		return stats, ErrAborted
	}

	span := trace.Begin(tr, trace.ScopePass, "exec", trace.ParentSpan(ctx))
	ctx = trace.WithSpan(ctx, span)
	defer func() {
		span.WithExtra("batches", strconv.Itoa(stats.Batches)).
			WithExtra("statements", strconv.Itoa(stats.Statements)).
			End("")
	}()

	for _, id := range prog.Order {
		item := prog.Items.Get(id)
		if item == nil {
			continue
		}
		var err error
		switch item.Kind {
		case ast.ItemLet:
			let, _ := prog.Items.Let(id)
			err = in.execLet(let)
		case ast.ItemSet:
			set, _ := prog.Items.Set(id)
			var n int
			n, err = in.execSet(ctx, set)
			stats.Batches++
			stats.Statements += n
		case ast.ItemPrint:
			pr, _ := prog.Items.Print(id)
			err = in.execPrint(pr)
			stats.Prints++
		}
		if err != nil {
			return stats, err
		}
	}
	return stats, nil
}

func (in *Interpreter) execLet(let *ast.LetItem) error {
	var elems []int64
	switch let.Init {
	case ast.InitRepeat:
		v, err := in.value(let.Elems[0])
		if err != nil {
			return in.abort(err)
		}
		n, err := in.index(let.Elems[1], diag.SemaNegativeSize, "count")
		if err != nil {
			return in.abort(err)
		}
		if n > MaxRepeat {
			return in.abort(in.sema(diag.SemaRepeatTooLarge, let.Elems[1].Span, "count %d exceeds the limit of %d", n, MaxRepeat))
		}
		elems = make([]int64, n)
		for i := range elems {
			elems[i] = v
		}
	default:
		elems = make([]int64, 0, len(let.Elems))
		for _, e := range let.Elems {
			v, err := in.value(e)
			if err != nil {
				return in.abort(err)
			}
			elems = append(elems, v)
		}
	}
	in.env.define(let.Name, elems, let.Init == ast.InitScalar, let.NameSpan)
	return nil
}

func (in *Interpreter) execPrint(pr *ast.PrintItem) error {
	if _, ok := in.env.lookup(pr.Name); !ok {
		return in.abort(in.sema(diag.SemaUnresolvedSymbol, pr.NameSpan, "unknown name `%s`", pr.Name))
	}
	if _, err := fmt.Fprintln(in.opts.Out, in.env.Format(pr.Name)); err != nil {
		return fmt.Errorf("print %s: %w", pr.Name, err)
	}
	return nil
}

// execSet runs one block as a batch and returns how many statements
// committed. Each assignment is lowered only after the previous one ran.
func (in *Interpreter) execSet(ctx context.Context, set *ast.SetItem) (int, error) {
	run := batch.NewRunner[int64](ctx)
	for _, id := range set.Assigns {
		as := in.prog.Assigns.Get(id)
		st, failed, err := in.lower(as, run.Next())
		if err != nil {
			run.Abort("sema")
			return run.Committed(), in.abort(err)
		}
		if failed != nil {
			run.Abort("source out of range")
			in.report(*failed)
			return run.Committed(), ErrAborted
		}
		if err := run.Exec(st); err != nil {
			var be *batch.Error
			if !errors.As(err, &be) {
				return run.Committed(), fmt.Errorf("run batch: %w", err)
			}
			in.reportBatchError(set, as, be)
			return run.Committed(), ErrAborted
		}
	}
	run.Close()
	return run.Committed(), nil
}

func (in *Interpreter) reportBatchError(set *ast.SetItem, as *ast.Assign, be *batch.Error) {
	code := diag.BatInternal
	switch {
	case errors.Is(be, batch.ErrLengthMismatch):
		code = diag.BatLengthMismatch
	case errors.Is(be, batch.ErrRegionOutOfRange):
		code = diag.BatRegionOutOfRange
	case errors.Is(be, batch.ErrNotCloneable):
		code = diag.BatNotCloneable
	}

	primary := set.Span
	if as != nil {
		primary = as.Span
	}
	d := diag.NewError(code, primary, be.Error()).
		WithNote(set.Span, fmt.Sprintf("statement %d of this set block; earlier statements were applied", be.Position))
	in.report(d)
}

// abort reports a semantic error and converts it to ErrAborted.
func (in *Interpreter) abort(err error) error {
	var se *semaError
	if errors.As(err, &se) {
		in.report(se.d)
		return ErrAborted
	}
	return err
}

func (in *Interpreter) report(d diag.Diagnostic) {
	if in.opts.Reporter == nil {
		return
	}
	in.opts.Reporter.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes, d.Fixes)
}
