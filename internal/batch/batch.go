package batch

import (
	"context"
	"fmt"
	"strconv"

	"setslice/internal/trace"
)

// Batch is an ordered list of statements executed as one unit.
type Batch[T any] struct {
	stmts []Statement[T]
}

// New creates a batch holding stmts in order.
func New[T any](stmts ...Statement[T]) *Batch[T] {
	return &Batch[T]{stmts: stmts}
}

// Add appends statements and returns the batch for chaining.
func (b *Batch[T]) Add(stmts ...Statement[T]) *Batch[T] {
	b.stmts = append(b.stmts, stmts...)
	return b
}

// Len returns the number of statements.
func (b *Batch[T]) Len() int { return len(b.stmts) }

// Statements returns the statements in execution order.
func (b *Batch[T]) Statements() []Statement[T] { return b.stmts }

// Run executes the batch. See the package-level Run.
func (b *Batch[T]) Run(ctx context.Context) error {
	return Run(ctx, b.stmts...)
}

// Run executes stmts strictly in order. Each statement is validated and then
// transferred before the next one starts. The first failure is returned as
// an *Error and aborts the batch; earlier statements stay committed.
//
// ctx only carries the tracer; a started batch is never cancelled.
func Run[T any](ctx context.Context, stmts ...Statement[T]) error {
	r := NewRunner[T](ctx)
	for i := range stmts {
		if err := r.Exec(stmts[i]); err != nil {
			return err
		}
	}
	r.Close()
	return nil
}

// Runner executes a batch one statement at a time, for callers that must
// build statement k only after statement k-1 has committed. The zero value
// is not usable; create one with NewRunner.
type Runner[T any] struct {
	tr      trace.Tracer
	span    *trace.Span
	markers []Marker
	err     error
	closed  bool
}

// NewRunner opens a batch. The caller must finish it with Close or Abort
// unless Exec already failed.
func NewRunner[T any](ctx context.Context) *Runner[T] {
	tr := trace.FromContext(ctx)
	return &Runner[T]{
		tr:   tr,
		span: trace.Begin(tr, trace.ScopeBatch, "batch", trace.ParentSpan(ctx)),
	}
}

// Next returns the 1-based position the next statement will run at.
func (r *Runner[T]) Next() int {
	return Position(r.markers) + 1
}

// Committed returns how many statements completed.
func (r *Runner[T]) Committed() int {
	n := Position(r.markers)
	if r.err != nil {
		n--
	}
	return n
}

// Exec validates and transfers st. After a failure the batch is closed and
// every further call returns the same error.
func (r *Runner[T]) Exec(st Statement[T]) error {
	if r.err != nil {
		return r.err
	}
	if r.closed {
		return ErrBatchClosed
	}
	r.markers = append(r.markers, Marker{})
	pos := Position(r.markers)

	stmtSpan := trace.Begin(r.tr, trace.ScopeStatement, "stmt:"+strconv.Itoa(pos), r.span.ID())
	if err := st.execute(pos); err != nil {
		stmtSpan.End(err.Error())
		r.err = err
		r.finish(pos, "aborted")
		return err
	}
	stmtSpan.WithExtra("mode", st.Mode.String()).End(describe(&st))
	return nil
}

// Abort closes the batch because the statement at Next could not be built.
// Committed statements stay committed.
func (r *Runner[T]) Abort(reason string) {
	r.finish(r.Next(), reason)
}

// Close ends a batch whose statements all succeeded.
func (r *Runner[T]) Close() {
	if r.closed {
		return
	}
	r.closed = true
	r.span.WithExtra("statements", strconv.Itoa(Position(r.markers))).End("ok")
}

func (r *Runner[T]) finish(failedAt int, reason string) {
	if r.closed {
		return
	}
	r.closed = true
	r.span.WithExtra("failed_at", strconv.Itoa(failedAt)).End(reason)
}

func describe[T any](st *Statement[T]) string {
	if st.Target == nil {
		return st.Region.String()
	}
	return fmt.Sprintf("%s%s <- %d", st.Target.Name, st.Region, len(st.Source))
}
