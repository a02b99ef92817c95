package batch

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"setslice/internal/trace"
)

func TestScenarioMoveLists(t *testing.T) {
	v := NewBuffer("v", make([]int, 6))
	array := []int{2, 3}
	vec := []int{4, 5, 6}

	err := New(
		ListStmt(v, Span(0, 1), 0),
		MoveStmt(v, Span(1, 3), array),
		MoveStmt(v, From(3), vec),
	).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, []int{0, 2, 3, 4, 5, 6}, v.Elems)

	// sources now hold what the regions held before
	require.Equal(t, []int{0, 0}, array)
	require.Equal(t, []int{0, 0, 0}, vec)
}

func TestScenarioBorrowedCopies(t *testing.T) {
	v := NewBuffer("v", make([]int, 8))
	values := []int{4, 5, 6}
	array := []int{0, 2}
	deref := []int{7, 8}

	err := Run(context.Background(),
		CopyStmt(v, Inclusive(1, 2), []int{5, 3}),
		CopyStmt(v, Span(3, 6), values),
		CopyStmt(v, To(2), array),
		CopyStmt(v, From(6), deref),
	)
	require.NoError(t, err)
	require.Equal(t, []int{0, 2, 3, 4, 5, 6, 7, 8}, v.Elems)
	require.Equal(t, []int{4, 5, 6}, values, "borrowed source must be unchanged")
}

func TestScenarioRawReinterpret(t *testing.T) {
	v := NewBuffer("v", make([]cell, 8))
	values := []cell{{4}, {5}, {6}}

	err := Run(context.Background(),
		UnsafeRefStmt(v, Inclusive(1, 2), 2, []cell{{5}, {3}}),
		UnsafeRefStmt(v, Span(3, 6), 3, values),
		UnsafeRefStmt(v, To(2), 2, []cell{{0}, {2}}),
		UnsafeRefStmt(v, From(6), 2, []cell{{7}, {8}}),
	)
	require.NoError(t, err)
	want := []cell{{0}, {2}, {3}, {4}, {5}, {6}, {7}, {8}}
	if diff := cmp.Diff(want, v.Elems, cmp.AllowUnexported(cell{})); diff != "" {
		t.Fatalf("buffer mismatch (-want +got):\n%s", diff)
	}
}

func TestScenarioLengthMismatch(t *testing.T) {
	v := NewBuffer("v", make([]int, 3))

	err := Run(context.Background(), CopyStmt(v, Full(), []int{1, 2}))
	require.Error(t, err)

	var be *Error
	require.True(t, errors.As(err, &be))
	require.True(t, errors.Is(err, ErrLengthMismatch))
	require.Equal(t, 1, be.Position)
	require.Equal(t, 3, be.Expected)
	require.Equal(t, 2, be.Actual)
	require.Equal(t, Copy, be.Mode)
	require.Equal(t, "v", be.Target)
	require.Equal(t, []int{0, 0, 0}, v.Elems)
}

func TestEveryModeRejectsMismatchWithoutWriting(t *testing.T) {
	clone := func(x int) int { return x }
	stmts := map[string]Statement[int]{
		"move":  MoveStmt(NewBuffer("v", []int{9, 9, 9}), Full(), []int{1, 2}),
		"list":  ListStmt(NewBuffer("v", []int{9, 9, 9}), Full(), 1, 2, 3, 4),
		"copy":  CopyStmt(NewBuffer("v", []int{9, 9, 9}), Full(), []int{1}),
		"clone": CloneFuncStmt(NewBuffer("v", []int{9, 9, 9}), To(2), []int{1, 2, 3}, clone),
		"raw":   UnsafeRefStmt(NewBuffer("v", []int{9, 9, 9}), Full(), 3, []int{1, 2}),
	}
	for name, st := range stmts {
		t.Run(name, func(t *testing.T) {
			err := Run(context.Background(), st)
			require.True(t, IsLengthMismatch(err), "got %v", err)
			require.Equal(t, []int{9, 9, 9}, st.Target.Elems)
		})
	}
}

func TestListStmtSizing(t *testing.T) {
	for _, k := range []int{0, 1, 2, 3, 8} {
		values := make([]int, k)
		for i := range values {
			values[i] = i + 1
		}
		v := NewBuffer("v", make([]int, k))
		st := ListStmt(v, Full(), values...)
		require.Equal(t, Move, st.Mode)
		require.Len(t, st.Source, k)
		require.NoError(t, Run(context.Background(), st))
		require.Equal(t, values, v.Elems)
	}
}

func TestListStmtOwnsItsValues(t *testing.T) {
	values := []int{1, 2}
	v := NewBuffer("v", []int{0, 0})
	require.NoError(t, Run(context.Background(), ListStmt(v, Full(), values...)))
	require.Equal(t, []int{1, 2}, values, "list values must not be consumed")
}

func TestCloneStmt(t *testing.T) {
	v := NewBuffer("v", make([]owned, 2))
	src := []owned{{tags: []string{"x"}}, {tags: []string{"y"}}}
	require.NoError(t, Run(context.Background(), CloneStmt(v, Full(), src)))
	src[1].tags[0] = "changed"
	require.Equal(t, "y", v.Elems[1].tags[0])
}

func TestCloneWithoutFunction(t *testing.T) {
	v := NewBuffer("v", make([]int, 1))
	st := Statement[int]{Target: v, Region: Full(), Mode: Clone, Source: []int{1}}
	err := Run(context.Background(), st)
	require.ErrorIs(t, err, ErrNotCloneable)
}

func TestRawWithoutDeclaredSize(t *testing.T) {
	v := NewBuffer("v", make([]int, 1))
	st := Statement[int]{Target: v, Region: Full(), Mode: RawReinterpret, Source: []int{1}}
	require.ErrorIs(t, Run(context.Background(), st), ErrSizeRequired)
}

func TestAbortKeepsEarlierStatements(t *testing.T) {
	v := NewBuffer("v", make([]int, 4))
	err := Run(context.Background(),
		ListStmt(v, To(2), 1, 2),
		CopyStmt(v, From(2), []int{3}),
		ListStmt(v, Full(), 9, 9, 9, 9),
	)
	var be *Error
	require.ErrorAs(t, err, &be)
	require.Equal(t, 2, be.Position)
	require.Equal(t, []int{1, 2, 0, 0}, v.Elems)
}

func TestRegionOutOfRangeReportsPosition(t *testing.T) {
	v := NewBuffer("v", make([]int, 4))
	err := Run(context.Background(),
		ListStmt(v, To(1), 5),
		ListStmt(v, Span(3, 6), 1, 2, 3),
	)
	var be *Error
	require.ErrorAs(t, err, &be)
	require.ErrorIs(t, err, ErrRegionOutOfRange)
	require.Equal(t, 2, be.Position)
	require.Equal(t, []int{5, 0, 0, 0}, v.Elems)
}

func TestMissingTarget(t *testing.T) {
	err := Run(context.Background(), CopyStmt[int](nil, Full(), nil))
	require.ErrorIs(t, err, ErrNoTarget)
}

func TestRunEmitsTrace(t *testing.T) {
	var buf bytes.Buffer
	tr := trace.NewStreamTracer(&buf, trace.LevelDebug, trace.FormatText)
	ctx := trace.WithTracer(context.Background(), tr)

	v := NewBuffer("v", make([]int, 2))
	require.NoError(t, Run(ctx, ListStmt(v, Full(), 1, 2)))

	out := buf.String()
	require.True(t, strings.Contains(out, "stmt:1"), out)
	require.True(t, strings.Contains(out, "statements=1"), out)
}

func TestRunnerSeesEarlierWrites(t *testing.T) {
	n := NewBuffer("n", []int{1})
	v := NewBuffer("v", make([]int, 3))
	r := NewRunner[int](context.Background())

	require.Equal(t, 1, r.Next())
	require.NoError(t, r.Exec(ListStmt(n, Full(), 3)))

	// второй оператор строится только после того, как первый применён
	require.Equal(t, 2, r.Next())
	require.NoError(t, r.Exec(CopyStmt(v, To(n.Elems[0]), []int{7, 8, 9})))
	r.Close()

	require.Equal(t, 2, r.Committed())
	require.Equal(t, []int{7, 8, 9}, v.Elems)
	require.ErrorIs(t, r.Exec(ListStmt(n, Full(), 0)), ErrBatchClosed)
}

func TestRunnerStopsAtFirstFailure(t *testing.T) {
	v := NewBuffer("v", []int{0, 0})
	r := NewRunner[int](context.Background())

	require.NoError(t, r.Exec(ListStmt(v, To(1), 5)))
	err := r.Exec(CopyStmt(v, Full(), []int{1}))
	var be *Error
	require.True(t, errors.As(err, &be))
	require.Equal(t, 2, be.Position)
	require.Equal(t, 1, r.Committed())

	require.Equal(t, err, r.Exec(ListStmt(v, Full(), 1, 2)), "a failed runner keeps its error")
	require.Equal(t, []int{5, 0}, v.Elems)
}

func TestRunnerAbortTracesPosition(t *testing.T) {
	var buf bytes.Buffer
	tr := trace.NewStreamTracer(&buf, trace.LevelDebug, trace.FormatText)
	ctx := trace.WithTracer(context.Background(), tr)

	v := NewBuffer("v", make([]int, 1))
	r := NewRunner[int](ctx)
	require.NoError(t, r.Exec(ListStmt(v, Full(), 4)))
	r.Abort("bad operand")
	r.Close()

	out := buf.String()
	require.Contains(t, out, "bad operand")
	require.Contains(t, out, "failed_at=2")
	require.NotContains(t, out, "statements=")
	require.Equal(t, 1, r.Committed())
}
