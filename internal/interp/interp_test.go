package interp

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"setslice/internal/diag"
	"setslice/internal/parser"
	"setslice/internal/source"
	"setslice/internal/trace"
)

type runResult struct {
	out   string
	stats Stats
	err   error
	bag   *diag.Bag
	fs    *source.FileSet
	in    *Interpreter
}

func run(t *testing.T, src string) runResult {
	t.Helper()
	fs := source.NewFileSetWithBase("/")
	id := fs.Add("/main.sl", []byte(src), source.FileVirtual)
	bag := diag.NewBag(32)
	rep := diag.BagReporter{Bag: bag}

	res := parser.ParseFile(fs.Get(id), parser.Options{Reporter: rep})
	require.False(t, bag.HasErrors(), "parse: %s", diag.FormatShort(bag.Items(), fs, false))

	var out bytes.Buffer
	in := New(Options{Reporter: rep, Out: &out})
	stats, err := in.Exec(context.Background(), res.Program)
	return runResult{out: out.String(), stats: stats, err: err, bag: bag, fs: fs, in: in}
}

func (r runResult) short() string {
	return diag.FormatShort(r.bag.Items(), r.fs, true)
}

func TestReferenceProgram(t *testing.T) {
	r := run(t, `
let slice = [0; 4];
let array = [-1, -2];
set {
    slice[2..] = 1, 2;
    slice[..2] = copy &array;
}
print slice;
`)
	require.NoError(t, r.err)
	require.Equal(t, "slice = [-1, -2, 1, 2]\n", r.out)
	require.Equal(t, Stats{Batches: 1, Statements: 2, Prints: 1}, r.stats)
}

func TestScenarioMoveLists(t *testing.T) {
	r := run(t, `
let v = [0; 6];
set {
    v[0..1] = move [0];
    v[1..3] = move [2, 3];
    v[3..] = move [4, 5, 6];
}
print v;
`)
	require.NoError(t, r.err)
	require.Equal(t, "v = [0, 2, 3, 4, 5, 6]\n", r.out)
}

func TestScenarioBorrowedCopies(t *testing.T) {
	r := run(t, `
let v = [0; 8];
set {
    v[1..=2] = copy &[5, 3];
    v[3..6] = copy &[4, 5, 6];
    v[..2] = copy &[0, 2];
    v[6..] = copy &[7, 8];
}
print v;
`)
	require.NoError(t, r.err)
	require.Equal(t, "v = [0, 2, 3, 4, 5, 6, 7, 8]\n", r.out)
}

func TestScenarioBorrowedRefs(t *testing.T) {
	r := run(t, `
let v = [0; 8];
let n = 2;
set {
    unsafe v[1..=2]: (n) = ref &[5, 3];
    unsafe v[3..6]: (3) = ref &[4, 5, 6];
    unsafe v[..2]: (2) = ref &[0, 2];
    unsafe v[6..]: (2) = ref &[7, 8];
}
print v;
`)
	require.NoError(t, r.err)
	require.Equal(t, "v = [0, 2, 3, 4, 5, 6, 7, 8]\n", r.out)
}

func TestScenarioLengthMismatch(t *testing.T) {
	r := run(t, `
let v = [0; 3];
set {
    v = copy &[1, 2];
}
print v;
`)
	require.ErrorIs(t, r.err, ErrAborted)
	require.Empty(t, r.out)
	items := r.bag.Items()
	require.Len(t, items, 1)
	require.Equal(t, diag.BatLengthMismatch, items[0].Code)
	require.Equal(t, "statement 1: value length (2) is invalid, expected: 3", items[0].Message)

	buf, ok := r.in.Env().Buffer("v")
	require.True(t, ok)
	require.Equal(t, []int64{0, 0, 0}, buf)
}

func TestFailureKeepsEarlierStatements(t *testing.T) {
	r := run(t, `
let v = [0; 4];
set {
    v[..2] = 7, 7;
    v[2..] = 1, 2, 3;
    v[..] = 9, 9, 9, 9;
}
`)
	require.ErrorIs(t, r.err, ErrAborted)
	require.Equal(t, 1, r.stats.Statements)
	require.Equal(t,
		"note BAT4001 main.sl:3:1 statement 2 of this set block; earlier statements were applied\n"+
			"error BAT4001 main.sl:5:5 statement 2: value length (3) is invalid, expected: 2",
		r.short())

	buf, _ := r.in.Env().Buffer("v")
	require.Equal(t, []int64{7, 7, 0, 0}, buf)
}

func TestPositionsRestartPerBlock(t *testing.T) {
	r := run(t, `
let v = [0; 2];
set { v[..1] = 1; v[1..] = 2; }
set { v = 1, 2, 3; }
`)
	require.ErrorIs(t, r.err, ErrAborted)
	require.Contains(t, r.bag.Items()[0].Message, "statement 1:")
	require.Equal(t, 2, r.stats.Batches)
}

func TestTargetRegionOutOfRange(t *testing.T) {
	r := run(t, `
let v = [0; 2];
set { v[1..5] = 1, 2, 3, 4; }
`)
	require.ErrorIs(t, r.err, ErrAborted)
	require.Equal(t, diag.BatRegionOutOfRange, r.bag.Items()[0].Code)
}

func TestSourceRegionOutOfRangeRunsPrefix(t *testing.T) {
	r := run(t, `
let v = [0; 2];
let w = [5, 6];
set {
    v[..1] = 9;
    v = copy &w[1..4];
}
`)
	require.ErrorIs(t, r.err, ErrAborted)
	d := r.bag.Items()[0]
	require.Equal(t, diag.BatRegionOutOfRange, d.Code)
	require.Equal(t, "statement 2: source region [1..4] is out of range for `w` of length 2", d.Message)
	require.Equal(t, 1, r.stats.Statements)
	buf, _ := r.in.Env().Buffer("v")
	require.Equal(t, []int64{9, 0}, buf)
}

func TestStatementSeesEarlierWritesInBlock(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"list value", "let x = 1; let v = [0; 2]; set { x = 5; v = x, x; } print v;", "v = [5, 5]\n"},
		{"range bound", "let n = 1; let v = [0; 3]; set { n = 3; v[..n] = copy &[7, 8, 9]; } print v;", "v = [7, 8, 9]\n"},
		{"declared size", "let k = 1; let v = [0; 2]; set { k = 2; unsafe v: (k) = ref &[4, 6]; } print v;", "v = [4, 6]\n"},
		{"source bound", "let i = 0; let w = [1, 2, 3]; let v = [0]; set { i = 2; v = copy &w[i..]; } print v;", "v = [3]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := run(t, tt.src)
			require.NoError(t, r.err, r.short())
			require.Equal(t, tt.want, r.out)
			require.Equal(t, 2, r.stats.Statements)
		})
	}
}

func TestRuntimeOperandErrorKeepsEarlierStatements(t *testing.T) {
	r := run(t, `
let n = 0;
let v = [0, 0];
set {
    v[..1] = 4;
    n = -1;
    v[n..] = 1;
}
`)
	require.ErrorIs(t, r.err, ErrAborted)
	require.Equal(t, 2, r.stats.Statements)
	items := r.bag.Items()
	require.Len(t, items, 1)
	require.Equal(t, diag.SemaNegativeBound, items[0].Code)
	require.Equal(t, "range bound -1 is negative", items[0].Message)

	buf, _ := r.in.Env().Buffer("v")
	require.Equal(t, []int64{4, 0}, buf)
	n, _ := r.in.Env().Buffer("n")
	require.Equal(t, []int64{-1}, n)
}

func TestMoveSwapsAndConsumes(t *testing.T) {
	r := run(t, `
let v = [1, 2, 3];
let w = [7, 8];
set { v[1..] = move w; }
print v;
`)
	require.NoError(t, r.err)
	require.Equal(t, "v = [1, 7, 8]\n", r.out)
	// w получил прежнее содержимое региона
	w, _ := r.in.Env().Buffer("w")
	require.Equal(t, []int64{2, 3}, w)
}

func TestCloneAndScalars(t *testing.T) {
	r := run(t, `
let lo = 1;
let hi = 3;
let v = [0; 4];
let src = [4, 5];
set { v[lo..hi] = clone &src; }
set { lo = 9; }
print v;
print lo;
`)
	require.NoError(t, r.err)
	require.Equal(t, "v = [0, 4, 5, 0]\nlo = 9\n", r.out)
}

func TestStaticErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
		msg  string
	}{
		{"unknown target", "set { x = 1; }", diag.SemaUnresolvedSymbol, "unknown name `x`"},
		{"unknown print", "print x;", diag.SemaUnresolvedSymbol, "unknown name `x`"},
		{"duplicate let", "let v = 1; let v = 2;", diag.SemaDuplicateSymbol, "`v` is already declared"},
		{"use after move", "let v = [0]; let w = [1]; set { v = move w; } print w;", diag.SemaUseAfterMove, "use of moved value `w`"},
		{"move then borrow in block", "let v = [0]; let u = [0]; let w = [1]; set { v = move w; u = copy &w; }", diag.SemaUseAfterMove, "use of moved value `w`"},
		{"self move", "let v = [0]; set { v = move v; }", diag.SemaSelfMove, "cannot move `v` into itself"},
		{"borrow target", "let v = [0, 1]; set { v[..1] = copy &v[1..]; }", diag.SemaBorrowOfTarget, "cannot borrow `v` while assigning to it"},
		{"negative bound", "let v = [0]; set { v[-1..] = 1; }", diag.SemaNegativeBound, "range bound -1 is negative"},
		{"negative size", "let v = [0]; let w = [1]; set { unsafe v: (-1) = ref &w; }", diag.SemaNegativeSize, "size -1 is negative"},
		{"buffer as element", "let v = [0]; let w = [1]; set { v = w; }", diag.SemaNonScalarElement, "`w` is a buffer, expected a scalar"},
		{"buffer in let", "let w = [1]; let v = [w];", diag.SemaNonScalarElement, "`w` is a buffer, expected a scalar"},
		{"negative repeat", "let v = [0; -2];", diag.SemaNegativeSize, "count -2 is negative"},
		{"huge repeat", "let v = [0; 99999999];", diag.SemaRepeatTooLarge, "count 99999999 exceeds the limit of 1048576"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := run(t, tt.src)
			require.ErrorIs(t, r.err, ErrAborted)
			require.Empty(t, r.out)
			items := r.bag.Items()
			require.NotEmpty(t, items)
			require.Equal(t, tt.code, items[0].Code, r.short())
			require.Equal(t, tt.msg, items[0].Message)
		})
	}
}

func TestUnknownNameSuggestion(t *testing.T) {
	tests := []struct {
		name string
		src  string
		note string
	}{
		{"prefix", "let buffer = [0];\nprint buf;", "did you mean `buffer`?"},
		{"typo", "let value = [0];\nprint valeu;", "did you mean `value`?"},
		{"too far", "let value = [0];\nprint zzz;", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := run(t, tt.src)
			require.ErrorIs(t, r.err, ErrAborted)
			items := r.bag.Items()
			require.Len(t, items, 1)
			require.Equal(t, diag.SemaUnresolvedSymbol, items[0].Code)
			if tt.note == "" {
				require.Empty(t, items[0].Notes)
				return
			}
			require.Len(t, items[0].Notes, 1)
			require.Equal(t, tt.note, items[0].Notes[0].Msg)
		})
	}
}

func TestCheckReportsEverything(t *testing.T) {
	r := run(t, "set { a = 1; b = 2; }\nprint c;")
	require.Len(t, r.bag.Items(), 3)
	require.Equal(t, 0, r.stats.Batches, "nothing runs when the static pass fails")
}

func TestDynamicNegativeBound(t *testing.T) {
	r := run(t, `
let n = 1;
let v = [0; 3];
set { n = -1; }
set { v[n..] = 1; }
`)
	require.ErrorIs(t, r.err, ErrAborted)
	require.Equal(t, diag.SemaNegativeBound, r.bag.Items()[0].Code)
	require.Equal(t, "range bound -1 is negative", r.bag.Items()[0].Message)
}

func TestExecEmitsTrace(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.sl", []byte("let v = [0]; set { v = 1; }"))
	res := parser.ParseFile(fs.Get(id), parser.Options{})

	var buf bytes.Buffer
	tr := trace.NewStreamTracer(&buf, trace.LevelDebug, trace.FormatText)
	ctx := trace.WithTracer(context.Background(), tr)

	_, err := New(Options{}).Exec(ctx, res.Program)
	require.NoError(t, err)
	require.NoError(t, tr.Flush())

	out := buf.String()
	for _, want := range []string{"exec", "batch", "stmt:1"} {
		require.True(t, strings.Contains(out, want), "trace missing %q:\n%s", want, out)
	}
}
