package diag

import (
	"testing"

	"setslice/internal/source"
)

func TestCodeIDs(t *testing.T) {
	cases := map[Code]string{
		LexUnknownChar:      "LEX1001",
		SynEmptyList:        "SYN2010",
		SemaUseAfterMove:    "SEM3003",
		BatLengthMismatch:   "BAT4001",
		BatRegionOutOfRange: "BAT4002",
		IOLoadFileError:     "IO5001",
		ObsTimings:          "OBS6001",
		Code(42):            "E0000",
	}
	for c, want := range cases {
		if got := c.ID(); got != want {
			t.Errorf("ID(%d) = %q, want %q", c, got, want)
		}
	}
	if Code(9999).Title() != "Unknown error" {
		t.Fatalf("unexpected fallback title %q", Code(9999).Title())
	}
}

func TestBagLimitAndSort(t *testing.T) {
	b := NewBag(2)
	sp := func(start uint32) source.Span { return source.Span{Start: start, End: start + 1} }
	if !b.Add(NewError(SynUnexpectedToken, sp(5), "late")) {
		t.Fatal("first add rejected")
	}
	b.Add(New(SevWarning, LexBadNumber, sp(1), "early"))
	if b.Add(NewError(SynEmptyList, sp(0), "overflow")) {
		t.Fatal("add beyond limit must be rejected")
	}
	b.Sort()
	if b.Items()[0].Message != "early" || !b.HasErrors() || !b.HasWarnings() {
		t.Fatalf("unexpected bag state: %+v", b.Items())
	}
}

func TestBagDedupAndMerge(t *testing.T) {
	a := NewBag(10)
	d := NewError(SemaUnresolvedSymbol, source.Span{Start: 1, End: 2}, "unknown name")
	a.Add(d)
	a.Add(d)
	a.Dedup()
	if a.Len() != 1 {
		t.Fatalf("Dedup left %d items", a.Len())
	}

	small := NewBag(1)
	small.Add(d)
	small.Merge(a)
	if small.Len() != 2 || small.Cap() < 2 {
		t.Fatalf("Merge: len=%d cap=%d", small.Len(), small.Cap())
	}
}

func TestNewBagClamps(t *testing.T) {
	if NewBag(-3).Cap() != 0 {
		t.Fatal("negative max must clamp to zero")
	}
	if NewBag(1<<20).Cap() != ^uint16(0) {
		t.Fatal("huge max must clamp to uint16 max")
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})
	for range 3 {
		ReportError(r, SemaUseAfterMove, source.Span{Start: 4, End: 5}, "use of moved value `v`").Emit()
	}
	ReportWarning(r, SemaUseAfterMove, source.Span{Start: 4, End: 5}, "different severity").Emit()
	if bag.Len() != 2 {
		t.Fatalf("want 2 unique diagnostics, got %d", bag.Len())
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(10)
	b := ReportError(BagReporter{Bag: bag}, SynExpectSemicolon, source.Span{}, "punctuation is missing").
		WithNote(source.Span{Start: 3, End: 3}, "statement starts here").
		WithFix("insert ';'", FixEdit{Span: source.Span{Start: 9, End: 9}, NewText: ";"})
	b.Emit()
	b.Emit()
	if bag.Len() != 1 {
		t.Fatalf("Emit twice produced %d diagnostics", bag.Len())
	}
	got := bag.Items()[0]
	if len(got.Notes) != 1 || len(got.Fixes) != 1 || got.Fixes[0].Edits[0].NewText != ";" {
		t.Fatalf("builder lost details: %+v", got)
	}
}

func TestFormatShort(t *testing.T) {
	fs := source.NewFileSetWithBase("/workspace")
	file := fs.Add("/workspace/scripts/sample.sl", []byte("a\nb\n"), 0)

	diags := []Diagnostic{
		{
			Severity: SevWarning,
			Code:     SemaInfo,
			Message:  "another",
			Primary:  source.Span{File: file, Start: 2, End: 3},
		},
		{
			Severity: SevError,
			Code:     BatLengthMismatch,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: file, Start: 0, End: 1},
			Notes:    []Note{{Span: source.Span{File: file, Start: 2, End: 3}, Msg: "note line"}},
		},
	}

	want := "error BAT4001 scripts/sample.sl:1:1 first line second\n" +
		"warning SEM3000 scripts/sample.sl:2:1 another\n" +
		"note BAT4001 scripts/sample.sl:2:1 note line"
	if got := FormatShort(diags, fs, true); got != want {
		t.Fatalf("unexpected output:\nwant:\n%s\n\ngot:\n%s", want, got)
	}
}

func TestSeverityNames(t *testing.T) {
	tests := []struct {
		sev          Severity
		upper, lower string
	}{
		{SevInfo, "INFO", "info"},
		{SevWarning, "WARNING", "warning"},
		{SevError, "ERROR", "error"},
		{Severity(9), "UNKNOWN", "unknown"},
	}
	for _, tt := range tests {
		if tt.sev.String() != tt.upper || tt.sev.Label() != tt.lower {
			t.Errorf("severity %d: got %q/%q", tt.sev, tt.sev.String(), tt.sev.Label())
		}
	}
}

func TestWithNoteDoesNotAlias(t *testing.T) {
	base := NewError(BatLengthMismatch, source.Span{}, "base").WithNote(source.Span{}, "first")
	a := base.WithNote(source.Span{}, "a")
	b := base.WithNote(source.Span{}, "b")
	if a.Notes[1].Msg != "a" || b.Notes[1].Msg != "b" || len(base.Notes) != 1 {
		t.Fatalf("notes aliased: a=%v b=%v base=%v", a.Notes, b.Notes, base.Notes)
	}
}
