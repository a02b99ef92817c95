package ast

import (
	"testing"

	"setslice/internal/source"
)

func TestArenaIsOneBased(t *testing.T) {
	a := NewArena[int](0)
	if a.Get(0) != nil || a.Get(1) != nil {
		t.Fatal("empty arena must not return elements")
	}
	id := a.Allocate(7)
	if id != 1 || *a.Get(id) != 7 || a.Len() != 1 {
		t.Fatalf("id=%d len=%d", id, a.Len())
	}
}

func TestItemsTypedAccess(t *testing.T) {
	p := NewProgram(3, Hints{})
	let := p.Items.NewLet(LetItem{Name: "v", Init: InitList})
	set := p.Items.NewSet(SetItem{})
	pr := p.Items.NewPrint(PrintItem{Name: "v"})

	if l, ok := p.Items.Let(let); !ok || l.Name != "v" {
		t.Fatal("Let lookup failed")
	}
	if _, ok := p.Items.Let(set); ok {
		t.Fatal("set item returned as let")
	}
	if _, ok := p.Items.Set(set); !ok {
		t.Fatal("Set lookup failed")
	}
	if x, ok := p.Items.Print(pr); !ok || x.Name != "v" {
		t.Fatal("Print lookup failed")
	}
}

func TestRangeString(t *testing.T) {
	cases := []struct {
		r    Range
		want string
	}{
		{Range{}, "[..]"},
		{Range{Lo: Elem{Value: 1}, HasLo: true, Hi: Elem{Value: 2}, HasHi: true, Inclusive: true}, "[1..=2]"},
		{Range{Hi: Elem{Kind: ElemName, Name: "n"}, HasHi: true}, "[..n]"},
		{Range{Lo: Elem{Value: -1}, HasLo: true}, "[-1..]"},
	}
	for _, tc := range cases {
		if got := tc.r.String(); got != tc.want {
			t.Errorf("got %q, want %q", got, tc.want)
		}
	}
}

func TestRebind(t *testing.T) {
	p := NewProgram(1, Hints{})
	sp := source.Span{File: 1, Start: 2, End: 4}
	p.Items.NewLet(LetItem{Name: "v", NameSpan: sp, Span: sp, Elems: []Elem{{Span: sp}}})
	id := p.Assigns.New(Assign{
		Target: Target{Name: "v", NameSpan: sp, Span: sp},
		Source: Operand{IsList: true, List: []Elem{{Span: sp}}, Span: sp},
		Span:   sp,
	})
	p.Rebind(9)

	if p.Items.Lets.Data[0].Elems[0].Span.File != 9 || p.Items.Arena.Data[0].Span.File != 9 {
		t.Fatal("let spans not rebound")
	}
	a := p.Assigns.Get(id)
	if a.Span.File != 9 || a.Target.NameSpan.File != 9 || a.Source.List[0].Span.File != 9 {
		t.Fatalf("assign spans not rebound: %+v", a)
	}
	if a.Span.Start != 2 || a.Span.End != 4 {
		t.Fatal("offsets must be preserved")
	}
}
