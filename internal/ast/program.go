package ast

import (
	"strconv"

	"setslice/internal/source"
)

// Program is the parsed form of one script file.
type Program struct {
	File    source.FileID
	Items   *Items
	Assigns *Assigns
	Order   []ItemID
	Span    source.Span
}

type Hints struct{ Items, Assigns uint }

func NewProgram(file source.FileID, hints Hints) *Program {
	return &Program{
		File:    file,
		Items:   NewItems(hints.Items),
		Assigns: NewAssigns(hints.Assigns),
	}
}

// Push appends an item to the program order.
func (p *Program) Push(id ItemID) {
	p.Order = append(p.Order, id)
}

// Rebind moves every span onto file. Cached programs are stored with the
// FileID of the run that produced them.
func (p *Program) Rebind(file source.FileID) {
	if p.File == file {
		return
	}
	p.File = file
	p.Span.File = file
	fix := func(sp *source.Span) { sp.File = file }
	fixElems := func(es []Elem) {
		for i := range es {
			fix(&es[i].Span)
		}
	}
	fixRange := func(r *Range) {
		fix(&r.Span)
		fix(&r.Lo.Span)
		fix(&r.Hi.Span)
	}
	for i := range p.Items.Arena.Data {
		fix(&p.Items.Arena.Data[i].Span)
	}
	for i := range p.Items.Lets.Data {
		l := &p.Items.Lets.Data[i]
		fix(&l.Span)
		fix(&l.NameSpan)
		fixElems(l.Elems)
	}
	for i := range p.Items.Sets.Data {
		fix(&p.Items.Sets.Data[i].Span)
	}
	for i := range p.Items.Prints.Data {
		pr := &p.Items.Prints.Data[i]
		fix(&pr.Span)
		fix(&pr.NameSpan)
	}
	for i := range p.Assigns.Arena.Data {
		a := &p.Assigns.Arena.Data[i]
		fix(&a.Span)
		fix(&a.Size.Span)
		fix(&a.Target.Span)
		fix(&a.Target.NameSpan)
		fixRange(&a.Target.Range)
		fix(&a.Source.Span)
		fix(&a.Source.NameSpan)
		fixRange(&a.Source.Range)
		fixElems(a.Source.List)
	}
}

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}
