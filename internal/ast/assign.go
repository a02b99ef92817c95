package ast

import (
	"setslice/internal/source"
)

// Mode is the transfer option written on the right-hand side.
type Mode uint8

const (
	ModeMove Mode = iota
	ModeCopy
	ModeClone
	ModeRef
)

func (m Mode) String() string {
	switch m {
	case ModeMove:
		return "move"
	case ModeCopy:
		return "copy"
	case ModeClone:
		return "clone"
	case ModeRef:
		return "ref"
	}
	return "mode(?)"
}

// Target is the left-hand side `v` or `v[range]`.
type Target struct {
	Name     string
	NameSpan source.Span
	Range    Range
	HasRange bool
	Span     source.Span
}

// Operand is the value side: a buffer name (optionally ranged) or an inline list.
type Operand struct {
	Name     string
	NameSpan source.Span
	Range    Range
	HasRange bool
	IsList   bool
	List     []Elem
	Borrowed bool // written with '&'
	Span     source.Span
}

type Assign struct {
	Target  Target
	Mode    Mode
	Source  Operand
	Sugar   bool // `v = 1, 2;` without an explicit move
	Unsafe  bool
	Size    Elem
	HasSize bool
	Span    source.Span
}

type Assigns struct {
	Arena *Arena[Assign]
}

func NewAssigns(capHint uint) *Assigns {
	if capHint == 0 {
		capHint = 1 << 5
	}
	return &Assigns{Arena: NewArena[Assign](capHint)}
}

func (a *Assigns) New(as Assign) AssignID {
	return AssignID(a.Arena.Allocate(as))
}

func (a *Assigns) Get(id AssignID) *Assign {
	return a.Arena.Get(uint32(id))
}
