package ast

import "setslice/internal/source"

type ElemKind uint8

const (
	// ElemInt is an integer literal, optionally negated.
	ElemInt ElemKind = iota
	// ElemName refers to a scalar declared with let.
	ElemName
)

// Elem is a single scalar operand: a list element, a range bound or a size.
type Elem struct {
	Kind  ElemKind
	Value int64
	Name  string
	Span  source.Span
}

func (e Elem) String() string {
	if e.Kind == ElemName {
		return e.Name
	}
	return formatInt(e.Value)
}

// Range is the bracketed part of `v[lo..hi]`. A missing bound has Has* unset.
type Range struct {
	Lo        Elem
	HasLo     bool
	Hi        Elem
	HasHi     bool
	Inclusive bool
	Span      source.Span
}

func (r Range) String() string {
	s := "["
	if r.HasLo {
		s += r.Lo.String()
	}
	if r.Inclusive {
		s += "..="
	} else {
		s += ".."
	}
	if r.HasHi {
		s += r.Hi.String()
	}
	return s + "]"
}
