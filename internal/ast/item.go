package ast

import (
	"setslice/internal/source"
)

type ItemKind uint8

const (
	ItemLet ItemKind = iota
	ItemSet
	ItemPrint
)

func (k ItemKind) String() string {
	switch k {
	case ItemLet:
		return "let"
	case ItemSet:
		return "set"
	case ItemPrint:
		return "print"
	}
	return "item(?)"
}

type Item struct {
	Kind    ItemKind
	Span    source.Span
	Payload PayloadID
}

type InitKind uint8

const (
	// InitScalar: let x = 5;
	InitScalar InitKind = iota
	// InitList: let v = [1, 2, 3]; (may be empty)
	InitList
	// InitRepeat: let v = [0; 4]; Elems holds value then count.
	InitRepeat
)

type LetItem struct {
	Name     string
	NameSpan source.Span
	Init     InitKind
	Elems    []Elem
	Span     source.Span
}

type SetItem struct {
	Assigns []AssignID
	Span    source.Span
}

type PrintItem struct {
	Name     string
	NameSpan source.Span
	Span     source.Span
}

type Items struct {
	Arena  *Arena[Item]
	Lets   *Arena[LetItem]
	Sets   *Arena[SetItem]
	Prints *Arena[PrintItem]
}

// NewItems creates and returns an *Items with per-kind arenas initialized to capHint.
// If capHint is 0, NewItems uses a default initial capacity of 1<<4.
func NewItems(capHint uint) *Items {
	if capHint == 0 {
		capHint = 1 << 4
	}
	return &Items{
		Arena:  NewArena[Item](capHint),
		Lets:   NewArena[LetItem](capHint),
		Sets:   NewArena[SetItem](capHint),
		Prints: NewArena[PrintItem](capHint),
	}
}

func (i *Items) new(kind ItemKind, span source.Span, payload PayloadID) ItemID {
	return ItemID(i.Arena.Allocate(Item{Kind: kind, Span: span, Payload: payload}))
}

func (i *Items) Get(id ItemID) *Item {
	return i.Arena.Get(uint32(id))
}

func (i *Items) NewLet(let LetItem) ItemID {
	payload := PayloadID(i.Lets.Allocate(let))
	return i.new(ItemLet, let.Span, payload)
}

func (i *Items) NewSet(set SetItem) ItemID {
	payload := PayloadID(i.Sets.Allocate(set))
	return i.new(ItemSet, set.Span, payload)
}

func (i *Items) NewPrint(p PrintItem) ItemID {
	payload := PayloadID(i.Prints.Allocate(p))
	return i.new(ItemPrint, p.Span, payload)
}

func (i *Items) Let(id ItemID) (*LetItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemLet {
		return nil, false
	}
	return i.Lets.Get(uint32(item.Payload)), true
}

func (i *Items) Set(id ItemID) (*SetItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemSet {
		return nil, false
	}
	return i.Sets.Get(uint32(item.Payload)), true
}

func (i *Items) Print(id ItemID) (*PrintItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemPrint {
		return nil, false
	}
	return i.Prints.Get(uint32(item.Payload)), true
}
