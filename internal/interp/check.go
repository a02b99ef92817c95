package interp

import (
	"fmt"
	"maps"
	"slices"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"setslice/internal/ast"
	"setslice/internal/diag"
	"setslice/internal/source"
)

// MaxRepeat bounds `[value; count]` initialisers.
const MaxRepeat = 1 << 20

type symbol struct {
	scalar  bool
	decl    source.Span
	moved   bool
	movedAt source.Span
}

type checker struct {
	prog   *ast.Program
	rep    diag.Reporter
	syms   map[string]*symbol
	errors int
}

// Check reports every static error of prog: unknown or duplicate names,
// uses of moved buffers, self moves, borrowing the buffer being assigned,
// negative literal bounds and sizes, and non-scalar list elements.
// It returns true when prog is clean.
func Check(prog *ast.Program, rep diag.Reporter) bool {
	c := checker{prog: prog, rep: rep, syms: make(map[string]*symbol)}
	for _, id := range prog.Order {
		item := prog.Items.Get(id)
		if item == nil {
			continue
		}
		switch item.Kind {
		case ast.ItemLet:
			let, _ := prog.Items.Let(id)
			c.checkLet(let)
		case ast.ItemSet:
			set, _ := prog.Items.Set(id)
			for _, aid := range set.Assigns {
				c.checkAssign(prog.Assigns.Get(aid))
			}
		case ast.ItemPrint:
			pr, _ := prog.Items.Print(id)
			c.use(pr.Name, pr.NameSpan)
		}
	}
	return c.errors == 0
}

func (c *checker) errorf(code diag.Code, sp source.Span, format string, args ...any) *diag.ReportBuilder {
	c.errors++
	return diag.ReportError(c.rep, code, sp, fmt.Sprintf(format, args...))
}

func (c *checker) checkLet(let *ast.LetItem) {
	switch let.Init {
	case ast.InitRepeat:
		c.scalarElem(let.Elems[0])
		c.count(let.Elems[1])
	default:
		for _, e := range let.Elems {
			c.scalarElem(e)
		}
	}

	if prev, ok := c.syms[let.Name]; ok {
		c.errorf(diag.SemaDuplicateSymbol, let.NameSpan, "`%s` is already declared", let.Name).
			WithNote(prev.decl, "previous declaration here").
			Emit()
		return
	}
	c.syms[let.Name] = &symbol{scalar: let.Init == ast.InitScalar, decl: let.NameSpan}
}

// use resolves a buffer reference; ok is false when it cannot be used.
func (c *checker) use(name string, sp source.Span) (*symbol, bool) {
	sym, ok := c.syms[name]
	if !ok {
		b := c.errorf(diag.SemaUnresolvedSymbol, sp, "unknown name `%s`", name)
		if near, found := c.closest(name); found {
			b = b.WithNote(c.syms[near].decl, fmt.Sprintf("did you mean `%s`?", near))
		}
		b.Emit()
		return nil, false
	}
	if sym.moved {
		c.errorf(diag.SemaUseAfterMove, sp, "use of moved value `%s`", name).
			WithNote(sym.movedAt, "value moved here").
			Emit()
		return sym, false
	}
	return sym, true
}

// maxTypoDistance bounds edit-distance suggestions for unknown names.
const maxTypoDistance = 2

// closest picks the declared name nearest to name: a fuzzy (subsequence)
// match first, else the smallest edit distance within maxTypoDistance.
func (c *checker) closest(name string) (string, bool) {
	if len(c.syms) == 0 {
		return "", false
	}
	names := slices.Sorted(maps.Keys(c.syms))
	if ranks := fuzzy.RankFindFold(name, names); len(ranks) > 0 {
		sort.Stable(ranks)
		return ranks[0].Target, true
	}
	best, bestDist := "", maxTypoDistance+1
	for _, cand := range names {
		if d := fuzzy.LevenshteinDistance(name, cand); d < bestDist {
			best, bestDist = cand, d
		}
	}
	return best, best != ""
}

func (c *checker) scalarElem(e ast.Elem) {
	if e.Kind != ast.ElemName {
		return
	}
	sym, ok := c.use(e.Name, e.Span)
	if ok && !sym.scalar {
		c.errorf(diag.SemaNonScalarElement, e.Span, "`%s` is a buffer, expected a scalar", e.Name).
			WithNote(sym.decl, "declared here").
			Emit()
	}
}

func (c *checker) bound(e ast.Elem) {
	if e.Kind == ast.ElemInt && e.Value < 0 {
		c.errorf(diag.SemaNegativeBound, e.Span, "range bound %d is negative", e.Value).Emit()
		return
	}
	c.scalarElem(e)
}

func (c *checker) count(e ast.Elem) {
	if e.Kind == ast.ElemInt {
		switch {
		case e.Value < 0:
			c.errorf(diag.SemaNegativeSize, e.Span, "count %d is negative", e.Value).Emit()
		case e.Value > MaxRepeat:
			c.errorf(diag.SemaRepeatTooLarge, e.Span, "count %d exceeds the limit of %d", e.Value, MaxRepeat).Emit()
		}
		return
	}
	c.scalarElem(e)
}

func (c *checker) rangeBounds(r ast.Range) {
	if r.HasLo {
		c.bound(r.Lo)
	}
	if r.HasHi {
		c.bound(r.Hi)
	}
}

func (c *checker) checkAssign(as *ast.Assign) {
	if as == nil {
		return
	}
	c.use(as.Target.Name, as.Target.NameSpan)
	if as.Target.HasRange {
		c.rangeBounds(as.Target.Range)
	}
	if as.HasSize {
		if as.Size.Kind == ast.ElemInt && as.Size.Value < 0 {
			c.errorf(diag.SemaNegativeSize, as.Size.Span, "size %d is negative", as.Size.Value).Emit()
		} else {
			c.scalarElem(as.Size)
		}
	}

	src := as.Source
	if src.IsList {
		for _, e := range src.List {
			c.scalarElem(e)
		}
		return
	}
	if src.HasRange {
		c.rangeBounds(src.Range)
	}

	if src.Name == as.Target.Name {
		if as.Mode == ast.ModeMove {
			c.errorf(diag.SemaSelfMove, src.Span, "cannot move `%s` into itself", src.Name).Emit()
		} else {
			c.errorf(diag.SemaBorrowOfTarget, src.Span, "cannot borrow `%s` while assigning to it", src.Name).
				WithNote(as.Target.Span, "assigned here").
				Emit()
		}
		return
	}

	sym, ok := c.use(src.Name, src.NameSpan)
	if ok && as.Mode == ast.ModeMove {
		sym.moved = true
		sym.movedAt = src.Span
	}
}
