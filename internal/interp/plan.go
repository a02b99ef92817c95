package interp

import (
	"fmt"

	"fortio.org/safecast"

	"setslice/internal/ast"
	"setslice/internal/batch"
	"setslice/internal/diag"
	"setslice/internal/source"
)

// semaError aborts the program at the statement being built.
type semaError struct {
	d diag.Diagnostic
}

func (e *semaError) Error() string { return e.d.Message }

func identity(v int64) int64 { return v }

// lower turns one assignment into a batch statement. Operands are read from
// the environment as it is now, so the statements before it in the same
// block are already visible. A non-nil diagnostic is a runtime failure of
// the statement at pos that never reached the batch.
func (in *Interpreter) lower(as *ast.Assign, pos int) (batch.Statement[int64], *diag.Diagnostic, error) {
	var zero batch.Statement[int64]

	target, err := in.buffer(as.Target.Name, as.Target.NameSpan)
	if err != nil {
		return zero, nil, err
	}
	region := batch.Full()
	if as.Target.HasRange {
		if region, err = in.region(as.Target.Range); err != nil {
			return zero, nil, err
		}
	}

	var values []int64
	switch {
	case as.Source.IsList:
		values = make([]int64, 0, len(as.Source.List))
		for _, e := range as.Source.List {
			v, err := in.value(e)
			if err != nil {
				return zero, nil, err
			}
			values = append(values, v)
		}
	default:
		src, err := in.buffer(as.Source.Name, as.Source.NameSpan)
		if err != nil {
			return zero, nil, err
		}
		values = src.Elems
		if as.Source.HasRange {
			r, err := in.region(as.Source.Range)
			if err != nil {
				return zero, nil, err
			}
			if values, err = src.Slice(r); err != nil {
				d := diag.NewError(diag.BatRegionOutOfRange, as.Source.Span,
					fmt.Sprintf("statement %d: source region %s is out of range for `%s` of length %d", pos, r, src.Name, src.Len())).
					WithNote(as.Span, fmt.Sprintf("statement %d of this set block", pos))
				return zero, &d, nil
			}
		}
	}

	switch as.Mode {
	case ast.ModeMove:
		if as.Source.IsList {
			return batch.ListStmt(target, region, values...), nil, nil
		}
		return batch.MoveStmt(target, region, values), nil, nil
	case ast.ModeCopy:
		return batch.CopyStmt(target, region, values), nil, nil
	case ast.ModeClone:
		return batch.CloneFuncStmt(target, region, values, identity), nil, nil
	case ast.ModeRef:
		size, err := in.index(as.Size, diag.SemaNegativeSize, "size")
		if err != nil {
			return zero, nil, err
		}
		return batch.UnsafeRefStmt(target, region, size, values), nil, nil
	}
	return zero, nil, in.sema(diag.UnknownCode, as.Span, "unsupported transfer mode %s", as.Mode)
}

func (in *Interpreter) buffer(name string, sp source.Span) (*batch.Buffer[int64], error) {
	b, ok := in.env.lookup(name)
	if !ok {
		return nil, in.sema(diag.SemaUnresolvedSymbol, sp, "unknown name `%s`", name)
	}
	return b.buf, nil
}

// value evaluates a scalar operand.
func (in *Interpreter) value(e ast.Elem) (int64, error) {
	if e.Kind == ast.ElemInt {
		return e.Value, nil
	}
	b, ok := in.env.lookup(e.Name)
	if !ok {
		return 0, in.sema(diag.SemaUnresolvedSymbol, e.Span, "unknown name `%s`", e.Name)
	}
	if !b.scalar || b.buf.Len() != 1 {
		return 0, in.sema(diag.SemaNonScalarElement, e.Span, "`%s` is a buffer, expected a scalar", e.Name)
	}
	return b.buf.Elems[0], nil
}

// index evaluates a non-negative bound or size.
func (in *Interpreter) index(e ast.Elem, code diag.Code, what string) (int, error) {
	v, err := in.value(e)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, in.sema(code, e.Span, "%s %d is negative", what, v)
	}
	n, convErr := safecast.Conv[int](v)
	if convErr != nil {
		return 0, in.sema(code, e.Span, "%s %d does not fit in an int", what, v)
	}
	return n, nil
}

func (in *Interpreter) region(r ast.Range) (batch.Region, error) {
	var lo, hi int
	var err error
	if r.HasLo {
		if lo, err = in.index(r.Lo, diag.SemaNegativeBound, "range bound"); err != nil {
			return batch.Region{}, err
		}
	}
	if r.HasHi {
		if hi, err = in.index(r.Hi, diag.SemaNegativeBound, "range bound"); err != nil {
			return batch.Region{}, err
		}
	}
	switch {
	case !r.HasLo && !r.HasHi:
		return batch.Full(), nil
	case !r.HasHi:
		return batch.From(lo), nil
	case !r.HasLo && r.Inclusive:
		return batch.ToInclusive(hi), nil
	case !r.HasLo:
		return batch.To(hi), nil
	case r.Inclusive:
		return batch.Inclusive(lo, hi), nil
	default:
		return batch.Span(lo, hi), nil
	}
}

func (in *Interpreter) sema(code diag.Code, sp source.Span, format string, args ...any) error {
	return &semaError{d: diag.NewError(code, sp, fmt.Sprintf(format, args...))}
}
