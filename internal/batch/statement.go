package batch

import "errors"

// ErrSizeRequired reports a RawReinterpret statement without a declared size.
var ErrSizeRequired = errors.New("raw transfer requires a declared size")

// Statement is one batched assignment: write Source into Region of Target
// using Mode. Build statements with the *Stmt constructors.
type Statement[T any] struct {
	Target   *Buffer[T]
	Region   Region
	Mode     Mode
	Source   []T
	Declared Size

	clone func(T) T
}

// MoveStmt moves src into the region. After the statement runs, src holds
// the region's previous contents and should be treated as consumed.
func MoveStmt[T any](target *Buffer[T], r Region, src []T) Statement[T] {
	return Statement[T]{Target: target, Region: r, Mode: Move, Source: src}
}

// ListStmt moves an inline list of values into the region. The values are
// first collected into a freshly owned array of ListLen(values) elements.
func ListStmt[T any](target *Buffer[T], r Region, values ...T) Statement[T] {
	owned := make([]T, ListLen(values))
	copy(owned, values)
	return MoveStmt(target, r, owned)
}

// CopyStmt copies the borrowed src into the region.
func CopyStmt[T any](target *Buffer[T], r Region, src []T) Statement[T] {
	return Statement[T]{Target: target, Region: r, Mode: Copy, Source: src}
}

// CloneStmt clones the borrowed src into the region element by element.
func CloneStmt[T Cloner[T]](target *Buffer[T], r Region, src []T) Statement[T] {
	return Statement[T]{
		Target: target, Region: r, Mode: Clone, Source: src,
		clone: func(v T) T { return v.Clone() },
	}
}

// CloneFuncStmt is CloneStmt for element types that carry their deep-copy
// operation outside the type.
func CloneFuncStmt[T any](target *Buffer[T], r Region, src []T, clone func(T) T) Statement[T] {
	return Statement[T]{Target: target, Region: r, Mode: Clone, Source: src, clone: clone}
}

// UnsafeRefStmt duplicates size elements of src into the region as raw
// bytes. Both the region and src must have exactly size elements. The same
// soundness rules as UnsafeRawCopy apply.
func UnsafeRefStmt[T any](target *Buffer[T], r Region, size int, src []T) Statement[T] {
	return Statement[T]{Target: target, Region: r, Mode: RawReinterpret, Source: src, Declared: SizeOf(size)}
}

// execute validates then transfers. Nothing is written unless every check
// passes.
func (st *Statement[T]) execute(pos int) error {
	if st.Target == nil {
		return st.fail(pos, ErrNoTarget)
	}
	dst, err := st.Target.Slice(st.Region)
	if err != nil {
		return st.fail(pos, err)
	}

	var declared Size
	if st.Mode == RawReinterpret {
		if _, ok := st.Declared.Get(); !ok {
			return st.fail(pos, ErrSizeRequired)
		}
		declared = st.Declared
	}
	if st.Mode == Clone && st.clone == nil {
		return st.fail(pos, ErrNotCloneable)
	}

	if err := Validate(pos, len(dst), len(st.Source), declared); err != nil {
		var be *Error
		if errors.As(err, &be) {
			be.Mode, be.Target, be.Region = st.Mode, st.Target.Name, st.Region
		}
		return err
	}

	switch st.Mode {
	case Move:
		MoveInto(dst, st.Source)
	case Copy:
		CopyInto(dst, st.Source)
	case Clone:
		cloneWith(dst, st.Source, st.clone)
	case RawReinterpret:
		n, _ := st.Declared.Get()
		UnsafeRawCopy(dst, st.Source, n)
	default:
		return st.fail(pos, errors.New("unknown transfer mode"))
	}
	return nil
}

func (st *Statement[T]) fail(pos int, err error) *Error {
	e := &Error{Position: pos, Mode: st.Mode, Region: st.Region, err: err}
	if st.Target != nil {
		e.Target = st.Target.Name
	}
	return e
}
