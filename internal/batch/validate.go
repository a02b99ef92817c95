package batch

// Size is an optional caller-declared element count. The zero value means
// "not declared".
type Size struct {
	n   int
	set bool
}

// SizeOf declares an expected element count.
func SizeOf(n int) Size { return Size{n: n, set: true} }

// Get returns the declared count and whether one was declared.
func (s Size) Get() (int, bool) { return s.n, s.set }

// Validate checks that a statement's region and source agree in length and,
// when declared is set, that both equal the declared size. It must run
// before any element of the region is written.
func Validate(pos, regionLen, sourceLen int, declared Size) error {
	if n, ok := declared.Get(); ok {
		if regionLen != n {
			return &Error{Position: pos, Side: SideSlice, Expected: n, Actual: regionLen, err: ErrLengthMismatch}
		}
		if sourceLen != n {
			return &Error{Position: pos, Side: SideValue, Expected: n, Actual: sourceLen, err: ErrLengthMismatch}
		}
		return nil
	}
	if regionLen != sourceLen {
		return &Error{Position: pos, Side: SideValue, Expected: regionLen, Actual: sourceLen, err: ErrLengthMismatch}
	}
	return nil
}
