package batch

import (
	"errors"
	"fmt"
)

var (
	// ErrLengthMismatch reports that region length, source length and/or
	// declared size disagree.
	ErrLengthMismatch = errors.New("length mismatch")
	// ErrRegionOutOfRange reports a region that does not fit its buffer.
	ErrRegionOutOfRange = errors.New("region out of range")
	// ErrNotCloneable reports a Clone statement without a clone function.
	ErrNotCloneable = errors.New("element type is not cloneable")
	// ErrNoTarget reports a statement without a target buffer.
	ErrNoTarget = errors.New("statement has no target buffer")
	// ErrBatchClosed reports Exec on a Runner that was already closed.
	ErrBatchClosed = errors.New("batch is closed")
)

// Side names which operand of a statement failed validation.
type Side uint8

const (
	// SideValue is the source value.
	SideValue Side = iota
	// SideSlice is the target region.
	SideSlice
)

func (s Side) String() string {
	if s == SideSlice {
		return "slice"
	}
	return "value"
}

// Error is the diagnostic raised for a failing statement. It is fatal to the
// batch it was raised in.
type Error struct {
	Position int  // 1-based statement position inside the batch
	Mode     Mode // transfer mode of the failing statement
	Target   string
	Region   Region

	Side     Side
	Expected int
	Actual   int

	err error // one of the sentinels above, possibly wrapped
}

func (e *Error) Error() string {
	switch {
	case errors.Is(e.err, ErrLengthMismatch):
		return fmt.Sprintf("statement %d: %s length (%d) is invalid, expected: %d", e.Position, e.Side, e.Actual, e.Expected)
	case e.err != nil:
		return fmt.Sprintf("statement %d: %v", e.Position, e.err)
	}
	return fmt.Sprintf("statement %d: failed", e.Position)
}

func (e *Error) Unwrap() error { return e.err }

// IsLengthMismatch reports whether err is a length validation failure.
func IsLengthMismatch(err error) bool {
	return errors.Is(err, ErrLengthMismatch)
}
