package batch

import "fmt"

// RangeKind selects which bounds of a Region are present.
type RangeKind uint8

const (
	// RangeFull is `..`, the whole buffer.
	RangeFull RangeKind = iota
	// RangeFrom is `lo..`.
	RangeFrom
	// RangeTo is `..hi`.
	RangeTo
	// RangeToInclusive is `..=hi`.
	RangeToInclusive
	// RangeBounded is `lo..hi`.
	RangeBounded
	// RangeInclusive is `lo..=hi`.
	RangeInclusive
)

// Region is a contiguous sub-range of a buffer. Bounds are resolved against
// the buffer's length at the time the statement executes.
type Region struct {
	Kind RangeKind
	Lo   int
	Hi   int
}

// Full addresses the whole buffer.
func Full() Region { return Region{Kind: RangeFull} }

// From addresses lo..len.
func From(lo int) Region { return Region{Kind: RangeFrom, Lo: lo} }

// To addresses 0..hi.
func To(hi int) Region { return Region{Kind: RangeTo, Hi: hi} }

// ToInclusive addresses 0..=hi.
func ToInclusive(hi int) Region { return Region{Kind: RangeToInclusive, Hi: hi} }

// Span addresses lo..hi.
func Span(lo, hi int) Region { return Region{Kind: RangeBounded, Lo: lo, Hi: hi} }

// Inclusive addresses lo..=hi.
func Inclusive(lo, hi int) Region { return Region{Kind: RangeInclusive, Lo: lo, Hi: hi} }

// Resolve converts the region into half-open offsets for a buffer of the
// given length. It fails unless 0 <= start <= end <= length.
func (r Region) Resolve(length int) (start, end int, err error) {
	start, end = 0, length
	switch r.Kind {
	case RangeFull:
	case RangeFrom:
		start = r.Lo
	case RangeTo:
		end = r.Hi
	case RangeToInclusive:
		end, err = inclusiveEnd(r, length)
	case RangeBounded:
		start, end = r.Lo, r.Hi
	case RangeInclusive:
		start = r.Lo
		end, err = inclusiveEnd(r, length)
	default:
		return 0, 0, fmt.Errorf("unknown range kind %d", r.Kind)
	}
	if err != nil {
		return 0, 0, err
	}
	if start < 0 || end < 0 {
		return 0, 0, &rangeError{region: r, length: length, reason: "negative bound"}
	}
	if start > end {
		return 0, 0, &rangeError{region: r, length: length, reason: fmt.Sprintf("slice index starts at %d but ends at %d", start, end)}
	}
	if end > length {
		return 0, 0, &rangeError{region: r, length: length, reason: fmt.Sprintf("range end index %d out of range for slice of length %d", end, length)}
	}
	return start, end, nil
}

func inclusiveEnd(r Region, length int) (int, error) {
	if r.Hi == int(^uint(0)>>1) {
		return 0, &rangeError{region: r, length: length, reason: "attempted to index slice up to maximum usize"}
	}
	return r.Hi + 1, nil
}

// Len returns the number of elements the region covers in a buffer of the
// given length, or an error if it does not fit.
func (r Region) Len(length int) (int, error) {
	start, end, err := r.Resolve(length)
	if err != nil {
		return 0, err
	}
	return end - start, nil
}

func (r Region) String() string {
	switch r.Kind {
	case RangeFull:
		return "[..]"
	case RangeFrom:
		return fmt.Sprintf("[%d..]", r.Lo)
	case RangeTo:
		return fmt.Sprintf("[..%d]", r.Hi)
	case RangeToInclusive:
		return fmt.Sprintf("[..=%d]", r.Hi)
	case RangeBounded:
		return fmt.Sprintf("[%d..%d]", r.Lo, r.Hi)
	case RangeInclusive:
		return fmt.Sprintf("[%d..=%d]", r.Lo, r.Hi)
	}
	return "[?]"
}

// rangeError is wrapped into *Error by the runner once the position is known.
type rangeError struct {
	region Region
	length int
	reason string
}

func (e *rangeError) Error() string {
	return fmt.Sprintf("region %s does not fit buffer of length %d: %s", e.region, e.length, e.reason)
}

func (e *rangeError) Unwrap() error { return ErrRegionOutOfRange }
