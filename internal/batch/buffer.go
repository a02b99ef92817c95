package batch

// Buffer is a named, caller-owned, fixed-length sequence of elements.
// Statements borrow it only while they execute.
type Buffer[T any] struct {
	Name  string
	Elems []T
}

// NewBuffer wraps elems without copying.
func NewBuffer[T any](name string, elems []T) *Buffer[T] {
	return &Buffer[T]{Name: name, Elems: elems}
}

// Len returns the buffer length.
func (b *Buffer[T]) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Elems)
}

// Slice returns the elements addressed by r.
func (b *Buffer[T]) Slice(r Region) ([]T, error) {
	start, end, err := r.Resolve(b.Len())
	if err != nil {
		return nil, err
	}
	return b.Elems[start:end:end], nil
}
