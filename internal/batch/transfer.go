package batch

import (
	"fmt"
	"unsafe"
)

// Cloner is implemented by element types that own sub-resources and must be
// deep-copied rather than assigned.
type Cloner[T any] interface {
	Clone() T
}

// MoveInto exchanges dst and src element for element: dst receives src's
// contents and src is left holding dst's old contents.
func MoveInto[T any](dst, src []T) {
	mustSameLen(len(dst), len(src))
	for i := range dst {
		dst[i], src[i] = src[i], dst[i]
	}
}

// CopyInto duplicates src into dst by plain assignment. src is not modified.
func CopyInto[T any](dst, src []T) {
	mustSameLen(len(dst), len(src))
	copy(dst, src)
}

// CloneInto duplicates src into dst through each element's Clone method.
func CloneInto[T Cloner[T]](dst, src []T) {
	mustSameLen(len(dst), len(src))
	for i := range src {
		dst[i] = src[i].Clone()
	}
}

func cloneWith[T any](dst, src []T, clone func(T) T) {
	mustSameLen(len(dst), len(src))
	for i := range src {
		dst[i] = clone(src[i])
	}
}

// UnsafeRawCopy duplicates the first size elements of src into dst as raw
// bytes, bypassing assignment semantics entirely.
//
// It is undefined behaviour when T contains pointers, strings, slices, maps,
// interfaces or channels: the copy skips the garbage collector's write
// barriers and leaves both sides aliasing the same resources. Callers must
// also guarantee size <= len(dst) and size <= len(src); this is checked and
// violations panic.
func UnsafeRawCopy[T any](dst, src []T, size int) {
	if size < 0 || size > len(dst) || size > len(src) {
		panic(fmt.Sprintf("batch: raw copy of %d elements between slices of length %d and %d", size, len(dst), len(src)))
	}
	var zero T
	n := uintptr(size) * unsafe.Sizeof(zero)
	if n == 0 {
		return
	}
	d := unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(dst))), n)
	s := unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(src))), n)
	copy(d, s)
}

func mustSameLen(dst, src int) {
	if dst != src {
		panic(fmt.Sprintf("batch: destination and source slices have different lengths (%d != %d)", dst, src))
	}
}
