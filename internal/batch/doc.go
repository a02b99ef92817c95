// Package batch evaluates batched slice assignments.
//
// A batch is an ordered list of statements, each of which writes a source
// value into a region of a caller-owned buffer. Every statement is validated
// before any of its elements are written, so a failing statement never leaves
// its region half-written.
//
// # Transfer modes
//
//   - Move: the region and the source exchange contents; the source is consumed.
//   - Copy: elements are duplicated bitwise (Go assignment).
//   - Clone: elements are duplicated through Cloner.Clone or a clone func.
//   - RawReinterpret: a declared number of elements is duplicated as raw
//     bytes. See UnsafeRawCopy.
//
// # Failure model
//
// Statements run strictly in order. The first failing statement aborts the
// batch with an *Error naming its 1-based position; statements before it stay
// committed, there is no rollback. Positions are derived from a growing list
// of markers through Position rather than from a running counter.
//
// The package does not detect overlapping regions between statements of the
// same batch; carving disjoint regions is up to the caller.
package batch
