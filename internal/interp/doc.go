// Package interp executes parsed slice-assignment scripts.
//
// Execution is two-phase. Check walks the whole program once and reports
// name, move and scalar errors without touching any data. Exec then runs the
// items in order. A set block is one batch.Runner: each assignment is
// lowered to a batch statement (its range bounds, size and list elements are
// read at that moment) and executed before the next one is lowered, so a
// statement sees every write made earlier in its block. A failing statement
// aborts the program; statements of the same block that ran before it stay
// committed.
package interp
