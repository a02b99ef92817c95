// Package driver wires the front-end, the interpreter and the ambient
// infrastructure (parse cache, timings, tracing, progress events) into the
// operations the CLI exposes: tokenize, parse, run and check.
package driver
