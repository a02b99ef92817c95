package driver

import (
	"io"

	"setslice/internal/pipeline"
)

// DefaultMaxDiagnostics caps a file's diagnostics when the caller gives no limit.
const DefaultMaxDiagnostics = 100

// Options controls Parse, Run and CheckDir.
type Options struct {
	MaxDiagnostics int
	// Cache stores parsed programs; nil disables caching.
	Cache *DiskCache
	// Timings records per-phase durations and appends an OBS6001 diagnostic.
	Timings bool
	// Stdout receives print output of Run; nil discards it.
	Stdout io.Writer
	// Sink receives progress events; nil drops them.
	Sink pipeline.ProgressSink
	// Jobs bounds CheckDir parallelism; <= 0 means GOMAXPROCS.
	Jobs int
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return DefaultMaxDiagnostics
	}
	return o.MaxDiagnostics
}
