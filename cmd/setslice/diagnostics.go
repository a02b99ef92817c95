package main

import (
	"fmt"
	"io"

	"setslice/internal/diag"
	"setslice/internal/diagfmt"
	"setslice/internal/source"
)

// printDiagnostics writes the bag in the configured format. Empty bags print
// nothing.
func printDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet, s *settings) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	switch s.format {
	case "json":
		return diagfmt.JSON(w, bag, fs, s.jsonOpts())
	case "pretty", "":
		diagfmt.Pretty(w, bag, fs, s.prettyOpts())
		return nil
	default:
		return fmt.Errorf("unknown diagnostics format: %s", s.format)
	}
}
