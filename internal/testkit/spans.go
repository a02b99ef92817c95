package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"setslice/internal/ast"
	"setslice/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed program:
// 1) program span stays within the file content
// 2) every item span is non-empty and inside the program span
// 3) every assignment of a set block lies inside the block
func CheckSpanInvariants(prog *ast.Program, sf *source.File) error {
	if prog == nil || sf == nil {
		return fmt.Errorf("nil program or file")
	}
	if prog.Span.File != sf.ID {
		return fmt.Errorf("program span points to different file id: got=%d want=%d", prog.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if prog.Span.End > lenContent {
		return fmt.Errorf("program span end beyond content: %d > %d", prog.Span.End, lenContent)
	}

	for _, id := range prog.Order {
		item := prog.Items.Get(id)
		if item == nil {
			return fmt.Errorf("nil item for id=%d", id)
		}
		if err := within(item.Span, prog.Span, sf.ID); err != nil {
			return fmt.Errorf("item %d (%s): %w", id, item.Kind, err)
		}
		set, ok := prog.Items.Set(id)
		if !ok {
			continue
		}
		for _, aid := range set.Assigns {
			as := prog.Assigns.Get(aid)
			if as == nil {
				return fmt.Errorf("nil assignment for id=%d", aid)
			}
			if err := within(as.Span, set.Span, sf.ID); err != nil {
				return fmt.Errorf("assignment %d: %w", aid, err)
			}
			if err := within(as.Target.Span, as.Span, sf.ID); err != nil {
				return fmt.Errorf("assignment %d target: %w", aid, err)
			}
		}
	}
	return nil
}

func within(sp, outer source.Span, file source.FileID) error {
	if sp.End <= sp.Start {
		return fmt.Errorf("empty span %v", sp)
	}
	if sp.File != file {
		return fmt.Errorf("span file mismatch: got=%d want=%d", sp.File, file)
	}
	if sp.Start < outer.Start || sp.End > outer.End {
		return fmt.Errorf("span %v is outside %v", sp, outer)
	}
	return nil
}
