package parser

import (
	"fmt"
	"strings"
	"testing"

	"setslice/internal/ast"
	"setslice/internal/diag"
	"setslice/internal/source"
	"setslice/internal/testkit"
)

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func parseSource(t *testing.T, src string) (*ast.Program, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.sl", []byte(src))
	bag := diag.NewBag(32)
	res := ParseFile(fs.Get(id), Options{Reporter: diag.BagReporter{Bag: bag}})
	if !bag.HasErrors() {
		if err := testkit.CheckSpanInvariants(res.Program, fs.Get(id)); err != nil {
			t.Fatalf("span invariants: %v", err)
		}
	}
	return res.Program, bag
}

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, bag := parseSource(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	return prog
}

// onlyAssign returns the single assignment of a program holding one set block.
func onlyAssign(t *testing.T, prog *ast.Program) *ast.Assign {
	t.Helper()
	if len(prog.Order) != 1 {
		t.Fatalf("want one item, got %d", len(prog.Order))
	}
	set, ok := prog.Items.Set(prog.Order[0])
	if !ok || len(set.Assigns) != 1 {
		t.Fatalf("want a set block with one assignment, got %+v", set)
	}
	return prog.Assigns.Get(set.Assigns[0])
}
