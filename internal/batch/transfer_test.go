package batch

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type owned struct {
	tags []string
}

func (o owned) Clone() owned {
	return owned{tags: append([]string(nil), o.tags...)}
}

type cell struct {
	v int32
}

func TestMoveIntoExchanges(t *testing.T) {
	dst := []int{1, 2, 3}
	src := []int{7, 8, 9}
	MoveInto(dst, src)
	if diff := cmp.Diff([]int{7, 8, 9}, dst); diff != "" {
		t.Errorf("dst mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 2, 3}, src); diff != "" {
		t.Errorf("src must hold the old region contents (-want +got):\n%s", diff)
	}
}

func TestCopyIntoLeavesSource(t *testing.T) {
	dst := make([]int, 3)
	src := []int{4, 5, 6}
	CopyInto(dst, src)
	if diff := cmp.Diff(src, dst); diff != "" {
		t.Errorf("dst mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{4, 5, 6}, src); diff != "" {
		t.Errorf("src changed (-want +got):\n%s", diff)
	}
}

func TestCloneIntoIsDeep(t *testing.T) {
	src := []owned{{tags: []string{"a"}}, {tags: []string{"b", "c"}}}
	dst := make([]owned, 2)
	CloneInto(dst, src)

	src[0].tags[0] = "mutated"
	if dst[0].tags[0] != "a" {
		t.Fatalf("clone shares storage with source: %q", dst[0].tags[0])
	}
	if diff := cmp.Diff([]string{"b", "c"}, dst[1].tags); diff != "" {
		t.Errorf("dst[1] mismatch (-want +got):\n%s", diff)
	}
}

func TestUnsafeRawCopy(t *testing.T) {
	dst := make([]cell, 4)
	src := []cell{{1}, {2}, {3}}
	UnsafeRawCopy(dst[1:], src, 3)
	want := []cell{{0}, {1}, {2}, {3}}
	if diff := cmp.Diff(want, dst, cmp.AllowUnexported(cell{})); diff != "" {
		t.Errorf("dst mismatch (-want +got):\n%s", diff)
	}
}

func TestUnsafeRawCopyZeroSize(t *testing.T) {
	var dst, src []struct{}
	UnsafeRawCopy(dst, src, 0)
}

func TestTransferPanicsOnLengthMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	CopyInto(make([]int, 2), []int{1})
}
