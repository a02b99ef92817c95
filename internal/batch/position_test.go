package batch

import "testing"

func TestPositionCountsMarkers(t *testing.T) {
	sizes := []int{0, 1, 2, 3, 4, 5, 7, 8, 15, 16, 17, 63, 64, 100, 1023, 1024, 4097}
	for _, n := range sizes {
		if got := Position(make([]Marker, n)); got != n {
			t.Errorf("Position(%d markers) = %d", n, got)
		}
	}
}

func TestPositionSweep(t *testing.T) {
	markers := make([]Marker, 0, 300)
	for i := 1; i <= 300; i++ {
		markers = append(markers, Marker{})
		if got := Position(markers); got != i {
			t.Fatalf("after %d markers Position = %d", i, got)
		}
	}
}

func TestListLen(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   int
	}{
		{"empty", nil, 0},
		{"one", []string{"a"}, 1},
		{"two", []string{"a", "b"}, 2},
		{"three", []string{"a", "b", "c"}, 3},
		{"eight", []string{"a", "b", "c", "d", "e", "f", "g", "h"}, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ListLen(tt.values); got != tt.want {
				t.Fatalf("ListLen = %d, want %d", got, tt.want)
			}
		})
	}
}

func BenchmarkPosition(b *testing.B) {
	markers := make([]Marker, 1<<12)
	for b.Loop() {
		_ = Position(markers)
	}
}

func TestPositionDoesNotAllocate(t *testing.T) {
	markers := make([]Marker, 40000)
	allocs := testing.AllocsPerRun(10, func() {
		if Position(markers) != len(markers) {
			t.Fatal("wrong count")
		}
	})
	if allocs != 0 {
		t.Fatalf("Position allocated %.0f times", allocs)
	}
}
