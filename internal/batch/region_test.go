package batch

import (
	"errors"
	"testing"
)

func TestRegionResolve(t *testing.T) {
	tests := []struct {
		name       string
		region     Region
		length     int
		start, end int
		wantErr    bool
	}{
		{"full", Full(), 6, 0, 6, false},
		{"full empty buffer", Full(), 0, 0, 0, false},
		{"from", From(3), 6, 3, 6, false},
		{"from at end", From(6), 6, 6, 6, false},
		{"to", To(2), 8, 0, 2, false},
		{"to inclusive", ToInclusive(2), 8, 0, 3, false},
		{"bounded", Span(3, 6), 8, 3, 6, false},
		{"inclusive", Inclusive(1, 2), 8, 1, 3, false},
		{"empty bounded", Span(4, 4), 8, 4, 4, false},
		{"from past end", From(7), 6, 0, 0, true},
		{"end past length", Span(3, 10), 8, 0, 0, true},
		{"inclusive past length", Inclusive(5, 8), 8, 0, 0, true},
		{"start after end", Span(5, 2), 8, 0, 0, true},
		{"negative", Span(-1, 2), 8, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := tt.region.Resolve(tt.length)
			if tt.wantErr {
				if !errors.Is(err, ErrRegionOutOfRange) {
					t.Fatalf("expected ErrRegionOutOfRange, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if start != tt.start || end != tt.end {
				t.Fatalf("Resolve = [%d, %d), want [%d, %d)", start, end, tt.start, tt.end)
			}
		})
	}
}

func TestRegionString(t *testing.T) {
	tests := map[string]Region{
		"[..]":    Full(),
		"[2..]":   From(2),
		"[..2]":   To(2),
		"[..=2]":  ToInclusive(2),
		"[3..6]":  Span(3, 6),
		"[1..=2]": Inclusive(1, 2),
	}
	for want, r := range tests {
		if got := r.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}
