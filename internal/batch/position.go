package batch

// Marker is appended once per processed statement. It carries no payload.
type Marker struct{}

// Position returns the 1-based position of the statement whose marker was
// appended last, i.e. the number of markers.
func Position(markers []Marker) int {
	return pairCount(markers)
}

// ListLen returns the number of elements of an inline literal list.
func ListLen[T any](values []T) int {
	return pairCount(values)
}

// pairCount counts seq by recursive pairing: an even sequence is folded into
// one representative per adjacent pair and counted as twice that; an odd one
// drops its first element and sets the low bit. Elements carry no weight, so
// the first half of seq stands in for the pairs and no copy is made.
// Recursion depth is O(log n).
func pairCount[T any](seq []T) int {
	switch len(seq) {
	case 0:
		return 0
	case 1:
		return 1
	}
	if len(seq)%2 != 0 {
		return pairCount(seq[1:]) | 1
	}
	return pairCount(seq[:len(seq)/2]) << 1
}
