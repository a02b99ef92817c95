package batch

// Mode selects how a statement's source value populates its region.
type Mode uint8

const (
	// Move exchanges the region's and the source's contents.
	Move Mode = iota
	// Copy duplicates each element by plain assignment.
	Copy
	// Clone duplicates each element through a deep-copy function.
	Clone
	// RawReinterpret duplicates a declared-size block as raw bytes.
	RawReinterpret
)

func (m Mode) String() string {
	switch m {
	case Move:
		return "move"
	case Copy:
		return "copy"
	case Clone:
		return "clone"
	case RawReinterpret:
		return "ref"
	}
	return "unknown"
}
