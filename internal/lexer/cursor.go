package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"setslice/internal/source"
)

// Cursor is a byte offset into one file. Offsets are uint32 like spans.
type Cursor struct {
	file *source.File
	off  uint32
	end  uint32
}

// NewCursor panics when the file does not fit uint32 offsets; the file set
// refuses such files earlier.
func NewCursor(f *source.File) Cursor {
	end, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("file %s too large: %w", f.Path, err))
	}
	return Cursor{file: f, end: end}
}

// Off is the current offset.
func (c *Cursor) Off() uint32 { return c.off }

func (c *Cursor) EOF() bool { return c.off >= c.end }

// Peek returns the current byte, 0 at EOF.
func (c *Cursor) Peek() byte { return c.PeekAt(0) }

// PeekAt looks n bytes ahead, 0 past EOF.
func (c *Cursor) PeekAt(n uint32) byte {
	if c.off+n >= c.end {
		return 0
	}
	return c.file.Content[c.off+n]
}

// Bump consumes one byte and returns it; 0 at EOF.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.file.Content[c.off]
	c.off++
	return b
}

// Skip advances n bytes, stopping at EOF.
func (c *Cursor) Skip(n uint32) {
	c.off = min(c.off+n, c.end)
}

// Eat consumes b if it is next.
func (c *Cursor) Eat(b byte) bool {
	if c.EOF() || c.file.Content[c.off] != b {
		return false
	}
	c.off++
	return true
}

// EatSeq consumes s if the input continues with it.
func (c *Cursor) EatSeq(s string) bool {
	n := uint32(len(s))
	if c.off+n > c.end || string(c.file.Content[c.off:c.off+n]) != s {
		return false
	}
	c.off += n
	return true
}

// EatWhile consumes bytes while keep holds and returns how many it took.
func (c *Cursor) EatWhile(keep func(byte) bool) uint32 {
	start := c.off
	for !c.EOF() && keep(c.file.Content[c.off]) {
		c.off++
	}
	return c.off - start
}

// SkipToEnd moves the cursor to EOF.
func (c *Cursor) SkipToEnd() { c.off = c.end }

// Mark is a saved offset for SpanFrom and Reset.
type Mark uint32

func (c *Cursor) Mark() Mark { return Mark(c.off) }

// SpanFrom covers the bytes consumed since m.
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.file.ID, Start: uint32(m), End: c.off}
}

func (c *Cursor) Reset(m Mark) { c.off = uint32(m) }
