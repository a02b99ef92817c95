package diagfmt

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"setslice/internal/diag"
	"setslice/internal/source"
)

type fixEditPreview struct {
	before []string
	after  []string
}

// buildFixEditPreview applies edit to the lines it touches and returns both
// versions of that block.
func buildFixEditPreview(fs *source.FileSet, edit diag.FixEdit) (fixEditPreview, error) {
	if fs == nil {
		return fixEditPreview{}, fmt.Errorf("nil FileSet")
	}
	if int(edit.Span.File) >= fs.Len() {
		return fixEditPreview{}, fmt.Errorf("file %d not found in FileSet", edit.Span.File)
	}
	file := fs.Get(edit.Span.File)

	from, to := fs.Resolve(edit.Span)
	startLine, endLine := from.Line, max(to.Line, from.Line)

	size, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		return fixEditPreview{}, fmt.Errorf("content length overflow: %w", err)
	}
	blockStart, blockEnd := blockBounds(file, startLine, endLine, size)
	original := file.Content[blockStart:blockEnd]

	relStart := int(edit.Span.Start) - int(blockStart)
	relEnd := int(edit.Span.End) - int(blockStart)
	if relStart < 0 || relStart > len(original) {
		return fixEditPreview{}, fmt.Errorf("edit span start %d out of range for preview block", relStart)
	}
	if relEnd < relStart || relEnd > len(original) {
		return fixEditPreview{}, fmt.Errorf("edit span end %d out of range for preview block", relEnd)
	}

	after := make([]byte, 0, len(original)+len(edit.NewText))
	after = append(after, original[:relStart]...)
	after = append(after, edit.NewText...)
	after = append(after, original[relEnd:]...)

	return fixEditPreview{
		before: splitPreviewLines(original),
		after:  splitPreviewLines(after),
	}, nil
}

func splitPreviewLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	// хвостовой \n не даёт пустой строки
	return strings.Split(strings.TrimRight(string(content), "\n"), "\n")
}

// blockBounds covers lines first..last, including the newline that ends last.
func blockBounds(f *source.File, first, last, size uint32) (start, end uint32) {
	start, _, ok := f.LineRange(first)
	if !ok {
		return size, size
	}
	_, end, ok = f.LineRange(last)
	if !ok {
		return start, size
	}
	if end < size {
		end++
	}
	return start, end
}
