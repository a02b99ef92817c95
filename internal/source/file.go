package source

import (
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
)

// LineCount is the number of lines, counting a final line without a newline.
func (f *File) LineCount() int {
	return len(f.LineIdx) + 1
}

// LineRange returns the byte range of line (1-based) without its newline.
func (f *File) LineRange(line uint32) (start, end uint32, ok bool) {
	if line == 0 || int(line) > f.LineCount() {
		return 0, 0, false
	}
	size, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}
	if line > 1 {
		start = f.LineIdx[line-2] + 1
	}
	end = size
	if int(line) <= len(f.LineIdx) {
		end = f.LineIdx[line-1]
	}
	return start, end, true
}

// GetLine returns line lineNum (1-based) without its newline, or "" when the
// line does not exist.
func (f *File) GetLine(lineNum uint32) string {
	start, end, ok := f.LineRange(lineNum)
	if !ok {
		return ""
	}
	return string(f.Content[start:end])
}

// PathMode selects how a file path is displayed.
type PathMode uint8

const (
	// PathAuto keeps short or relative paths and shortens long absolute ones.
	PathAuto PathMode = iota
	PathAbsolute
	PathRelative
	PathBasename
)

// longPath is where PathAuto starts cutting absolute paths down to a basename.
const longPath = 40

// FormatPath renders the file path according to mode. baseDir is only used
// by PathRelative.
func (f *File) FormatPath(mode PathMode, baseDir string) string {
	var (
		out string
		err error
	)
	switch mode {
	case PathAbsolute:
		out, err = AbsolutePath(f.Path)
	case PathRelative:
		if baseDir == "" {
			baseDir, _ = os.Getwd()
		}
		out, err = RelativePath(f.Path, baseDir)
	case PathBasename:
		return BaseName(f.Path)
	default:
		if filepath.IsAbs(f.Path) && len(f.Path) >= longPath {
			return BaseName(f.Path)
		}
		return f.Path
	}
	if err != nil {
		return f.Path
	}
	return out
}
