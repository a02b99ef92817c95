package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"setslice/internal/diag"
	"setslice/internal/source"
)

type palette struct {
	enabled bool
	err     *color.Color
	warn    *color.Color
	info    *color.Color
	note    *color.Color
	gutter  *color.Color
	caret   *color.Color
	path    *color.Color
}

func newPalette(enabled bool) palette {
	return palette{
		enabled: enabled,
		err:     color.New(color.FgRed, color.Bold),
		warn:    color.New(color.FgYellow, color.Bold),
		info:    color.New(color.FgCyan, color.Bold),
		note:    color.New(color.FgBlue, color.Bold),
		gutter:  color.New(color.FgBlue),
		caret:   color.New(color.FgRed),
		path:    color.New(color.Bold),
	}
}

// paint ignores color.NoColor: the caller decided already.
func (p palette) paint(c *color.Color, s string) string {
	if !p.enabled {
		return s
	}
	c.EnableColor()
	return c.Sprint(s)
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes и Fixes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil || fs == nil {
		return
	}
	pal := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &d, fs, opts, pal)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	sev := pal.paint(pal.severity(d.Severity), d.Severity.String())
	fmt.Fprintf(w, "%s: %s %s: %s\n", pal.paint(pal.path, location(fs, d.Primary, opts.PathMode)), sev, d.Code.ID(), d.Message)
	writeSnippet(w, fs, d.Primary, int(opts.Context), pal)

	if opts.ShowNotes {
		for _, n := range d.Notes {
			fmt.Fprintf(w, "  %s: %s: %s\n", pal.paint(pal.note, "note"), location(fs, n.Span, opts.PathMode), n.Msg)
		}
	}
	if !opts.ShowFixes {
		return
	}
	for i, fix := range d.Fixes {
		fmt.Fprintf(w, "  fix #%d: %s\n", i+1, fix.Title)
		for _, edit := range fix.Edits {
			fmt.Fprintf(w, "    edit %s apply=%s\n", location(fs, edit.Span, opts.PathMode), strconv.Quote(edit.NewText))
			if !opts.ShowPreview {
				continue
			}
			preview, err := buildFixEditPreview(fs, edit)
			if err != nil {
				continue
			}
			fmt.Fprintln(w, "    preview:")
			for _, line := range preview.before {
				fmt.Fprintf(w, "      - %s\n", line)
			}
			for _, line := range preview.after {
				fmt.Fprintf(w, "      + %s\n", line)
			}
		}
	}
}

func location(fs *source.FileSet, sp source.Span, mode source.PathMode) string {
	if int(sp.File) >= fs.Len() {
		return "<unknown>"
	}
	f := fs.Get(sp.File)
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", f.FormatPath(mode, fs.BaseDir()), start.Line, start.Col)
}

// writeSnippet prints the primary line with context lines around it and
// underlines the span on the primary line.
func writeSnippet(w io.Writer, fs *source.FileSet, sp source.Span, context int, pal palette) {
	if int(sp.File) >= fs.Len() {
		return
	}
	f := fs.Get(sp.File)
	start, end := fs.Resolve(sp)
	if start.Line == 0 {
		return
	}

	lineCount := f.LineCount()
	first := max(int(start.Line)-context, 1)
	last := min(int(start.Line)+max(context, 0), lineCount)
	gutterWidth := len(strconv.Itoa(last))
	blank := strings.Repeat(" ", gutterWidth+1)

	for ln := first; ln <= last; ln++ {
		lineNum, err := safecast.Conv[uint32](ln)
		if err != nil {
			return
		}
		text := f.GetLine(lineNum)
		fmt.Fprintf(w, "%s %s %s\n", pal.paint(pal.gutter, fmt.Sprintf("%*d", gutterWidth+1, ln)), pal.paint(pal.gutter, "|"), expandTabs(text))
		if lineNum != start.Line {
			continue
		}

		startCol := int(start.Col) - 1
		endCol := len(text)
		if end.Line == start.Line {
			endCol = int(end.Col) - 1
		}
		startCol = min(max(startCol, 0), len(text))
		endCol = min(max(endCol, startCol), len(text))

		pad := runewidth.StringWidth(expandTabs(text[:startCol]))
		width := max(runewidth.StringWidth(expandTabs(text[startCol:endCol])), 1)
		marker := "^" + strings.Repeat("~", width-1)
		fmt.Fprintf(w, "%s %s %s%s\n", blank, pal.paint(pal.gutter, "|"), strings.Repeat(" ", pad), pal.paint(pal.caret, marker))
	}
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
