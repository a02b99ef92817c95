package diagfmt

import (
	"encoding/json"
	"io"

	"setslice/internal/diag"
	"setslice/internal/source"
)

// LocationJSON is a span; line/column fields are set only with IncludePositions.
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

type FixEditJSON struct {
	Location    LocationJSON `json:"location"`
	NewText     string       `json:"new_text"`
	BeforeLines []string     `json:"before_lines,omitempty"`
	AfterLines  []string     `json:"after_lines,omitempty"`
}

type FixJSON struct {
	Title string        `json:"title"`
	Edits []FixEditJSON `json:"edits,omitempty"`
}

type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Title    string       `json:"title,omitempty"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
	Fixes    []FixJSON    `json:"fixes,omitempty"`
}

// DiagnosticsOutput is the root of the JSON document.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

// locator turns spans into LocationJSON for one output document.
type locator struct {
	fs        *source.FileSet
	mode      source.PathMode
	positions bool
}

func (l locator) at(span source.Span) LocationJSON {
	loc := LocationJSON{File: "<unknown>", StartByte: span.Start, EndByte: span.End}
	if int(span.File) >= l.fs.Len() {
		return loc
	}
	loc.File = l.fs.Get(span.File).FormatPath(l.mode, l.fs.BaseDir())
	if l.positions {
		from, to := l.fs.Resolve(span)
		loc.StartLine, loc.StartCol = from.Line, from.Col
		loc.EndLine, loc.EndCol = to.Line, to.Col
	}
	return loc
}

func (l locator) notes(notes []diag.Note) []NoteJSON {
	if len(notes) == 0 {
		return nil
	}
	out := make([]NoteJSON, len(notes))
	for i, note := range notes {
		out[i] = NoteJSON{Message: note.Msg, Location: l.at(note.Span)}
	}
	return out
}

func (l locator) fixes(fixes []diag.Fix, previews bool) []FixJSON {
	if len(fixes) == 0 {
		return nil
	}
	out := make([]FixJSON, len(fixes))
	for i, fix := range fixes {
		edits := make([]FixEditJSON, len(fix.Edits))
		for k, edit := range fix.Edits {
			edits[k] = FixEditJSON{Location: l.at(edit.Span), NewText: edit.NewText}
			if !previews {
				continue
			}
			if preview, err := buildFixEditPreview(l.fs, edit); err == nil {
				edits[k].BeforeLines, edits[k].AfterLines = preview.before, preview.after
			}
		}
		out[i] = FixJSON{Title: fix.Title, Edits: edits}
	}
	return out
}

// BuildDiagnosticsOutput builds the JSON document without encoding it.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}
	loc := locator{fs: fs, mode: opts.PathMode, positions: opts.IncludePositions}

	out := DiagnosticsOutput{Diagnostics: make([]DiagnosticJSON, len(items)), Count: len(items)}
	for i, d := range items {
		dj := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Title:    d.Code.Title(),
			Message:  d.Message,
			Location: loc.at(d.Primary),
		}
		// заметки таймингов всегда нужны целиком
		if opts.IncludeNotes || d.Code == diag.ObsTimings {
			dj.Notes = loc.notes(d.Notes)
		}
		if opts.IncludeFixes {
			dj.Fixes = loc.fixes(d.Fixes, opts.IncludePreviews)
		}
		out.Diagnostics[i] = dj
	}
	return out
}

// JSON writes bag as an indented JSON document.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(bag, fs, opts))
}
