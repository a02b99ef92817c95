// Package ui renders `setslice check` progress in the terminal.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"setslice/internal/pipeline"
)

type rowState uint8

const (
	rowQueued rowState = iota
	rowActive
	rowDone
	rowFailed
)

// stageWeight is how far into a script a stage is, for the overall bar.
var stageWeight = map[pipeline.Stage]float64{
	pipeline.StageLoad:  0.1,
	pipeline.StageParse: 0.3,
	pipeline.StageCheck: 0.6,
	pipeline.StageRun:   0.8,
}

var stageVerb = map[pipeline.Stage]string{
	pipeline.StageLoad:  "loading",
	pipeline.StageParse: "parsing",
	pipeline.StageCheck: "checking",
	pipeline.StageRun:   "running",
}

var (
	styleOK     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleFailed = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	styleActive = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	styleIdle   = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	styleTitle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
)

type fileRow struct {
	path    string
	state   rowState
	stage   pipeline.Stage
	elapsed time.Duration
}

func (r fileRow) label() string {
	switch r.state {
	case rowDone:
		return "done"
	case rowFailed:
		return "error"
	case rowActive:
		if verb, ok := stageVerb[r.stage]; ok {
			return verb
		}
		return "working"
	}
	return "queued"
}

func (r fileRow) style() lipgloss.Style {
	switch r.state {
	case rowDone:
		return styleOK
	case rowFailed:
		return styleFailed
	case rowActive:
		return styleActive
	}
	return styleIdle
}

func (r fileRow) fraction() float64 {
	switch r.state {
	case rowDone, rowFailed:
		return 1
	case rowActive:
		return stageWeight[r.stage]
	}
	return 0
}

type progressModel struct {
	title    string
	events   <-chan pipeline.Event
	spinner  spinner.Model
	bar      progress.Model
	rows     []fileRow
	byPath   map[string]int
	phase    string // overall stage reported by events without a file
	width    int
	finished bool
}

type (
	eventMsg pipeline.Event
	doneMsg  struct{}
)

// NewProgressModel returns a Bubble Tea model fed by events; it quits when
// the channel is closed.
func NewProgressModel(title string, files []string, events <-chan pipeline.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styleActive

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 76

	rows := make([]fileRow, len(files))
	byPath := make(map[string]int, len(files))
	for i, file := range files {
		rows[i] = fileRow{path: file}
		byPath[file] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     bar,
		rows:    rows,
		byPath:  byPath,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

// next waits for one event.
func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.apply(pipeline.Event(msg)), m.next())
	case doneMsg:
		m.finished = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.finished {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = msg.Width - 4
		}
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) apply(ev pipeline.Event) tea.Cmd {
	if ev.File == "" {
		if verb, ok := stageVerb[ev.Stage]; ok && ev.Status == pipeline.StatusWorking {
			m.phase = verb
		}
		return nil
	}
	idx, ok := m.byPath[ev.File]
	if !ok {
		return nil
	}
	row := &m.rows[idx]
	// завершённую строку поздние события не откатывают
	if row.state == rowDone || row.state == rowFailed {
		return nil
	}
	row.stage = ev.Stage
	switch ev.Status {
	case pipeline.StatusWorking:
		row.state = rowActive
	case pipeline.StatusDone:
		row.state = rowDone
	case pipeline.StatusError:
		row.state = rowFailed
	}
	row.elapsed = ev.Elapsed
	return m.bar.SetPercent(m.percent())
}

func (m *progressModel) percent() float64 {
	if len(m.rows) == 0 {
		return 0
	}
	total := 0.0
	for _, row := range m.rows {
		total += row.fraction()
	}
	return total / float64(len(m.rows))
}

func (m *progressModel) counts() (finished, failed int) {
	for _, row := range m.rows {
		switch row.state {
		case rowDone:
			finished++
		case rowFailed:
			finished++
			failed++
		}
	}
	return finished, failed
}

func (m *progressModel) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	header := m.title
	if m.phase != "" {
		header = fmt.Sprintf("%s (%s)", header, m.phase)
	}
	if m.finished {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(styleTitle.Render(header))
	b.WriteString("\n\n")

	const statusWidth = 12
	nameWidth := max(m.width-statusWidth-14, 20)
	for _, row := range m.rows {
		status := row.style().Render(fmt.Sprintf("%*s", statusWidth, row.label()))
		fmt.Fprintf(&b, "  %s %s", status, truncate(row.path, nameWidth))
		if row.state == rowDone || row.state == rowFailed {
			fmt.Fprintf(&b, " %s", styleIdle.Render(row.elapsed.Round(time.Millisecond).String()))
		}
		b.WriteByte('\n')
	}

	finished, failed := m.counts()
	fmt.Fprintf(&b, "\n%d/%d finished", finished, len(m.rows))
	if failed > 0 {
		b.WriteString(styleFailed.Render(fmt.Sprintf(", %d failed", failed)))
	}
	b.WriteByte('\n')
	if m.finished {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteByte('\n')
	return b.String()
}

// truncate cuts value to width display columns, marking the cut with "...".
func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
