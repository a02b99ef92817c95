package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"setslice/internal/pipeline"
)

func TestProgressModelTracksFiles(t *testing.T) {
	events := make(chan pipeline.Event)
	model := NewProgressModel("check", []string{"a.sl", "b.sl"}, events)
	m := model.(*progressModel)

	m.Update(eventMsg(pipeline.Event{File: "a.sl", Stage: pipeline.StageParse, Status: pipeline.StatusWorking}))
	require.Equal(t, "parsing", m.rows[0].label())
	require.Equal(t, "queued", m.rows[1].label())
	require.InDelta(t, 0.15, m.percent(), 1e-9)

	m.Update(eventMsg(pipeline.Event{File: "a.sl", Stage: pipeline.StageCheck, Status: pipeline.StatusDone, Elapsed: 3 * time.Millisecond}))
	m.Update(eventMsg(pipeline.Event{File: "b.sl", Stage: pipeline.StageParse, Status: pipeline.StatusError}))
	m.Update(eventMsg(pipeline.Event{File: "unknown.sl", Stage: pipeline.StageRun, Status: pipeline.StatusWorking}))
	require.InDelta(t, 1.0, m.percent(), 1e-9)

	finished, failed := m.counts()
	require.Equal(t, 2, finished)
	require.Equal(t, 1, failed)

	m.Update(eventMsg(pipeline.Event{Stage: pipeline.StageCheck, Status: pipeline.StatusWorking}))
	require.Equal(t, "checking", m.phase)

	_, cmd := m.Update(doneMsg{})
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())

	view := m.View()
	require.Contains(t, view, "done: check (checking)")
	require.Contains(t, view, "a.sl 3ms")
	require.Contains(t, view, "error")
	require.Contains(t, view, "2/2 finished")
}

func TestFinishedRowIgnoresLateEvents(t *testing.T) {
	m := NewProgressModel("check", []string{"a.sl"}, nil).(*progressModel)

	m.Update(eventMsg(pipeline.Event{File: "a.sl", Stage: pipeline.StageParse, Status: pipeline.StatusError}))
	m.Update(eventMsg(pipeline.Event{File: "a.sl", Stage: pipeline.StageCheck, Status: pipeline.StatusWorking}))
	require.Equal(t, "error", m.rows[0].label())
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "short", truncate("short", 10))
	require.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 13))
	require.Equal(t, "ab", truncate("abcdef", 2))
	// широкие руны считаются за две колонки
	require.Equal(t, "名...", truncate("名前前前前", 8))
}
