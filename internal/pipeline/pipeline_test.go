package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTimings(t *testing.T) {
	var tm Timings
	require.False(t, tm.Has(StageParse))
	require.Zero(t, tm.Duration(StageParse))

	tm.Set(StageParse, 2*time.Millisecond)
	tm.Add(StageRun, time.Millisecond)
	tm.Add(StageRun, time.Millisecond)

	require.True(t, tm.Has(StageParse))
	require.Equal(t, 2*time.Millisecond, tm.Duration(StageRun))
	require.Equal(t, 4*time.Millisecond, tm.Sum())
	require.Equal(t, 2*time.Millisecond, tm.Sum(StageParse, StageCheck))
}

func TestNilTimingsIgnoresWrites(t *testing.T) {
	var tm *Timings
	require.NotPanics(t, func() {
		tm.Set(StageLoad, time.Second)
		tm.Add(StageLoad, time.Second)
	})
}

func TestSinks(t *testing.T) {
	ch := make(chan Event, 1)
	Emit(ChannelSink{Ch: ch}, Event{File: "a.sl", Stage: StageParse, Status: StatusWorking})
	require.Equal(t, "a.sl", (<-ch).File)

	var rec RecordingSink
	Emit(&rec, Event{Stage: StageRun, Status: StatusDone})
	Emit(nil, Event{})
	require.Len(t, rec.Events(), 1)

	var got Status
	FuncSink(func(e Event) { got = e.Status }).OnEvent(Event{Status: StatusError})
	require.Equal(t, StatusError, got)
}
