package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"setslice/internal/driver"
	"setslice/internal/pipeline"
	"setslice/internal/source"
	"setslice/internal/ui"
)

type checkOutcome struct {
	fileSet *source.FileSet
	results []driver.CheckResult
	err     error
}

// runCheckWithUI drives CheckDir while a bubbletea model renders its events.
func runCheckWithUI(ctx context.Context, title, target string, files []string, opts driver.Options) (*source.FileSet, []driver.CheckResult, error) {
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Sink = pipeline.ChannelSink{Ch: events}
		fs, results, err := driver.CheckDir(ctx, target, optsCopy)
		outcomeCh <- checkOutcome{fileSet: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	return outcome.fileSet, outcome.results, outcome.err
}
