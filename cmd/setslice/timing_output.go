package main

import (
	"fmt"
	"io"
	"time"

	"setslice/internal/driver"
	"setslice/internal/observ"
	"setslice/internal/pipeline"
)

// stageOfPhase maps timer phase names onto pipeline stages.
var stageOfPhase = map[string]pipeline.Stage{
	"load":      pipeline.StageLoad,
	"lex+parse": pipeline.StageParse,
	"exec":      pipeline.StageCheck,
}

func collectStageTimings(results []driver.CheckResult) pipeline.Timings {
	var timings pipeline.Timings
	for _, r := range results {
		addReport(&timings, r.Timing)
	}
	return timings
}

func addReport(timings *pipeline.Timings, report *observ.Report) {
	if report == nil {
		return
	}
	for _, phase := range report.Phases {
		stage, ok := stageOfPhase[phase.Name]
		if !ok {
			continue
		}
		timings.Add(stage, time.Duration(phase.DurationMS*float64(time.Millisecond)))
	}
}

func printStageTimings(out io.Writer, timings pipeline.Timings) {
	if out == nil {
		return
	}
	for _, stage := range pipeline.Stages {
		if !timings.Has(stage) {
			continue
		}
		if _, err := fmt.Fprintf(out, "%s %.1f ms\n", stage, toMillis(timings.Duration(stage))); err != nil {
			panic(err)
		}
	}
	if _, err := fmt.Fprintf(out, "total %.1f ms\n", toMillis(timings.Sum())); err != nil {
		panic(err)
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
