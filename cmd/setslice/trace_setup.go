package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"setslice/internal/trace"
)

// traceConfig reads the persistent --trace* flags into a trace.Config.
// Level stays off unless tracing was asked for.
func traceConfig(flags *pflag.FlagSet) (trace.Config, error) {
	var cfg trace.Config
	output, err := flags.GetString("trace")
	if err != nil {
		return cfg, err
	}
	levelName, err := flags.GetString("trace-level")
	if err != nil {
		return cfg, err
	}
	modeName, err := flags.GetString("trace-mode")
	if err != nil {
		return cfg, err
	}
	ringSize, err := flags.GetInt("trace-ring-size")
	if err != nil {
		return cfg, err
	}

	level, err := trace.ParseLevel(levelName)
	if err != nil {
		return cfg, fmt.Errorf("--trace-level: %w", err)
	}
	// --trace без уровня включает фазы
	if level == trace.LevelOff && output != "" && !flags.Changed("trace-level") {
		level = trace.LevelPhase
	}
	mode, err := trace.ParseMode(modeName)
	if err != nil {
		return cfg, fmt.Errorf("--trace-mode: %w", err)
	}
	return trace.Config{Level: level, Mode: mode, OutputPath: output, RingSize: ringSize}, nil
}

// setupTracing attaches a tracer to the command context and returns the
// function that drains it at exit.
func setupTracing(cmd *cobra.Command) (func(), error) {
	root := cmd.Root()
	cfg, err := traceConfig(root.PersistentFlags())
	if err != nil {
		return nil, err
	}
	if cfg.Level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func() {}, nil
	}

	tracer, err := trace.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("trace: %w", err)
	}
	ctx := trace.WithTracer(cmd.Context(), tracer)
	cmd.SetContext(ctx)
	root.SetContext(ctx)

	return func() {
		var errs []error
		// ring держит события в памяти, выгружаем их в конце
		if d, ok := tracer.(trace.Dumper); ok && cfg.Mode == trace.ModeRing {
			errs = append(errs, d.Dump(os.Stderr, trace.FormatText))
		}
		errs = append(errs, tracer.Flush(), tracer.Close())
		if err := errors.Join(errs...); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: %v\n", err)
		}
	}, nil
}
