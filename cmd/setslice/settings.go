package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"setslice/internal/diagfmt"
	"setslice/internal/driver"
	"setslice/internal/project"
)

const cacheApp = "setslice"

// settings merges persistent flags with the nearest setslice.toml.
// Flags given on the command line win over the manifest.
type settings struct {
	manifest       *project.Manifest
	maxDiagnostics int
	format         string
	useColor       bool
	quiet          bool
	timings        bool
	noCache        bool
}

func loadSettings(cmd *cobra.Command, startDir string) (*settings, error) {
	flags := cmd.Root().PersistentFlags()

	maxDiagnostics, err := flags.GetInt("max-diagnostics")
	if err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	colorFlag, err := flags.GetString("color")
	if err != nil {
		return nil, fmt.Errorf("failed to get color flag: %w", err)
	}
	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	timings, err := flags.GetBool("timings")
	if err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	noCache, err := flags.GetBool("no-cache")
	if err != nil {
		return nil, fmt.Errorf("failed to get no-cache flag: %w", err)
	}

	useColor, err := resolveColor(colorFlag)
	if err != nil {
		return nil, err
	}

	s := &settings{
		maxDiagnostics: maxDiagnostics,
		format:         "pretty",
		useColor:       useColor,
		quiet:          quiet,
		timings:        timings,
		noCache:        noCache,
	}

	manifest, ok, err := project.Load(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return s, nil
	}
	s.manifest = manifest
	cfg := manifest.Config
	if cfg.Diagnostics.Max > 0 && !flags.Changed("max-diagnostics") {
		s.maxDiagnostics = cfg.Diagnostics.Max
	}
	if cfg.Diagnostics.Format != "" {
		s.format = cfg.Diagnostics.Format
	}
	if !cfg.CacheEnabled() {
		s.noCache = true
	}
	return s, nil
}

func resolveColor(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "auto":
		return isTerminal(os.Stderr), nil
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
}

// driverOptions builds driver options; a cache that cannot be opened is
// reported once and then skipped.
func (s *settings) driverOptions(cmd *cobra.Command) driver.Options {
	opts := driver.Options{
		MaxDiagnostics: s.maxDiagnostics,
		Timings:        s.timings,
	}
	if s.noCache {
		return opts
	}
	cache, err := driver.OpenDiskCache(cacheApp)
	if err != nil {
		if !s.quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: parse cache disabled: %v\n", err)
		}
		return opts
	}
	opts.Cache = cache
	return opts
}

func (s *settings) prettyOpts() diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{
		Color:     s.useColor,
		Context:   2,
		ShowNotes: true,
		ShowFixes: true,
	}
}

func (s *settings) jsonOpts() diagfmt.JSONOpts {
	return diagfmt.JSONOpts{
		IncludePositions: true,
		IncludeNotes:     true,
		IncludeFixes:     true,
	}
}

// startDirFor returns the directory the manifest search starts from.
func startDirFor(path string) string {
	if path == "" {
		return "."
	}
	if st, err := os.Stat(path); err == nil && st.IsDir() {
		return path
	}
	return filepath.Dir(path)
}
