package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"setslice/internal/diag"
	"setslice/internal/driver"
	"setslice/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [dir|file.sl]",
	Short: "Parse and dry-run setslice scripts",
	Long: `Check parses every *.sl file under a directory (default: the project
root or the current directory) and runs it with print output discarded,
reporting every diagnostic without stopping at the first failing file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	checkCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	target := ""
	if len(args) > 0 {
		target = args[0]
	}

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	s, err := loadSettings(cmd, startDirFor(target))
	if err != nil {
		return err
	}
	if target == "" {
		target = "."
		if s.manifest != nil {
			target = s.manifest.Root
		}
	}

	files, err := driver.ListScripts(target)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}
	if len(files) == 0 {
		if !s.quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "no %s files found in %s\n", "*.sl", target)
		}
		return nil
	}

	opts := s.driverOptions(cmd)
	opts.Jobs = jobs

	var (
		fs      *source.FileSet
		results []driver.CheckResult
	)
	if shouldUseTUI(mode, s.quiet) {
		fs, results, err = runCheckWithUI(cmd.Context(), "checking", target, files, opts)
	} else {
		fs, results, err = driver.CheckDir(cmd.Context(), target, opts)
	}
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	combined := diag.NewBag(0)
	for _, r := range results {
		combined.Merge(r.Bag)
	}
	if err := printDiagnostics(os.Stderr, combined, fs, s); err != nil {
		return err
	}

	failed := summarizeCheck(cmd.OutOrStdout(), results, s.quiet)
	if s.timings {
		printStageTimings(cmd.ErrOrStderr(), collectStageTimings(results))
	}
	if failed > 0 {
		return exitError{reason: fmt.Sprintf("%d of %d scripts failed", failed, len(results))}
	}
	return nil
}

// summarizeCheck prints one line per script and returns the number of
// failed scripts.
func summarizeCheck(out io.Writer, results []driver.CheckResult, quiet bool) int {
	failed := 0
	for _, r := range results {
		if r.Failed() {
			failed++
		}
		if quiet {
			continue
		}
		status := "ok  "
		if r.Failed() {
			status = "FAIL"
		}
		fmt.Fprintf(out, "%s %s (%d batches, %d statements)\n", status, r.Path, r.Stats.Batches, r.Stats.Statements)
	}
	if !quiet {
		fmt.Fprintf(out, "%d scripts, %d failed\n", len(results), failed)
	}
	return failed
}
