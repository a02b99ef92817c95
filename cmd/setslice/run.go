package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"setslice/internal/driver"
	"setslice/internal/project"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] [file.sl]",
	Short: "Parse and execute a setslice script",
	Long: `Run parses a script and executes its batches in order. Without a file
argument the [run].main entry of setslice.toml is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	target := ""
	if len(args) > 0 {
		target = args[0]
	}

	s, err := loadSettings(cmd, startDirFor(target))
	if err != nil {
		return err
	}

	if target == "" {
		if s.manifest == nil {
			return fmt.Errorf("no script given and no %s found", project.ManifestName)
		}
		target, err = s.manifest.MainPath()
		if err != nil {
			return err
		}
	}

	opts := s.driverOptions(cmd)
	opts.Stdout = cmd.OutOrStdout()

	result, runErr := driver.Run(cmd.Context(), target, opts)
	if result != nil {
		if err := printDiagnostics(os.Stderr, result.Bag, result.FileSet, s); err != nil {
			return err
		}
	}
	if runErr != nil {
		return fmt.Errorf("run failed: %w", runErr)
	}
	if result.Bag.HasErrors() {
		return exitError{reason: "run failed"}
	}
	return nil
}
