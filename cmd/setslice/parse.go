package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"setslice/internal/diagfmt"
	"setslice/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.sl",
	Short: "Parse a setslice script and output its AST",
	Long:  `Parse analyzes a setslice script and prints its syntax tree`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json|tree)")
}

func runParse(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	s, err := loadSettings(cmd, startDirFor(filePath))
	if err != nil {
		return err
	}

	result, err := driver.Parse(cmd.Context(), filePath, s.driverOptions(cmd))
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	if err := printDiagnostics(os.Stderr, result.Bag, result.FileSet, s); err != nil {
		return err
	}
	if result.Program == nil {
		return exitError{reason: "parsing failed"}
	}

	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		err = diagfmt.FormatASTPretty(out, result.Program, result.FileSet)
	case "json":
		err = diagfmt.FormatASTJSON(out, result.Program)
	case "tree":
		err = diagfmt.FormatASTTree(out, result.Program, result.FileSet)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return exitError{reason: "parsing failed"}
	}
	return nil
}
