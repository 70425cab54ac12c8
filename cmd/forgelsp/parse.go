package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"forgelsp/internal/diagfmt"
	"forgelsp/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file",
	Short: "Parse a file and print its call tree",
	Long: `Parse resolves every function call in the ForgeScript of a file against the
registry and prints the resulting call tree with nested arguments`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
	parseCmd.Flags().Bool("raw", false, "treat the whole file as ForgeScript")
}

func runParse(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	raw, err := cmd.Flags().GetBool("raw")
	if err != nil {
		return fmt.Errorf("failed to get raw flag: %w", err)
	}

	s, err := loadSession(cmd, filePath)
	if err != nil {
		return err
	}
	if raw {
		s.forceRaw()
	}

	fs, res, err := driver.ParseFile(cmd.Context(), filePath, s.driverOptions())
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	s.printFileDiagnostics(cmd, res, fs)

	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		err = diagfmt.FormatFunctionsPretty(out, res.Result.Functions, fs)
	case "json":
		err = diagfmt.FormatFunctionsJSON(out, res.Result.Functions)
	case "msgpack":
		err = diagfmt.FormatFunctionsMsgpack(out, res.Result.Functions)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	if res.Bag.HasErrors() {
		return errDiagnosticsFound
	}
	return nil
}
