package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"forgelsp/internal/diagfmt"
	"forgelsp/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file",
	Short: "Tokenize the ForgeScript in a file",
	Long: `Tokenize splits the ForgeScript found in a file (its code: blocks, or the
whole file with --raw) into text, function, escape and script tokens`,
	Args: cobra.ExactArgs(1),
	RunE: runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().Bool("raw", false, "treat the whole file as ForgeScript")
}

func runTokenize(cmd *cobra.Command, args []string) error {
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
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Выводим диагностику в stderr, если есть
	s.printFileDiagnostics(cmd, res, fs)

	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(out, res.Result.Tokens, fs)
	case "json":
		return diagfmt.FormatTokensJSON(out, res.Result.Tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
