package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"forgelsp/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "forgelsp",
	Short: "ForgeScript parser and diagnostics toolkit",
	Long: `forgelsp tokenizes and parses ForgeScript templates embedded in bot
command files, checks calls against a function registry and reports
diagnostics.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupRun,
}

// errDiagnosticsFound makes the process exit with status 1 without printing
// anything more; the diagnostics have already been written.
var errDiagnosticsFound = errors.New("diagnostics contain errors")

func init() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(diagCmd)
	rootCmd.AddCommand(callatCmd)
	rootCmd.AddCommand(registryCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	pf := rootCmd.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics to show per file (0 = unlimited)")
	pf.StringArray("registry", nil, "function registry file (.json|.yaml|.mp), repeatable")
	pf.String("config", "", "path to forgelsp.toml (default: discovered upwards from the input)")
	pf.Int("max-depth", 0, "maximum call nesting depth (0 = config or default)")
	pf.String("trace", "", "write trace events to file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-format", "text", "trace format (text|ndjson)")
	pf.String("profile", "", "enable a runtime profile (cpu|mem|allocs|heap|block|mutex|goroutine|trace)")
	pf.String("profile-dir", "", "directory for profile output")
}

// main executes the root command. If command execution returns an error, the
// process exits with status code 1.
func main() {
	err := rootCmd.Execute()
	teardownRun()
	if err != nil {
		if !errors.Is(err, errDiagnosticsFound) {
			fmt.Fprintf(os.Stderr, "forgelsp: %v\n", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
