package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"forgelsp/internal/diag"
	"forgelsp/internal/diagfmt"
	"forgelsp/internal/driver"
	"forgelsp/internal/source"
	"forgelsp/internal/version"
)

var diagCmd = &cobra.Command{
	Use:   "diag [flags] <file|directory>",
	Short: "Report diagnostics for a file or every command file in a directory",
	Long: `Diag parses ForgeScript in a file, or in every matching file under a
directory, and reports syntax and registry diagnostics. It exits with status 1
when any error is found.`,
	Args: cobra.ExactArgs(1),
	RunE: runDiagnose,
}

func init() {
	diagCmd.Flags().String("format", "", "output format (pretty|json|sarif|short), default from config or pretty")
	diagCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	diagCmd.Flags().Bool("with-notes", true, "include diagnostic notes in output")
	diagCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	diagCmd.Flags().Bool("cache", false, "reuse cached per-file diagnostics across runs")
	diagCmd.Flags().Bool("drop-cache", false, "clear the diagnostics cache before running")
	diagCmd.Flags().String("ui", "auto", "progress view for directories (auto|on|off)")
	diagCmd.Flags().String("stdin-path", "", "read the content of this file from stdin (unsaved buffer)")
}

func runDiagnose(cmd *cobra.Command, args []string) error {
	target := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}
	dropCache, err := cmd.Flags().GetBool("drop-cache")
	if err != nil {
		return fmt.Errorf("failed to get drop-cache flag: %w", err)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	stdinPath, err := cmd.Flags().GetString("stdin-path")
	if err != nil {
		return fmt.Errorf("failed to get stdin-path flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	s, err := loadSession(cmd, target)
	if err != nil {
		return err
	}
	if format == "" {
		format = s.config.Diagnostics.Format
	}
	if format == "" {
		format = "pretty"
	}
	switch format {
	case "pretty", "json", "sarif", "short":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	opts := s.driverOptions()
	opts.Jobs = jobs
	if useCache || dropCache {
		cache, err := driver.OpenDiskCache("forgelsp")
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		if dropCache {
			if err := cache.DropAll(); err != nil {
				return fmt.Errorf("failed to drop cache: %w", err)
			}
		}
		if useCache {
			opts.Cache = cache
		}
	}

	isDir := false
	if stdinPath != "" {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		overlay := driver.NewOverlay(map[string]string{stdinPath: string(content)}, "")
		opts.ReadFile = overlay.ReadFile
		if !overlay.Has(target) {
			info, err := os.Stat(target)
			if err != nil {
				return err
			}
			isDir = info.IsDir()
		}
	} else {
		info, err := os.Stat(target)
		if err != nil {
			return err
		}
		isDir = info.IsDir()
	}

	var (
		fs      *source.FileSet
		results []driver.FileResult
		stats   driver.DirStats
	)
	if isDir {
		files, err := driver.ListFiles(target, opts.Config)
		if err != nil {
			return err
		}
		if format == "pretty" && !s.quiet && len(files) > 0 && shouldUseTUI(mode) {
			fs, results, stats, err = diagnoseDirWithUI(cmd.Context(), target, files, opts)
		} else {
			fs, results, stats, err = driver.DiagnoseDir(cmd.Context(), target, opts)
		}
		if err != nil {
			return fmt.Errorf("diagnostics failed: %w", err)
		}
	} else {
		var res *driver.FileResult
		fs, res, err = driver.ParseFile(cmd.Context(), target, opts)
		if err != nil {
			return fmt.Errorf("diagnostics failed: %w", err)
		}
		results = []driver.FileResult{*res}
		stats = driver.DirStats{Files: 1, Functions: int64(res.Functions)}
	}

	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	out := cmd.OutOrStdout()
	all := diag.NewBag(0)
	for _, r := range results {
		all.Merge(r.Bag)
	}
	all.Sort()

	switch format {
	case "pretty":
		diagfmt.Pretty(out, all, fs, diagfmt.PrettyOpts{
			Color:     s.color,
			Context:   1,
			PathMode:  pathMode,
			ShowNotes: withNotes,
		})
	case "json":
		err = diagfmt.JSON(out, all, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     withNotes,
		})
	case "sarif":
		err = diagfmt.Sarif(out, all, fs, diagfmt.SarifRunMeta{
			ToolName:       "forgelsp",
			ToolVersion:    version.Version,
			InvocationArgs: os.Args[1:],
		})
	case "short":
		_, err = io.WriteString(out, diag.FormatShort(all.Items(), fs, withNotes))
	}
	if err != nil {
		return err
	}

	if !s.quiet && format == "pretty" {
		printSummary(cmd.ErrOrStderr(), all, stats)
	}
	if all.HasErrors() {
		return errDiagnosticsFound
	}
	return nil
}

func printSummary(w io.Writer, bag *diag.Bag, stats driver.DirStats) {
	var errs, warns int
	for _, d := range bag.Items() {
		switch d.Severity {
		case diag.SevError:
			errs++
		case diag.SevWarning:
			warns++
		}
	}
	parts := []string{plural(errs, "error"), plural(warns, "warning")}
	fmt.Fprintf(w, "%s; %s\n", strings.Join(parts, ", "), stats)
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
