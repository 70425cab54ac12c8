package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"forgelsp/internal/driver"
	"forgelsp/internal/source"
	"forgelsp/internal/ui"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

func shouldUseTUI(mode uiMode) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return isTerminal(os.Stdout)
	}
}

type dirOutcome struct {
	fs      *source.FileSet
	results []driver.FileResult
	stats   driver.DirStats
	err     error
}

// diagnoseDirWithUI runs DiagnoseDir in the background while a progress view
// consumes its events.
func diagnoseDirWithUI(ctx context.Context, dir string, files []string, opts driver.Options) (*source.FileSet, []driver.FileResult, driver.DirStats, error) {
	events := make(chan driver.Event, 256)
	opts.Events = events
	outcomeCh := make(chan dirOutcome, 1)

	go func() {
		fs, results, stats, err := driver.DiagnoseDir(ctx, dir, opts)
		outcomeCh <- dirOutcome{fs: fs, results: results, stats: stats, err: err}
	}()

	model := ui.NewProgressModel("forgelsp diag "+dir, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	if uiErr != nil {
		// дочитываем события, чтобы драйвер не заблокировался
		for range events {
		}
	}
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.fs, outcome.results, outcome.stats, uiErr
	}
	return outcome.fs, outcome.results, outcome.stats, outcome.err
}
