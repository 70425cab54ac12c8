package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"forgelsp/internal/version"
)

type versionPayload struct {
	Tool       string `json:"tool"`
	Version    string `json:"version"`
	GitCommit  string `json:"git_commit,omitempty"`
	GitMessage string `json:"git_message,omitempty"`
	BuildDate  string `json:"build_date,omitempty"`
}

var (
	versionFormat string
	versionFull   bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionFull, "full", false, "show every recorded bit of build metadata")
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show forgelsp build information",
	RunE: func(cmd *cobra.Command, args []string) error {
		switch strings.ToLower(versionFormat) {
		case "json":
			return renderVersionJSON(cmd.OutOrStdout(), versionFull)
		case "pretty":
			useColor, err := readColorFlag(cmd)
			if err != nil {
				return err
			}
			renderVersionPretty(cmd.OutOrStdout(), useColor, versionFull)
			return nil
		}
		return fmt.Errorf("unsupported format %q (must be pretty or json)", versionFormat)
	},
}

func readColorFlag(cmd *cobra.Command) (bool, error) {
	value, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	return readColor(value)
}

func renderVersionPretty(out io.Writer, useColor, full bool) {
	if !full {
		fmt.Fprintln(out, version.String())
		return
	}
	v := version.Version
	if useColor {
		prev := color.NoColor
		color.NoColor = false
		v = version.Colored()
		color.NoColor = prev
	}
	fmt.Fprintf(out, "forgelsp %s\n", v)
	fmt.Fprintf(out, "commit:  %s\n", valueOrUnknown(version.GitCommit))
	fmt.Fprintf(out, "message: %s\n", valueOrUnknown(version.GitMessage))
	fmt.Fprintf(out, "built:   %s\n", valueOrUnknown(version.BuildDate))
}

func renderVersionJSON(out io.Writer, full bool) error {
	payload := versionPayload{Tool: "forgelsp", Version: version.Version}
	if full {
		payload.GitCommit = valueOrUnknown(version.GitCommit)
		payload.GitMessage = valueOrUnknown(version.GitMessage)
		payload.BuildDate = valueOrUnknown(version.BuildDate)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func valueOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
