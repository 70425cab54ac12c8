package version

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Build metadata; overridden at build time via -ldflags "-X forgelsp/internal/version.Version=...".
var (
	Version    = "0.1.0-dev"
	GitCommit  = ""
	GitMessage = ""
	BuildDate  = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Colored renders Version with each semver component in its own color.
// Non-semver strings are returned unchanged.
func Colored() string {
	core, suffix, _ := strings.Cut(Version, "-")
	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return Version
	}
	out := majorColor.Sprint(parts[0]) + "." + minorColor.Sprint(parts[1]) + "." + patchColor.Sprint(parts[2])
	if suffix != "" {
		out += "-" + suffix
	}
	return out
}

// String is the one-line plain description used by `forgelsp version`.
func String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "forgelsp %s", Version)
	if GitCommit != "" {
		commit := GitCommit
		if len(commit) > 12 {
			commit = commit[:12]
		}
		fmt.Fprintf(&sb, " (%s)", commit)
	}
	if BuildDate != "" {
		fmt.Fprintf(&sb, " built %s", BuildDate)
	}
	return sb.String()
}
