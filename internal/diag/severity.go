package diag

import "fmt"

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevInfo is for informational diagnostics.
	SevInfo Severity = iota
	// SevWarning is for warning diagnostics.
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Label is the lower-case form used by short and JSON output.
func (s Severity) Label() string {
	switch s {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	default:
		return "info"
	}
}

// ParseSeverity accepts "info", "warning" (or "warn") and "error", case-insensitively.
func ParseSeverity(s string) (Severity, error) {
	switch s {
	case "info", "INFO":
		return SevInfo, nil
	case "warning", "warn", "WARNING", "WARN":
		return SevWarning, nil
	case "error", "ERROR":
		return SevError, nil
	}
	return SevInfo, fmt.Errorf("invalid severity %q (expected info|warning|error)", s)
}
