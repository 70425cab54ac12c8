// Package prof starts runtime profilers for the command line.
package prof

import (
	"fmt"
	"maps"
	"slices"

	"github.com/pkg/profile"
)

var modes = map[string]func(*profile.Profile){
	"cpu":       profile.CPUProfile,
	"mem":       profile.MemProfile,
	"allocs":    profile.MemProfileAllocs,
	"heap":      profile.MemProfileHeap,
	"block":     profile.BlockProfile,
	"mutex":     profile.MutexProfile,
	"goroutine": profile.GoroutineProfile,
	"trace":     profile.TraceProfile,
}

// Stopper stops an active profile and flushes it to disk.
type Stopper interface{ Stop() }

type noop struct{}

func (noop) Stop() {}

// Modes lists the accepted profile modes.
func Modes() []string {
	return slices.Sorted(maps.Keys(modes))
}

// Start enables the profiler named by mode and writes its output under dir
// (the working directory when empty). An empty mode is a no-op.
func Start(mode, dir string, quiet bool) (Stopper, error) {
	if mode == "" {
		return noop{}, nil
	}
	fn, ok := modes[mode]
	if !ok {
		return nil, fmt.Errorf("unknown profile mode %q (expected one of %v)", mode, Modes())
	}
	opts := []func(*profile.Profile){fn, profile.NoShutdownHook}
	if dir != "" {
		opts = append(opts, profile.ProfilePath(dir))
	}
	if quiet {
		opts = append(opts, profile.Quiet)
	}
	return profile.Start(opts...), nil
}
