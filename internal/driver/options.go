package driver

import (
	"forgelsp/internal/parser"
	"forgelsp/internal/project"
	"forgelsp/internal/registry"
)

// Options configure a driver run.
type Options struct {
	Registry       *registry.Registry
	Registries     *registry.Store // overrides Registry; a run pins one snapshot
	Config         project.Config  // extensions, raw extensions
	MaxDepth       int
	MaxDiagnostics int
	EnableTimings  bool
	Raw            bool       // parse every file as bare ForgeScript
	Jobs           int        // <= 0 means GOMAXPROCS
	Cache          *DiskCache // nil disables caching
	Events         chan<- Event
	// ReadFile replaces os.ReadFile, e.g. with Overlay.ReadFile.
	ReadFile func(path string) ([]byte, error)
}

func (o *Options) parseOptions(path string) parser.Options {
	return parser.Options{
		MaxDepth: o.MaxDepth,
		Raw:      o.isRaw(path),
	}
}

// pinRegistry fixes the registry snapshot used for the whole run.
func (o *Options) pinRegistry() {
	if o.Registries != nil {
		o.Registry = o.Registries.Snapshot()
	}
}

func (o *Options) isRaw(path string) bool {
	return o.Raw || o.Config.IsRaw(path)
}
