package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"forgelsp/internal/diagfmt"
	"forgelsp/internal/driver"
	"forgelsp/internal/parser"
	"forgelsp/internal/project"
	"forgelsp/internal/registry"
	"forgelsp/internal/source"
)

// session is the resolved configuration shared by the subcommands.
type session struct {
	manifest       *project.Manifest // nil without forgelsp.toml
	config         project.Config
	registry       *registry.Registry
	registries     *registry.Store // driver runs pin its snapshot
	maxDepth       int
	maxDiagnostics int
	timings        bool
	quiet          bool
	color          bool
	raw            bool // --raw: whole file is ForgeScript
}

// loadSession merges forgelsp.toml (explicit or discovered from startPath)
// with the persistent flags and loads the registry. Flags win over the
// manifest; --registry files are merged after the manifest's.
func loadSession(cmd *cobra.Command, startPath string) (*session, error) {
	flags := cmd.Root().PersistentFlags()
	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	registryFlags, err := flags.GetStringArray("registry")
	if err != nil {
		return nil, fmt.Errorf("failed to get registry flag: %w", err)
	}
	maxDepth, err := flags.GetInt("max-depth")
	if err != nil {
		return nil, fmt.Errorf("failed to get max-depth flag: %w", err)
	}
	maxDiagnostics, err := flags.GetInt("max-diagnostics")
	if err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	timings, err := flags.GetBool("timings")
	if err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	colorFlag, err := flags.GetString("color")
	if err != nil {
		return nil, fmt.Errorf("failed to get color flag: %w", err)
	}
	useColor, err := readColor(colorFlag)
	if err != nil {
		return nil, err
	}

	s := &session{
		config:         project.Default(),
		maxDiagnostics: maxDiagnostics,
		timings:        timings,
		quiet:          quiet,
		color:          useColor,
	}

	switch {
	case configPath != "":
		s.manifest, err = project.LoadManifest(configPath)
	default:
		s.manifest, err = project.Discover(manifestStart(startPath))
		if errors.Is(err, project.ErrNoManifest) {
			err = nil
		}
	}
	if err != nil {
		return nil, err
	}

	var paths []string
	overwrite := false
	if s.manifest != nil {
		s.config = s.manifest.Config
		paths = s.manifest.RegistryPaths()
		overwrite = s.config.Registry.Overwrite
		if !flags.Changed("max-diagnostics") && s.config.Diagnostics.Max > 0 {
			s.maxDiagnostics = s.config.Diagnostics.Max
		}
	}
	paths = append(paths, registryFlags...)

	s.maxDepth = s.config.Parse.MaxDepth
	if maxDepth > 0 {
		s.maxDepth = maxDepth
	}
	if s.maxDepth <= 0 {
		s.maxDepth = parser.DefaultMaxDepth
	}

	s.registry, err = registry.LoadFiles(paths, overwrite)
	if err != nil {
		return nil, fmt.Errorf("failed to load registry: %w", err)
	}
	s.registries = registry.NewStore(s.registry)
	if len(paths) == 0 && !quiet {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning: no function registry configured, every call will be reported as unknown")
	}
	return s, nil
}

// manifestStart is the directory manifest discovery starts from.
func manifestStart(path string) string {
	if path == "" {
		return "."
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return path
	}
	return filepath.Dir(path)
}

func readColor(value string) (bool, error) {
	switch value {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "", "auto":
		return isTerminal(os.Stdout), nil
	}
	return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
}

func (s *session) driverOptions() driver.Options {
	return driver.Options{
		Registry:       s.registry,
		Registries:     s.registries,
		Config:         s.config,
		MaxDepth:       s.maxDepth,
		MaxDiagnostics: s.maxDiagnostics,
		EnableTimings:  s.timings,
		Raw:            s.raw,
	}
}

// forceRaw skips block extraction for every file of the run.
func (s *session) forceRaw() {
	s.raw = true
}

// printFileDiagnostics writes a file's diagnostics to stderr in pretty form.
func (s *session) printFileDiagnostics(cmd *cobra.Command, res *driver.FileResult, fs *source.FileSet) {
	if res.Bag.Len() == 0 {
		return
	}
	res.Bag.Sort()
	diagfmt.Pretty(cmd.ErrOrStderr(), res.Bag, fs, diagfmt.PrettyOpts{
		Color:     s.color,
		Context:   1,
		ShowNotes: true,
	})
}
