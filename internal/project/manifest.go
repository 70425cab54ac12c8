// Package project finds and decodes forgelsp.toml.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file searched for by FindManifest.
const ManifestName = "forgelsp.toml"

// ErrNoManifest is returned by Discover when no manifest exists up the tree.
var ErrNoManifest = errors.New("no " + ManifestName + " found")

// DefaultExtensions are the host-document extensions picked up when a
// directory is diagnosed.
var DefaultExtensions = []string{".js", ".mjs", ".cjs", ".ts"}

type Config struct {
	Registry    RegistryConfig    `toml:"registry"`
	Parse       ParseConfig       `toml:"parse"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
}

type RegistryConfig struct {
	Paths     []string `toml:"paths"`
	Overwrite bool     `toml:"overwrite"`
}

type ParseConfig struct {
	MaxDepth      int      `toml:"max_depth"`
	Extensions    []string `toml:"extensions"`
	RawExtensions []string `toml:"raw_extensions"`
}

type DiagnosticsConfig struct {
	Max    int    `toml:"max"`
	Format string `toml:"format"`
}

// Manifest is a decoded forgelsp.toml and its location.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Default is the configuration used without a manifest.
func Default() Config {
	return Config{Parse: ParseConfig{Extensions: slices.Clone(DefaultExtensions)}}
}

// FindManifest walks up from startDir to locate forgelsp.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// Discover finds and loads the nearest manifest.
func Discover(startDir string) (*Manifest, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoManifest
	}
	return LoadManifest(path)
}

// LoadManifest decodes and validates one manifest file.
func LoadManifest(path string) (*Manifest, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
	}
	if meta.IsDefined("registry") && !meta.IsDefined("registry", "paths") {
		return nil, fmt.Errorf("%s: missing [registry].paths", path)
	}
	if meta.IsDefined("parse", "max_depth") && cfg.Parse.MaxDepth <= 0 {
		return nil, fmt.Errorf("%s: [parse].max_depth must be positive, got %d", path, cfg.Parse.MaxDepth)
	}
	if meta.IsDefined("diagnostics", "max") && cfg.Diagnostics.Max < 0 {
		return nil, fmt.Errorf("%s: [diagnostics].max must not be negative", path)
	}
	for _, list := range [][]string{cfg.Parse.Extensions, cfg.Parse.RawExtensions} {
		for _, ext := range list {
			if !strings.HasPrefix(ext, ".") {
				return nil, fmt.Errorf("%s: extension %q must start with '.'", path, ext)
			}
		}
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, nil
}

// RegistryPaths resolves [registry].paths against the manifest directory.
func (m *Manifest) RegistryPaths() []string {
	out := make([]string, 0, len(m.Config.Registry.Paths))
	for _, p := range m.Config.Registry.Paths {
		p = filepath.FromSlash(strings.TrimSpace(p))
		if !filepath.IsAbs(p) {
			p = filepath.Join(m.Root, p)
		}
		out = append(out, p)
	}
	return out
}

// IsRaw reports whether path is bare ForgeScript (no block extraction).
func (c *Config) IsRaw(path string) bool {
	return hasExt(c.Parse.RawExtensions, path)
}

// Accepts reports whether a directory walk should pick up path.
func (c *Config) Accepts(path string) bool {
	return hasExt(c.Parse.Extensions, path) || c.IsRaw(path)
}

func hasExt(list []string, path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range list {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}
