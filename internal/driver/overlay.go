package driver

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"fortio.org/safecast"

	"forgelsp/internal/source"
)

// Overlay stores in-memory file contents (unsaved editor buffers, stdin)
// keyed by normalised absolute path. Overlay contents win over the disk.
type Overlay struct {
	files map[string]string
}

// NewOverlay normalises keys, which may be paths relative to baseDir,
// absolute paths or file:// URIs.
func NewOverlay(files map[string]string, baseDir string) Overlay {
	out := make(map[string]string, len(files))
	for key, value := range files {
		if norm, ok := normalizeOverlayKey(key, baseDir); ok {
			out[norm] = value
		}
	}
	return Overlay{files: out}
}

// Has reports whether path is served from memory.
func (o Overlay) Has(path string) bool {
	norm, ok := normalizeOverlayKey(path, "")
	if !ok {
		return false
	}
	_, ok = o.files[norm]
	return ok
}

// ReadFile returns the overlay content for path or falls back to the disk.
func (o Overlay) ReadFile(path string) ([]byte, error) {
	if norm, ok := normalizeOverlayKey(path, ""); ok {
		if content, ok := o.files[norm]; ok {
			return []byte(content), nil
		}
	}
	// #nosec G304 -- path comes from the command line or a directory walk
	return os.ReadFile(path)
}

func normalizeOverlayKey(key, baseDir string) (string, bool) {
	if strings.TrimSpace(key) == "" {
		return "", false
	}
	path := key
	if strings.HasPrefix(key, "file://") {
		parsed, err := url.Parse(key)
		if err != nil {
			return "", false
		}
		path = parsed.Path
	}
	path = filepath.FromSlash(path)
	if baseDir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return filepath.ToSlash(filepath.Clean(path)), true
}

// load reads path through opts.ReadFile when set, else from disk.
func (o *Options) load(fs *source.FileSet, path string) (source.FileID, error) {
	if o.ReadFile == nil {
		return fs.Load(path)
	}
	content, err := o.ReadFile(path)
	if err != nil {
		return 0, err
	}
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		return 0, fmt.Errorf("%s: file too large: %w", path, err)
	}
	return fs.Add(path, content, 0), nil
}
