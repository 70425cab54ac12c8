package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"forgelsp/internal/diag"
	"forgelsp/internal/source"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// Digest is a SHA-256 cache key.
type Digest [32]byte

// DiskCache stores per-file diagnostics on disk, keyed by file content,
// registry fingerprint and parse options. Thread-safe.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the cached outcome of parsing one file.
type DiskPayload struct {
	Schema      uint16
	Functions   int
	Diagnostics []cachedDiagnostic
}

type cachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
	Start    uint32
	End      uint32
	Notes    []cachedNote
}

type cachedNote struct {
	Start, End uint32
	Msg        string
}

// OpenDiskCache opens (creating if needed) $XDG_CACHE_HOME/<app> or
// ~/.cache/<app>.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt opens a cache rooted at dir.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// CacheKey combines the inputs that determine a parse result.
func CacheKey(content, registry Digest, maxDepth int, raw bool) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	_, _ = h.Write(registry[:])
	var tail [9]byte
	binary.LittleEndian.PutUint64(tail[:8], uint64(maxDepth)) //nolint:gosec // only hashed
	if raw {
		tail[8] = 1
	}
	_, _ = h.Write(tail[:])
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

func (c *DiskCache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "diags", hex.EncodeToString(key[:])+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	payload.Schema = diskCacheSchemaVersion
	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	// Атомарная замена
	return os.Rename(tmp, p)
}

// Get reads a payload. A missing entry or an entry from another schema is a
// miss, not an error.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return out.Schema == diskCacheSchemaVersion, nil
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "diags"))
}

func toPayload(diags []diag.Diagnostic, functions int) *DiskPayload {
	p := &DiskPayload{Functions: functions, Diagnostics: make([]cachedDiagnostic, len(diags))}
	for i, d := range diags {
		cd := cachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, cachedNote{Start: n.Span.Start, End: n.Span.End, Msg: n.Msg})
		}
		p.Diagnostics[i] = cd
	}
	return p
}

func fromPayload(p *DiskPayload, file source.FileID) []diag.Diagnostic {
	out := make([]diag.Diagnostic, len(p.Diagnostics))
	for i, cd := range p.Diagnostics {
		d := diag.Diagnostic{
			Severity: diag.Severity(cd.Severity),
			Code:     diag.Code(cd.Code),
			Message:  cd.Message,
			Primary:  source.Span{File: file, Start: cd.Start, End: cd.End},
		}
		for _, n := range cd.Notes {
			d.Notes = append(d.Notes, diag.Note{Span: source.Span{File: file, Start: n.Start, End: n.End}, Msg: n.Msg})
		}
		out[i] = d
	}
	return out
}
