package registry

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

// ErrUnknownFormat is returned for files whose extension is not recognised.
var ErrUnknownFormat = errors.New("unknown registry file format")

// Format is the encoding of a registry file.
type Format uint8

const (
	FormatUnknown Format = iota
	FormatJSON
	FormatYAML
	FormatSnapshot
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatSnapshot:
		return "msgpack"
	default:
		return "unknown"
	}
}

// FormatOf detects the format from the file extension.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".mp", ".msgpack":
		return FormatSnapshot
	}
	return FormatUnknown
}

// document is the object shape of a metadata file; a bare array of
// signatures is accepted too.
type document struct {
	Functions []Signature         `json:"functions"`
	Enums     map[string][]string `json:"enums"`
}

// Decode parses data in the given format into a fresh registry.
func Decode(data []byte, format Format) (*Registry, error) {
	switch format {
	case FormatJSON:
		return decodeJSON(data)
	case FormatYAML:
		js, err := yaml.YAMLToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("yaml: %w", err)
		}
		return decodeJSON(js)
	case FormatSnapshot:
		return ReadSnapshot(bytes.NewReader(data))
	}
	return nil, ErrUnknownFormat
}

func decodeJSON(data []byte) (*Registry, error) {
	var doc document
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0:
		return New(), nil
	case trimmed[0] == '[':
		if err := json.Unmarshal(trimmed, &doc.Functions); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, err
		}
	}
	return fromDocument(&doc)
}

func fromDocument(doc *document) (*Registry, error) {
	r := New()
	for i := range doc.Functions {
		if err := r.Add(doc.Functions[i]); err != nil {
			return nil, fmt.Errorf("function #%d: %w", i, err)
		}
	}
	for name, values := range doc.Enums {
		r.AddEnum(name, values)
	}
	return r, nil
}

// LoadFile reads one registry file. Signatures without a Source get the path.
func LoadFile(path string) (*Registry, error) {
	format := FormatOf(path)
	if format == FormatUnknown {
		return nil, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	r, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for _, sig := range r.funcs {
		if sig.Source == "" {
			sig.Source = path
		}
	}
	return r, nil
}

// LoadFiles loads and merges several files in order. A name defined twice is
// an error unless overwrite is set, in which case the later file wins.
func LoadFiles(paths []string, overwrite bool) (*Registry, error) {
	out := New()
	for _, p := range paths {
		r, err := LoadFile(p)
		if err != nil {
			return nil, err
		}
		if err := out.Merge(r, overwrite); err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
	}
	return out, nil
}
