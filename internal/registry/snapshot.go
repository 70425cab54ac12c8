package registry

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// snapshotSchema bumps whenever the encoded layout changes.
const snapshotSchema uint16 = 1

type snapshotPayload struct {
	Schema    uint16
	Functions []Signature
	Enums     map[string][]string
}

// WriteSnapshot encodes r as a compact msgpack snapshot.
func (r *Registry) WriteSnapshot(w io.Writer) error {
	payload := snapshotPayload{Schema: snapshotSchema}
	if r != nil {
		payload.Enums = r.enums
	}
	for _, sig := range r.Functions() {
		payload.Functions = append(payload.Functions, *sig)
	}
	enc := msgpack.NewEncoder(w)
	enc.SetSortMapKeys(true)
	return enc.Encode(&payload)
}

// ReadSnapshot decodes a snapshot written by WriteSnapshot.
func ReadSnapshot(rd io.Reader) (*Registry, error) {
	var payload snapshotPayload
	if err := msgpack.NewDecoder(rd).Decode(&payload); err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	if payload.Schema != snapshotSchema {
		return nil, fmt.Errorf("snapshot: schema %d, want %d", payload.Schema, snapshotSchema)
	}
	return fromDocument(&document{Functions: payload.Functions, Enums: payload.Enums})
}

// SaveSnapshot writes the snapshot to path via a temp file and rename.
func (r *Registry) SaveSnapshot(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".registry-*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if err := r.WriteSnapshot(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

// Fingerprint is the SHA-256 of the snapshot encoding; it changes whenever
// any signature or enum changes.
func (r *Registry) Fingerprint() ([32]byte, error) {
	var buf bytes.Buffer
	if err := r.WriteSnapshot(&buf); err != nil {
		return [32]byte{}, err
	}
	return sha256.Sum256(buf.Bytes()), nil
}
