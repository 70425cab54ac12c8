package registry

import "sync/atomic"

// Store publishes registry snapshots to concurrent readers: one writer
// calls Replace, parses in flight keep the snapshot they started with.
// The driver pins Snapshot once per run.
type Store struct {
	cur atomic.Pointer[Registry]
}

// NewStore returns a store holding r (or an empty registry when r is nil).
func NewStore(r *Registry) *Store {
	s := &Store{}
	s.Replace(r)
	return s
}

// Snapshot returns the current registry. Never nil.
func (s *Store) Snapshot() *Registry {
	return s.cur.Load()
}

// Replace installs r and returns the previous registry.
func (s *Store) Replace(r *Registry) *Registry {
	if r == nil {
		r = New()
	}
	return s.cur.Swap(r)
}
