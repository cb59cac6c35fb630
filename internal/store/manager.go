package store

import "sync/atomic"

// Manager owns the current store and swaps it atomically on reload. Readers
// take a snapshot via Current and keep it for the whole request; the
// generation counter lets long-lived consumers detect that their snapshot
// went stale.
type Manager struct {
	cur atomic.Pointer[Store]
	gen atomic.Uint64
}

// NewManager creates a Manager holding the initial store (generation 1).
func NewManager(s *Store) *Manager {
	m := &Manager{}
	m.cur.Store(s)
	m.gen.Store(1)
	return m
}

// Current returns the live store snapshot.
func (m *Manager) Current() *Store { return m.cur.Load() }

// Generation returns the current store generation.
func (m *Manager) Generation() uint64 { return m.gen.Load() }

// Swap installs a freshly loaded store and returns the new generation.
func (m *Manager) Swap(s *Store) uint64 {
	m.cur.Store(s)
	return m.gen.Add(1)
}
