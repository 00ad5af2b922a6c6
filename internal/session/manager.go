package session

import (
	"sync"
)

// Manager is a registry of orchestrators keyed by session key (the
// transport layer derives the key, typically from the deck id). Every
// access runs under a per-key lock, so two requests against the same
// session never interleave while requests against different sessions
// proceed in parallel.
type Manager struct {
	mu      sync.Mutex
	entries map[string]*entry
	factory func() *Orchestrator
}

type entry struct {
	mu   sync.Mutex
	orch *Orchestrator
}

// NewManager creates a Manager that builds orchestrators on demand with
// the given factory. It panics if factory is nil.
func NewManager(factory func() *Orchestrator) *Manager {
	if factory == nil {
		panic("NewManager: factory is nil")
	}
	return &Manager{
		entries: make(map[string]*entry),
		factory: factory,
	}
}

// With runs fn against the orchestrator for key, creating one if none
// exists, while holding that key's lock. The orchestrator must not be
// retained outside fn.
func (m *Manager) With(key string, fn func(*Orchestrator) error) error {
	e := m.entryFor(key)
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.orch)
}

// WithExisting is like With but fails with ErrNoSession when no
// orchestrator has been created for key yet, so read-only operations do
// not spawn empty sessions.
func (m *Manager) WithExisting(key string, fn func(*Orchestrator) error) error {
	m.mu.Lock()
	e, ok := m.entries[key]
	m.mu.Unlock()
	if !ok {
		return ErrNoSession
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.orch)
}

// Drop removes the session for key, if any. The next With call for the
// key starts fresh.
func (m *Manager) Drop(key string) {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
}

func (m *Manager) entryFor(key string) *entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		e = &entry{orch: m.factory()}
		m.entries[key] = e
	}
	return e
}
