// Package kv defines the injected key-value capability the authoring session
// uses for small per-host preferences (resume positions, "seen" flags). The
// core depends on this interface, never on a concrete storage medium.
package kv

import "sync"

// Store is a minimal string key-value capability.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// Memory is the in-process Store, used as the default and in tests.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get returns the value under key.
func (m *Memory) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	return value, ok
}

// Set stores value under key.
func (m *Memory) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}
