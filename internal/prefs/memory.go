package prefs

import "sync"

// Memory is a session-only KV.
type Memory struct {
	mu     sync.RWMutex
	values map[string]bool
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]bool)}
}

// Get implements KV.
func (m *Memory) Get(key string) (bool, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

// Set implements KV.
func (m *Memory) Set(key string, value bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}
