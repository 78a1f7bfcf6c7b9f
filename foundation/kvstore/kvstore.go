// Package kvstore provides the key/value persistence used for small per
// wallet preferences such as the selected blog.
package kvstore

import (
	"errors"
	"sync"
)

// ErrNotFound is returned when a key has no value.
var ErrNotFound = errors.New("key not found")

// Store is the behavior required to persist string values by key.
type Store interface {
	Get(key string) (string, error)
	Set(key string, value string) error
	Delete(key string) error
}

// =============================================================================

// Memory represents a store that keeps the values in a map. This
// implements the Store interface.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory constructs a Memory value for use.
func NewMemory() *Memory {
	return &Memory{
		values: make(map[string]string),
	}
}

// Get returns the value for the key.
func (m *Memory) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, exists := m.values[key]
	if !exists {
		return "", ErrNotFound
	}
	return v, nil
}

// Set stores the value for the key.
func (m *Memory) Set(key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
	return nil
}

// Delete removes the key.
func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)
	return nil
}
