package store

import (
	"strconv"
	"sync"
)

// MemoryStore is an in-memory Store implementation, used in tests and as a
// fallback when no durable storage is available.
type MemoryStore struct {
	mu sync.RWMutex
	m  map[string]string
}

// NewMemoryStore returns a new in-memory preferences store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: make(map[string]string)}
}

// GetString returns the value for key, or def when absent.
func (s *MemoryStore) GetString(key, def string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	if !ok {
		return def
	}
	return v
}

// SetString writes key=value.
func (s *MemoryStore) SetString(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}

// GetBool returns the boolean value for key, or def when absent or not a boolean.
func (s *MemoryStore) GetBool(key string, def bool) bool {
	raw := s.GetString(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return v
}

// SetBool writes key=value.
func (s *MemoryStore) SetBool(key string, value bool) error {
	return s.SetString(key, strconv.FormatBool(value))
}

// GetInt returns the integer value for key, or def when absent or not an integer.
func (s *MemoryStore) GetInt(key string, def int) int {
	raw := s.GetString(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

// SetInt writes key=value.
func (s *MemoryStore) SetInt(key string, value int) error {
	return s.SetString(key, strconv.Itoa(value))
}

// Remove deletes key.
func (s *MemoryStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error { return nil }
