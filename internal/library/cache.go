package library

import "sync"

// Store is the metadata cache capability shared by the enrichment pipeline
// and the API layer. Keys are absolute file paths.
type Store interface {
	Get(key string) (Movie, bool)
	Set(key string, m Movie)
	Exists(key string) bool
	Clear()
	All() map[string]Movie
}

// MemoryStore is an RWMutex-guarded in-memory Store. It copies on the way
// in and on the way out, so neither the map passed to the constructor nor
// the map returned by All can alias internal state. No eviction; size is
// bounded by the scanned library.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Movie
}

// NewMemoryStore creates a store, optionally seeded with initial entries.
func NewMemoryStore(initial map[string]Movie) *MemoryStore {
	entries := make(map[string]Movie, len(initial))
	for k, v := range initial {
		entries[k] = v
	}
	return &MemoryStore{entries: entries}
}

// Get retrieves a record by key.
func (s *MemoryStore) Get(key string) (Movie, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.entries[key]
	return m, ok
}

// Set stores a record under the given key, replacing any previous entry.
func (s *MemoryStore) Set(key string, m Movie) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = m
}

// Exists reports whether a record is cached under the given key.
func (s *MemoryStore) Exists(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.entries[key]
	return ok
}

// Clear removes all entries.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]Movie)
}

// All returns a copy of every cached record.
func (s *MemoryStore) All() map[string]Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]Movie, len(s.entries))
	for k, v := range s.entries {
		out[k] = v
	}
	return out
}
