package storage

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store used by tests and the backup tool's
// staging step. Values are copied on the way in and out.
type MemoryStore struct {
	mu          sync.Mutex
	collections map[string]map[string][]byte
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]map[string][]byte)}
}

// Get retrieves a single document
func (s *MemoryStore) Get(ctx context.Context, collection, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.collections[collection][key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Put inserts or replaces a document
func (s *MemoryStore) Put(ctx context.Context, collection, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.collections[collection] == nil {
		s.collections[collection] = make(map[string][]byte)
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	s.collections[collection][key] = stored
	return nil
}

// Delete removes a document; deleting a missing document is not an error
func (s *MemoryStore) Delete(ctx context.Context, collection, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.collections[collection], key)
	return nil
}

// Clear removes every document in a collection
func (s *MemoryStore) Clear(ctx context.Context, collection string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.collections, collection)
	return nil
}

// GetAll retrieves every document in a collection keyed by document key
func (s *MemoryStore) GetAll(ctx context.Context, collection string) (map[string][]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make(map[string][]byte, len(s.collections[collection]))
	for key, value := range s.collections[collection] {
		out := make([]byte, len(value))
		copy(out, value)
		result[key] = out
	}
	return result, nil
}

// Close is a no-op for the in-memory store
func (s *MemoryStore) Close() error {
	return nil
}
