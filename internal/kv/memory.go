package kv

import (
	"context"
	"sync"
)

// MemoryStore backs Store with an ordinary map. A RWMutex guards the map
// so the store stays consistent even when used without the service layer's
// per-key locking.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.records[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	cp := make([]byte, len(v))
	copy(cp, v)
	return cp, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	cp := make([]byte, len(value))
	copy(cp, value)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = cp
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, key)
	return nil
}

// All returns a copy of every record, keyed as stored. Used by the mirror
// worker to replicate the store into a durable backend.
func (s *MemoryStore) All(_ context.Context) (map[string][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string][]byte, len(s.records))
	for k, v := range s.records {
		cp := make([]byte, len(v))
		copy(cp, v)
		out[k] = cp
	}
	return out, nil
}

// Len reports the number of stored records.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
