// Package filekv implements kv.Store on top of a single JSON snapshot
// file. Every write rewrites the snapshot through a temp file followed by
// a rename, so a crash mid-write never corrupts the previous snapshot.
package filekv

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/ledgerkv/account-ledger/internal/kv"
)

const snapshotVersion = 1

type snapshot struct {
	Version int                        `json:"version"`
	SavedAt time.Time                  `json:"saved_at"`
	Records map[string]json.RawMessage `json:"records"`
}

type FileStore struct {
	path string

	mu      sync.Mutex
	records map[string]json.RawMessage
}

// Open loads the snapshot at path, or starts empty if the file does not
// exist yet.
func Open(path string) (*FileStore, error) {
	s := &FileStore{
		path:    path,
		records: make(map[string]json.RawMessage),
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()

	var snap snapshot
	if err := json.NewDecoder(f).Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", path, err)
	}
	if snap.Records != nil {
		s.records = snap.Records
	}
	return s, nil
}

func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.records[key]
	if !ok {
		return nil, kv.ErrKeyNotFound
	}
	cp := make([]byte, len(v))
	copy(cp, v)
	return cp, nil
}

func (s *FileStore) Set(_ context.Context, key string, value []byte) error {
	cp := make([]byte, len(value))
	copy(cp, value)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = cp
	return s.flush()
}

func (s *FileStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[key]; !ok {
		return nil
	}
	delete(s.records, key)
	return s.flush()
}

// All returns a copy of every record, for mirroring into another store.
func (s *FileStore) All(_ context.Context) (map[string][]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string][]byte, len(s.records))
	for k, v := range s.records {
		cp := make([]byte, len(v))
		copy(cp, v)
		out[k] = cp
	}
	return out, nil
}

// flush writes the full snapshot to a temp file and renames it over the
// previous one. Caller must hold s.mu.
func (s *FileStore) flush() error {
	snap := snapshot{
		Version: snapshotVersion,
		SavedAt: time.Now(),
		Records: s.records,
	}

	tmp := s.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create snapshot temp file: %w", err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
