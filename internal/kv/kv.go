// Package kv defines the capability set every storage backend implements:
// map string keys to opaque serialized records. Callers depend only on the
// Store interface, never on a concrete backend.
package kv

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when no record exists for the key.
// Absence is always reported explicitly, never as an empty record.
var ErrKeyNotFound = errors.New("key not found")

type Store interface {
	// Get returns the record stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, overwriting any existing record.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the record under key. Deleting an absent key is
	// not an error.
	Delete(ctx context.Context, key string) error
}
