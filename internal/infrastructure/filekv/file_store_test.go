package filekv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerkv/account-ledger/internal/kv"
)

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.json")

	s, err := Open(path)
	require.NoError(t, err)

	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, kv.ErrKeyNotFound)

	require.NoError(t, s.Set(ctx, "a", []byte(`{"owner":"Alice"}`)))
	require.NoError(t, s.Set(ctx, "b", []byte(`{"owner":"Bob"}`)))
	require.NoError(t, s.Delete(ctx, "b"))

	// Reopening reads back the snapshot written by the first store.
	s2, err := Open(path)
	require.NoError(t, err)

	v, err := s2.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"owner":"Alice"}`), v)

	_, err = s2.Get(ctx, "b")
	assert.ErrorIs(t, err, kv.ErrKeyNotFound)
}

func TestFileStoreDeleteAbsent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.json")

	s, err := Open(path)
	require.NoError(t, err)

	// Deleting from an empty store is a no-op and writes nothing.
	require.NoError(t, s.Delete(ctx, "ghost"))
	require.NoError(t, s.Delete(ctx, "ghost"))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestFileStoreNoTempFileLeftBehind(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "ledger.json")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "a", []byte("1")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ledger.json", entries[0].Name())
}

func TestFileStoreCorruptSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, err := Open(path)
	assert.Error(t, err)
}
