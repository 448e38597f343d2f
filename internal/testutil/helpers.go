package testutil

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/ledgerkv/account-ledger/internal/kv"
)

// SeedAccount writes an account record straight into the store, bypassing
// the service layer, so tests can stage arbitrary pre-existing state.
func SeedAccount(ctx context.Context, t require.TestingT, store kv.Store, key, owner, balance string) {
	now := time.Now()
	raw, err := json.Marshal(map[string]any{
		"owner":      owner,
		"balance":    balance,
		"version":    1,
		"created_at": now,
		"updated_at": now,
	})
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, key, raw))
}

// TruncateRecords removes all rows from the records table.
func TruncateRecords(ctx context.Context, t require.TestingT, pool *pgxpool.Pool) {
	_, err := pool.Exec(ctx, "TRUNCATE TABLE records")
	require.NoError(t, err)
}
