package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/ledgerkv/account-ledger/internal/kv"
)

// PostgresStore implements kv.Store on a single records table
// (see migrations/). Each Set is an upsert, so key uniqueness is enforced
// by the primary key.
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRow(ctx, "SELECT value FROM records WHERE key = $1", key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, kv.ErrKeyNotFound
		}
		return nil, err
	}
	return value, nil
}

func (s *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	sql := `
		INSERT INTO records (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = now()
	`
	_, err := s.db.Exec(ctx, sql, key, value)
	return err
}

func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.Exec(ctx, "DELETE FROM records WHERE key = $1", key)
	return err
}

// All returns every record in the table, for mirroring into another store.
func (s *PostgresStore) All(ctx context.Context) (map[string][]byte, error) {
	rows, err := s.db.Query(ctx, "SELECT key, value FROM records")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]byte)
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		out[key] = value
	}
	return out, rows.Err()
}
