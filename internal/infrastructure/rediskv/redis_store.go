// Package rediskv implements kv.Store on a Redis instance, one record
// per key without expiration.
package rediskv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ledgerkv/account-ledger/internal/kv"
)

type RedisStore struct {
	client *redis.Client
}

// New connects to Redis at addr and verifies the connection with a ping.
func New(addr, password string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &RedisStore{client: client}, nil
}

// NewFromClient wraps an existing client; used by tests that provision
// their own connection.
func NewFromClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, kv.ErrKeyNotFound
		}
		return nil, err
	}
	return v, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, key, value, 0).Err()
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

// All walks the keyspace with SCAN and returns every record. Keys that
// disappear between the scan and the read are skipped.
func (s *RedisStore) All(ctx context.Context) (map[string][]byte, error) {
	out := make(map[string][]byte)
	iter := s.client.Scan(ctx, 0, "*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		v, err := s.client.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, err
		}
		out[key] = v
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
