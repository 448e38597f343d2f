package account

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/ledgerkv/account-ledger/internal"
	"github.com/ledgerkv/account-ledger/internal/kv"
)

// Service composes Account validation with a kv.Store. The store is the
// single source of truth: every operation loads the record, applies the
// mutation, and writes the result back. Nothing is cached across calls.
//
// A per-key mutex serializes each read-modify-write sequence so two
// concurrent deposits cannot both read the same pre-image and lose an
// update.
type Service struct {
	store kv.Store

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewService(store kv.Store) *Service {
	return &Service{
		store: store,
		locks: make(map[string]*sync.Mutex),
	}
}

// Open creates a new account under key. It fails with ErrAccountExists if
// the key is already present, and propagates Account validation errors
// without writing anything.
func (s *Service) Open(ctx context.Context, key, owner string, initialBalance decimal.Decimal) (*Account, error) {
	lock := s.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	if _, err := s.store.Get(ctx, key); err == nil {
		return nil, fmt.Errorf("%w: %q", internal.ErrAccountExists, key)
	} else if !errors.Is(err, kv.ErrKeyNotFound) {
		return nil, err
	}

	a, err := New(owner, initialBalance)
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, key, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Deposit adds amount to the account under key and returns the new
// balance. Validation happens before the write, so a rejected amount
// never mutates storage.
func (s *Service) Deposit(ctx context.Context, key string, amount decimal.Decimal) (decimal.Decimal, error) {
	lock := s.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	a, err := s.load(ctx, key)
	if err != nil {
		return decimal.Zero, err
	}
	balance, err := a.Deposit(amount)
	if err != nil {
		return a.Balance(), err
	}
	if err := s.save(ctx, key, a); err != nil {
		return decimal.Zero, err
	}
	return balance, nil
}

// Withdraw subtracts amount from the account under key and returns the
// new balance, propagating ErrInsufficientFunds from the account without
// touching storage.
func (s *Service) Withdraw(ctx context.Context, key string, amount decimal.Decimal) (decimal.Decimal, error) {
	lock := s.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	a, err := s.load(ctx, key)
	if err != nil {
		return decimal.Zero, err
	}
	balance, err := a.Withdraw(amount)
	if err != nil {
		return a.Balance(), err
	}
	if err := s.save(ctx, key, a); err != nil {
		return decimal.Zero, err
	}
	return balance, nil
}

// BalanceOf returns the current balance of the account under key.
func (s *Service) BalanceOf(ctx context.Context, key string) (decimal.Decimal, error) {
	a, err := s.load(ctx, key)
	if err != nil {
		return decimal.Zero, err
	}
	return a.Balance(), nil
}

// Close removes the account under key. Closing a key that was never
// opened fails with ErrAccountNotFound; only Open acts on absent keys.
func (s *Service) Close(ctx context.Context, key string) error {
	lock := s.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	if _, err := s.load(ctx, key); err != nil {
		return err
	}
	return s.store.Delete(ctx, key)
}

func (s *Service) load(ctx context.Context, key string) (*Account, error) {
	raw, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, kv.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: %q", internal.ErrAccountNotFound, key)
		}
		return nil, err
	}
	return decode(raw)
}

func (s *Service) save(ctx context.Context, key string, a *Account) error {
	raw, err := encode(a)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, key, raw)
}

func (s *Service) keyLock(key string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[key] = lock
	}
	return lock
}
