// Package account holds the ledger's core domain: a balance-carrying
// value object with validated mutators, and the service that persists it
// through a kv.Store.
package account

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerkv/account-ledger/internal"
)

// Account holds a non-negative balance for a single owner.
// Invariants:
//   - owner is non-empty and never changes after construction.
//   - balance >= 0 before and after every successful operation.
//
// owner and balance are unexported; Deposit and Withdraw are the only
// mutation paths.
type Account struct {
	owner     string
	balance   decimal.Decimal
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// New constructs an Account with the given owner and initial balance.
func New(owner string, initialBalance decimal.Decimal) (*Account, error) {
	if strings.TrimSpace(owner) == "" {
		return nil, fmt.Errorf("%w: owner must not be empty", internal.ErrInvalidArgument)
	}
	if initialBalance.IsNegative() {
		return nil, fmt.Errorf("%w: initial balance must not be negative", internal.ErrInvalidArgument)
	}
	now := time.Now()
	return &Account{
		owner:     owner,
		balance:   initialBalance,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Deposit adds amount to the balance and returns the new balance.
func (a *Account) Deposit(amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return a.balance, fmt.Errorf("%w: deposit amount must be positive", internal.ErrInvalidArgument)
	}
	a.balance = a.balance.Add(amount)
	a.touch()
	return a.balance, nil
}

// Withdraw subtracts amount from the balance and returns the new balance.
// The balance is left untouched on any failure.
func (a *Account) Withdraw(amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return a.balance, fmt.Errorf("%w: withdrawal amount must be positive", internal.ErrInvalidArgument)
	}
	if amount.GreaterThan(a.balance) {
		return a.balance, internal.ErrInsufficientFunds
	}
	a.balance = a.balance.Sub(amount)
	a.touch()
	return a.balance, nil
}

func (a *Account) Owner() string {
	return a.owner
}

func (a *Account) Balance() decimal.Decimal {
	return a.balance
}

func (a *Account) touch() {
	a.Version++
	a.UpdatedAt = time.Now()
}
