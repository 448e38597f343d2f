package internal

import "errors"

// Domain errors surfaced by Account and Service. All of them are locally
// recoverable; callers decide whether to retry or abort.
var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAccountNotFound   = errors.New("account not found")
	ErrAccountExists     = errors.New("account already exists")
)
