// Package data holds the request shapes the CLI binds user input into
// before anything reaches the service layer.
package data

import (
	"github.com/go-playground/validator/v10"
)

type OpenRequest struct {
	Key            string `json:"key" validate:"required"`
	Owner          string `json:"owner" validate:"required"`
	InitialBalance string `json:"initial_balance" validate:"omitempty,numeric"`
}

type AmountRequest struct {
	Key    string `json:"key" validate:"required"`
	Amount string `json:"amount" validate:"required,numeric"`
}

type KeyRequest struct {
	Key string `json:"key" validate:"required"`
}

var validate = validator.New()

func (r *OpenRequest) Validate() error {
	return validate.Struct(r)
}

func (r *AmountRequest) Validate() error {
	return validate.Struct(r)
}

func (r *KeyRequest) Validate() error {
	return validate.Struct(r)
}
