package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpenRequestValidate(t *testing.T) {
	assert.Error(t, (&OpenRequest{}).Validate())
	assert.Error(t, (&OpenRequest{Key: "alice"}).Validate())
	assert.NoError(t, (&OpenRequest{Key: "alice", Owner: "Alice"}).Validate())
	assert.NoError(t, (&OpenRequest{Key: "alice", Owner: "Alice", InitialBalance: "100.50"}).Validate())
	assert.Error(t, (&OpenRequest{Key: "alice", Owner: "Alice", InitialBalance: "lots"}).Validate())
}

func TestAmountRequestValidate(t *testing.T) {
	assert.Error(t, (&AmountRequest{Key: "alice"}).Validate())
	assert.Error(t, (&AmountRequest{Key: "alice", Amount: "ten"}).Validate())
	assert.NoError(t, (&AmountRequest{Key: "alice", Amount: "10"}).Validate())
	// Sign and zero checks belong to the domain, not the request shape.
	assert.NoError(t, (&AmountRequest{Key: "alice", Amount: "-10"}).Validate())
}

func TestKeyRequestValidate(t *testing.T) {
	assert.Error(t, (&KeyRequest{}).Validate())
	assert.NoError(t, (&KeyRequest{Key: "alice"}).Validate())
}
