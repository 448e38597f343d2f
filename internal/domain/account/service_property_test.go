package account

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"

	"github.com/ledgerkv/account-ledger/internal"
	"github.com/ledgerkv/account-ledger/internal/kv"
)

type ledgerOp struct {
	Kind   string
	Amount float64
}

func TestServicePropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	parameters.MaxSize = 50

	properties := gopter.NewProperties(parameters)

	properties.Property("balance consistency under random operation sequences", prop.ForAll(
		func(ops []ledgerOp) bool {
			ctx := context.Background()
			service := NewService(kv.NewMemoryStore())

			expected := decimal.NewFromInt(1000)
			if _, err := service.Open(ctx, "acct", "prop", expected); err != nil {
				return false
			}

			for _, op := range ops {
				amount := decimal.NewFromFloat(op.Amount)
				switch op.Kind {
				case "deposit":
					if _, err := service.Deposit(ctx, "acct", amount); err != nil {
						return false
					}
					expected = expected.Add(amount)
				case "withdraw":
					_, err := service.Withdraw(ctx, "acct", amount)
					if errors.Is(err, internal.ErrInsufficientFunds) {
						continue
					}
					if err != nil {
						return false
					}
					expected = expected.Sub(amount)
				}
			}

			balance, err := service.BalanceOf(ctx, "acct")
			if err != nil {
				return false
			}
			return balance.Equal(expected) && !balance.IsNegative()
		},
		gen.SliceOfN(20, genLedgerOp()),
	))

	properties.TestingRun(t)
}

func genLedgerOp() gopter.Gen {
	return gen.Struct(reflect.TypeOf(ledgerOp{}), map[string]gopter.Gen{
		"Kind":   gen.OneConstOf("deposit", "withdraw"),
		"Amount": gen.Float64Range(0.01, 1000.00),
	})
}
