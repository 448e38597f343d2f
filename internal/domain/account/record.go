package account

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// record is the serialized form an Account takes inside a kv.Store. The
// store only ever sees these opaque JSON bytes.
type record struct {
	Owner     string          `json:"owner"`
	Balance   decimal.Decimal `json:"balance"`
	Version   int             `json:"version"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func encode(a *Account) ([]byte, error) {
	return json.Marshal(record{
		Owner:     a.owner,
		Balance:   a.balance,
		Version:   a.Version,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	})
}

func decode(raw []byte) (*Account, error) {
	var r record
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("malformed account record: %w", err)
	}
	return &Account{
		owner:     r.Owner,
		balance:   r.Balance,
		Version:   r.Version,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}, nil
}
