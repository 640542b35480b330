package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction direction tags, relative to the account whose history the
// record is stored in.
const (
	DirectionSent     = "sent"
	DirectionReceived = "received"
	DirectionIncrease = "increase"
)

// AdminOrigin is the sentinel source card for administrative credits.
const AdminOrigin = "ADMIN"

// Transaction is an immutable record of one balance-affecting event. A single
// transfer produces two records sharing the same id, one per participant. The
// canonical record returned to the caller carries no direction.
type Transaction struct {
	ID        string          `json:"id"`
	FromCard  string          `json:"fromCard"`
	ToCard    string          `json:"toCard"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Timestamp time.Time       `json:"timestamp"`
	Direction string          `json:"direction,omitempty"`
}

// WithDirection returns a copy of the record tagged for one side of a
// transfer.
func (t Transaction) WithDirection(direction string) Transaction {
	t.Direction = direction
	return t
}
