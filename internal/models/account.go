package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Currency is the single currency unit of the demo bank ("Dublo").
const Currency = "DBL"

// MaxNameLength caps stored display names.
const MaxNameLength = 64

// RecentLimit is how many transactions are exposed to clients; storage keeps
// the full history.
const RecentLimit = 50

// Account is a ledger entry keyed by its normalized card number.
type Account struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	CardNumber   string          `json:"cardNumber"`
	Balance      decimal.Decimal `json:"balance"`
	Currency     string          `json:"currency"`
	CreatedAt    time.Time       `json:"createdAt"`
	Transactions []Transaction   `json:"transactions,omitempty"`
}

// PublicAccount is the admin-facing view of an account, without history.
type PublicAccount struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	CardNumber string          `json:"cardNumber"`
	Balance    decimal.Decimal `json:"balance"`
	Currency   string          `json:"currency"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// AccountUpdate is the snapshot pushed to an account's realtime channel after
// every mutation touching it.
type AccountUpdate struct {
	CardNumber   string          `json:"cardNumber"`
	Balance      decimal.Decimal `json:"balance"`
	Currency     string          `json:"currency"`
	Transactions []Transaction   `json:"transactions"`
}

// Public strips the transaction history from the account.
func (a Account) Public() PublicAccount {
	return PublicAccount{
		ID:         a.ID,
		Name:       a.Name,
		CardNumber: a.CardNumber,
		Balance:    a.Balance,
		Currency:   a.Currency,
		CreatedAt:  a.CreatedAt,
	}
}

// Update builds the realtime snapshot with at most RecentLimit transactions.
func (a Account) Update() AccountUpdate {
	return AccountUpdate{
		CardNumber:   a.CardNumber,
		Balance:      a.Balance,
		Currency:     a.Currency,
		Transactions: a.Recent(RecentLimit),
	}
}

// Recent returns a copy of the most recent n transactions, oldest first.
func (a Account) Recent(n int) []Transaction {
	txs := a.Transactions
	if len(txs) > n {
		txs = txs[len(txs)-n:]
	}
	out := make([]Transaction, len(txs))
	copy(out, txs)
	return out
}

// TrimName normalizes a display name: trimmed, capped at MaxNameLength runes,
// defaulting to "User" when empty.
func TrimName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "User"
	}
	runes := []rune(name)
	if len(runes) > MaxNameLength {
		name = string(runes[:MaxNameLength])
	}
	return name
}
