package storage

import (
	"context"
	"errors"

	"github.com/bumbolandia/bankd/internal/models"
	"github.com/shopspring/decimal"
)

// ErrNotFound indicates no account exists for the given card number.
var ErrNotFound = errors.New("account not found")

// ErrInvalidAmount indicates a zero, negative, or unparseable amount.
var ErrInvalidAmount = errors.New("invalid amount")

// ErrInsufficientFunds indicates a transfer debit exceeding the source
// balance.
var ErrInsufficientFunds = errors.New("insufficient funds")

// AccountStore captures the account operations needed by the ledger and
// handlers. Every returned Account is a detached snapshot; mutating it does
// not affect stored state.
type AccountStore interface {
	// CreateOrGet normalizes the card number and returns the existing
	// account for it unchanged, or creates a new zero-balance account. An
	// empty normalized card number gets a random generated one.
	CreateOrGet(ctx context.Context, name, cardNumber string) (models.Account, error)

	// FindByCard looks up an account by normalized card number.
	FindByCard(ctx context.Context, cardNumber string) (models.Account, error)

	// List returns all accounts in creation order.
	List(ctx context.Context) ([]models.Account, error)

	// Transfer atomically moves amount between two accounts, appending a
	// paired "sent"/"received" record to each history, and returns the
	// canonical transaction record.
	Transfer(ctx context.Context, fromCard, toCard string, amount decimal.Decimal) (models.Transaction, error)

	// Credit increases an account balance by amount, appending an
	// "increase" record with the administrative sentinel source, and
	// returns the updated account.
	Credit(ctx context.Context, cardNumber string, amount decimal.Decimal) (models.Account, error)
}
