package memory

import (
	"context"
	"sync"
	"time"

	"github.com/bumbolandia/bankd/internal/models"
	"github.com/bumbolandia/bankd/internal/storage"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ensure Store satisfies the storage.AccountStore interface at compile time.
var _ storage.AccountStore = (*Store)(nil)

// Store keeps all account state in process memory. A single mutex serializes
// every read and write, so cross-account operations (transfers) are atomic:
// no caller can observe a half-applied debit/credit pair.
type Store struct {
	mu       sync.Mutex
	accounts map[string]*models.Account
	order    []string
}

// NewStore creates an empty in-memory account store.
func NewStore() *Store {
	return &Store{accounts: make(map[string]*models.Account)}
}

// CreateOrGet returns the existing account for the normalized card number
// unchanged, or creates a fresh zero-balance account. Re-registration never
// updates the stored name.
func (s *Store) CreateOrGet(_ context.Context, name, cardNumber string) (models.Account, error) {
	card := models.NormalizeCard(cardNumber)

	s.mu.Lock()
	defer s.mu.Unlock()

	if a, ok := s.accounts[card]; ok {
		return snapshot(a), nil
	}
	if card == "" {
		for {
			card = models.RandomCardNumber()
			if _, ok := s.accounts[card]; !ok {
				break
			}
		}
	}
	a := &models.Account{
		ID:         uuid.NewString(),
		Name:       models.TrimName(name),
		CardNumber: card,
		Balance:    decimal.Zero,
		Currency:   models.Currency,
		CreatedAt:  time.Now().UTC(),
	}
	s.accounts[card] = a
	s.order = append(s.order, card)
	return snapshot(a), nil
}

// FindByCard looks up an account by normalized card number.
func (s *Store) FindByCard(_ context.Context, cardNumber string) (models.Account, error) {
	card := models.NormalizeCard(cardNumber)

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[card]
	if !ok {
		return models.Account{}, storage.ErrNotFound
	}
	return snapshot(a), nil
}

// List returns all accounts in creation order.
func (s *Store) List(_ context.Context) ([]models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Account, 0, len(s.order))
	for _, card := range s.order {
		out = append(out, snapshot(s.accounts[card]))
	}
	return out, nil
}

// Transfer debits fromCard and credits toCard within one critical section.
// Validation order matches the ledger contract: destination existence, then
// amount validity, then balance sufficiency. Nothing is mutated before every
// check passes. A self-transfer is allowed and nets to zero while still
// recording both history entries.
func (s *Store) Transfer(_ context.Context, fromCard, toCard string, amount decimal.Decimal) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	from, ok := s.accounts[models.NormalizeCard(fromCard)]
	if !ok {
		return models.Transaction{}, storage.ErrNotFound
	}
	to, ok := s.accounts[models.NormalizeCard(toCard)]
	if !ok {
		return models.Transaction{}, storage.ErrNotFound
	}
	if !amount.IsPositive() {
		return models.Transaction{}, storage.ErrInvalidAmount
	}
	if from.Balance.LessThan(amount) {
		return models.Transaction{}, storage.ErrInsufficientFunds
	}

	from.Balance = from.Balance.Sub(amount)
	to.Balance = to.Balance.Add(amount)

	tx := models.Transaction{
		ID:        uuid.NewString(),
		FromCard:  from.CardNumber,
		ToCard:    to.CardNumber,
		Amount:    amount,
		Currency:  from.Currency,
		Timestamp: time.Now().UTC(),
	}
	from.Transactions = append(from.Transactions, tx.WithDirection(models.DirectionSent))
	to.Transactions = append(to.Transactions, tx.WithDirection(models.DirectionReceived))
	return tx, nil
}

// Credit increases an account balance, recording an "increase" entry with the
// administrative sentinel source. Credits have no upper bound.
func (s *Store) Credit(_ context.Context, cardNumber string, amount decimal.Decimal) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[models.NormalizeCard(cardNumber)]
	if !ok {
		return models.Account{}, storage.ErrNotFound
	}
	if !amount.IsPositive() {
		return models.Account{}, storage.ErrInvalidAmount
	}

	a.Balance = a.Balance.Add(amount)
	a.Transactions = append(a.Transactions, models.Transaction{
		ID:        uuid.NewString(),
		FromCard:  models.AdminOrigin,
		ToCard:    a.CardNumber,
		Amount:    amount,
		Currency:  a.Currency,
		Timestamp: time.Now().UTC(),
		Direction: models.DirectionIncrease,
	})
	return snapshot(a), nil
}

// snapshot returns a detached copy; callers outside the critical section must
// never see internal pointers.
func snapshot(a *models.Account) models.Account {
	cp := *a
	cp.Transactions = make([]models.Transaction, len(a.Transactions))
	copy(cp.Transactions, a.Transactions)
	return cp
}
