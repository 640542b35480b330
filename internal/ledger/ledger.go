// Package ledger implements the balance-mutating operations of the demo bank
// and triggers realtime fanout after each successful mutation. It composes
// the account store, the session registry, and a transport-agnostic
// publisher; it never touches HTTP or websocket concerns directly.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"

	"github.com/bumbolandia/bankd/internal/auth"
	"github.com/bumbolandia/bankd/internal/models"
	"github.com/bumbolandia/bankd/internal/storage"
	"github.com/shopspring/decimal"
)

// ErrValidation indicates missing required registration fields.
var ErrValidation = errors.New("missing required registration fields")

// Publisher delivers post-mutation snapshots to realtime subscribers. The
// ledger calls it once per affected account: first the account snapshot, then
// the admin-wide account list.
type Publisher interface {
	PublishAccount(update models.AccountUpdate)
	PublishAccounts(accounts []models.PublicAccount)
}

// Service owns the transfer and credit operations and their consistency with
// the in-memory ledger.
type Service struct {
	store    storage.AccountStore
	sessions *auth.Registry
	pub      Publisher
}

// New wires a service over the given store, session registry, and publisher.
func New(store storage.AccountStore, sessions *auth.Registry, pub Publisher) *Service {
	return &Service{store: store, sessions: sessions, pub: pub}
}

// Register creates or fetches the account for the card number and issues a
// fresh session token. Registering an existing card returns it unchanged; the
// supplied name is ignored in that case.
func (s *Service) Register(ctx context.Context, name, cardNumber string) (string, models.Account, error) {
	if strings.TrimSpace(name) == "" {
		return "", models.Account{}, ErrValidation
	}
	account, err := s.store.CreateOrGet(ctx, name, cardNumber)
	if err != nil {
		return "", models.Account{}, err
	}
	return s.sessions.Issue(account.CardNumber), account, nil
}

// Account returns the account snapshot for a card number.
func (s *Service) Account(ctx context.Context, cardNumber string) (models.Account, error) {
	return s.store.FindByCard(ctx, cardNumber)
}

// Accounts returns the public view of every account, in creation order.
func (s *Service) Accounts(ctx context.Context) ([]models.PublicAccount, error) {
	accounts, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.PublicAccount, len(accounts))
	for i, a := range accounts {
		out[i] = a.Public()
	}
	return out, nil
}

// Transfer moves rawAmount from the authenticated source card to the
// destination card. Checks run in contract order: recipient existence, amount
// validity, balance sufficiency; any failure leaves all state untouched. On
// success both accounts are fanned out, source first.
func (s *Service) Transfer(ctx context.Context, fromCard, toCardNumber string, rawAmount json.RawMessage) (models.Transaction, error) {
	toCard := models.NormalizeCard(toCardNumber)
	if _, err := s.store.FindByCard(ctx, toCard); err != nil {
		return models.Transaction{}, err
	}
	amount, err := parseAmount(rawAmount)
	if err != nil {
		return models.Transaction{}, err
	}
	tx, err := s.store.Transfer(ctx, fromCard, toCard, amount)
	if err != nil {
		return models.Transaction{}, err
	}
	s.publishAccount(ctx, tx.FromCard)
	s.publishAccount(ctx, tx.ToCard)
	return tx, nil
}

// AdminLogin exchanges the shared access code for a fresh admin token.
func (s *Service) AdminLogin(code string) (string, error) {
	return s.sessions.IssueAdmin(code)
}

// Credit increases an account balance by rawAmount on behalf of an admin and
// returns the new balance. Existence is checked before amount validity.
func (s *Service) Credit(ctx context.Context, cardNumber string, rawAmount json.RawMessage) (decimal.Decimal, error) {
	card := models.NormalizeCard(cardNumber)
	if _, err := s.store.FindByCard(ctx, card); err != nil {
		return decimal.Decimal{}, err
	}
	amount, err := parseAmount(rawAmount)
	if err != nil {
		return decimal.Decimal{}, err
	}
	account, err := s.store.Credit(ctx, card, amount)
	if err != nil {
		return decimal.Decimal{}, err
	}
	s.publishAccount(ctx, account.CardNumber)
	return account.Balance, nil
}

// AccountUpdateForToken resolves a session token to its account snapshot for
// realtime subscription. Invalid tokens report ok=false and nothing else.
func (s *Service) AccountUpdateForToken(ctx context.Context, token string) (models.AccountUpdate, bool) {
	card, ok := s.sessions.Resolve(token)
	if !ok {
		return models.AccountUpdate{}, false
	}
	account, err := s.store.FindByCard(ctx, card)
	if err != nil {
		return models.AccountUpdate{}, false
	}
	return account.Update(), true
}

// AccountsForAdmin validates an admin token and returns the full public
// account list for realtime subscription.
func (s *Service) AccountsForAdmin(ctx context.Context, adminToken string) ([]models.PublicAccount, bool) {
	if !s.sessions.IsAdmin(adminToken) {
		return nil, false
	}
	accounts, err := s.Accounts(ctx)
	if err != nil {
		return nil, false
	}
	return accounts, true
}

// publishAccount fans out one account's snapshot to its channel, then the
// refreshed account list to the admin channel.
func (s *Service) publishAccount(ctx context.Context, cardNumber string) {
	account, err := s.store.FindByCard(ctx, cardNumber)
	if err != nil {
		log.Printf("ledger: fanout lookup for %s failed: %v", cardNumber, err)
		return
	}
	s.pub.PublishAccount(account.Update())

	accounts, err := s.Accounts(ctx)
	if err != nil {
		log.Printf("ledger: fanout account list failed: %v", err)
		return
	}
	s.pub.PublishAccounts(accounts)
}
