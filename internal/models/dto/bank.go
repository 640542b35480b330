package dto

import (
	"encoding/json"

	"github.com/bumbolandia/bankd/internal/models"
	"github.com/shopspring/decimal"
)

type RegisterRequest struct {
	Name       string `json:"name"`
	CardNumber string `json:"cardNumber"`
}

type RegisterResponse struct {
	Token   string               `json:"token"`
	Account models.PublicAccount `json:"account"`
}

// TransferRequest carries the amount as raw JSON so that validation order
// matches the ledger contract: the recipient lookup happens before the amount
// is parsed.
type TransferRequest struct {
	ToCardNumber string          `json:"toCardNumber"`
	Amount       json.RawMessage `json:"amount"`
}

// MeResponse is the authenticated account view, history capped at the recent
// transaction limit.
type MeResponse struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	CardNumber   string               `json:"cardNumber"`
	Balance      decimal.Decimal      `json:"balance"`
	Currency     string               `json:"currency"`
	Transactions []models.Transaction `json:"transactions"`
}

type TransferResponse struct {
	OK bool               `json:"ok"`
	Tx models.Transaction `json:"tx"`
}

type AdminLoginRequest struct {
	Code string `json:"code"`
}

type AdminLoginResponse struct {
	AdminToken string `json:"adminToken"`
}

type AdminAccountsResponse struct {
	Accounts []models.PublicAccount `json:"accounts"`
}

type CreditRequest struct {
	CardNumber string          `json:"cardNumber"`
	Amount     json.RawMessage `json:"amount"`
}

type CreditResponse struct {
	OK      bool            `json:"ok"`
	Balance decimal.Decimal `json:"balance"`
}
