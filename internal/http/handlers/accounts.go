package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/bumbolandia/bankd/internal/auth"
	"github.com/bumbolandia/bankd/internal/http/respond"
	"github.com/bumbolandia/bankd/internal/ledger"
	"github.com/bumbolandia/bankd/internal/middleware"
	"github.com/bumbolandia/bankd/internal/models"
	"github.com/bumbolandia/bankd/internal/models/dto"
	"github.com/bumbolandia/bankd/internal/storage"
)

// BankHandler owns the client-facing register/me/transfer endpoints.
type BankHandler struct {
	svc      *ledger.Service
	sessions *auth.Registry
}

// NewBankHandler constructs the handler.
func NewBankHandler(svc *ledger.Service, sessions *auth.Registry) *BankHandler {
	return &BankHandler{svc: svc, sessions: sessions}
}

// Register attaches the routes to the mux. /api/me and /api/transfer sit
// behind the session middleware.
func (h *BankHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/register", h.handleRegister)
	mux.Handle("/api/me", middleware.Session(h.sessions, http.HandlerFunc(h.handleMe)))
	mux.Handle("/api/transfer", middleware.Session(h.sessions, http.HandlerFunc(h.handleTransfer)))
}

func (h *BankHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	token, account, err := h.svc.Register(r.Context(), req.Name, req.CardNumber)
	if err != nil {
		if errors.Is(err, ledger.ErrValidation) {
			respond.Error(w, http.StatusBadRequest, "name and cardNumber are required (demo)")
			return
		}
		log.Printf("register error: %v", err)
		respond.Error(w, http.StatusInternalServerError, "failed to register")
		return
	}
	respond.JSON(w, http.StatusOK, dto.RegisterResponse{Token: token, Account: account.Public()})
}

func (h *BankHandler) handleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	card, ok := middleware.CardNumber(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "invalid session")
		return
	}
	account, err := h.svc.Account(r.Context(), card)
	if err != nil {
		respond.Error(w, http.StatusUnauthorized, "invalid session")
		return
	}
	respond.JSON(w, http.StatusOK, dto.MeResponse{
		ID:           account.ID,
		Name:         account.Name,
		CardNumber:   account.CardNumber,
		Balance:      account.Balance,
		Currency:     account.Currency,
		Transactions: account.Recent(models.RecentLimit),
	})
}

func (h *BankHandler) handleTransfer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	card, ok := middleware.CardNumber(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "invalid session")
		return
	}
	var req dto.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	tx, err := h.svc.Transfer(r.Context(), card, req.ToCardNumber, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			respond.Error(w, http.StatusNotFound, "recipient not found")
		case errors.Is(err, storage.ErrInvalidAmount):
			respond.Error(w, http.StatusBadRequest, "invalid amount")
		case errors.Is(err, storage.ErrInsufficientFunds):
			respond.Error(w, http.StatusBadRequest, "insufficient funds")
		default:
			log.Printf("transfer error: %v", err)
			respond.Error(w, http.StatusInternalServerError, "transfer failed")
		}
		return
	}
	respond.JSON(w, http.StatusOK, dto.TransferResponse{OK: true, Tx: tx})
}
