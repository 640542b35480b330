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
	"github.com/bumbolandia/bankd/internal/models/dto"
	"github.com/bumbolandia/bankd/internal/storage"
)

// AdminHandler owns the admin login/inspect/credit endpoints.
type AdminHandler struct {
	svc      *ledger.Service
	sessions *auth.Registry
}

// NewAdminHandler constructs the handler.
func NewAdminHandler(svc *ledger.Service, sessions *auth.Registry) *AdminHandler {
	return &AdminHandler{svc: svc, sessions: sessions}
}

// Register attaches the routes to the mux. Everything except login sits
// behind the admin token middleware.
func (h *AdminHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/admin/login", h.handleLogin)
	mux.Handle("/api/admin/accounts", middleware.Admin(h.sessions, http.HandlerFunc(h.handleAccounts)))
	mux.Handle("/api/admin/increase", middleware.Admin(h.sessions, http.HandlerFunc(h.handleIncrease)))
}

func (h *AdminHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req dto.AdminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	token, err := h.svc.AdminLogin(req.Code)
	if err != nil {
		respond.Error(w, http.StatusUnauthorized, "invalid code")
		return
	}
	respond.JSON(w, http.StatusOK, dto.AdminLoginResponse{AdminToken: token})
}

func (h *AdminHandler) handleAccounts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	accounts, err := h.svc.Accounts(r.Context())
	if err != nil {
		log.Printf("admin accounts error: %v", err)
		respond.Error(w, http.StatusInternalServerError, "failed to list accounts")
		return
	}
	respond.JSON(w, http.StatusOK, dto.AdminAccountsResponse{Accounts: accounts})
}

func (h *AdminHandler) handleIncrease(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req dto.CreditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	balance, err := h.svc.Credit(r.Context(), req.CardNumber, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			respond.Error(w, http.StatusNotFound, "account not found")
		case errors.Is(err, storage.ErrInvalidAmount):
			respond.Error(w, http.StatusBadRequest, "invalid amount")
		default:
			log.Printf("admin credit error: %v", err)
			respond.Error(w, http.StatusInternalServerError, "credit failed")
		}
		return
	}
	respond.JSON(w, http.StatusOK, dto.CreditResponse{OK: true, Balance: balance})
}
