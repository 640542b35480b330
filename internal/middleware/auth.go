package middleware

import (
	"context"
	"net/http"

	"github.com/bumbolandia/bankd/internal/auth"
	"github.com/bumbolandia/bankd/internal/http/respond"
)

type contextKey string

// CardNumberKey carries the authenticated account's card number through the
// request context.
const CardNumberKey contextKey = "cardNumber"

// SessionHeader and AdminHeader carry bearer tokens, matching the wire format
// the clients use.
const (
	SessionHeader = "X-Session-Token"
	AdminHeader   = "X-Admin-Token"
)

// Session resolves the session token header to a card number and stores it in
// the request context. Unknown tokens terminate the request with 401.
func Session(registry *auth.Registry, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		card, ok := registry.Resolve(r.Header.Get(SessionHeader))
		if !ok {
			respond.Error(w, http.StatusUnauthorized, "invalid session")
			return
		}
		ctx := context.WithValue(r.Context(), CardNumberKey, card)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Admin rejects requests whose admin token header is not in the admin token
// set, regardless of how the request was crafted.
func Admin(registry *auth.Registry, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !registry.IsAdmin(r.Header.Get(AdminHeader)) {
			respond.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CardNumber extracts the authenticated card number set by Session.
func CardNumber(r *http.Request) (string, bool) {
	card, ok := r.Context().Value(CardNumberKey).(string)
	return card, ok
}
