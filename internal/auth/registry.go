package auth

import (
	"errors"
	"sync"
)

// ErrUnauthorized indicates a missing or unrecognized credential.
var ErrUnauthorized = errors.New("unauthorized")

// Registry maps bearer tokens to account card numbers and tracks valid admin
// tokens. Tokens never expire and have no revocation beyond process restart.
type Registry struct {
	mu        sync.Mutex
	adminCode string
	sessions  map[string]string
	admins    map[string]struct{}
}

// NewRegistry creates an empty registry gated by the given admin access code.
func NewRegistry(adminCode string) *Registry {
	return &Registry{
		adminCode: adminCode,
		sessions:  make(map[string]string),
		admins:    make(map[string]struct{}),
	}
}

// Issue generates a fresh session token bound to the card number. There is no
// limit on concurrent sessions per account.
func (r *Registry) Issue(cardNumber string) string {
	token := NewToken()
	r.mu.Lock()
	r.sessions[token] = cardNumber
	r.mu.Unlock()
	return token
}

// Resolve returns the card number bound to a session token.
func (r *Registry) Resolve(token string) (string, bool) {
	r.mu.Lock()
	card, ok := r.sessions[token]
	r.mu.Unlock()
	return card, ok
}

// IssueAdmin registers and returns a new admin token when the supplied code
// matches the configured secret exactly.
func (r *Registry) IssueAdmin(code string) (string, error) {
	if code != r.adminCode {
		return "", ErrUnauthorized
	}
	token := NewAdminToken()
	r.mu.Lock()
	r.admins[token] = struct{}{}
	r.mu.Unlock()
	return token, nil
}

// IsAdmin reports whether the token is in the admin token set.
func (r *Registry) IsAdmin(token string) bool {
	r.mu.Lock()
	_, ok := r.admins[token]
	r.mu.Unlock()
	return ok
}
