package auth

import (
	"crypto/rand"
	"strings"
)

const tokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// TokenLength is the length of session and admin tokens, excluding the admin
// prefix.
const TokenLength = 24

// AdminPrefix distinguishes admin tokens from session tokens; it is the only
// structure a token carries.
const AdminPrefix = "adm_"

// NewToken returns an opaque high-entropy bearer token.
func NewToken() string {
	buf := make([]byte, TokenLength)
	if _, err := rand.Read(buf); err != nil {
		panic("auth: crypto/rand unavailable: " + err.Error())
	}
	out := make([]byte, TokenLength)
	for i, b := range buf {
		out[i] = tokenAlphabet[int(b)%len(tokenAlphabet)]
	}
	return string(out)
}

// NewAdminToken returns an opaque token carrying the admin prefix.
func NewAdminToken() string {
	return AdminPrefix + NewToken()
}

// HasAdminPrefix reports whether a token is shaped like an admin token. Shape
// alone never grants access; the registry must also know the token.
func HasAdminPrefix(token string) bool {
	return strings.HasPrefix(token, AdminPrefix)
}
