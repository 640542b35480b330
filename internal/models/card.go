package models

import (
	"crypto/rand"
	"strings"
)

// CardNumberLength is the length of generated card numbers.
const CardNumberLength = 16

// NormalizeCard strips every non-digit character from a card number. The
// result may be empty; lookups on malformed input simply miss.
func NormalizeCard(card string) string {
	var b strings.Builder
	b.Grow(len(card))
	for _, r := range card {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// RandomCardNumber generates a random 16-digit card number for registrations
// that did not supply one.
func RandomCardNumber() string {
	buf := make([]byte, CardNumberLength)
	if _, err := rand.Read(buf); err != nil {
		panic("models: crypto/rand unavailable: " + err.Error())
	}
	digits := make([]byte, CardNumberLength)
	for i, b := range buf {
		digits[i] = '0' + b%10
	}
	return string(digits)
}
