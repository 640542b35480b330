package ledger

import (
	"bytes"
	"encoding/json"

	"github.com/bumbolandia/bankd/internal/storage"
	"github.com/shopspring/decimal"
)

// parseAmount turns a raw JSON amount into a positive decimal. Amounts may
// arrive as numbers or numeric strings; anything absent, null, unparseable,
// zero, or negative is an invalid amount.
func parseAmount(raw json.RawMessage) (decimal.Decimal, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return decimal.Decimal{}, storage.ErrInvalidAmount
	}
	var amount decimal.Decimal
	if err := amount.UnmarshalJSON(trimmed); err != nil {
		return decimal.Decimal{}, storage.ErrInvalidAmount
	}
	if !amount.IsPositive() {
		return decimal.Decimal{}, storage.ErrInvalidAmount
	}
	return amount, nil
}
