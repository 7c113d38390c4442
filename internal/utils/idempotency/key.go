package idempotency

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/shopspring/decimal"
)

// DeriveKey produces a deterministic fingerprint for a payment attempt.
// Two creation requests describing the same logical payment (same sale,
// amount, method, configured method and external reference) always derive
// the same key, across retries and process restarts. Missing fields are
// normalized to the empty string and the amount to a fixed two-decimal
// representation before hashing, so formatting differences ("60.0" vs
// "60.00") cannot split one logical attempt into two keys.
func DeriveKey(saleID *string, amount decimal.Decimal, method string, paymentMethodID *string, reference *string) string {
	parts := []string{
		deref(saleID),
		amount.StringFixed(2),
		method,
		deref(paymentMethodID),
		deref(reference),
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
