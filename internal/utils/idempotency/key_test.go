package idempotency_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tillpoint/tillpoint_backend/internal/utils/idempotency"
)

func strPtr(s string) *string { return &s }

func TestDeriveKey_Deterministic(t *testing.T) {
	saleID := strPtr("sale-1")
	ref := strPtr("SALE-9A8619DC")
	amount := decimal.RequireFromString("549.25")

	k1 := idempotency.DeriveKey(saleID, amount, "TRANSFER", nil, ref)
	k2 := idempotency.DeriveKey(saleID, amount, "TRANSFER", nil, ref)

	assert.Equal(t, k1, k2)
	assert.Len(t, k1, 64) // hex sha256
}

func TestDeriveKey_AmountNormalization(t *testing.T) {
	saleID := strPtr("sale-1")

	k1 := idempotency.DeriveKey(saleID, decimal.RequireFromString("60"), "CASH", nil, nil)
	k2 := idempotency.DeriveKey(saleID, decimal.RequireFromString("60.00"), "CASH", nil, nil)
	k3 := idempotency.DeriveKey(saleID, decimal.RequireFromString("60.0"), "CASH", nil, nil)

	assert.Equal(t, k1, k2)
	assert.Equal(t, k2, k3)
}

func TestDeriveKey_MissingFieldsNormalizeToEmpty(t *testing.T) {
	amount := decimal.RequireFromString("10.00")
	empty := ""

	kNil := idempotency.DeriveKey(nil, amount, "CASH", nil, nil)
	kEmpty := idempotency.DeriveKey(&empty, amount, "CASH", &empty, &empty)

	assert.Equal(t, kNil, kEmpty)
}

func TestDeriveKey_DistinctTuplesDistinctKeys(t *testing.T) {
	saleID := strPtr("sale-1")
	amount := decimal.RequireFromString("100.00")

	base := idempotency.DeriveKey(saleID, amount, "CASH", nil, nil)

	assert.NotEqual(t, base, idempotency.DeriveKey(strPtr("sale-2"), amount, "CASH", nil, nil))
	assert.NotEqual(t, base, idempotency.DeriveKey(saleID, decimal.RequireFromString("100.01"), "CASH", nil, nil))
	assert.NotEqual(t, base, idempotency.DeriveKey(saleID, amount, "TRANSFER", nil, nil))
	assert.NotEqual(t, base, idempotency.DeriveKey(saleID, amount, "CASH", strPtr("pm-1"), nil))
	assert.NotEqual(t, base, idempotency.DeriveKey(saleID, amount, "CASH", nil, strPtr("ref")))
}

func TestDeriveKey_FieldBoundariesAreUnambiguous(t *testing.T) {
	amount := decimal.RequireFromString("1.00")

	// "a|b" in one field must not collide with "a" and "b" in adjacent fields.
	k1 := idempotency.DeriveKey(strPtr("a|b"), amount, "", nil, nil)
	k2 := idempotency.DeriveKey(strPtr("a"), amount, "", strPtr("b"), nil)

	assert.NotEqual(t, k1, k2)
}
