package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tillpoint/tillpoint_backend/internal/core/domain"
)

// ReconciliationRepository applies matching decisions atomically. All three
// operations use conditional updates guarded by the row's current state, so
// two concurrent matching passes can never both win the same payment or
// transfer.
type ReconciliationRepository interface {
	// ConfirmAndConsume marks the payment confirmed and the transfer
	// consumed as one database transaction. Both updates are compare-and-set
	// guarded (payment must still be PENDING, transfer must still be
	// unconsumed); if either guard fails the whole transaction is rolled
	// back and apperrors.ErrConcurrentMatch is returned. A nil transferID
	// confirms a payment without a linked transfer (manual confirmation).
	ConfirmAndConsume(ctx context.Context, tenantID, paymentID string, transferID *string, confidence decimal.Decimal, result domain.MatchResult, confirmedBy string, confirmedAt time.Time) error

	// ApplySuggestion records match_confidence/match_result/matched_transfer_id
	// on a still-pending payment without confirming it. Guarded by
	// status = PENDING; returns apperrors.ErrConcurrentMatch when the payment
	// was confirmed in the meantime.
	ApplySuggestion(ctx context.Context, tenantID, paymentID, transferID string, confidence decimal.Decimal, result domain.MatchResult, updatedBy string, updatedAt time.Time) error

	// RefreshSaleAggregates persists a recomputed sale balance into the
	// sale's cache columns (paid_amount, balance_amount, status,
	// payment_completed_at).
	RefreshSaleAggregates(ctx context.Context, tenantID, saleID string, balance domain.Balance, updatedBy string, updatedAt time.Time) error
}
