package services

import (
	"context"

	"github.com/tillpoint/tillpoint_backend/internal/core/domain"
)

// ReconcileSvcFacade applies matching decisions: it is the only component
// that moves payments to confirmed and consumes transfers.
type ReconcileSvcFacade interface {
	// Reconcile applies the scored candidates for one transfer. An
	// unambiguous auto candidate is confirmed and its transfer consumed
	// atomically, then the owning sale's balance is recomputed and
	// persisted; a suggested candidate only gets its match fields recorded.
	Reconcile(ctx context.Context, tenantID, transferID string, candidates []domain.MatchCandidate, actorID string) (*domain.ReconcileResult, error)

	// ConfirmPayment is the explicit human confirmation of a pending
	// payment (suggested or not). It consumes the linked transfer when one
	// is recorded and always returns the recomputed sale balance.
	ConfirmPayment(ctx context.Context, tenantID, paymentID, actorID string) (*domain.Payment, *domain.Balance, error)
}
