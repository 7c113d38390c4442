package services

import (
	"context"

	"github.com/tillpoint/tillpoint_backend/internal/core/domain"
)

// MatchingSvcFacade scores candidate payments for an incoming transfer.
// Matching is a pure query+score operation: it never persists anything and
// never discards a runner-up silently.
type MatchingSvcFacade interface {
	// Match returns every scored candidate for the transfer, ordered by
	// confidence (then temporal proximity, then earliest creation). The
	// slice is empty when no pending payment falls inside the tolerance band.
	Match(ctx context.Context, tenantID, transferID string) ([]domain.MatchCandidate, error)
}
