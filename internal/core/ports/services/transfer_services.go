package services

import (
	"context"

	"github.com/tillpoint/tillpoint_backend/internal/core/domain"
	"github.com/tillpoint/tillpoint_backend/internal/dto"
)

// TransferSvcFacade ingests externally reported transfers and drives the
// matching pass for each of them.
type TransferSvcFacade interface {
	// ImportTransfers persists the batch in arrival order and runs
	// match + reconcile for each transfer. A failure on one transfer is
	// reported in its result; it does not abort the rest of the batch.
	ImportTransfers(ctx context.Context, tenantID string, batch []dto.ImportTransferRequest, source domain.TransferSource, actorID string) ([]domain.ReconcileResult, error)

	// GetTransfer retrieves a transfer scoped to a tenant.
	GetTransfer(ctx context.Context, tenantID, transferID string) (*domain.IncomingTransfer, error)

	// ListTransfers retrieves a token-paginated page of transfers.
	ListTransfers(ctx context.Context, tenantID string, params dto.ListTransfersParams) (*dto.ListTransfersResponse, error)

	// GetCandidates re-scores the transfer against the currently pending
	// payments, for UI display. Nothing is persisted.
	GetCandidates(ctx context.Context, tenantID, transferID string) ([]domain.MatchCandidate, error)
}
