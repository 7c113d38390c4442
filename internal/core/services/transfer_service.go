package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tillpoint/tillpoint_backend/internal/apperrors"
	"github.com/tillpoint/tillpoint_backend/internal/core/domain"
	portsrepo "github.com/tillpoint/tillpoint_backend/internal/core/ports/repositories"
	portssvc "github.com/tillpoint/tillpoint_backend/internal/core/ports/services"
	"github.com/tillpoint/tillpoint_backend/internal/dto"
)

type transferService struct {
	BaseService
	transferRepo portsrepo.TransferRepositoryFacade
	matching     portssvc.MatchingSvcFacade
	reconcile    portssvc.ReconcileSvcFacade
}

// NewTransferService creates a new transfer service.
func NewTransferService(transferRepo portsrepo.TransferRepositoryFacade, matching portssvc.MatchingSvcFacade, reconcile portssvc.ReconcileSvcFacade) portssvc.TransferSvcFacade {
	return &transferService{
		transferRepo: transferRepo,
		matching:     matching,
		reconcile:    reconcile,
	}
}

var _ portssvc.TransferSvcFacade = (*transferService)(nil)

func (s *transferService) ImportTransfers(ctx context.Context, tenantID string, batch []dto.ImportTransferRequest, source domain.TransferSource, actorID string) ([]domain.ReconcileResult, error) {
	results := make([]domain.ReconcileResult, 0, len(batch))

	// Transfers are processed strictly in arrival order; one bad row gets
	// its failure recorded and the rest of the batch still runs.
	for i, req := range batch {
		result, err := s.importOne(ctx, tenantID, req, source, actorID)
		if err != nil {
			s.LogError(ctx, err, "Transfer import item failed", slog.Int("index", i))
			msg := err.Error()
			results = append(results, domain.ReconcileResult{Outcome: domain.OutcomeNoMatch, Error: &msg})
			continue
		}
		results = append(results, *result)
	}
	return results, nil
}

func (s *transferService) importOne(ctx context.Context, tenantID string, req dto.ImportTransferRequest, source domain.TransferSource, actorID string) (*domain.ReconcileResult, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("transfer amount must be positive: %w", apperrors.ErrValidation)
	}

	now := time.Now()
	receivedAt := now
	if req.ReceivedAt != nil {
		receivedAt = *req.ReceivedAt
	}

	transfer := domain.IncomingTransfer{
		TransferID:     uuid.NewString(),
		TenantID:       tenantID,
		Amount:         req.Amount,
		Reference:      req.Reference,
		OriginLabel:    req.OriginLabel,
		RawDescription: req.RawDescription,
		ReceivedAt:     receivedAt,
		Source:         source,
		Consumed:       false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.transferRepo.SaveTransfer(ctx, transfer); err != nil {
		return nil, fmt.Errorf("failed to save transfer: %w", err)
	}

	candidates, err := s.matching.Match(ctx, tenantID, transfer.TransferID)
	if err != nil {
		return nil, fmt.Errorf("failed to match transfer %s: %w", transfer.TransferID, err)
	}

	result, err := s.reconcile.Reconcile(ctx, tenantID, transfer.TransferID, candidates, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to reconcile transfer %s: %w", transfer.TransferID, err)
	}
	return result, nil
}

func (s *transferService) GetTransfer(ctx context.Context, tenantID, transferID string) (*domain.IncomingTransfer, error) {
	transfer, err := s.transferRepo.FindTransferByID(ctx, tenantID, transferID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transfer: %w", err)
	}
	return transfer, nil
}

func (s *transferService) ListTransfers(ctx context.Context, tenantID string, params dto.ListTransfersParams) (*dto.ListTransfersResponse, error) {
	transfers, nextToken, err := s.transferRepo.ListTransfers(ctx, tenantID, params.Limit, params.NextToken, params.UnconsumedOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list transfers: %w", err)
	}

	resp := &dto.ListTransfersResponse{
		Transfers: make([]dto.TransferResponse, len(transfers)),
		NextToken: nextToken,
	}
	for i := range transfers {
		resp.Transfers[i] = dto.ToTransferResponse(&transfers[i])
	}
	return resp, nil
}

func (s *transferService) GetCandidates(ctx context.Context, tenantID, transferID string) ([]domain.MatchCandidate, error) {
	candidates, err := s.matching.Match(ctx, tenantID, transferID)
	if err != nil {
		return nil, fmt.Errorf("failed to score candidates for transfer %s: %w", transferID, err)
	}
	return candidates, nil
}
