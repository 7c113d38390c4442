package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tillpoint/tillpoint_backend/internal/apperrors"
	"github.com/tillpoint/tillpoint_backend/internal/core/domain"
	portsrepo "github.com/tillpoint/tillpoint_backend/internal/core/ports/repositories"
	portssvc "github.com/tillpoint/tillpoint_backend/internal/core/ports/services"
)

// reconcileService is the only component allowed to flip payments to
// confirmed and transfers to consumed. Every state change goes through the
// reconciliation repository's conditional updates, so a lost race surfaces
// as apperrors.ErrConcurrentMatch instead of a double-spend.
type reconcileService struct {
	BaseService
	reconRepo    portsrepo.ReconciliationRepository
	paymentRepo  portsrepo.PaymentReader
	transferRepo portsrepo.TransferReader
	matching     portssvc.MatchingSvcFacade
	ledger       portssvc.LedgerSvcFacade
}

// NewReconcileService creates a new reconcile service.
func NewReconcileService(
	reconRepo portsrepo.ReconciliationRepository,
	paymentRepo portsrepo.PaymentReader,
	transferRepo portsrepo.TransferReader,
	matching portssvc.MatchingSvcFacade,
	ledger portssvc.LedgerSvcFacade,
) portssvc.ReconcileSvcFacade {
	return &reconcileService{
		reconRepo:    reconRepo,
		paymentRepo:  paymentRepo,
		transferRepo: transferRepo,
		matching:     matching,
		ledger:       ledger,
	}
}

var _ portssvc.ReconcileSvcFacade = (*reconcileService)(nil)

func (s *reconcileService) Reconcile(ctx context.Context, tenantID, transferID string, candidates []domain.MatchCandidate, actorID string) (*domain.ReconcileResult, error) {
	transfer, err := s.transferRepo.FindTransferByID(ctx, tenantID, transferID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transfer for reconciliation: %w", err)
	}
	if transfer.Consumed {
		s.LogInfo(ctx, "Skipping reconciliation of consumed transfer", slog.String("transfer_id", transferID))
		return &domain.ReconcileResult{TransferID: transferID, Outcome: domain.OutcomeSkippedStale}, nil
	}

	return s.apply(ctx, tenantID, transferID, candidates, actorID, true)
}

// apply executes the decision carried by the ordered candidate list. When a
// conditional update loses a race the candidates are stale: the pass is
// re-scored and re-applied exactly once before giving up.
func (s *reconcileService) apply(ctx context.Context, tenantID, transferID string, candidates []domain.MatchCandidate, actorID string, allowRetry bool) (*domain.ReconcileResult, error) {
	if len(candidates) == 0 {
		return &domain.ReconcileResult{TransferID: transferID, Outcome: domain.OutcomeNoMatch}, nil
	}

	top := candidates[0]
	now := time.Now()

	switch top.Result {
	case domain.MatchedAuto:
		err := s.reconRepo.ConfirmAndConsume(ctx, tenantID, top.PaymentID, &transferID, top.Confidence, domain.MatchedAuto, actorID, now)
		if err != nil {
			if errors.Is(err, apperrors.ErrConcurrentMatch) && allowRetry {
				return s.retry(ctx, tenantID, transferID, actorID)
			}
			return nil, fmt.Errorf("failed to auto-confirm payment %s: %w", top.PaymentID, err)
		}
		s.LogInfo(ctx, "Payment auto-confirmed",
			slog.String("payment_id", top.PaymentID),
			slog.String("transfer_id", transferID),
			slog.String("confidence", top.Confidence.String()))

		result := &domain.ReconcileResult{
			TransferID: transferID,
			Outcome:    domain.OutcomeAutoConfirmed,
			Winner:     &top,
			Candidates: candidates,
		}
		result.Balance = s.refreshSale(ctx, tenantID, top.PaymentID, actorID, now)
		return result, nil

	case domain.MatchedSuggested:
		err := s.reconRepo.ApplySuggestion(ctx, tenantID, top.PaymentID, transferID, top.Confidence, domain.MatchedSuggested, actorID, now)
		if err != nil {
			if errors.Is(err, apperrors.ErrConcurrentMatch) && allowRetry {
				return s.retry(ctx, tenantID, transferID, actorID)
			}
			return nil, fmt.Errorf("failed to record suggestion for payment %s: %w", top.PaymentID, err)
		}
		s.LogInfo(ctx, "Match suggested for review",
			slog.String("payment_id", top.PaymentID),
			slog.String("transfer_id", transferID),
			slog.String("confidence", top.Confidence.String()))
		return &domain.ReconcileResult{
			TransferID: transferID,
			Outcome:    domain.OutcomeSuggested,
			Winner:     &top,
			Candidates: candidates,
		}, nil

	default:
		return &domain.ReconcileResult{
			TransferID: transferID,
			Outcome:    domain.OutcomeNoMatch,
			Candidates: candidates,
		}, nil
	}
}

func (s *reconcileService) retry(ctx context.Context, tenantID, transferID, actorID string) (*domain.ReconcileResult, error) {
	s.LogWarn(ctx, "Reconciliation lost a race, re-scoring once", slog.String("transfer_id", transferID))
	fresh, err := s.matching.Match(ctx, tenantID, transferID)
	if err != nil {
		return nil, fmt.Errorf("failed to re-score transfer %s after conflict: %w", transferID, err)
	}
	return s.apply(ctx, tenantID, transferID, fresh, actorID, false)
}

// refreshSale recomputes and persists the owning sale's cached balance.
// Failures here are logged, not returned: the cache columns are advisory and
// the confirmed payment rows already carry the truth.
func (s *reconcileService) refreshSale(ctx context.Context, tenantID, paymentID, actorID string, now time.Time) *domain.Balance {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, tenantID, paymentID)
	if err != nil {
		s.LogError(ctx, err, "Failed to reload payment after confirmation", slog.String("payment_id", paymentID))
		return nil
	}
	if payment.SaleID == nil {
		return nil
	}

	balance, err := s.ledger.ComputeSaleBalance(ctx, tenantID, *payment.SaleID)
	if err != nil {
		s.LogError(ctx, err, "Failed to recompute sale balance", slog.String("sale_id", *payment.SaleID))
		return nil
	}

	if err := s.reconRepo.RefreshSaleAggregates(ctx, tenantID, *payment.SaleID, *balance, actorID, now); err != nil {
		s.LogError(ctx, err, "Failed to persist refreshed sale aggregates", slog.String("sale_id", *payment.SaleID))
	}
	return balance
}

func (s *reconcileService) ConfirmPayment(ctx context.Context, tenantID, paymentID, actorID string) (*domain.Payment, *domain.Balance, error) {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, tenantID, paymentID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load payment for confirmation: %w", err)
	}
	if payment.Status == domain.PaymentConfirmed {
		return nil, nil, fmt.Errorf("payment %s is already confirmed: %w", paymentID, apperrors.ErrConflict)
	}

	now := time.Now()
	err = s.reconRepo.ConfirmAndConsume(ctx, tenantID, paymentID, payment.MatchedTransferID, payment.MatchConfidence, payment.MatchResult, actorID, now)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to confirm payment %s: %w", paymentID, err)
	}

	payment.Status = domain.PaymentConfirmed
	payment.ConfirmedAt = &now
	payment.LastUpdatedAt = now
	payment.LastUpdatedBy = actorID

	s.LogInfo(ctx, "Payment confirmed manually", slog.String("payment_id", paymentID))

	var balance *domain.Balance
	if payment.SaleID != nil {
		balance = s.refreshSale(ctx, tenantID, paymentID, actorID, now)
	}
	return payment, balance, nil
}
