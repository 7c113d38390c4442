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

// cashPeriodService drives the shared open/accumulate/close lifecycle of cash
// sessions, boxes and registers. The repository's guarded statements enforce
// the one-open-period-per-owner rule; the service enforces everything else.
type cashPeriodService struct {
	BaseService
	cashRepo portsrepo.CashPeriodRepositoryFacade
}

// NewCashPeriodService creates a new cash period service.
func NewCashPeriodService(cashRepo portsrepo.CashPeriodRepositoryFacade) portssvc.CashPeriodSvcFacade {
	return &cashPeriodService{cashRepo: cashRepo}
}

var _ portssvc.CashPeriodSvcFacade = (*cashPeriodService)(nil)

func (s *cashPeriodService) Open(ctx context.Context, owner domain.CashPeriodOwner, openingBalance decimal.Decimal, actorID string) (*domain.CashPeriod, error) {
	if openingBalance.IsNegative() {
		return nil, fmt.Errorf("opening balance cannot be negative: %w", apperrors.ErrValidation)
	}

	now := time.Now()
	period := domain.CashPeriod{
		PeriodID:       uuid.NewString(),
		Owner:          owner,
		OpeningBalance: openingBalance,
		Status:         domain.PeriodOpen,
		OpenedAt:       now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.cashRepo.CreatePeriodIfNoneOpen(ctx, period); err != nil {
		return nil, fmt.Errorf("failed to open %s period for owner %s: %w", owner.Kind, owner.OwnerID, err)
	}

	s.LogInfo(ctx, "Cash period opened",
		slog.String("period_id", period.PeriodID),
		slog.String("kind", string(owner.Kind)),
		slog.String("owner_id", owner.OwnerID))
	return &period, nil
}

func (s *cashPeriodService) RecordMovement(ctx context.Context, tenantID, periodID string, req dto.RecordMovementRequest, actorID string) (*domain.CashMovement, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("movement amount must be positive: %w", apperrors.ErrValidation)
	}

	period, err := s.loadPeriod(ctx, tenantID, periodID)
	if err != nil {
		return nil, err
	}
	if period.Status != domain.PeriodOpen {
		return nil, fmt.Errorf("period %s is closed: %w", periodID, apperrors.ErrNotOpen)
	}

	var method *domain.PaymentMethod
	if req.Method != nil {
		m := domain.PaymentMethod(*req.Method)
		method = &m
	}

	movement := domain.CashMovement{
		MovementID:  uuid.NewString(),
		PeriodID:    periodID,
		Type:        domain.MovementType(req.Type),
		Method:      method,
		Amount:      req.Amount,
		ReferenceID: req.ReferenceID,
		Description: req.Description,
		CreatedAt:   time.Now(),
		CreatedBy:   actorID,
	}

	// SaveMovement re-checks the open status inside the insert, closing the
	// race with a concurrent Close.
	if err := s.cashRepo.SaveMovement(ctx, movement); err != nil {
		return nil, fmt.Errorf("failed to record movement on period %s: %w", periodID, err)
	}

	return &movement, nil
}

func (s *cashPeriodService) Close(ctx context.Context, tenantID, periodID string, reportedClosing decimal.Decimal, actorID string) (*domain.CashPeriod, *domain.CashTotals, error) {
	period, err := s.loadPeriod(ctx, tenantID, periodID)
	if err != nil {
		return nil, nil, err
	}
	if period.Status != domain.PeriodOpen {
		return nil, nil, fmt.Errorf("period %s is already closed: %w", periodID, apperrors.ErrNotOpen)
	}

	movements, err := s.cashRepo.FindMovementsByPeriod(ctx, periodID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load movements to close period %s: %w", periodID, err)
	}

	totals := CashTotalsFromMovements(period.OpeningBalance, movements)
	closing := totals.FinalBalance
	// The difference between what the operator counted and what the
	// movements say is recorded as-is. A shortfall never blocks the close.
	difference := reportedClosing.Sub(closing)

	now := time.Now()
	if err := s.cashRepo.ClosePeriodIfOpen(ctx, periodID, closing, reportedClosing, difference, actorID, now); err != nil {
		return nil, nil, fmt.Errorf("failed to close period %s: %w", periodID, err)
	}

	period.Status = domain.PeriodClosed
	period.ClosingBalance = &closing
	period.ReportedClosing = &reportedClosing
	period.Difference = &difference
	period.ClosedAt = &now
	period.LastUpdatedAt = now
	period.LastUpdatedBy = actorID

	if !difference.IsZero() {
		s.LogWarn(ctx, "Cash period closed with discrepancy",
			slog.String("period_id", periodID),
			slog.String("calculated", closing.String()),
			slog.String("reported", reportedClosing.String()),
			slog.String("difference", difference.String()))
	} else {
		s.LogInfo(ctx, "Cash period closed", slog.String("period_id", periodID))
	}

	return period, &totals, nil
}

func (s *cashPeriodService) GetPeriod(ctx context.Context, tenantID, periodID string) (*domain.CashPeriod, *domain.CashTotals, error) {
	period, err := s.loadPeriod(ctx, tenantID, periodID)
	if err != nil {
		return nil, nil, err
	}

	movements, err := s.cashRepo.FindMovementsByPeriod(ctx, periodID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load movements for period %s: %w", periodID, err)
	}

	totals := CashTotalsFromMovements(period.OpeningBalance, movements)
	return period, &totals, nil
}

func (s *cashPeriodService) ListPeriods(ctx context.Context, tenantID string, params dto.ListCashPeriodsParams) (*dto.ListCashPeriodsResponse, error) {
	var kind *domain.CashPeriodKind
	if params.Kind != nil {
		k := domain.CashPeriodKind(*params.Kind)
		kind = &k
	}

	periods, nextToken, err := s.cashRepo.ListPeriods(ctx, tenantID, kind, params.Limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list cash periods: %w", err)
	}

	resp := &dto.ListCashPeriodsResponse{
		Periods:   make([]dto.CashPeriodResponse, len(periods)),
		NextToken: nextToken,
	}
	for i := range periods {
		resp.Periods[i] = dto.ToCashPeriodResponse(&periods[i])
	}
	return resp, nil
}

// loadPeriod fetches a period and hides rows of other tenants behind
// ErrNotFound.
func (s *cashPeriodService) loadPeriod(ctx context.Context, tenantID, periodID string) (*domain.CashPeriod, error) {
	period, err := s.cashRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cash period: %w", err)
	}
	if period.Owner.TenantID != tenantID {
		return nil, fmt.Errorf("cash period %s: %w", periodID, apperrors.ErrNotFound)
	}
	return period, nil
}
