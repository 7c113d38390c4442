package services

import (
	"context"
	"fmt"
	"time"

	"github.com/tillpoint/tillpoint_backend/internal/apperrors"
	"github.com/tillpoint/tillpoint_backend/internal/core/domain"
	portsrepo "github.com/tillpoint/tillpoint_backend/internal/core/ports/repositories"
	portssvc "github.com/tillpoint/tillpoint_backend/internal/core/ports/services"
)

type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	cashRepo      portsrepo.CashPeriodReader
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, cashRepo portsrepo.CashPeriodReader) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: reportingRepo,
		cashRepo:      cashRepo,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func (s *reportingService) CashPeriodReport(ctx context.Context, tenantID, periodID string) (*domain.CashPeriodReport, error) {
	period, err := s.cashRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cash period for report: %w", err)
	}
	if period.Owner.TenantID != tenantID {
		return nil, fmt.Errorf("cash period %s: %w", periodID, apperrors.ErrNotFound)
	}

	movements, err := s.cashRepo.FindMovementsByPeriod(ctx, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to load movements for report on period %s: %w", periodID, err)
	}

	totals := CashTotalsFromMovements(period.OpeningBalance, movements)
	return &domain.CashPeriodReport{
		Period:    *period,
		Totals:    totals,
		Movements: movements,
	}, nil
}

func (s *reportingService) ReconciliationSummary(ctx context.Context, tenantID string, from, to time.Time) (*domain.ReconciliationSummary, error) {
	if !to.After(from) {
		return nil, fmt.Errorf("report window end must be after start: %w", apperrors.ErrValidation)
	}

	summary, err := s.reportingRepo.GetReconciliationSummary(ctx, tenantID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to build reconciliation summary: %w", err)
	}
	return summary, nil
}
