package services

import (
	"context"
	"time"

	"github.com/tillpoint/tillpoint_backend/internal/core/domain"
)

// ReportingSvcFacade produces read-only back-office reports. Report rows are
// plain tabular data; export collaborators format them downstream.
type ReportingSvcFacade interface {
	// CashPeriodReport returns the period, its recomputed totals and the raw
	// movement rows.
	CashPeriodReport(ctx context.Context, tenantID, periodID string) (*domain.CashPeriodReport, error)

	// ReconciliationSummary aggregates match outcomes for a tenant over [from, to].
	ReconciliationSummary(ctx context.Context, tenantID string, from, to time.Time) (*domain.ReconciliationSummary, error)
}
