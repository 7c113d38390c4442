package repositories

import (
	"context"
	"time"

	"github.com/tillpoint/tillpoint_backend/internal/core/domain"
)

// ReportingRepository provides read-only aggregate queries for reports.
type ReportingRepository interface {
	// GetReconciliationSummary aggregates payment match outcomes and open
	// transfer counts for a tenant over [from, to].
	GetReconciliationSummary(ctx context.Context, tenantID string, from, to time.Time) (*domain.ReconciliationSummary, error)
}
