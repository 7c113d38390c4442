package services

import (
	"context"

	"github.com/tillpoint/tillpoint_backend/internal/core/domain"
)

// LedgerSvcFacade recomputes authoritative balances from ground truth rows.
// Cache columns on sales and cash periods are never trusted; callers decide
// whether and when to persist the recomputed values.
type LedgerSvcFacade interface {
	// ComputeSaleBalance folds the confirmed payments of a sale into its
	// live balance. Returns apperrors.ErrNotFound when the sale is missing.
	ComputeSaleBalance(ctx context.Context, tenantID, saleID string) (*domain.Balance, error)

	// ComputeCashPeriodTotals folds the movements of a cash period into its
	// live totals. Returns apperrors.ErrNotFound when the period is missing.
	ComputeCashPeriodTotals(ctx context.Context, periodID string) (*domain.CashTotals, error)
}
