package services

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tillpoint/tillpoint_backend/internal/core/domain"
	"github.com/tillpoint/tillpoint_backend/internal/dto"
)

// CashPeriodSvcFacade coordinates the open/accumulate/close lifecycle shared
// by cash sessions, boxes and registers.
type CashPeriodSvcFacade interface {
	// Open creates a new open period for the owner. Returns
	// apperrors.ErrAlreadyOpen when the owner already has one.
	Open(ctx context.Context, owner domain.CashPeriodOwner, openingBalance decimal.Decimal, actorID string) (*domain.CashPeriod, error)

	// Close folds the period's movements into final totals, freezes them
	// together with the reported-vs-calculated difference and flips the
	// period to closed. Returns apperrors.ErrNotOpen when already closed.
	Close(ctx context.Context, tenantID, periodID string, reportedClosing decimal.Decimal, actorID string) (*domain.CashPeriod, *domain.CashTotals, error)

	// RecordMovement appends an immutable movement to an open period.
	RecordMovement(ctx context.Context, tenantID, periodID string, req dto.RecordMovementRequest, actorID string) (*domain.CashMovement, error)

	// GetPeriod retrieves a period together with its live totals.
	GetPeriod(ctx context.Context, tenantID, periodID string) (*domain.CashPeriod, *domain.CashTotals, error)

	// ListPeriods retrieves a token-paginated page of periods.
	ListPeriods(ctx context.Context, tenantID string, params dto.ListCashPeriodsParams) (*dto.ListCashPeriodsResponse, error)
}
