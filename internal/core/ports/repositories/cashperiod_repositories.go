package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tillpoint/tillpoint_backend/internal/core/domain"
)

// CashPeriodReader defines read operations for cash period data.
type CashPeriodReader interface {
	// FindPeriodByID retrieves a cash period by ID.
	FindPeriodByID(ctx context.Context, periodID string) (*domain.CashPeriod, error)

	// FindOpenPeriodByOwner retrieves the open period for an owner, if any.
	FindOpenPeriodByOwner(ctx context.Context, owner domain.CashPeriodOwner) (*domain.CashPeriod, error)

	// ListPeriods retrieves a token-paginated list of periods for a tenant,
	// newest first, optionally filtered by owner kind.
	ListPeriods(ctx context.Context, tenantID string, kind *domain.CashPeriodKind, limit int, nextToken *string) ([]domain.CashPeriod, *string, error)

	// FindMovementsByPeriod retrieves the complete, unfiltered movement set
	// for a period. This is the ground truth the closing balance is folded from.
	FindMovementsByPeriod(ctx context.Context, periodID string) ([]domain.CashMovement, error)
}

// CashPeriodWriter defines write operations for cash period data.
type CashPeriodWriter interface {
	// CreatePeriodIfNoneOpen inserts a new open period for the owner as a
	// single guarded statement. Returns apperrors.ErrAlreadyOpen when an
	// open period already exists for the owner, including when two opens
	// race each other.
	CreatePeriodIfNoneOpen(ctx context.Context, period domain.CashPeriod) error

	// SaveMovement appends an immutable movement to an open period. Returns
	// apperrors.ErrNotOpen when the period is not open.
	SaveMovement(ctx context.Context, movement domain.CashMovement) error

	// ClosePeriodIfOpen flips the period open -> closed and freezes the
	// calculated closing balance, the reported balance and their difference.
	// The update is guarded by status = OPEN; returns apperrors.ErrNotOpen
	// when the period was already closed.
	ClosePeriodIfOpen(ctx context.Context, periodID string, closing, reported, difference decimal.Decimal, closedBy string, closedAt time.Time) error
}

// CashPeriodRepositoryFacade combines all cash period repository interfaces.
type CashPeriodRepositoryFacade interface {
	CashPeriodReader
	CashPeriodWriter
}
