package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/tillpoint/tillpoint_backend/internal/apperrors"
	"github.com/tillpoint/tillpoint_backend/internal/core/domain"
	portsrepo "github.com/tillpoint/tillpoint_backend/internal/core/ports/repositories"
)

// PgxReconciliationRepository applies matching decisions with compare-and-set
// updates so concurrent matching passes cannot both claim the same rows.
type PgxReconciliationRepository struct {
	BaseRepository
}

func newPgxReconciliationRepository(db *pgxpool.Pool) portsrepo.ReconciliationRepository {
	return &PgxReconciliationRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.ReconciliationRepository = (*PgxReconciliationRepository)(nil)

func (r *PgxReconciliationRepository) ConfirmAndConsume(ctx context.Context, tenantID, paymentID string, transferID *string, confidence decimal.Decimal, result domain.MatchResult, confirmedBy string, confirmedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	confirmPayment := `
		UPDATE payments
		SET status = 'CONFIRMED',
		    match_confidence = $1,
		    match_result = $2,
		    matched_transfer_id = $3,
		    confirmed_at = $4,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE tenant_id = $6 AND payment_id = $7 AND status = 'PENDING';
	`
	tag, err := tx.Exec(ctx, confirmPayment, confidence, string(result), transferID, confirmedAt, confirmedBy, tenantID, paymentID)
	if err != nil {
		return fmt.Errorf("failed to confirm payment %s: %w", paymentID, err)
	}
	if tag.RowsAffected() == 0 {
		// The payment was confirmed (or removed) by a concurrent pass.
		return apperrors.ErrConcurrentMatch
	}

	if transferID != nil {
		consumeTransfer := `
			UPDATE incoming_transfers
			SET consumed = TRUE,
			    last_updated_at = $1,
			    last_updated_by = $2
			WHERE tenant_id = $3 AND transfer_id = $4 AND consumed = FALSE;
		`
		tag, err = tx.Exec(ctx, consumeTransfer, confirmedAt, confirmedBy, tenantID, *transferID)
		if err != nil {
			return fmt.Errorf("failed to consume transfer %s: %w", *transferID, err)
		}
		if tag.RowsAffected() == 0 {
			// Transfer already consumed; roll back the payment confirmation too.
			return apperrors.ErrConcurrentMatch
		}
	}

	return r.Commit(ctx, tx)
}

func (r *PgxReconciliationRepository) ApplySuggestion(ctx context.Context, tenantID, paymentID, transferID string, confidence decimal.Decimal, result domain.MatchResult, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE payments
		SET match_confidence = $1,
		    match_result = $2,
		    matched_transfer_id = $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE tenant_id = $6 AND payment_id = $7 AND status = 'PENDING';
	`
	tag, err := r.Pool.Exec(ctx, query, confidence, string(result), transferID, updatedAt, updatedBy, tenantID, paymentID)
	if err != nil {
		return fmt.Errorf("failed to record suggestion on payment %s: %w", paymentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConcurrentMatch
	}
	return nil
}

func (r *PgxReconciliationRepository) RefreshSaleAggregates(ctx context.Context, tenantID, saleID string, balance domain.Balance, updatedBy string, updatedAt time.Time) error {
	// Cancelled sales keep their status; payment_completed_at is set once,
	// when the balance first reaches zero, and cleared if it reopens.
	query := `
		UPDATE sales
		SET paid_amount = $1,
		    balance_amount = $2,
		    status = CASE
		        WHEN status = 'CANCELLED' THEN status
		        WHEN $3 THEN 'PAID'
		        ELSE 'CONFIRMED'
		    END,
		    payment_completed_at = CASE
		        WHEN status = 'CANCELLED' THEN payment_completed_at
		        WHEN $3 THEN COALESCE(payment_completed_at, $4::timestamptz)
		        ELSE NULL
		    END,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE tenant_id = $6 AND sale_id = $7;
	`
	tag, err := r.Pool.Exec(ctx, query, balance.Paid, balance.Balance, balance.IsPaid, updatedAt, updatedBy, tenantID, saleID)
	if err != nil {
		return fmt.Errorf("failed to refresh aggregates for sale %s: %w", saleID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
