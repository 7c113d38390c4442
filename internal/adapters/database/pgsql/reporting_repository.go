package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/tillpoint/tillpoint_backend/internal/core/domain"
	portsrepo "github.com/tillpoint/tillpoint_backend/internal/core/ports/repositories"
)

// reportingRepository implements read-only aggregate queries.
type reportingRepository struct {
	BaseRepository
}

func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

func (r *reportingRepository) GetReconciliationSummary(ctx context.Context, tenantID string, from, to time.Time) (*domain.ReconciliationSummary, error) {
	paymentQuery := `
		SELECT
			COUNT(*) FILTER (WHERE match_result = 'MATCHED_AUTO') AS matched_auto,
			COUNT(*) FILTER (WHERE match_result = 'MATCHED_SUGGESTED') AS matched_suggested,
			COUNT(*) FILTER (WHERE match_result = 'NO_MATCH') AS no_match,
			COALESCE(SUM(amount) FILTER (WHERE status = 'CONFIRMED'), 0) AS confirmed_amount,
			COALESCE(SUM(amount) FILTER (WHERE status = 'PENDING'), 0) AS pending_amount
		FROM payments
		WHERE tenant_id = $1 AND created_at >= $2 AND created_at <= $3;
	`

	summary := domain.ReconciliationSummary{
		From:            from,
		To:              to,
		ConfirmedAmount: decimal.Zero,
		PendingAmount:   decimal.Zero,
	}
	err := r.Pool.QueryRow(ctx, paymentQuery, tenantID, from, to).Scan(
		&summary.MatchedAuto,
		&summary.MatchedSuggested,
		&summary.NoMatch,
		&summary.ConfirmedAmount,
		&summary.PendingAmount,
	)
	if err != nil {
		return nil, fmt.Errorf("error querying payment match summary: %w", err)
	}

	transferQuery := `
		SELECT COUNT(*)
		FROM incoming_transfers
		WHERE tenant_id = $1 AND consumed = FALSE AND received_at >= $2 AND received_at <= $3;
	`
	err = r.Pool.QueryRow(ctx, transferQuery, tenantID, from, to).Scan(&summary.UnconsumedTransfers)
	if err != nil {
		return nil, fmt.Errorf("error querying unconsumed transfer count: %w", err)
	}

	return &summary, nil
}
