package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/tillpoint/tillpoint_backend/internal/apperrors"
	"github.com/tillpoint/tillpoint_backend/internal/core/domain"
	portsrepo "github.com/tillpoint/tillpoint_backend/internal/core/ports/repositories"
	"github.com/tillpoint/tillpoint_backend/internal/models"
	"github.com/tillpoint/tillpoint_backend/internal/utils/mapping"
	"github.com/tillpoint/tillpoint_backend/internal/utils/pagination"
)

const periodColumns = `period_id, owner_kind, tenant_id, owner_id, opening_balance,
	closing_balance, reported_closing, difference, status, opened_at, closed_at,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxCashPeriodRepository struct {
	db *pgxpool.Pool
}

func newPgxCashPeriodRepository(db *pgxpool.Pool) portsrepo.CashPeriodRepositoryFacade {
	return &PgxCashPeriodRepository{db: db}
}

var _ portsrepo.CashPeriodRepositoryFacade = (*PgxCashPeriodRepository)(nil)

func scanPeriod(row pgx.Row) (models.CashPeriod, error) {
	var m models.CashPeriod
	err := row.Scan(
		&m.PeriodID,
		&m.OwnerKind,
		&m.TenantID,
		&m.OwnerID,
		&m.OpeningBalance,
		&m.ClosingBalance,
		&m.ReportedClosing,
		&m.Difference,
		&m.Status,
		&m.OpenedAt,
		&m.ClosedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxCashPeriodRepository) CreatePeriodIfNoneOpen(ctx context.Context, period domain.CashPeriod) error {
	m := mapping.ToModelCashPeriod(period)
	// The partial unique index on (owner_kind, tenant_id, owner_id) WHERE
	// status = 'OPEN' makes this insert the race arbiter: the loser of two
	// concurrent opens gets a unique violation.
	query := `
		INSERT INTO cash_periods (` + periodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.db.Exec(ctx, query,
		m.PeriodID,
		m.OwnerKind,
		m.TenantID,
		m.OwnerID,
		m.OpeningBalance,
		m.ClosingBalance,
		m.ReportedClosing,
		m.Difference,
		m.Status,
		m.OpenedAt,
		m.ClosedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrAlreadyOpen
		}
		return fmt.Errorf("failed to open cash period: %w", err)
	}
	return nil
}

func (r *PgxCashPeriodRepository) SaveMovement(ctx context.Context, movement domain.CashMovement) error {
	m := mapping.ToModelCashMovement(movement)
	// Insert-if-open in one statement, so a close racing this append cannot
	// slip a movement into an already closed period.
	query := `
		INSERT INTO cash_movements (movement_id, period_id, type, method, amount, reference_id, description, created_at, created_by)
		SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9
		WHERE EXISTS (
			SELECT 1 FROM cash_periods WHERE period_id = $2 AND status = 'OPEN'
		);
	`
	tag, err := r.db.Exec(ctx, query,
		m.MovementID,
		m.PeriodID,
		m.Type,
		m.Method,
		m.Amount,
		m.ReferenceID,
		m.Description,
		m.CreatedAt,
		m.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save cash movement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotOpen
	}
	return nil
}

func (r *PgxCashPeriodRepository) ClosePeriodIfOpen(ctx context.Context, periodID string, closing, reported, difference decimal.Decimal, closedBy string, closedAt time.Time) error {
	query := `
		UPDATE cash_periods
		SET status = 'CLOSED',
		    closing_balance = $1,
		    reported_closing = $2,
		    difference = $3,
		    closed_at = $4,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE period_id = $6 AND status = 'OPEN';
	`
	tag, err := r.db.Exec(ctx, query, closing, reported, difference, closedAt, closedBy, periodID)
	if err != nil {
		return fmt.Errorf("failed to close cash period %s: %w", periodID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotOpen
	}
	return nil
}

func (r *PgxCashPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.CashPeriod, error) {
	query := `
		SELECT ` + periodColumns + `
		FROM cash_periods
		WHERE period_id = $1;
	`
	m, err := scanPeriod(r.db.QueryRow(ctx, query, periodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find cash period by ID %s: %w", periodID, err)
	}
	d := mapping.ToDomainCashPeriod(m)
	return &d, nil
}

func (r *PgxCashPeriodRepository) FindOpenPeriodByOwner(ctx context.Context, owner domain.CashPeriodOwner) (*domain.CashPeriod, error) {
	query := `
		SELECT ` + periodColumns + `
		FROM cash_periods
		WHERE owner_kind = $1 AND tenant_id = $2 AND owner_id = $3 AND status = 'OPEN';
	`
	m, err := scanPeriod(r.db.QueryRow(ctx, query, string(owner.Kind), owner.TenantID, owner.OwnerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find open cash period: %w", err)
	}
	d := mapping.ToDomainCashPeriod(m)
	return &d, nil
}

func (r *PgxCashPeriodRepository) ListPeriods(ctx context.Context, tenantID string, kind *domain.CashPeriodKind, limit int, nextToken *string) ([]domain.CashPeriod, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	var sb strings.Builder
	sb.WriteString(`SELECT ` + periodColumns + ` FROM cash_periods WHERE tenant_id = $1`)
	args := []interface{}{tenantID}

	if kind != nil {
		sb.WriteString(` AND owner_kind = $` + strconv.Itoa(len(args)+1))
		args = append(args, string(*kind))
	}

	if nextToken != nil && *nextToken != "" {
		openedAt, id, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		sb.WriteString(` AND (opened_at, period_id) < ($` + strconv.Itoa(len(args)+1) + `, $` + strconv.Itoa(len(args)+2) + `)`)
		args = append(args, openedAt, id)
	}

	sb.WriteString(` ORDER BY opened_at DESC, period_id DESC LIMIT $` + strconv.Itoa(len(args)+1) + `;`)
	args = append(args, limit+1)

	rows, err := r.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list cash periods: %w", err)
	}
	defer rows.Close()

	var ms []models.CashPeriod
	for rows.Next() {
		m, err := scanPeriod(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan cash period row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating cash period rows: %w", err)
	}

	var next *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[len(ms)-1]
		token := pagination.EncodeToken(last.OpenedAt, last.PeriodID)
		next = &token
	}

	ds := make([]domain.CashPeriod, len(ms))
	for i, m := range ms {
		ds[i] = mapping.ToDomainCashPeriod(m)
	}
	return ds, next, nil
}

func (r *PgxCashPeriodRepository) FindMovementsByPeriod(ctx context.Context, periodID string) ([]domain.CashMovement, error) {
	query := `
		SELECT movement_id, period_id, type, method, amount, reference_id, description, created_at, created_by
		FROM cash_movements
		WHERE period_id = $1
		ORDER BY created_at ASC, movement_id ASC;
	`
	rows, err := r.db.Query(ctx, query, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cash movements: %w", err)
	}
	defer rows.Close()

	var ms []models.CashMovement
	for rows.Next() {
		var m models.CashMovement
		if err := rows.Scan(
			&m.MovementID,
			&m.PeriodID,
			&m.Type,
			&m.Method,
			&m.Amount,
			&m.ReferenceID,
			&m.Description,
			&m.CreatedAt,
			&m.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan cash movement row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cash movement rows: %w", err)
	}
	return mapping.ToDomainCashMovementSlice(ms), nil
}
