package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

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

const paymentColumns = `payment_id, tenant_id, sale_id, amount, method, payment_method_id,
	status, match_confidence, match_result, matched_transfer_id, reference,
	idempotency_key, confirmed_at, created_at, created_by, last_updated_at, last_updated_by`

type PgxPaymentRepository struct {
	db *pgxpool.Pool
}

func newPgxPaymentRepository(db *pgxpool.Pool) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{db: db}
}

var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

func scanPayment(row pgx.Row) (models.Payment, error) {
	var m models.Payment
	err := row.Scan(
		&m.PaymentID,
		&m.TenantID,
		&m.SaleID,
		&m.Amount,
		&m.Method,
		&m.PaymentMethodID,
		&m.Status,
		&m.MatchConfidence,
		&m.MatchResult,
		&m.MatchedTransferID,
		&m.Reference,
		&m.IdempotencyKey,
		&m.ConfirmedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	m := mapping.ToModelPayment(payment)
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := r.db.Exec(ctx, query,
		m.PaymentID,
		m.TenantID,
		m.SaleID,
		m.Amount,
		m.Method,
		m.PaymentMethodID,
		m.Status,
		m.MatchConfidence,
		m.MatchResult,
		m.MatchedTransferID,
		m.Reference,
		m.IdempotencyKey,
		m.ConfirmedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			// tenant_id + idempotency_key collision: a concurrent retry won the insert.
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save payment: %w", err)
	}
	return nil
}

func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, tenantID, paymentID string) (*domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE tenant_id = $1 AND payment_id = $2;
	`
	m, err := scanPayment(r.db.QueryRow(ctx, query, tenantID, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payment by ID %s: %w", paymentID, err)
	}
	d := mapping.ToDomainPayment(m)
	return &d, nil
}

func (r *PgxPaymentRepository) FindPaymentByIdempotencyKey(ctx context.Context, tenantID, key string) (*domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE tenant_id = $1 AND idempotency_key = $2;
	`
	m, err := scanPayment(r.db.QueryRow(ctx, query, tenantID, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payment by idempotency key: %w", err)
	}
	d := mapping.ToDomainPayment(m)
	return &d, nil
}

func (r *PgxPaymentRepository) FindConfirmedPaymentsBySale(ctx context.Context, tenantID, saleID string) ([]domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE tenant_id = $1 AND sale_id = $2 AND status = 'CONFIRMED'
		ORDER BY confirmed_at ASC, payment_id ASC;
	`
	return r.queryPayments(ctx, query, tenantID, saleID)
}

func (r *PgxPaymentRepository) FindPendingUnmatched(ctx context.Context, tenantID string, minAmount, maxAmount decimal.Decimal) ([]domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE tenant_id = $1
		  AND status = 'PENDING'
		  AND matched_transfer_id IS NULL
		  AND amount BETWEEN $2 AND $3
		ORDER BY created_at ASC, payment_id ASC;
	`
	return r.queryPayments(ctx, query, tenantID, minAmount, maxAmount)
}

func (r *PgxPaymentRepository) ListPayments(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.Payment, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	var sb strings.Builder
	sb.WriteString(`SELECT ` + paymentColumns + ` FROM payments WHERE tenant_id = $1`)
	args := []interface{}{tenantID}

	if nextToken != nil && *nextToken != "" {
		createdAt, id, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		sb.WriteString(` AND (created_at, payment_id) < ($` + strconv.Itoa(len(args)+1) + `, $` + strconv.Itoa(len(args)+2) + `)`)
		args = append(args, createdAt, id)
	}

	// Fetch one extra row to know whether another page exists.
	sb.WriteString(` ORDER BY created_at DESC, payment_id DESC LIMIT $` + strconv.Itoa(len(args)+1) + `;`)
	args = append(args, limit+1)

	ms, err := r.collectPayments(ctx, sb.String(), args...)
	if err != nil {
		return nil, nil, err
	}

	var next *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[len(ms)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.PaymentID)
		next = &token
	}
	return mapping.ToDomainPaymentSlice(ms), next, nil
}

func (r *PgxPaymentRepository) queryPayments(ctx context.Context, query string, args ...interface{}) ([]domain.Payment, error) {
	ms, err := r.collectPayments(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainPaymentSlice(ms), nil
}

func (r *PgxPaymentRepository) collectPayments(ctx context.Context, query string, args ...interface{}) ([]models.Payment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	var ms []models.Payment
	for rows.Next() {
		m, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment rows: %w", err)
	}
	return ms, nil
}
