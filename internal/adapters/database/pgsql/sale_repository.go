package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tillpoint/tillpoint_backend/internal/apperrors"
	"github.com/tillpoint/tillpoint_backend/internal/core/domain"
	portsrepo "github.com/tillpoint/tillpoint_backend/internal/core/ports/repositories"
	"github.com/tillpoint/tillpoint_backend/internal/models"
	"github.com/tillpoint/tillpoint_backend/internal/utils/mapping"
	"github.com/tillpoint/tillpoint_backend/internal/utils/pagination"
)

const saleColumns = `sale_id, tenant_id, seller_id, total_amount, paid_amount,
	balance_amount, status, payment_completed_at, created_at, created_by,
	last_updated_at, last_updated_by`

type PgxSaleRepository struct {
	db *pgxpool.Pool
}

func newPgxSaleRepository(db *pgxpool.Pool) portsrepo.SaleRepositoryFacade {
	return &PgxSaleRepository{db: db}
}

var _ portsrepo.SaleRepositoryFacade = (*PgxSaleRepository)(nil)

func scanSale(row pgx.Row) (models.Sale, error) {
	var m models.Sale
	err := row.Scan(
		&m.SaleID,
		&m.TenantID,
		&m.SellerID,
		&m.TotalAmount,
		&m.PaidAmount,
		&m.BalanceAmount,
		&m.Status,
		&m.PaymentCompletedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxSaleRepository) SaveSale(ctx context.Context, sale domain.Sale) error {
	m := mapping.ToModelSale(sale)
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.db.Exec(ctx, query,
		m.SaleID,
		m.TenantID,
		m.SellerID,
		m.TotalAmount,
		m.PaidAmount,
		m.BalanceAmount,
		m.Status,
		m.PaymentCompletedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save sale: %w", err)
	}
	return nil
}

func (r *PgxSaleRepository) FindSaleByID(ctx context.Context, tenantID, saleID string) (*domain.Sale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM sales
		WHERE tenant_id = $1 AND sale_id = $2;
	`
	m, err := scanSale(r.db.QueryRow(ctx, query, tenantID, saleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find sale by ID %s: %w", saleID, err)
	}
	d := mapping.ToDomainSale(m)
	return &d, nil
}

func (r *PgxSaleRepository) ListSales(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.Sale, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	var sb strings.Builder
	sb.WriteString(`SELECT ` + saleColumns + ` FROM sales WHERE tenant_id = $1`)
	args := []interface{}{tenantID}

	if nextToken != nil && *nextToken != "" {
		createdAt, id, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		sb.WriteString(` AND (created_at, sale_id) < ($` + strconv.Itoa(len(args)+1) + `, $` + strconv.Itoa(len(args)+2) + `)`)
		args = append(args, createdAt, id)
	}

	sb.WriteString(` ORDER BY created_at DESC, sale_id DESC LIMIT $` + strconv.Itoa(len(args)+1) + `;`)
	args = append(args, limit+1)

	rows, err := r.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list sales: %w", err)
	}
	defer rows.Close()

	var ms []models.Sale
	for rows.Next() {
		m, err := scanSale(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan sale row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating sale rows: %w", err)
	}

	var next *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[len(ms)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.SaleID)
		next = &token
	}
	return mapping.ToDomainSaleSlice(ms), next, nil
}
