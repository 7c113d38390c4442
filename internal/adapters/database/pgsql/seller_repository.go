package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tillpoint/tillpoint_backend/internal/apperrors"
	"github.com/tillpoint/tillpoint_backend/internal/core/domain"
	portsrepo "github.com/tillpoint/tillpoint_backend/internal/core/ports/repositories"
	"github.com/tillpoint/tillpoint_backend/internal/models"
	"github.com/tillpoint/tillpoint_backend/internal/utils/mapping"
)

const sellerColumns = `seller_id, tenant_id, name, email, password_hash, role,
	is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxSellerRepository struct {
	db *pgxpool.Pool
}

func newPgxSellerRepository(db *pgxpool.Pool) portsrepo.SellerRepositoryFacade {
	return &PgxSellerRepository{db: db}
}

var _ portsrepo.SellerRepositoryFacade = (*PgxSellerRepository)(nil)

func scanSeller(row pgx.Row) (models.Seller, error) {
	var m models.Seller
	err := row.Scan(
		&m.SellerID,
		&m.TenantID,
		&m.Name,
		&m.Email,
		&m.PasswordHash,
		&m.Role,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxSellerRepository) SaveSeller(ctx context.Context, seller domain.Seller) error {
	m := mapping.ToModelSeller(seller)
	query := `
		INSERT INTO sellers (` + sellerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.db.Exec(ctx, query,
		m.SellerID,
		m.TenantID,
		m.Name,
		m.Email,
		m.PasswordHash,
		m.Role,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save seller: %w", err)
	}
	return nil
}

func (r *PgxSellerRepository) UpdateSeller(ctx context.Context, seller domain.Seller) error {
	m := mapping.ToModelSeller(seller)
	query := `
		UPDATE sellers
		SET name = $1,
		    role = $2,
		    is_active = $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE tenant_id = $6 AND seller_id = $7;
	`
	tag, err := r.db.Exec(ctx, query,
		m.Name,
		m.Role,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.TenantID,
		m.SellerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update seller %s: %w", seller.SellerID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxSellerRepository) FindSellerByID(ctx context.Context, tenantID, sellerID string) (*domain.Seller, error) {
	query := `
		SELECT ` + sellerColumns + `
		FROM sellers
		WHERE tenant_id = $1 AND seller_id = $2;
	`
	m, err := scanSeller(r.db.QueryRow(ctx, query, tenantID, sellerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find seller by ID %s: %w", sellerID, err)
	}
	d := mapping.ToDomainSeller(m)
	return &d, nil
}

func (r *PgxSellerRepository) FindSellerByEmail(ctx context.Context, email string) (*domain.Seller, error) {
	query := `
		SELECT ` + sellerColumns + `
		FROM sellers
		WHERE lower(email) = lower($1);
	`
	m, err := scanSeller(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find seller by email: %w", err)
	}
	d := mapping.ToDomainSeller(m)
	return &d, nil
}

func (r *PgxSellerRepository) ListSellers(ctx context.Context, tenantID string, limit, offset int) ([]domain.Seller, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := `
		SELECT ` + sellerColumns + `
		FROM sellers
		WHERE tenant_id = $1
		ORDER BY name ASC, seller_id ASC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.db.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list sellers: %w", err)
	}
	defer rows.Close()

	var ms []models.Seller
	for rows.Next() {
		m, err := scanSeller(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan seller row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating seller rows: %w", err)
	}
	return mapping.ToDomainSellerSlice(ms), nil
}
