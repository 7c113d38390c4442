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

const productColumns = `product_id, tenant_id, sku, name, category_id, supplier_id,
	price, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxProductRepository struct {
	db *pgxpool.Pool
}

func newPgxProductRepository(db *pgxpool.Pool) portsrepo.ProductRepositoryFacade {
	return &PgxProductRepository{db: db}
}

var _ portsrepo.ProductRepositoryFacade = (*PgxProductRepository)(nil)

func scanProduct(row pgx.Row) (models.Product, error) {
	var m models.Product
	err := row.Scan(
		&m.ProductID,
		&m.TenantID,
		&m.SKU,
		&m.Name,
		&m.CategoryID,
		&m.SupplierID,
		&m.Price,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	m := mapping.ToModelProduct(product)
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.db.Exec(ctx, query,
		m.ProductID,
		m.TenantID,
		m.SKU,
		m.Name,
		m.CategoryID,
		m.SupplierID,
		m.Price,
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
		return fmt.Errorf("failed to save product: %w", err)
	}
	return nil
}

func (r *PgxProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	m := mapping.ToModelProduct(product)
	query := `
		UPDATE products
		SET name = $1,
		    category_id = $2,
		    supplier_id = $3,
		    price = $4,
		    is_active = $5,
		    last_updated_at = $6,
		    last_updated_by = $7
		WHERE tenant_id = $8 AND product_id = $9;
	`
	tag, err := r.db.Exec(ctx, query,
		m.Name,
		m.CategoryID,
		m.SupplierID,
		m.Price,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.TenantID,
		m.ProductID,
	)
	if err != nil {
		return fmt.Errorf("failed to update product %s: %w", product.ProductID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxProductRepository) FindProductByID(ctx context.Context, tenantID, productID string) (*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE tenant_id = $1 AND product_id = $2;
	`
	m, err := scanProduct(r.db.QueryRow(ctx, query, tenantID, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID %s: %w", productID, err)
	}
	d := mapping.ToDomainProduct(m)
	return &d, nil
}

func (r *PgxProductRepository) FindProductBySKU(ctx context.Context, tenantID, sku string) (*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE tenant_id = $1 AND sku = $2;
	`
	m, err := scanProduct(r.db.QueryRow(ctx, query, tenantID, sku))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product by SKU %s: %w", sku, err)
	}
	d := mapping.ToDomainProduct(m)
	return &d, nil
}

func (r *PgxProductRepository) ListProducts(ctx context.Context, tenantID string, limit, offset int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE tenant_id = $1
		ORDER BY name ASC, product_id ASC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.db.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var ms []models.Product
	for rows.Next() {
		m, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", err)
	}
	return mapping.ToDomainProductSlice(ms), nil
}
