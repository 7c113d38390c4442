package repositories

import (
	"context"

	"github.com/tillpoint/tillpoint_backend/internal/core/domain"
)

// SaleReader defines read operations for sale data.
type SaleReader interface {
	// FindSaleByID retrieves a sale scoped to a tenant.
	FindSaleByID(ctx context.Context, tenantID, saleID string) (*domain.Sale, error)

	// ListSales retrieves a token-paginated list of sales for a tenant, newest first.
	ListSales(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.Sale, *string, error)
}

// SaleWriter defines write operations for sale data.
type SaleWriter interface {
	// SaveSale inserts a new sale row.
	SaveSale(ctx context.Context, sale domain.Sale) error
}

// SaleRepositoryFacade combines all sale repository interfaces.
type SaleRepositoryFacade interface {
	SaleReader
	SaleWriter
}
