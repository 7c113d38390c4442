package repositories

import (
	"context"

	"github.com/tillpoint/tillpoint_backend/internal/core/domain"
)

// ProductReader defines read operations for catalog data.
type ProductReader interface {
	FindProductByID(ctx context.Context, tenantID, productID string) (*domain.Product, error)
	FindProductBySKU(ctx context.Context, tenantID, sku string) (*domain.Product, error)
	ListProducts(ctx context.Context, tenantID string, limit, offset int) ([]domain.Product, error)
}

// ProductWriter defines write operations for catalog data.
type ProductWriter interface {
	SaveProduct(ctx context.Context, product domain.Product) error
	UpdateProduct(ctx context.Context, product domain.Product) error
}

// ProductRepositoryFacade combines all product repository interfaces.
type ProductRepositoryFacade interface {
	ProductReader
	ProductWriter
}
