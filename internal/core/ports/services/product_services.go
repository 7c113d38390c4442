package services

import (
	"context"

	"github.com/tillpoint/tillpoint_backend/internal/core/domain"
	"github.com/tillpoint/tillpoint_backend/internal/dto"
)

// ProductSvcFacade manages the catalog.
type ProductSvcFacade interface {
	CreateProduct(ctx context.Context, tenantID string, req dto.CreateProductRequest, creatorID string) (*domain.Product, error)
	GetProduct(ctx context.Context, tenantID, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context, tenantID string, params dto.ListProductsParams) (*dto.ListProductsResponse, error)
	UpdateProduct(ctx context.Context, tenantID, productID string, req dto.UpdateProductRequest, actorID string) (*domain.Product, error)
	DeactivateProduct(ctx context.Context, tenantID, productID, actorID string) error
}
