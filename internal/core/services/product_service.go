package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tillpoint/tillpoint_backend/internal/apperrors"
	"github.com/tillpoint/tillpoint_backend/internal/core/domain"
	portsrepo "github.com/tillpoint/tillpoint_backend/internal/core/ports/repositories"
	portssvc "github.com/tillpoint/tillpoint_backend/internal/core/ports/services"
	"github.com/tillpoint/tillpoint_backend/internal/dto"
)

type productService struct {
	BaseService
	productRepo portsrepo.ProductRepositoryFacade
}

// NewProductService creates a new product service.
func NewProductService(productRepo portsrepo.ProductRepositoryFacade) portssvc.ProductSvcFacade {
	return &productService{productRepo: productRepo}
}

var _ portssvc.ProductSvcFacade = (*productService)(nil)

func (s *productService) CreateProduct(ctx context.Context, tenantID string, req dto.CreateProductRequest, creatorID string) (*domain.Product, error) {
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("product price cannot be negative: %w", apperrors.ErrValidation)
	}

	existing, err := s.productRepo.FindProductBySKU(ctx, tenantID, req.SKU)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check SKU uniqueness: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("SKU %s already exists: %w", req.SKU, apperrors.ErrDuplicate)
	}

	now := time.Now()
	product := domain.Product{
		ProductID:  uuid.NewString(),
		TenantID:   tenantID,
		SKU:        req.SKU,
		Name:       req.Name,
		CategoryID: req.CategoryID,
		SupplierID: req.SupplierID,
		Price:      req.Price,
		IsActive:   true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to save product: %w", err)
	}
	return &product, nil
}

func (s *productService) GetProduct(ctx context.Context, tenantID, productID string) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, tenantID, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

func (s *productService) ListProducts(ctx context.Context, tenantID string, params dto.ListProductsParams) (*dto.ListProductsResponse, error) {
	products, err := s.productRepo.ListProducts(ctx, tenantID, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	resp := dto.ToListProductsResponse(products)
	return &resp, nil
}

func (s *productService) UpdateProduct(ctx context.Context, tenantID, productID string, req dto.UpdateProductRequest, actorID string) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, tenantID, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to load product for update: %w", err)
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Price != nil {
		if req.Price.LessThan(decimal.Zero) {
			return nil, fmt.Errorf("product price cannot be negative: %w", apperrors.ErrValidation)
		}
		product.Price = *req.Price
	}
	product.LastUpdatedAt = time.Now()
	product.LastUpdatedBy = actorID

	if err := s.productRepo.UpdateProduct(ctx, *product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

func (s *productService) DeactivateProduct(ctx context.Context, tenantID, productID, actorID string) error {
	product, err := s.productRepo.FindProductByID(ctx, tenantID, productID)
	if err != nil {
		return fmt.Errorf("failed to load product for deactivation: %w", err)
	}

	product.IsActive = false
	product.LastUpdatedAt = time.Now()
	product.LastUpdatedBy = actorID

	if err := s.productRepo.UpdateProduct(ctx, *product); err != nil {
		return fmt.Errorf("failed to deactivate product: %w", err)
	}
	return nil
}
