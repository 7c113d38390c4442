package services

import (
	"context"

	"github.com/tillpoint/tillpoint_backend/internal/core/domain"
	"github.com/tillpoint/tillpoint_backend/internal/dto"
)

// SaleSvcFacade manages sales and their derived payment position.
type SaleSvcFacade interface {
	// CreateSale registers a new sale with a zero paid amount.
	CreateSale(ctx context.Context, tenantID string, req dto.CreateSaleRequest, creatorID string) (*domain.Sale, error)

	// GetSale retrieves a sale scoped to a tenant. The returned sale carries
	// the cached balance columns as persisted.
	GetSale(ctx context.Context, tenantID, saleID string) (*domain.Sale, error)

	// GetSaleBalance recomputes the live balance from confirmed payments.
	GetSaleBalance(ctx context.Context, tenantID, saleID string) (*domain.Balance, error)

	// ListSales retrieves a token-paginated page of sales.
	ListSales(ctx context.Context, tenantID string, params dto.ListSalesParams) (*dto.ListSalesResponse, error)
}
