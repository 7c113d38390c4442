package services

import (
	"context"

	"github.com/tillpoint/tillpoint_backend/internal/core/domain"
	"github.com/tillpoint/tillpoint_backend/internal/dto"
)

// SellerSvcFacade manages back-office users and their authentication.
type SellerSvcFacade interface {
	CreateSeller(ctx context.Context, tenantID string, req dto.CreateSellerRequest, creatorID string) (*domain.Seller, error)
	GetSeller(ctx context.Context, tenantID, sellerID string) (*domain.Seller, error)
	ListSellers(ctx context.Context, tenantID string, params dto.ListSellersParams) (*dto.ListSellersResponse, error)
	UpdateSeller(ctx context.Context, tenantID, sellerID string, req dto.UpdateSellerRequest, actorID string) (*domain.Seller, error)
	DeactivateSeller(ctx context.Context, tenantID, sellerID, actorID string) error

	// Authenticate verifies credentials and returns the active seller.
	// Returns apperrors.ErrForbidden on bad credentials or inactive sellers.
	Authenticate(ctx context.Context, email, password string) (*domain.Seller, error)
}
