package repositories

import (
	"context"

	"github.com/tillpoint/tillpoint_backend/internal/core/domain"
)

// SellerReader defines read operations for seller data.
type SellerReader interface {
	FindSellerByID(ctx context.Context, tenantID, sellerID string) (*domain.Seller, error)
	FindSellerByEmail(ctx context.Context, email string) (*domain.Seller, error)
	ListSellers(ctx context.Context, tenantID string, limit, offset int) ([]domain.Seller, error)
}

// SellerWriter defines write operations for seller data.
type SellerWriter interface {
	SaveSeller(ctx context.Context, seller domain.Seller) error
	UpdateSeller(ctx context.Context, seller domain.Seller) error
}

// SellerRepositoryFacade combines all seller repository interfaces.
type SellerRepositoryFacade interface {
	SellerReader
	SellerWriter
}
