package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tillpoint/tillpoint_backend/internal/apperrors"
	"github.com/tillpoint/tillpoint_backend/internal/core/domain"
	portsrepo "github.com/tillpoint/tillpoint_backend/internal/core/ports/repositories"
	portssvc "github.com/tillpoint/tillpoint_backend/internal/core/ports/services"
	"github.com/tillpoint/tillpoint_backend/internal/dto"
	"github.com/tillpoint/tillpoint_backend/internal/utils"
)

type sellerService struct {
	BaseService
	sellerRepo portsrepo.SellerRepositoryFacade
}

// NewSellerService creates a new seller service.
func NewSellerService(sellerRepo portsrepo.SellerRepositoryFacade) portssvc.SellerSvcFacade {
	return &sellerService{sellerRepo: sellerRepo}
}

var _ portssvc.SellerSvcFacade = (*sellerService)(nil)

func (s *sellerService) CreateSeller(ctx context.Context, tenantID string, req dto.CreateSellerRequest, creatorID string) (*domain.Seller, error) {
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	seller := domain.Seller{
		SellerID:     uuid.NewString(),
		TenantID:     tenantID,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         domain.SellerRole(req.Role),
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	if err := s.sellerRepo.SaveSeller(ctx, seller); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("seller email %s already registered: %w", req.Email, apperrors.ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to save seller: %w", err)
	}

	s.LogInfo(ctx, "Seller created", slog.String("seller_id", seller.SellerID), slog.String("role", req.Role))
	return &seller, nil
}

func (s *sellerService) GetSeller(ctx context.Context, tenantID, sellerID string) (*domain.Seller, error) {
	seller, err := s.sellerRepo.FindSellerByID(ctx, tenantID, sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get seller: %w", err)
	}
	return seller, nil
}

func (s *sellerService) ListSellers(ctx context.Context, tenantID string, params dto.ListSellersParams) (*dto.ListSellersResponse, error) {
	sellers, err := s.sellerRepo.ListSellers(ctx, tenantID, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list sellers: %w", err)
	}
	resp := dto.ToListSellersResponse(sellers)
	return &resp, nil
}

func (s *sellerService) UpdateSeller(ctx context.Context, tenantID, sellerID string, req dto.UpdateSellerRequest, actorID string) (*domain.Seller, error) {
	seller, err := s.sellerRepo.FindSellerByID(ctx, tenantID, sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load seller for update: %w", err)
	}

	if req.Name != nil {
		seller.Name = *req.Name
	}
	if req.Role != nil {
		seller.Role = domain.SellerRole(*req.Role)
	}
	seller.LastUpdatedAt = time.Now()
	seller.LastUpdatedBy = actorID

	if err := s.sellerRepo.UpdateSeller(ctx, *seller); err != nil {
		return nil, fmt.Errorf("failed to update seller: %w", err)
	}
	return seller, nil
}

func (s *sellerService) DeactivateSeller(ctx context.Context, tenantID, sellerID, actorID string) error {
	seller, err := s.sellerRepo.FindSellerByID(ctx, tenantID, sellerID)
	if err != nil {
		return fmt.Errorf("failed to load seller for deactivation: %w", err)
	}

	seller.IsActive = false
	seller.LastUpdatedAt = time.Now()
	seller.LastUpdatedBy = actorID

	if err := s.sellerRepo.UpdateSeller(ctx, *seller); err != nil {
		return fmt.Errorf("failed to deactivate seller: %w", err)
	}

	s.LogInfo(ctx, "Seller deactivated", slog.String("seller_id", sellerID))
	return nil
}

func (s *sellerService) Authenticate(ctx context.Context, email, password string) (*domain.Seller, error) {
	seller, err := s.sellerRepo.FindSellerByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Same error for unknown email and bad password, so the login
			// route does not leak which emails exist.
			return nil, apperrors.ErrForbidden
		}
		return nil, fmt.Errorf("failed to look up seller by email: %w", err)
	}

	if !seller.IsActive {
		s.LogWarn(ctx, "Login attempt for inactive seller", slog.String("seller_id", seller.SellerID))
		return nil, apperrors.ErrForbidden
	}
	if !utils.CheckPasswordHash(password, seller.PasswordHash) {
		return nil, apperrors.ErrForbidden
	}

	return seller, nil
}
