package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tillpoint/tillpoint_backend/internal/apperrors"
	"github.com/tillpoint/tillpoint_backend/internal/core/domain"
	"github.com/tillpoint/tillpoint_backend/internal/core/services"
	"github.com/tillpoint/tillpoint_backend/internal/utils"
)

func activeSeller(t *testing.T, password string) *domain.Seller {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	return &domain.Seller{
		SellerID:     uuid.NewString(),
		TenantID:     uuid.NewString(),
		Name:         "Test Seller",
		Email:        "seller@example.com",
		PasswordHash: hash,
		Role:         domain.RoleCashier,
		IsActive:     true,
	}
}

func TestAuthenticate_Success(t *testing.T) {
	ctx := context.Background()
	sellerRepo := new(MockSellerRepository)
	svc := services.NewSellerService(sellerRepo)

	seller := activeSeller(t, "correct-horse")
	sellerRepo.On("FindSellerByEmail", ctx, seller.Email).Return(seller, nil).Once()

	got, err := svc.Authenticate(ctx, seller.Email, "correct-horse")

	require.NoError(t, err)
	assert.Equal(t, seller.SellerID, got.SellerID)
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	ctx := context.Background()
	sellerRepo := new(MockSellerRepository)
	svc := services.NewSellerService(sellerRepo)

	seller := activeSeller(t, "correct-horse")
	sellerRepo.On("FindSellerByEmail", ctx, seller.Email).Return(seller, nil).Once()

	_, err := svc.Authenticate(ctx, seller.Email, "battery-staple")

	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestAuthenticate_UnknownEmailSameError(t *testing.T) {
	ctx := context.Background()
	sellerRepo := new(MockSellerRepository)
	svc := services.NewSellerService(sellerRepo)

	sellerRepo.On("FindSellerByEmail", ctx, "nobody@example.com").Return(nil, apperrors.ErrNotFound).Once()

	_, err := svc.Authenticate(ctx, "nobody@example.com", "whatever")

	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestAuthenticate_InactiveSeller(t *testing.T) {
	ctx := context.Background()
	sellerRepo := new(MockSellerRepository)
	svc := services.NewSellerService(sellerRepo)

	seller := activeSeller(t, "correct-horse")
	seller.IsActive = false
	sellerRepo.On("FindSellerByEmail", ctx, seller.Email).Return(seller, nil).Once()

	_, err := svc.Authenticate(ctx, seller.Email, "correct-horse")

	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}
