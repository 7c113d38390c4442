package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tillpoint/tillpoint_backend/internal/apperrors"
	"github.com/tillpoint/tillpoint_backend/internal/core/domain"
	"github.com/tillpoint/tillpoint_backend/internal/core/services"
	"github.com/tillpoint/tillpoint_backend/internal/dto"
	"github.com/tillpoint/tillpoint_backend/internal/utils/idempotency"
)

func newPaymentFixture() (*MockPaymentRepository, *MockSaleRepository, string, string) {
	return new(MockPaymentRepository), new(MockSaleRepository), uuid.NewString(), uuid.NewString()
}

func TestCreatePayment_NewPayment(t *testing.T) {
	ctx := context.Background()
	paymentRepo, saleRepo, tenantID, creatorID := newPaymentFixture()
	svc := services.NewPaymentService(paymentRepo, saleRepo)

	req := dto.CreatePaymentRequest{
		Amount:    decimal.RequireFromString("60.00"),
		Method:    "CASH",
		Reference: nil,
	}
	expectedKey := idempotency.DeriveKey(nil, req.Amount, req.Method, nil, nil)

	paymentRepo.On("FindPaymentByIdempotencyKey", ctx, tenantID, expectedKey).
		Return(nil, apperrors.ErrNotFound).Once()
	paymentRepo.On("SavePayment", ctx, mock.MatchedBy(func(p domain.Payment) bool {
		return p.IdempotencyKey == expectedKey &&
			p.Status == domain.PaymentPending &&
			p.MatchResult == domain.NoMatch &&
			p.TenantID == tenantID
	})).Return(nil).Once()

	payment, created, err := svc.CreatePayment(ctx, tenantID, req, creatorID)

	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEmpty(t, payment.PaymentID)
	assert.Equal(t, expectedKey, payment.IdempotencyKey)
	paymentRepo.AssertExpectations(t)
}

func TestCreatePayment_RetryReturnsExistingRow(t *testing.T) {
	ctx := context.Background()
	paymentRepo, saleRepo, tenantID, creatorID := newPaymentFixture()
	svc := services.NewPaymentService(paymentRepo, saleRepo)

	amount := decimal.RequireFromString("60.00")
	key := idempotency.DeriveKey(nil, amount, "CASH", nil, nil)
	existing := &domain.Payment{
		PaymentID:      uuid.NewString(),
		TenantID:       tenantID,
		Amount:         amount,
		Status:         domain.PaymentPending,
		IdempotencyKey: key,
	}
	paymentRepo.On("FindPaymentByIdempotencyKey", ctx, tenantID, key).Return(existing, nil).Once()

	payment, created, err := svc.CreatePayment(ctx, tenantID,
		dto.CreatePaymentRequest{Amount: amount, Method: "CASH"}, creatorID)

	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, existing.PaymentID, payment.PaymentID)
	paymentRepo.AssertNotCalled(t, "SavePayment", mock.Anything, mock.Anything)
}

func TestCreatePayment_EquivalentAmountFormatsShareOneKey(t *testing.T) {
	// "60", "60.0" and "60.00" are the same money; a retry that renders the
	// amount differently must still resolve to the first payment.
	keyA := idempotency.DeriveKey(nil, decimal.RequireFromString("60"), "CASH", nil, nil)
	keyB := idempotency.DeriveKey(nil, decimal.RequireFromString("60.00"), "CASH", nil, nil)
	keyC := idempotency.DeriveKey(nil, decimal.RequireFromString("60.0"), "CASH", nil, nil)

	assert.Equal(t, keyA, keyB)
	assert.Equal(t, keyB, keyC)
}

func TestCreatePayment_RacingDuplicateResolvesToWinner(t *testing.T) {
	ctx := context.Background()
	paymentRepo, saleRepo, tenantID, creatorID := newPaymentFixture()
	svc := services.NewPaymentService(paymentRepo, saleRepo)

	amount := decimal.RequireFromString("60.00")
	key := idempotency.DeriveKey(nil, amount, "CASH", nil, nil)
	winner := &domain.Payment{PaymentID: uuid.NewString(), TenantID: tenantID, IdempotencyKey: key}

	// The lookup misses, the insert loses to the unique index, the second
	// lookup resolves to the winner's row.
	paymentRepo.On("FindPaymentByIdempotencyKey", ctx, tenantID, key).
		Return(nil, apperrors.ErrNotFound).Once()
	paymentRepo.On("SavePayment", ctx, mock.AnythingOfType("domain.Payment")).
		Return(apperrors.ErrDuplicate).Once()
	paymentRepo.On("FindPaymentByIdempotencyKey", ctx, tenantID, key).
		Return(winner, nil).Once()

	payment, created, err := svc.CreatePayment(ctx, tenantID,
		dto.CreatePaymentRequest{Amount: amount, Method: "CASH"}, creatorID)

	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, winner.PaymentID, payment.PaymentID)
	paymentRepo.AssertExpectations(t)
}

func TestCreatePayment_RejectsNonPositiveAmount(t *testing.T) {
	ctx := context.Background()
	paymentRepo, saleRepo, tenantID, creatorID := newPaymentFixture()
	svc := services.NewPaymentService(paymentRepo, saleRepo)

	_, _, err := svc.CreatePayment(ctx, tenantID,
		dto.CreatePaymentRequest{Amount: decimal.Zero, Method: "CASH"}, creatorID)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCreatePayment_UnknownSaleFails(t *testing.T) {
	ctx := context.Background()
	paymentRepo, saleRepo, tenantID, creatorID := newPaymentFixture()
	svc := services.NewPaymentService(paymentRepo, saleRepo)

	saleID := uuid.NewString()
	saleRepo.On("FindSaleByID", ctx, tenantID, saleID).Return(nil, apperrors.ErrNotFound).Once()

	_, _, err := svc.CreatePayment(ctx, tenantID, dto.CreatePaymentRequest{
		SaleID: &saleID,
		Amount: decimal.RequireFromString("10.00"),
		Method: "CASH",
	}, creatorID)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
