package services

import (
	"context"

	"github.com/tillpoint/tillpoint_backend/internal/core/domain"
	"github.com/tillpoint/tillpoint_backend/internal/dto"
)

// PaymentSvcFacade manages payment attempts against sales.
type PaymentSvcFacade interface {
	// CreatePayment registers a payment attempt. The idempotency key derived
	// from the request tuple dedupes retries: when a payment with the same
	// tenant+key already exists it is returned with created=false and no new
	// row is inserted.
	CreatePayment(ctx context.Context, tenantID string, req dto.CreatePaymentRequest, creatorID string) (payment *domain.Payment, created bool, err error)

	// GetPayment retrieves a payment scoped to a tenant.
	GetPayment(ctx context.Context, tenantID, paymentID string) (*domain.Payment, error)

	// ListPayments retrieves a token-paginated page of payments.
	ListPayments(ctx context.Context, tenantID string, params dto.ListPaymentsParams) (*dto.ListPaymentsResponse, error)
}
