package repositories

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tillpoint/tillpoint_backend/internal/core/domain"
)

// PaymentReader defines read operations for payment data.
type PaymentReader interface {
	// FindPaymentByID retrieves a payment scoped to a tenant.
	FindPaymentByID(ctx context.Context, tenantID, paymentID string) (*domain.Payment, error)

	// FindPaymentByIdempotencyKey retrieves the payment holding the given
	// idempotency key for the tenant, if any. Used at the creation boundary
	// to resolve retried requests to the existing row.
	FindPaymentByIdempotencyKey(ctx context.Context, tenantID, key string) (*domain.Payment, error)

	// FindConfirmedPaymentsBySale retrieves the complete set of confirmed
	// payments for a sale. This is the ground truth the sale balance is
	// folded from.
	FindConfirmedPaymentsBySale(ctx context.Context, tenantID, saleID string) ([]domain.Payment, error)

	// FindPendingUnmatched retrieves pending payments not linked to any
	// transfer whose amount falls inside [minAmount, maxAmount].
	FindPendingUnmatched(ctx context.Context, tenantID string, minAmount, maxAmount decimal.Decimal) ([]domain.Payment, error)

	// ListPayments retrieves a token-paginated list of payments for a tenant,
	// newest first.
	ListPayments(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.Payment, *string, error)
}

// PaymentWriter defines write operations for payment data.
type PaymentWriter interface {
	// SavePayment inserts a new payment row.
	SavePayment(ctx context.Context, payment domain.Payment) error
}

// PaymentRepositoryFacade combines all payment repository interfaces.
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}
