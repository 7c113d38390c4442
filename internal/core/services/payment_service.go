package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tillpoint/tillpoint_backend/internal/apperrors"
	"github.com/tillpoint/tillpoint_backend/internal/core/domain"
	portsrepo "github.com/tillpoint/tillpoint_backend/internal/core/ports/repositories"
	portssvc "github.com/tillpoint/tillpoint_backend/internal/core/ports/services"
	"github.com/tillpoint/tillpoint_backend/internal/dto"
	"github.com/tillpoint/tillpoint_backend/internal/utils/idempotency"
)

type paymentService struct {
	BaseService
	paymentRepo portsrepo.PaymentRepositoryFacade
	saleRepo    portsrepo.SaleReader
}

// NewPaymentService creates a new payment service.
func NewPaymentService(paymentRepo portsrepo.PaymentRepositoryFacade, saleRepo portsrepo.SaleReader) portssvc.PaymentSvcFacade {
	return &paymentService{
		paymentRepo: paymentRepo,
		saleRepo:    saleRepo,
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

func (s *paymentService) CreatePayment(ctx context.Context, tenantID string, req dto.CreatePaymentRequest, creatorID string) (*domain.Payment, bool, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, false, fmt.Errorf("payment amount must be positive: %w", apperrors.ErrValidation)
	}

	if req.SaleID != nil {
		if _, err := s.saleRepo.FindSaleByID(ctx, tenantID, *req.SaleID); err != nil {
			return nil, false, fmt.Errorf("failed to resolve sale %s for payment: %w", *req.SaleID, err)
		}
	}

	key := idempotency.DeriveKey(req.SaleID, req.Amount, req.Method, req.PaymentMethodID, req.Reference)

	// Resolve retries before inserting. The unique index on the key is the
	// real guard; this lookup just keeps the common retry path quiet.
	existing, err := s.paymentRepo.FindPaymentByIdempotencyKey(ctx, tenantID, key)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, false, fmt.Errorf("failed to check idempotency key: %w", err)
	}
	if existing != nil {
		s.LogInfo(ctx, "Duplicate payment request resolved to existing payment",
			slog.String("payment_id", existing.PaymentID))
		return existing, false, nil
	}

	now := time.Now()
	payment := domain.Payment{
		PaymentID:       uuid.NewString(),
		TenantID:        tenantID,
		SaleID:          req.SaleID,
		Amount:          req.Amount,
		Method:          domain.PaymentMethod(req.Method),
		PaymentMethodID: req.PaymentMethodID,
		Status:          domain.PaymentPending,
		MatchConfidence: decimal.Zero,
		MatchResult:     domain.NoMatch,
		Reference:       req.Reference,
		IdempotencyKey:  key,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	if err := s.paymentRepo.SavePayment(ctx, payment); err != nil {
		// Two identical requests can race past the lookup; the loser hits
		// the unique index and gets the winner's row.
		if errors.Is(err, apperrors.ErrDuplicate) {
			winner, findErr := s.paymentRepo.FindPaymentByIdempotencyKey(ctx, tenantID, key)
			if findErr != nil {
				return nil, false, fmt.Errorf("failed to resolve racing duplicate payment: %w", findErr)
			}
			return winner, false, nil
		}
		return nil, false, fmt.Errorf("failed to save payment: %w", err)
	}

	s.LogInfo(ctx, "Payment registered",
		slog.String("payment_id", payment.PaymentID),
		slog.String("method", string(payment.Method)),
		slog.String("amount", payment.Amount.String()))
	return &payment, true, nil
}

func (s *paymentService) GetPayment(ctx context.Context, tenantID, paymentID string) (*domain.Payment, error) {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, tenantID, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return payment, nil
}

func (s *paymentService) ListPayments(ctx context.Context, tenantID string, params dto.ListPaymentsParams) (*dto.ListPaymentsResponse, error) {
	payments, nextToken, err := s.paymentRepo.ListPayments(ctx, tenantID, params.Limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	resp := &dto.ListPaymentsResponse{
		Payments:  make([]dto.PaymentResponse, len(payments)),
		NextToken: nextToken,
	}
	for i := range payments {
		resp.Payments[i] = dto.ToPaymentResponse(&payments[i])
	}
	return resp, nil
}
