package mapping

import (
	"github.com/tillpoint/tillpoint_backend/internal/core/domain"
	"github.com/tillpoint/tillpoint_backend/internal/models"
)

// ToModelPayment converts a domain Payment to a model Payment.
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:         d.PaymentID,
		TenantID:          d.TenantID,
		SaleID:            d.SaleID,
		Amount:            d.Amount,
		Method:            string(d.Method),
		PaymentMethodID:   d.PaymentMethodID,
		Status:            models.PaymentStatus(d.Status),
		MatchConfidence:   d.MatchConfidence,
		MatchResult:       string(d.MatchResult),
		MatchedTransferID: d.MatchedTransferID,
		Reference:         d.Reference,
		IdempotencyKey:    d.IdempotencyKey,
		ConfirmedAt:       d.ConfirmedAt,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayment converts a model Payment to a domain Payment.
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:         m.PaymentID,
		TenantID:          m.TenantID,
		SaleID:            m.SaleID,
		Amount:            m.Amount,
		Method:            domain.PaymentMethod(m.Method),
		PaymentMethodID:   m.PaymentMethodID,
		Status:            domain.PaymentStatus(m.Status),
		MatchConfidence:   m.MatchConfidence,
		MatchResult:       domain.MatchResult(m.MatchResult),
		MatchedTransferID: m.MatchedTransferID,
		Reference:         m.Reference,
		IdempotencyKey:    m.IdempotencyKey,
		ConfirmedAt:       m.ConfirmedAt,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPaymentSlice converts a slice of model Payments to domain Payments.
func ToDomainPaymentSlice(ms []models.Payment) []domain.Payment {
	ds := make([]domain.Payment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPayment(m)
	}
	return ds
}
