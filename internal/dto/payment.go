package dto

import (
	"github.com/shopspring/decimal"
	"github.com/tillpoint/tillpoint_backend/internal/core/domain"
)

// CreatePaymentRequest is the payload to register a payment attempt.
// TenantID comes from the authenticated caller, never from the body.
type CreatePaymentRequest struct {
	SaleID          *string         `json:"saleID"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	Method          string          `json:"method" binding:"required,oneof=CASH TRANSFER CARD"`
	PaymentMethodID *string         `json:"paymentMethodID"`
	Reference       *string         `json:"reference"`
}

// PaymentResponse is the API representation of a payment.
type PaymentResponse struct {
	PaymentID         string          `json:"paymentID"`
	SaleID            *string         `json:"saleID,omitempty"`
	Amount            decimal.Decimal `json:"amount"`
	Method            string          `json:"method"`
	PaymentMethodID   *string         `json:"paymentMethodID,omitempty"`
	Status            string          `json:"status"`
	MatchConfidence   decimal.Decimal `json:"matchConfidence"`
	MatchResult       string          `json:"matchResult"`
	MatchedTransferID *string         `json:"matchedTransferID,omitempty"`
	Reference         *string         `json:"reference,omitempty"`
	CreatedAt         string          `json:"createdAt"`
}

// ToPaymentResponse converts a domain Payment to its API representation.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:         p.PaymentID,
		SaleID:            p.SaleID,
		Amount:            p.Amount,
		Method:            string(p.Method),
		PaymentMethodID:   p.PaymentMethodID,
		Status:            string(p.Status),
		MatchConfidence:   p.MatchConfidence,
		MatchResult:       string(p.MatchResult),
		MatchedTransferID: p.MatchedTransferID,
		Reference:         p.Reference,
		CreatedAt:         p.CreatedAt.Format(timeFormat),
	}
}

// ListPaymentsParams defines query parameters for listing payments.
type ListPaymentsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListPaymentsResponse wraps a page of payments.
type ListPaymentsResponse struct {
	Payments  []PaymentResponse `json:"payments"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ConfirmPaymentResponse is returned by manual confirmation. It always
// carries the recomputed sale balance so callers can detect drift between
// the cached and live values without a second call.
type ConfirmPaymentResponse struct {
	Payment PaymentResponse  `json:"payment"`
	Balance *BalanceResponse `json:"balance,omitempty"`
}
