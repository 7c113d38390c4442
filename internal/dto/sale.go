package dto

import (
	"github.com/shopspring/decimal"
	"github.com/tillpoint/tillpoint_backend/internal/core/domain"
)

// CreateSaleRequest is the payload to register a sale.
type CreateSaleRequest struct {
	TotalAmount decimal.Decimal `json:"totalAmount" binding:"required"`
	SellerID    *string         `json:"sellerID"`
}

// SaleResponse is the API representation of a sale. The paid/balance figures
// are the cached columns; GET routes that need live values recompute first.
type SaleResponse struct {
	SaleID             string          `json:"saleID"`
	SellerID           *string         `json:"sellerID,omitempty"`
	TotalAmount        decimal.Decimal `json:"totalAmount"`
	PaidAmount         decimal.Decimal `json:"paidAmount"`
	BalanceAmount      decimal.Decimal `json:"balanceAmount"`
	Status             string          `json:"status"`
	PaymentCompletedAt *string         `json:"paymentCompletedAt,omitempty"`
	CreatedAt          string          `json:"createdAt"`
}

// ToSaleResponse converts a domain Sale to its API representation.
func ToSaleResponse(s *domain.Sale) SaleResponse {
	resp := SaleResponse{
		SaleID:        s.SaleID,
		SellerID:      s.SellerID,
		TotalAmount:   s.TotalAmount,
		PaidAmount:    s.PaidAmount,
		BalanceAmount: s.BalanceAmount,
		Status:        string(s.Status),
		CreatedAt:     s.CreatedAt.Format(timeFormat),
	}
	if s.PaymentCompletedAt != nil {
		formatted := s.PaymentCompletedAt.Format(timeFormat)
		resp.PaymentCompletedAt = &formatted
	}
	return resp
}

// BalanceResponse is the recomputed payment position of a sale.
type BalanceResponse struct {
	Paid    decimal.Decimal `json:"paid"`
	Balance decimal.Decimal `json:"balance"`
	IsPaid  bool            `json:"isPaid"`
}

// ToBalanceResponse converts a domain Balance.
func ToBalanceResponse(b domain.Balance) BalanceResponse {
	return BalanceResponse{Paid: b.Paid, Balance: b.Balance, IsPaid: b.IsPaid}
}

// ListSalesParams defines query parameters for listing sales.
type ListSalesParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListSalesResponse wraps a page of sales.
type ListSalesResponse struct {
	Sales     []SaleResponse `json:"sales"`
	NextToken *string        `json:"nextToken,omitempty"`
}
