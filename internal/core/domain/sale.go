package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleStatus is the lifecycle state of a sale.
type SaleStatus string

const (
	SaleConfirmed SaleStatus = "CONFIRMED"
	SalePaid      SaleStatus = "PAID"
	SaleCancelled SaleStatus = "CANCELLED"
)

// Sale owns zero or more payments. PaidAmount and BalanceAmount are cache
// fields: they are recomputed from confirmed payments and never trusted as
// the source of truth.
type Sale struct {
	SaleID             string          `json:"saleID"`
	TenantID           string          `json:"tenantID"`
	SellerID           *string         `json:"sellerID,omitempty"`
	TotalAmount        decimal.Decimal `json:"totalAmount"`
	PaidAmount         decimal.Decimal `json:"paidAmount"`
	BalanceAmount      decimal.Decimal `json:"balanceAmount"`
	Status             SaleStatus      `json:"status"`
	PaymentCompletedAt *time.Time      `json:"paymentCompletedAt,omitempty"`
	AuditFields
}

// Balance is the recomputed payment position of a sale.
type Balance struct {
	Paid    decimal.Decimal `json:"paid"`
	Balance decimal.Decimal `json:"balance"`
	IsPaid  bool            `json:"isPaid"`
}
