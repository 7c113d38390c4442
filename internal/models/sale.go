package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleStatus mirrors the sale lifecycle column.
type SaleStatus string

const (
	SaleConfirmed SaleStatus = "CONFIRMED"
	SalePaid      SaleStatus = "PAID"
	SaleCancelled SaleStatus = "CANCELLED"
)

// Sale is the sales table row. paid_amount and balance_amount are caches
// refreshed from confirmed payments.
type Sale struct {
	SaleID             string          `json:"saleID"`
	TenantID           string          `json:"tenantID"`
	SellerID           *string         `json:"sellerID"`
	TotalAmount        decimal.Decimal `json:"totalAmount"`
	PaidAmount         decimal.Decimal `json:"paidAmount"`
	BalanceAmount      decimal.Decimal `json:"balanceAmount"`
	Status             SaleStatus      `json:"status"`
	PaymentCompletedAt *time.Time      `json:"paymentCompletedAt"`
	AuditFields
}
