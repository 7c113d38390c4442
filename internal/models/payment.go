package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus mirrors the payment lifecycle column.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentConfirmed PaymentStatus = "CONFIRMED"
)

// Payment is the payments table row.
type Payment struct {
	PaymentID         string          `json:"paymentID"`
	TenantID          string          `json:"tenantID"`
	SaleID            *string         `json:"saleID"`
	Amount            decimal.Decimal `json:"amount"`
	Method            string          `json:"method"`
	PaymentMethodID   *string         `json:"paymentMethodID"`
	Status            PaymentStatus   `json:"status"`
	MatchConfidence   decimal.Decimal `json:"matchConfidence"`
	MatchResult       string          `json:"matchResult"`
	MatchedTransferID *string         `json:"matchedTransferID"`
	Reference         *string         `json:"reference"`
	IdempotencyKey    string          `json:"idempotencyKey"`
	ConfirmedAt       *time.Time      `json:"confirmedAt"`
	AuditFields
}
