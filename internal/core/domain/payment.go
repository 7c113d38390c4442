package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the lifecycle state of a payment attempt.
// A payment only ever moves PENDING -> CONFIRMED; confirmed is terminal here.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentConfirmed PaymentStatus = "CONFIRMED"
)

// PaymentMethod identifies how a payment was (or will be) settled.
type PaymentMethod string

const (
	MethodCash     PaymentMethod = "CASH"
	MethodTransfer PaymentMethod = "TRANSFER"
	MethodCard     PaymentMethod = "CARD"
)

// MatchResult is the classification outcome of the matching engine for a payment.
type MatchResult string

const (
	NoMatch          MatchResult = "NO_MATCH"
	MatchedSuggested MatchResult = "MATCHED_SUGGESTED"
	MatchedAuto      MatchResult = "MATCHED_AUTO"
)

// Payment represents one payment attempt against a sale.
// Confirmed payments are ground truth rows: sale balances are always
// recomputed from them, never incremented in place.
type Payment struct {
	PaymentID         string          `json:"paymentID"`
	TenantID          string          `json:"tenantID"`
	SaleID            *string         `json:"saleID,omitempty"`
	Amount            decimal.Decimal `json:"amount"`
	Method            PaymentMethod   `json:"method"`
	PaymentMethodID   *string         `json:"paymentMethodID,omitempty"` // configured method reference, when any
	Status            PaymentStatus   `json:"status"`
	MatchConfidence   decimal.Decimal `json:"matchConfidence"` // 0.0 - 1.0
	MatchResult       MatchResult     `json:"matchResult"`
	MatchedTransferID *string         `json:"matchedTransferID,omitempty"`
	Reference         *string         `json:"reference,omitempty"`
	IdempotencyKey    string          `json:"idempotencyKey"` // unique per tenant
	ConfirmedAt       *time.Time      `json:"confirmedAt,omitempty"`
	AuditFields
}
