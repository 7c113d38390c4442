package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferSource records how an incoming transfer entered the system.
type TransferSource string

const (
	SourceAPI    TransferSource = "API"
	SourceCSV    TransferSource = "CSV"
	SourceManual TransferSource = "MANUAL"
)

// IncomingTransfer is an externally reported money receipt.
// A transfer may be consumed by at most one payment; once consumed by an
// auto-confirmed match it is ignored by future matching passes.
type IncomingTransfer struct {
	TransferID     string          `json:"transferID"`
	TenantID       string          `json:"tenantID"`
	Amount         decimal.Decimal `json:"amount"`
	Reference      *string         `json:"reference,omitempty"`
	OriginLabel    *string         `json:"originLabel,omitempty"` // sender name as reported by the bank
	RawDescription string          `json:"rawDescription"`
	ReceivedAt     time.Time       `json:"receivedAt"`
	Source         TransferSource  `json:"source"`
	Consumed       bool            `json:"consumed"`
	AuditFields
}
