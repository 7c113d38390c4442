package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// IncomingTransfer is the incoming_transfers table row.
type IncomingTransfer struct {
	TransferID     string          `json:"transferID"`
	TenantID       string          `json:"tenantID"`
	Amount         decimal.Decimal `json:"amount"`
	Reference      *string         `json:"reference"`
	OriginLabel    *string         `json:"originLabel"`
	RawDescription string          `json:"rawDescription"`
	ReceivedAt     time.Time       `json:"receivedAt"`
	Source         string          `json:"source"`
	Consumed       bool            `json:"consumed"`
	AuditFields
}
