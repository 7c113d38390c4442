package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashPeriodStatus mirrors the cash period lifecycle column.
type CashPeriodStatus string

const (
	PeriodOpen   CashPeriodStatus = "OPEN"
	PeriodClosed CashPeriodStatus = "CLOSED"
)

// CashPeriod is the cash_periods table row.
type CashPeriod struct {
	PeriodID        string           `json:"periodID"`
	OwnerKind       string           `json:"ownerKind"`
	TenantID        string           `json:"tenantID"`
	OwnerID         string           `json:"ownerID"`
	OpeningBalance  decimal.Decimal  `json:"openingBalance"`
	ClosingBalance  *decimal.Decimal `json:"closingBalance"`
	ReportedClosing *decimal.Decimal `json:"reportedClosing"`
	Difference      *decimal.Decimal `json:"difference"`
	Status          CashPeriodStatus `json:"status"`
	OpenedAt        time.Time        `json:"openedAt"`
	ClosedAt        *time.Time       `json:"closedAt"`
	AuditFields
}

// CashMovement is the cash_movements table row. Rows are insert-only.
type CashMovement struct {
	MovementID  string          `json:"movementID"`
	PeriodID    string          `json:"periodID"`
	Type        string          `json:"type"`
	Method      *string         `json:"method"`
	Amount      decimal.Decimal `json:"amount"`
	ReferenceID *string         `json:"referenceID"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"createdAt"`
	CreatedBy   string          `json:"createdBy"`
}
