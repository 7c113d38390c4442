package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashPeriodKind distinguishes the historical cash tracking variants, which
// all follow the same open/accumulate/close pattern.
type CashPeriodKind string

const (
	KindSession  CashPeriodKind = "SESSION"  // per-seller shift
	KindBox      CashPeriodKind = "BOX"      // physical cash box
	KindRegister CashPeriodKind = "REGISTER" // branch register
)

// CashPeriodStatus is the lifecycle state of a cash period.
type CashPeriodStatus string

const (
	PeriodOpen   CashPeriodStatus = "OPEN"
	PeriodClosed CashPeriodStatus = "CLOSED"
)

// MovementType is the closed set of cash movement kinds. Amounts are stored
// unsigned; the type determines the sign in the closing fold.
type MovementType string

const (
	MovementSale    MovementType = "SALE"
	MovementRefund  MovementType = "REFUND"
	MovementIncome  MovementType = "MANUAL_INCOME"
	MovementExpense MovementType = "MANUAL_EXPENSE"
)

// CashPeriodOwner identifies who a period belongs to: a seller session or a
// tenant+branch box/register. Exactly one open period per owner is allowed.
type CashPeriodOwner struct {
	Kind     CashPeriodKind `json:"kind"`
	TenantID string         `json:"tenantID"`
	OwnerID  string         `json:"ownerID"` // seller ID for sessions, branch ID otherwise
}

// CashPeriod is one open/close cycle of a cash session, box or register.
// ClosingBalance is frozen at close time and never recomputed afterwards.
type CashPeriod struct {
	PeriodID        string           `json:"periodID"`
	Owner           CashPeriodOwner  `json:"owner"`
	OpeningBalance  decimal.Decimal  `json:"openingBalance"`
	ClosingBalance  *decimal.Decimal `json:"closingBalance,omitempty"` // calculated at close
	ReportedClosing *decimal.Decimal `json:"reportedClosing,omitempty"`
	Difference      *decimal.Decimal `json:"difference,omitempty"` // reported - calculated, informational
	Status          CashPeriodStatus `json:"status"`
	OpenedAt        time.Time        `json:"openedAt"`
	ClosedAt        *time.Time       `json:"closedAt,omitempty"`
	AuditFields
}

// CashMovement is an immutable typed entry under a cash period. Movements are
// never modified or deleted; corrections create inverse entries.
type CashMovement struct {
	MovementID  string          `json:"movementID"`
	PeriodID    string          `json:"periodID"`
	Type        MovementType    `json:"type"`
	Method      *PaymentMethod  `json:"method,omitempty"` // settlement method tag, when known
	Amount      decimal.Decimal `json:"amount"`           // unsigned, type carries the sign
	ReferenceID *string         `json:"referenceID,omitempty"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"createdAt"`
	CreatedBy   string          `json:"createdBy"`
}

// CashTotals is the recomputed position of a cash period.
type CashTotals struct {
	TotalIncome     decimal.Decimal `json:"totalIncome"`
	TotalExpense    decimal.Decimal `json:"totalExpense"`
	FinalBalance    decimal.Decimal `json:"finalBalance"`
	IncomeCash      decimal.Decimal `json:"incomeCash"`
	IncomeTransfer  decimal.Decimal `json:"incomeTransfer"`
	ExpenseCash     decimal.Decimal `json:"expenseCash"`
	ExpenseTransfer decimal.Decimal `json:"expenseTransfer"`
}
