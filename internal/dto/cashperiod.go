package dto

import (
	"github.com/shopspring/decimal"
	"github.com/tillpoint/tillpoint_backend/internal/core/domain"
)

// OpenCashPeriodRequest is the payload to open a cash period.
type OpenCashPeriodRequest struct {
	Kind           string          `json:"kind" binding:"required,oneof=SESSION BOX REGISTER"`
	OwnerID        string          `json:"ownerID" binding:"required"`
	OpeningBalance decimal.Decimal `json:"openingBalance" binding:"required"`
}

// CloseCashPeriodRequest is the payload to close a cash period. The reported
// balance is what the operator counted; the calculated balance comes from the
// movement fold and the difference is informational only.
type CloseCashPeriodRequest struct {
	ReportedClosing decimal.Decimal `json:"reportedClosing" binding:"required"`
}

// RecordMovementRequest is the payload to append a movement to an open period.
type RecordMovementRequest struct {
	Type        string          `json:"type" binding:"required,oneof=SALE REFUND MANUAL_INCOME MANUAL_EXPENSE"`
	Method      *string         `json:"method" binding:"omitempty,oneof=CASH TRANSFER CARD"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	ReferenceID *string         `json:"referenceID"`
	Description string          `json:"description"`
}

// CashPeriodResponse is the API representation of a cash period.
type CashPeriodResponse struct {
	PeriodID        string           `json:"periodID"`
	Kind            string           `json:"kind"`
	OwnerID         string           `json:"ownerID"`
	OpeningBalance  decimal.Decimal  `json:"openingBalance"`
	ClosingBalance  *decimal.Decimal `json:"closingBalance,omitempty"`
	ReportedClosing *decimal.Decimal `json:"reportedClosing,omitempty"`
	Difference      *decimal.Decimal `json:"difference,omitempty"`
	Status          string           `json:"status"`
	OpenedAt        string           `json:"openedAt"`
	ClosedAt        *string          `json:"closedAt,omitempty"`
}

// ToCashPeriodResponse converts a domain CashPeriod to its API representation.
func ToCashPeriodResponse(p *domain.CashPeriod) CashPeriodResponse {
	resp := CashPeriodResponse{
		PeriodID:        p.PeriodID,
		Kind:            string(p.Owner.Kind),
		OwnerID:         p.Owner.OwnerID,
		OpeningBalance:  p.OpeningBalance,
		ClosingBalance:  p.ClosingBalance,
		ReportedClosing: p.ReportedClosing,
		Difference:      p.Difference,
		Status:          string(p.Status),
		OpenedAt:        p.OpenedAt.Format(timeFormat),
	}
	if p.ClosedAt != nil {
		formatted := p.ClosedAt.Format(timeFormat)
		resp.ClosedAt = &formatted
	}
	return resp
}

// CashTotalsResponse is the recomputed position of a cash period.
type CashTotalsResponse struct {
	TotalIncome     decimal.Decimal `json:"totalIncome"`
	TotalExpense    decimal.Decimal `json:"totalExpense"`
	FinalBalance    decimal.Decimal `json:"finalBalance"`
	IncomeCash      decimal.Decimal `json:"incomeCash"`
	IncomeTransfer  decimal.Decimal `json:"incomeTransfer"`
	ExpenseCash     decimal.Decimal `json:"expenseCash"`
	ExpenseTransfer decimal.Decimal `json:"expenseTransfer"`
}

// ToCashTotalsResponse converts domain CashTotals.
func ToCashTotalsResponse(t domain.CashTotals) CashTotalsResponse {
	return CashTotalsResponse{
		TotalIncome:     t.TotalIncome,
		TotalExpense:    t.TotalExpense,
		FinalBalance:    t.FinalBalance,
		IncomeCash:      t.IncomeCash,
		IncomeTransfer:  t.IncomeTransfer,
		ExpenseCash:     t.ExpenseCash,
		ExpenseTransfer: t.ExpenseTransfer,
	}
}

// CashMovementResponse is the API representation of a cash movement.
type CashMovementResponse struct {
	MovementID  string          `json:"movementID"`
	Type        string          `json:"type"`
	Method      *string         `json:"method,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	ReferenceID *string         `json:"referenceID,omitempty"`
	Description string          `json:"description"`
	CreatedAt   string          `json:"createdAt"`
}

// ToCashMovementResponses converts domain movements for API display.
func ToCashMovementResponses(ms []domain.CashMovement) []CashMovementResponse {
	out := make([]CashMovementResponse, len(ms))
	for i, m := range ms {
		var method *string
		if m.Method != nil {
			s := string(*m.Method)
			method = &s
		}
		out[i] = CashMovementResponse{
			MovementID:  m.MovementID,
			Type:        string(m.Type),
			Method:      method,
			Amount:      m.Amount,
			ReferenceID: m.ReferenceID,
			Description: m.Description,
			CreatedAt:   m.CreatedAt.Format(timeFormat),
		}
	}
	return out
}

// ListCashPeriodsParams defines query parameters for listing cash periods.
type ListCashPeriodsParams struct {
	Kind      *string `form:"kind" binding:"omitempty,oneof=SESSION BOX REGISTER"`
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListCashPeriodsResponse wraps a page of cash periods.
type ListCashPeriodsResponse struct {
	Periods   []CashPeriodResponse `json:"periods"`
	NextToken *string              `json:"nextToken,omitempty"`
}

// CloseCashPeriodResponse returns the frozen period together with the totals
// calculated at close time.
type CloseCashPeriodResponse struct {
	Period CashPeriodResponse `json:"period"`
	Totals CashTotalsResponse `json:"totals"`
}
