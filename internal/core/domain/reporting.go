package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReconciliationSummary aggregates matching outcomes over a reporting window.
type ReconciliationSummary struct {
	From                time.Time       `json:"from"`
	To                  time.Time       `json:"to"`
	MatchedAuto         int             `json:"matchedAuto"`
	MatchedSuggested    int             `json:"matchedSuggested"`
	NoMatch             int             `json:"noMatch"`
	UnconsumedTransfers int             `json:"unconsumedTransfers"`
	ConfirmedAmount     decimal.Decimal `json:"confirmedAmount"`
	PendingAmount       decimal.Decimal `json:"pendingAmount"`
}

// CashPeriodReport is the export-facing view of one cash period: the frozen
// period row, its recomputed totals and the raw movement rows. Export
// collaborators consume it as plain tabular data.
type CashPeriodReport struct {
	Period    CashPeriod     `json:"period"`
	Totals    CashTotals     `json:"totals"`
	Movements []CashMovement `json:"movements"`
}
