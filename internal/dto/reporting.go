package dto

import (
	"github.com/shopspring/decimal"
	"github.com/tillpoint/tillpoint_backend/internal/core/domain"
)

// ReconciliationSummaryParams defines query parameters for the summary report.
type ReconciliationSummaryParams struct {
	From string `form:"from" binding:"required"` // RFC3339
	To   string `form:"to" binding:"required"`   // RFC3339
}

// ReconciliationSummaryResponse aggregates matching outcomes over a window.
type ReconciliationSummaryResponse struct {
	From                string          `json:"from"`
	To                  string          `json:"to"`
	MatchedAuto         int             `json:"matchedAuto"`
	MatchedSuggested    int             `json:"matchedSuggested"`
	NoMatch             int             `json:"noMatch"`
	UnconsumedTransfers int             `json:"unconsumedTransfers"`
	ConfirmedAmount     decimal.Decimal `json:"confirmedAmount"`
	PendingAmount       decimal.Decimal `json:"pendingAmount"`
}

// ToReconciliationSummaryResponse converts the domain summary.
func ToReconciliationSummaryResponse(s *domain.ReconciliationSummary) ReconciliationSummaryResponse {
	return ReconciliationSummaryResponse{
		From:                s.From.Format(timeFormat),
		To:                  s.To.Format(timeFormat),
		MatchedAuto:         s.MatchedAuto,
		MatchedSuggested:    s.MatchedSuggested,
		NoMatch:             s.NoMatch,
		UnconsumedTransfers: s.UnconsumedTransfers,
		ConfirmedAmount:     s.ConfirmedAmount,
		PendingAmount:       s.PendingAmount,
	}
}

// CashPeriodReportResponse is the tabular export view of one cash period.
type CashPeriodReportResponse struct {
	Period    CashPeriodResponse     `json:"period"`
	Totals    CashTotalsResponse     `json:"totals"`
	Movements []CashMovementResponse `json:"movements"`
}

// ToCashPeriodReportResponse converts a domain CashPeriodReport.
func ToCashPeriodReportResponse(r *domain.CashPeriodReport) CashPeriodReportResponse {
	return CashPeriodReportResponse{
		Period:    ToCashPeriodResponse(&r.Period),
		Totals:    ToCashTotalsResponse(r.Totals),
		Movements: ToCashMovementResponses(r.Movements),
	}
}
