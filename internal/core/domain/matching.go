package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MatchCandidate is one scored pairing of a pending payment with an incoming
// transfer. Every scored candidate is surfaced with its reasons so callers
// can audit why a match was (or was not) taken.
type MatchCandidate struct {
	PaymentID  string          `json:"paymentID"`
	TransferID string          `json:"transferID"`
	Confidence decimal.Decimal `json:"confidence"` // 0.0 - 1.0
	Result     MatchResult     `json:"matchResult"`
	Reasons    []string        `json:"reasons"`
	// CreatedGap is how long before the transfer the payment was created.
	// Negative when the payment was created after the transfer arrived.
	CreatedGap time.Duration `json:"-"`
}

// ReconcileOutcome describes what the confirmation coordinator did for one transfer.
type ReconcileOutcome string

const (
	OutcomeAutoConfirmed ReconcileOutcome = "AUTO_CONFIRMED"
	OutcomeSuggested     ReconcileOutcome = "SUGGESTED"
	OutcomeNoMatch       ReconcileOutcome = "NO_MATCH"
	OutcomeSkippedStale  ReconcileOutcome = "SKIPPED_STALE"
)

// ReconcileResult is the applied decision for one transfer, including the
// refreshed sale balance when a payment was auto-confirmed.
type ReconcileResult struct {
	TransferID string           `json:"transferID"`
	Outcome    ReconcileOutcome `json:"outcome"`
	Winner     *MatchCandidate  `json:"winner,omitempty"`
	Candidates []MatchCandidate `json:"candidates,omitempty"`
	Balance    *Balance         `json:"balance,omitempty"`
	// Error carries the failure message when one transfer of an import
	// batch failed without aborting the rest.
	Error *string `json:"error,omitempty"`
}
