package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tillpoint/tillpoint_backend/internal/core/domain"
)

// ImportTransferRequest is one externally reported transfer in an import batch.
type ImportTransferRequest struct {
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	Reference      *string         `json:"reference"`
	OriginLabel    *string         `json:"originLabel"`
	RawDescription string          `json:"rawDescription"`
	ReceivedAt     *time.Time      `json:"receivedAt"`
}

// ImportTransfersRequest is the batch payload for the API import route.
// Source lets a back-office operator mark a hand-keyed batch as MANUAL;
// it defaults to API when omitted.
type ImportTransfersRequest struct {
	Transfers []ImportTransferRequest `json:"transfers" binding:"required,min=1,dive"`
	Source    *string                 `json:"source" binding:"omitempty,oneof=API MANUAL"`
}

// TransferResponse is the API representation of an incoming transfer.
type TransferResponse struct {
	TransferID     string          `json:"transferID"`
	Amount         decimal.Decimal `json:"amount"`
	Reference      *string         `json:"reference,omitempty"`
	OriginLabel    *string         `json:"originLabel,omitempty"`
	RawDescription string          `json:"rawDescription"`
	ReceivedAt     string          `json:"receivedAt"`
	Source         string          `json:"source"`
	Consumed       bool            `json:"consumed"`
}

// ToTransferResponse converts a domain IncomingTransfer to its API representation.
func ToTransferResponse(t *domain.IncomingTransfer) TransferResponse {
	return TransferResponse{
		TransferID:     t.TransferID,
		Amount:         t.Amount,
		Reference:      t.Reference,
		OriginLabel:    t.OriginLabel,
		RawDescription: t.RawDescription,
		ReceivedAt:     t.ReceivedAt.Format(timeFormat),
		Source:         string(t.Source),
		Consumed:       t.Consumed,
	}
}

// ListTransfersParams defines query parameters for listing transfers.
type ListTransfersParams struct {
	Limit          int     `form:"limit,default=20"`
	NextToken      *string `form:"nextToken"`
	UnconsumedOnly bool    `form:"unconsumedOnly,default=false"`
}

// ListTransfersResponse wraps a page of transfers.
type ListTransfersResponse struct {
	Transfers []TransferResponse `json:"transfers"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// MatchCandidateResponse is one scored candidate with its audit reasons.
type MatchCandidateResponse struct {
	PaymentID  string          `json:"paymentID"`
	TransferID string          `json:"transferID"`
	Confidence decimal.Decimal `json:"confidence"`
	Result     string          `json:"matchResult"`
	Reasons    []string        `json:"reasons"`
}

// ToMatchCandidateResponses converts scored candidates for API display.
func ToMatchCandidateResponses(cs []domain.MatchCandidate) []MatchCandidateResponse {
	out := make([]MatchCandidateResponse, len(cs))
	for i, c := range cs {
		out[i] = MatchCandidateResponse{
			PaymentID:  c.PaymentID,
			TransferID: c.TransferID,
			Confidence: c.Confidence,
			Result:     string(c.Result),
			Reasons:    c.Reasons,
		}
	}
	return out
}

// ReconcileResultResponse reports what the import pass did for one transfer.
type ReconcileResultResponse struct {
	TransferID string                   `json:"transferID"`
	Outcome    string                   `json:"outcome"`
	Winner     *MatchCandidateResponse  `json:"winner,omitempty"`
	Candidates []MatchCandidateResponse `json:"candidates,omitempty"`
	Balance    *BalanceResponse         `json:"balance,omitempty"`
	Error      *string                  `json:"error,omitempty"`
}

// ToReconcileResultResponse converts a domain ReconcileResult.
func ToReconcileResultResponse(r *domain.ReconcileResult) ReconcileResultResponse {
	resp := ReconcileResultResponse{
		TransferID: r.TransferID,
		Outcome:    string(r.Outcome),
		Candidates: ToMatchCandidateResponses(r.Candidates),
		Error:      r.Error,
	}
	if r.Winner != nil {
		w := MatchCandidateResponse{
			PaymentID:  r.Winner.PaymentID,
			TransferID: r.Winner.TransferID,
			Confidence: r.Winner.Confidence,
			Result:     string(r.Winner.Result),
			Reasons:    r.Winner.Reasons,
		}
		resp.Winner = &w
	}
	if r.Balance != nil {
		b := ToBalanceResponse(*r.Balance)
		resp.Balance = &b
	}
	return resp
}

// ImportTransfersResponse wraps the per-transfer outcomes of an import batch.
type ImportTransfersResponse struct {
	Results []ReconcileResultResponse `json:"results"`
}
