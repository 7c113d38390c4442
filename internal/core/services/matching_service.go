package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tillpoint/tillpoint_backend/internal/core/domain"
	portsrepo "github.com/tillpoint/tillpoint_backend/internal/core/ports/repositories"
	portssvc "github.com/tillpoint/tillpoint_backend/internal/core/ports/services"
	"github.com/tillpoint/tillpoint_backend/internal/platform/config"
)

var one = decimal.NewFromInt(1)

// matchingService scores pending payments against incoming transfers.
// Signals are additive: each observed agreement contributes its configured
// weight, and the final confidence is clamped to [0, 1]. The engine never
// writes anything; applying a decision is the reconcile service's job.
type matchingService struct {
	BaseService
	transferRepo portsrepo.TransferReader
	paymentRepo  portsrepo.PaymentReader
	policy       config.MatchingConfig
}

// NewMatchingService creates a new matching service with the given policy.
func NewMatchingService(transferRepo portsrepo.TransferReader, paymentRepo portsrepo.PaymentReader, policy config.MatchingConfig) portssvc.MatchingSvcFacade {
	return &matchingService{
		transferRepo: transferRepo,
		paymentRepo:  paymentRepo,
		policy:       policy,
	}
}

var _ portssvc.MatchingSvcFacade = (*matchingService)(nil)

func (s *matchingService) Match(ctx context.Context, tenantID, transferID string) ([]domain.MatchCandidate, error) {
	transfer, err := s.transferRepo.FindTransferByID(ctx, tenantID, transferID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transfer for matching: %w", err)
	}

	// A consumed transfer is settled; it must never attract new candidates.
	if transfer.Consumed {
		return nil, nil
	}

	minAmount := transfer.Amount.Sub(s.policy.AmountTolerance)
	maxAmount := transfer.Amount.Add(s.policy.AmountTolerance)
	payments, err := s.paymentRepo.FindPendingUnmatched(ctx, tenantID, minAmount, maxAmount)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate payments for transfer %s: %w", transferID, err)
	}
	if len(payments) == 0 {
		return nil, nil
	}

	candidates := make([]domain.MatchCandidate, 0, len(payments))
	for _, p := range payments {
		candidates = append(candidates, s.score(transfer, p))
	}

	s.applyPoolAdjustments(candidates)
	sortCandidates(candidates)
	s.classify(candidates)

	return candidates, nil
}

// score computes the base confidence of one payment/transfer pairing from
// the pairwise signals. Pool-level adjustments come later.
func (s *matchingService) score(transfer *domain.IncomingTransfer, payment domain.Payment) domain.MatchCandidate {
	confidence := decimal.Zero
	reasons := make([]string, 0, 3)

	if payment.Amount.Equal(transfer.Amount) {
		confidence = confidence.Add(s.policy.WeightAmountExact)
		reasons = append(reasons, "amount matches exactly")
	} else {
		delta := payment.Amount.Sub(transfer.Amount).Abs()
		confidence = confidence.Add(s.policy.WeightAmountTolerance)
		reasons = append(reasons, fmt.Sprintf("amount within tolerance (off by %s)", delta.StringFixed(2)))
	}

	if ref := referenceHit(transfer, payment); ref != "" {
		confidence = confidence.Add(s.policy.WeightReference)
		reasons = append(reasons, ref)
	}

	gap := transfer.ReceivedAt.Sub(payment.CreatedAt)
	if gap >= 0 && gap <= s.policy.TimeWindow {
		// Linear decay: a payment registered just before the transfer
		// arrived scores the full temporal weight, one at the window edge
		// scores nothing.
		fraction := 1 - float64(gap)/float64(s.policy.TimeWindow)
		contribution := s.policy.WeightTemporal.Mul(decimal.NewFromFloat(fraction)).Round(4)
		if contribution.IsPositive() {
			confidence = confidence.Add(contribution)
			reasons = append(reasons, fmt.Sprintf("payment registered %s before transfer", gap.Round(time.Minute)))
		}
	}

	return domain.MatchCandidate{
		PaymentID:  payment.PaymentID,
		TransferID: transfer.TransferID,
		Confidence: confidence,
		Result:     domain.NoMatch,
		Reasons:    reasons,
		CreatedGap: gap,
	}
}

// referenceHit reports how the payment reference relates to the transfer,
// or "" when there is no usable reference signal.
func referenceHit(transfer *domain.IncomingTransfer, payment domain.Payment) string {
	if payment.Reference == nil || *payment.Reference == "" {
		return ""
	}
	ref := strings.ToLower(strings.TrimSpace(*payment.Reference))
	if ref == "" {
		return ""
	}

	if transfer.Reference != nil && strings.EqualFold(strings.TrimSpace(*transfer.Reference), ref) {
		return "reference matches exactly"
	}
	if strings.Contains(strings.ToLower(transfer.RawDescription), ref) {
		return "reference found in transfer description"
	}
	if transfer.Reference != nil && strings.Contains(strings.ToLower(*transfer.Reference), ref) {
		return "reference partially matches"
	}
	return ""
}

// applyPoolAdjustments applies the signals that depend on the whole candidate
// pool: a uniqueness boost when exactly one candidate is plausible, and an
// ambiguity penalty when the top scores are too close to call.
func (s *matchingService) applyPoolAdjustments(candidates []domain.MatchCandidate) {
	if len(candidates) == 0 {
		return
	}

	plausible := make([]int, 0, len(candidates))
	for i := range candidates {
		if candidates[i].Confidence.GreaterThanOrEqual(s.policy.SuggestFloor) {
			plausible = append(plausible, i)
		}
	}

	if len(plausible) == 1 {
		i := plausible[0]
		candidates[i].Confidence = candidates[i].Confidence.Add(s.policy.UniquenessBoost)
		candidates[i].Reasons = append(candidates[i].Reasons, "only plausible candidate")
	} else if len(plausible) >= 2 {
		top := candidates[plausible[0]].Confidence
		for _, i := range plausible[1:] {
			if candidates[i].Confidence.GreaterThan(top) {
				top = candidates[i].Confidence
			}
		}
		contested := make([]int, 0, len(plausible))
		for _, i := range plausible {
			if top.Sub(candidates[i].Confidence).LessThanOrEqual(s.policy.AmbiguityDelta) {
				contested = append(contested, i)
			}
		}
		if len(contested) >= 2 {
			for _, i := range contested {
				candidates[i].Confidence = candidates[i].Confidence.Sub(s.policy.AmbiguityPenalty)
				candidates[i].Reasons = append(candidates[i].Reasons,
					fmt.Sprintf("ambiguous: %d candidates score closely", len(contested)))
			}
		}
	}

	for i := range candidates {
		if candidates[i].Confidence.IsNegative() {
			candidates[i].Confidence = decimal.Zero
		} else if candidates[i].Confidence.GreaterThan(one) {
			candidates[i].Confidence = one
		}
	}
}

// classify assigns the final result to each candidate. Only the ordered
// winner can be auto-confirmed, and only when it beats the runner-up by more
// than the ambiguity delta.
func (s *matchingService) classify(candidates []domain.MatchCandidate) {
	for i := range candidates {
		if candidates[i].Confidence.GreaterThanOrEqual(s.policy.SuggestFloor) {
			candidates[i].Result = domain.MatchedSuggested
		} else {
			candidates[i].Result = domain.NoMatch
		}
	}

	if len(candidates) == 0 {
		return
	}
	top := &candidates[0]
	if top.Confidence.LessThan(s.policy.AutoThreshold) {
		return
	}
	if len(candidates) > 1 {
		runnerUp := candidates[1].Confidence
		if top.Confidence.Sub(runnerUp).LessThanOrEqual(s.policy.AmbiguityDelta) {
			return
		}
	}
	top.Result = domain.MatchedAuto
}

// sortCandidates orders by confidence descending, then by smaller absolute
// temporal gap, then by payment ID so equal inputs always produce the same
// ordering.
func sortCandidates(candidates []domain.MatchCandidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		if !candidates[i].Confidence.Equal(candidates[j].Confidence) {
			return candidates[i].Confidence.GreaterThan(candidates[j].Confidence)
		}
		gi, gj := absDuration(candidates[i].CreatedGap), absDuration(candidates[j].CreatedGap)
		if gi != gj {
			return gi < gj
		}
		return candidates[i].PaymentID < candidates[j].PaymentID
	})
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
