package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tillpoint/tillpoint_backend/internal/core/domain"
	portssvc "github.com/tillpoint/tillpoint_backend/internal/core/ports/services"
	"github.com/tillpoint/tillpoint_backend/internal/core/services"
	"github.com/tillpoint/tillpoint_backend/internal/platform/config"
)

type MatchingServiceTestSuite struct {
	suite.Suite
	transferRepo *MockTransferRepository
	paymentRepo  *MockPaymentRepository
	service      portssvc.MatchingSvcFacade
	tenantID     string
	now          time.Time
}

func (s *MatchingServiceTestSuite) SetupTest() {
	s.transferRepo = new(MockTransferRepository)
	s.paymentRepo = new(MockPaymentRepository)
	s.service = services.NewMatchingService(s.transferRepo, s.paymentRepo, config.DefaultMatchingConfig())
	s.tenantID = uuid.NewString()
	s.now = time.Now()
}

func (s *MatchingServiceTestSuite) transfer(amount string, reference *string) *domain.IncomingTransfer {
	return &domain.IncomingTransfer{
		TransferID:     uuid.NewString(),
		TenantID:       s.tenantID,
		Amount:         decimal.RequireFromString(amount),
		Reference:      reference,
		RawDescription: "TRANSFER RECEIVED",
		ReceivedAt:     s.now,
		Source:         domain.SourceAPI,
	}
}

func (s *MatchingServiceTestSuite) pendingPayment(amount string, reference *string, createdBefore time.Duration) domain.Payment {
	return domain.Payment{
		PaymentID: uuid.NewString(),
		TenantID:  s.tenantID,
		Amount:    decimal.RequireFromString(amount),
		Method:    domain.MethodTransfer,
		Status:    domain.PaymentPending,
		Reference: reference,
		AuditFields: domain.AuditFields{
			CreatedAt: s.now.Add(-createdBefore),
		},
	}
}

func strPtr(v string) *string { return &v }

func (s *MatchingServiceTestSuite) TestExactAmountAndReferenceAutoConfirms() {
	ref := strPtr("INV-4711")
	transfer := s.transfer("150.00", ref)
	payment := s.pendingPayment("150.00", ref, 2*time.Hour)

	s.transferRepo.On("FindTransferByID", mock.Anything, s.tenantID, transfer.TransferID).Return(transfer, nil).Once()
	s.paymentRepo.On("FindPendingUnmatched", mock.Anything, s.tenantID, mock.Anything, mock.Anything).
		Return([]domain.Payment{payment}, nil).Once()

	candidates, err := s.service.Match(context.Background(), s.tenantID, transfer.TransferID)

	s.Require().NoError(err)
	s.Require().Len(candidates, 1)
	s.Equal(payment.PaymentID, candidates[0].PaymentID)
	s.Equal(domain.MatchedAuto, candidates[0].Result)
	s.True(candidates[0].Confidence.GreaterThanOrEqual(decimal.RequireFromString("0.90")),
		"confidence was %s", candidates[0].Confidence)
	s.Contains(candidates[0].Reasons, "amount matches exactly")
	s.Contains(candidates[0].Reasons, "reference matches exactly")
}

func (s *MatchingServiceTestSuite) TestTwoEqualAmountsAreOnlySuggested() {
	transfer := s.transfer("500.00", nil)
	closer := s.pendingPayment("500.00", nil, 1*time.Hour)
	farther := s.pendingPayment("500.00", nil, 2*time.Hour)

	s.transferRepo.On("FindTransferByID", mock.Anything, s.tenantID, transfer.TransferID).Return(transfer, nil).Once()
	s.paymentRepo.On("FindPendingUnmatched", mock.Anything, s.tenantID, mock.Anything, mock.Anything).
		Return([]domain.Payment{farther, closer}, nil).Once()

	candidates, err := s.service.Match(context.Background(), s.tenantID, transfer.TransferID)

	s.Require().NoError(err)
	s.Require().Len(candidates, 2)
	// Neither may be auto-confirmed: the scores are too close to call.
	for _, c := range candidates {
		s.Equal(domain.MatchedSuggested, c.Result)
		s.True(c.Confidence.LessThan(decimal.RequireFromString("0.90")))
	}
	// The temporally closer payment wins the ordering.
	s.Equal(closer.PaymentID, candidates[0].PaymentID)
	s.Equal(farther.PaymentID, candidates[1].PaymentID)
}

func (s *MatchingServiceTestSuite) TestToleranceOnlyCandidateIsNoMatch() {
	transfer := s.transfer("100.00", nil)
	payment := s.pendingPayment("100.03", nil, 36*time.Hour)

	s.transferRepo.On("FindTransferByID", mock.Anything, s.tenantID, transfer.TransferID).Return(transfer, nil).Once()
	s.paymentRepo.On("FindPendingUnmatched", mock.Anything, s.tenantID, mock.Anything, mock.Anything).
		Return([]domain.Payment{payment}, nil).Once()

	candidates, err := s.service.Match(context.Background(), s.tenantID, transfer.TransferID)

	s.Require().NoError(err)
	s.Require().Len(candidates, 1)
	s.Equal(domain.NoMatch, candidates[0].Result)
	s.True(candidates[0].Confidence.LessThan(decimal.RequireFromString("0.50")),
		"confidence was %s", candidates[0].Confidence)
}

func (s *MatchingServiceTestSuite) TestReferenceInDescriptionScores() {
	transfer := s.transfer("200.00", nil)
	transfer.RawDescription = "wire ref inv-99 from ACME"
	payment := s.pendingPayment("200.00", strPtr("INV-99"), 1*time.Hour)

	s.transferRepo.On("FindTransferByID", mock.Anything, s.tenantID, transfer.TransferID).Return(transfer, nil).Once()
	s.paymentRepo.On("FindPendingUnmatched", mock.Anything, s.tenantID, mock.Anything, mock.Anything).
		Return([]domain.Payment{payment}, nil).Once()

	candidates, err := s.service.Match(context.Background(), s.tenantID, transfer.TransferID)

	s.Require().NoError(err)
	s.Require().Len(candidates, 1)
	s.Equal(domain.MatchedAuto, candidates[0].Result)
	s.Contains(candidates[0].Reasons, "reference found in transfer description")
}

func (s *MatchingServiceTestSuite) TestConsumedTransferYieldsNothing() {
	transfer := s.transfer("100.00", nil)
	transfer.Consumed = true

	s.transferRepo.On("FindTransferByID", mock.Anything, s.tenantID, transfer.TransferID).Return(transfer, nil).Once()

	candidates, err := s.service.Match(context.Background(), s.tenantID, transfer.TransferID)

	s.Require().NoError(err)
	s.Empty(candidates)
	s.paymentRepo.AssertNotCalled(s.T(), "FindPendingUnmatched", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *MatchingServiceTestSuite) TestNoPendingPaymentsYieldsNothing() {
	transfer := s.transfer("100.00", nil)

	s.transferRepo.On("FindTransferByID", mock.Anything, s.tenantID, transfer.TransferID).Return(transfer, nil).Once()
	s.paymentRepo.On("FindPendingUnmatched", mock.Anything, s.tenantID, mock.Anything, mock.Anything).
		Return([]domain.Payment{}, nil).Once()

	candidates, err := s.service.Match(context.Background(), s.tenantID, transfer.TransferID)

	s.Require().NoError(err)
	s.Empty(candidates)
}

func (s *MatchingServiceTestSuite) TestClearWinnerBeatsWeakRunnerUp() {
	ref := strPtr("ORD-1")
	transfer := s.transfer("300.00", ref)
	winner := s.pendingPayment("300.00", ref, 1*time.Hour)
	loser := s.pendingPayment("300.04", nil, 60*time.Hour)

	s.transferRepo.On("FindTransferByID", mock.Anything, s.tenantID, transfer.TransferID).Return(transfer, nil).Once()
	s.paymentRepo.On("FindPendingUnmatched", mock.Anything, s.tenantID, mock.Anything, mock.Anything).
		Return([]domain.Payment{loser, winner}, nil).Once()

	candidates, err := s.service.Match(context.Background(), s.tenantID, transfer.TransferID)

	s.Require().NoError(err)
	s.Require().Len(candidates, 2)
	s.Equal(winner.PaymentID, candidates[0].PaymentID)
	s.Equal(domain.MatchedAuto, candidates[0].Result)
	s.Equal(domain.NoMatch, candidates[1].Result)
}

func TestMatchingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MatchingServiceTestSuite))
}
