package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tillpoint/tillpoint_backend/internal/apperrors"
	"github.com/tillpoint/tillpoint_backend/internal/core/domain"
	portssvc "github.com/tillpoint/tillpoint_backend/internal/core/ports/services"
	"github.com/tillpoint/tillpoint_backend/internal/core/services"
)

type ReconcileServiceTestSuite struct {
	suite.Suite
	reconRepo    *MockReconciliationRepository
	paymentRepo  *MockPaymentRepository
	transferRepo *MockTransferRepository
	matching     *MockMatchingService
	ledger       *MockLedgerService
	service      portssvc.ReconcileSvcFacade

	tenantID   string
	transferID string
	actorID    string
}

func (s *ReconcileServiceTestSuite) SetupTest() {
	s.reconRepo = new(MockReconciliationRepository)
	s.paymentRepo = new(MockPaymentRepository)
	s.transferRepo = new(MockTransferRepository)
	s.matching = new(MockMatchingService)
	s.ledger = new(MockLedgerService)
	s.service = services.NewReconcileService(s.reconRepo, s.paymentRepo, s.transferRepo, s.matching, s.ledger)

	s.tenantID = uuid.NewString()
	s.transferID = uuid.NewString()
	s.actorID = uuid.NewString()
}

func (s *ReconcileServiceTestSuite) unconsumedTransfer() *domain.IncomingTransfer {
	return &domain.IncomingTransfer{
		TransferID: s.transferID,
		TenantID:   s.tenantID,
		Amount:     decimal.RequireFromString("150.00"),
		ReceivedAt: time.Now(),
		Consumed:   false,
	}
}

func (s *ReconcileServiceTestSuite) autoCandidate(paymentID string) domain.MatchCandidate {
	return domain.MatchCandidate{
		PaymentID:  paymentID,
		TransferID: s.transferID,
		Confidence: decimal.RequireFromString("0.95"),
		Result:     domain.MatchedAuto,
		Reasons:    []string{"amount matches exactly"},
	}
}

func (s *ReconcileServiceTestSuite) TestAutoCandidateIsConfirmedAndBalanceRefreshed() {
	ctx := context.Background()
	paymentID := uuid.NewString()
	saleID := uuid.NewString()
	candidate := s.autoCandidate(paymentID)

	s.transferRepo.On("FindTransferByID", ctx, s.tenantID, s.transferID).Return(s.unconsumedTransfer(), nil).Once()
	s.reconRepo.On("ConfirmAndConsume", ctx, s.tenantID, paymentID, &s.transferID, candidate.Confidence,
		domain.MatchedAuto, s.actorID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	confirmed := &domain.Payment{
		PaymentID: paymentID,
		TenantID:  s.tenantID,
		SaleID:    &saleID,
		Status:    domain.PaymentConfirmed,
	}
	s.paymentRepo.On("FindPaymentByID", ctx, s.tenantID, paymentID).Return(confirmed, nil).Once()

	balance := &domain.Balance{
		Paid:    decimal.RequireFromString("150.00"),
		Balance: decimal.Zero,
		IsPaid:  true,
	}
	s.ledger.On("ComputeSaleBalance", ctx, s.tenantID, saleID).Return(balance, nil).Once()
	s.reconRepo.On("RefreshSaleAggregates", ctx, s.tenantID, saleID, *balance, s.actorID,
		mock.AnythingOfType("time.Time")).Return(nil).Once()

	result, err := s.service.Reconcile(ctx, s.tenantID, s.transferID, []domain.MatchCandidate{candidate}, s.actorID)

	s.Require().NoError(err)
	s.Equal(domain.OutcomeAutoConfirmed, result.Outcome)
	s.Require().NotNil(result.Winner)
	s.Equal(paymentID, result.Winner.PaymentID)
	s.Require().NotNil(result.Balance)
	s.True(result.Balance.IsPaid)
	s.reconRepo.AssertExpectations(s.T())
}

func (s *ReconcileServiceTestSuite) TestLostRaceRescoresOnceAndConfirmsNewWinner() {
	ctx := context.Background()
	stalePaymentID := uuid.NewString()
	freshPaymentID := uuid.NewString()

	s.transferRepo.On("FindTransferByID", ctx, s.tenantID, s.transferID).Return(s.unconsumedTransfer(), nil).Once()

	// First attempt loses the compare-and-set.
	s.reconRepo.On("ConfirmAndConsume", ctx, s.tenantID, stalePaymentID, &s.transferID,
		mock.Anything, domain.MatchedAuto, s.actorID, mock.AnythingOfType("time.Time")).
		Return(apperrors.ErrConcurrentMatch).Once()

	fresh := s.autoCandidate(freshPaymentID)
	s.matching.On("Match", ctx, s.tenantID, s.transferID).Return([]domain.MatchCandidate{fresh}, nil).Once()

	s.reconRepo.On("ConfirmAndConsume", ctx, s.tenantID, freshPaymentID, &s.transferID,
		fresh.Confidence, domain.MatchedAuto, s.actorID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	s.paymentRepo.On("FindPaymentByID", ctx, s.tenantID, freshPaymentID).
		Return(&domain.Payment{PaymentID: freshPaymentID, TenantID: s.tenantID}, nil).Once()

	result, err := s.service.Reconcile(ctx, s.tenantID, s.transferID,
		[]domain.MatchCandidate{s.autoCandidate(stalePaymentID)}, s.actorID)

	s.Require().NoError(err)
	s.Equal(domain.OutcomeAutoConfirmed, result.Outcome)
	s.Equal(freshPaymentID, result.Winner.PaymentID)
	s.matching.AssertExpectations(s.T())
}

func (s *ReconcileServiceTestSuite) TestSecondLostRaceGivesUp() {
	ctx := context.Background()
	paymentID := uuid.NewString()

	s.transferRepo.On("FindTransferByID", ctx, s.tenantID, s.transferID).Return(s.unconsumedTransfer(), nil).Once()
	s.reconRepo.On("ConfirmAndConsume", ctx, s.tenantID, mock.Anything, &s.transferID,
		mock.Anything, domain.MatchedAuto, s.actorID, mock.AnythingOfType("time.Time")).
		Return(apperrors.ErrConcurrentMatch).Twice()
	s.matching.On("Match", ctx, s.tenantID, s.transferID).
		Return([]domain.MatchCandidate{s.autoCandidate(uuid.NewString())}, nil).Once()

	_, err := s.service.Reconcile(ctx, s.tenantID, s.transferID,
		[]domain.MatchCandidate{s.autoCandidate(paymentID)}, s.actorID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrConcurrentMatch)
}

func (s *ReconcileServiceTestSuite) TestConsumedTransferIsSkipped() {
	ctx := context.Background()
	transfer := s.unconsumedTransfer()
	transfer.Consumed = true

	s.transferRepo.On("FindTransferByID", ctx, s.tenantID, s.transferID).Return(transfer, nil).Once()

	result, err := s.service.Reconcile(ctx, s.tenantID, s.transferID,
		[]domain.MatchCandidate{s.autoCandidate(uuid.NewString())}, s.actorID)

	s.Require().NoError(err)
	s.Equal(domain.OutcomeSkippedStale, result.Outcome)
	s.reconRepo.AssertNotCalled(s.T(), "ConfirmAndConsume",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ReconcileServiceTestSuite) TestSuggestedCandidateOnlyRecordsSuggestion() {
	ctx := context.Background()
	paymentID := uuid.NewString()
	candidate := domain.MatchCandidate{
		PaymentID:  paymentID,
		TransferID: s.transferID,
		Confidence: decimal.RequireFromString("0.65"),
		Result:     domain.MatchedSuggested,
	}

	s.transferRepo.On("FindTransferByID", ctx, s.tenantID, s.transferID).Return(s.unconsumedTransfer(), nil).Once()
	s.reconRepo.On("ApplySuggestion", ctx, s.tenantID, paymentID, s.transferID, candidate.Confidence,
		domain.MatchedSuggested, s.actorID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	result, err := s.service.Reconcile(ctx, s.tenantID, s.transferID, []domain.MatchCandidate{candidate}, s.actorID)

	s.Require().NoError(err)
	s.Equal(domain.OutcomeSuggested, result.Outcome)
	s.Nil(result.Balance)
	s.reconRepo.AssertNotCalled(s.T(), "ConfirmAndConsume",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ReconcileServiceTestSuite) TestNoCandidatesIsNoMatch() {
	ctx := context.Background()

	s.transferRepo.On("FindTransferByID", ctx, s.tenantID, s.transferID).Return(s.unconsumedTransfer(), nil).Once()

	result, err := s.service.Reconcile(ctx, s.tenantID, s.transferID, nil, s.actorID)

	s.Require().NoError(err)
	s.Equal(domain.OutcomeNoMatch, result.Outcome)
}

func (s *ReconcileServiceTestSuite) TestConfirmPaymentConsumesLinkedTransfer() {
	ctx := context.Background()
	paymentID := uuid.NewString()
	saleID := uuid.NewString()
	linkedTransferID := uuid.NewString()

	pending := &domain.Payment{
		PaymentID:         paymentID,
		TenantID:          s.tenantID,
		SaleID:            &saleID,
		Status:            domain.PaymentPending,
		MatchConfidence:   decimal.RequireFromString("0.65"),
		MatchResult:       domain.MatchedSuggested,
		MatchedTransferID: &linkedTransferID,
	}
	s.paymentRepo.On("FindPaymentByID", ctx, s.tenantID, paymentID).Return(pending, nil).Twice()
	s.reconRepo.On("ConfirmAndConsume", ctx, s.tenantID, paymentID, &linkedTransferID,
		pending.MatchConfidence, domain.MatchedSuggested, s.actorID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	balance := &domain.Balance{Paid: decimal.RequireFromString("150.00"), Balance: decimal.Zero, IsPaid: true}
	s.ledger.On("ComputeSaleBalance", ctx, s.tenantID, saleID).Return(balance, nil).Once()
	s.reconRepo.On("RefreshSaleAggregates", ctx, s.tenantID, saleID, *balance, s.actorID,
		mock.AnythingOfType("time.Time")).Return(nil).Once()

	payment, gotBalance, err := s.service.ConfirmPayment(ctx, s.tenantID, paymentID, s.actorID)

	s.Require().NoError(err)
	s.Equal(domain.PaymentConfirmed, payment.Status)
	s.Require().NotNil(payment.ConfirmedAt)
	s.Require().NotNil(gotBalance)
	s.True(gotBalance.IsPaid)
	s.reconRepo.AssertExpectations(s.T())
}

func (s *ReconcileServiceTestSuite) TestConfirmPaymentRejectsAlreadyConfirmed() {
	ctx := context.Background()
	paymentID := uuid.NewString()

	s.paymentRepo.On("FindPaymentByID", ctx, s.tenantID, paymentID).
		Return(&domain.Payment{PaymentID: paymentID, Status: domain.PaymentConfirmed}, nil).Once()

	_, _, err := s.service.ConfirmPayment(ctx, s.tenantID, paymentID, s.actorID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrConflict)
}

func TestReconcileServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReconcileServiceTestSuite))
}
