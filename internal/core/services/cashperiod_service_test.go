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
	"github.com/tillpoint/tillpoint_backend/internal/dto"
)

type CashPeriodServiceTestSuite struct {
	suite.Suite
	cashRepo *MockCashPeriodRepository
	service  portssvc.CashPeriodSvcFacade

	tenantID string
	actorID  string
	owner    domain.CashPeriodOwner
}

func (s *CashPeriodServiceTestSuite) SetupTest() {
	s.cashRepo = new(MockCashPeriodRepository)
	s.service = services.NewCashPeriodService(s.cashRepo)

	s.tenantID = uuid.NewString()
	s.actorID = uuid.NewString()
	s.owner = domain.CashPeriodOwner{
		Kind:     domain.KindSession,
		TenantID: s.tenantID,
		OwnerID:  uuid.NewString(),
	}
}

func (s *CashPeriodServiceTestSuite) openPeriod(opening string) *domain.CashPeriod {
	return &domain.CashPeriod{
		PeriodID:       uuid.NewString(),
		Owner:          s.owner,
		OpeningBalance: decimal.RequireFromString(opening),
		Status:         domain.PeriodOpen,
		OpenedAt:       time.Now(),
	}
}

func (s *CashPeriodServiceTestSuite) TestOpenCreatesOpenPeriod() {
	ctx := context.Background()
	opening := decimal.RequireFromString("100.00")

	s.cashRepo.On("CreatePeriodIfNoneOpen", ctx, mock.MatchedBy(func(p domain.CashPeriod) bool {
		return p.Status == domain.PeriodOpen &&
			p.Owner == s.owner &&
			p.OpeningBalance.Equal(opening)
	})).Return(nil).Once()

	period, err := s.service.Open(ctx, s.owner, opening, s.actorID)

	s.Require().NoError(err)
	s.Equal(domain.PeriodOpen, period.Status)
	s.Nil(period.ClosingBalance)
	s.cashRepo.AssertExpectations(s.T())
}

func (s *CashPeriodServiceTestSuite) TestOpenRejectsSecondOpenPeriod() {
	ctx := context.Background()

	s.cashRepo.On("CreatePeriodIfNoneOpen", ctx, mock.AnythingOfType("domain.CashPeriod")).
		Return(apperrors.ErrAlreadyOpen).Once()

	_, err := s.service.Open(ctx, s.owner, decimal.RequireFromString("50.00"), s.actorID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrAlreadyOpen)
}

func (s *CashPeriodServiceTestSuite) TestOpenRejectsNegativeOpeningBalance() {
	_, err := s.service.Open(context.Background(), s.owner, decimal.RequireFromString("-1.00"), s.actorID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.cashRepo.AssertNotCalled(s.T(), "CreatePeriodIfNoneOpen", mock.Anything, mock.Anything)
}

func (s *CashPeriodServiceTestSuite) TestRecordMovementOnOpenPeriod() {
	ctx := context.Background()
	period := s.openPeriod("100.00")

	s.cashRepo.On("FindPeriodByID", ctx, period.PeriodID).Return(period, nil).Once()
	s.cashRepo.On("SaveMovement", ctx, mock.MatchedBy(func(m domain.CashMovement) bool {
		return m.PeriodID == period.PeriodID &&
			m.Type == domain.MovementSale &&
			m.Amount.Equal(decimal.RequireFromString("200.00"))
	})).Return(nil).Once()

	method := "CASH"
	movement, err := s.service.RecordMovement(ctx, s.tenantID, period.PeriodID, dto.RecordMovementRequest{
		Type:   "SALE",
		Method: &method,
		Amount: decimal.RequireFromString("200.00"),
	}, s.actorID)

	s.Require().NoError(err)
	s.NotEmpty(movement.MovementID)
	s.cashRepo.AssertExpectations(s.T())
}

func (s *CashPeriodServiceTestSuite) TestRecordMovementOnClosedPeriodFails() {
	ctx := context.Background()
	period := s.openPeriod("100.00")
	period.Status = domain.PeriodClosed

	s.cashRepo.On("FindPeriodByID", ctx, period.PeriodID).Return(period, nil).Once()

	_, err := s.service.RecordMovement(ctx, s.tenantID, period.PeriodID, dto.RecordMovementRequest{
		Type:   "SALE",
		Amount: decimal.RequireFromString("10.00"),
	}, s.actorID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotOpen)
	s.cashRepo.AssertNotCalled(s.T(), "SaveMovement", mock.Anything, mock.Anything)
}

func (s *CashPeriodServiceTestSuite) TestCloseFreezesTotalsAndRecordsShortfall() {
	ctx := context.Background()
	period := s.openPeriod("100.00")

	movements := []domain.CashMovement{
		movement(domain.MovementSale, methodPtr(domain.MethodCash), "450.00"),
		movement(domain.MovementExpense, methodPtr(domain.MethodCash), "50.00"),
	}
	calculated := decimal.RequireFromString("500.00")
	reported := decimal.RequireFromString("470.00")
	shortfall := decimal.RequireFromString("-30.00")

	s.cashRepo.On("FindPeriodByID", ctx, period.PeriodID).Return(period, nil).Once()
	s.cashRepo.On("FindMovementsByPeriod", ctx, period.PeriodID).Return(movements, nil).Once()
	s.cashRepo.On("ClosePeriodIfOpen", ctx, period.PeriodID,
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(calculated) }),
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(reported) }),
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(shortfall) }),
		s.actorID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	closed, totals, err := s.service.Close(ctx, s.tenantID, period.PeriodID, reported, s.actorID)

	s.Require().NoError(err)
	s.Equal(domain.PeriodClosed, closed.Status)
	s.Require().NotNil(closed.ClosingBalance)
	s.True(closed.ClosingBalance.Equal(calculated))
	s.Require().NotNil(closed.Difference)
	s.True(closed.Difference.Equal(shortfall), "difference was %s", closed.Difference)
	s.True(totals.FinalBalance.Equal(calculated))
	s.cashRepo.AssertExpectations(s.T())
}

func (s *CashPeriodServiceTestSuite) TestCloseOfClosedPeriodFails() {
	ctx := context.Background()
	period := s.openPeriod("100.00")
	period.Status = domain.PeriodClosed

	s.cashRepo.On("FindPeriodByID", ctx, period.PeriodID).Return(period, nil).Once()

	_, _, err := s.service.Close(ctx, s.tenantID, period.PeriodID, decimal.RequireFromString("100.00"), s.actorID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotOpen)
	s.cashRepo.AssertNotCalled(s.T(), "ClosePeriodIfOpen",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *CashPeriodServiceTestSuite) TestConcurrentCloseLosesGracefully() {
	ctx := context.Background()
	period := s.openPeriod("100.00")

	s.cashRepo.On("FindPeriodByID", ctx, period.PeriodID).Return(period, nil).Once()
	s.cashRepo.On("FindMovementsByPeriod", ctx, period.PeriodID).Return([]domain.CashMovement{}, nil).Once()
	s.cashRepo.On("ClosePeriodIfOpen", ctx, period.PeriodID,
		mock.Anything, mock.Anything, mock.Anything, s.actorID, mock.AnythingOfType("time.Time")).
		Return(apperrors.ErrNotOpen).Once()

	_, _, err := s.service.Close(ctx, s.tenantID, period.PeriodID, decimal.RequireFromString("100.00"), s.actorID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotOpen)
}

func (s *CashPeriodServiceTestSuite) TestGetPeriodHidesOtherTenants() {
	ctx := context.Background()
	period := s.openPeriod("100.00")
	period.Owner.TenantID = uuid.NewString()

	s.cashRepo.On("FindPeriodByID", ctx, period.PeriodID).Return(period, nil).Once()

	_, _, err := s.service.GetPeriod(ctx, s.tenantID, period.PeriodID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func TestCashPeriodServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CashPeriodServiceTestSuite))
}
