package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/tillpoint/tillpoint_backend/internal/core/domain"
	portsrepo "github.com/tillpoint/tillpoint_backend/internal/core/ports/repositories"
	portssvc "github.com/tillpoint/tillpoint_backend/internal/core/ports/services"
)

// --- Mock PaymentRepository ---

type MockPaymentRepository struct {
	mock.Mock
}

var _ portsrepo.PaymentRepositoryFacade = (*MockPaymentRepository)(nil)

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, tenantID, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, tenantID, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindPaymentByIdempotencyKey(ctx context.Context, tenantID, key string) (*domain.Payment, error) {
	args := m.Called(ctx, tenantID, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindConfirmedPaymentsBySale(ctx context.Context, tenantID, saleID string) ([]domain.Payment, error) {
	args := m.Called(ctx, tenantID, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindPendingUnmatched(ctx context.Context, tenantID string, minAmount, maxAmount decimal.Decimal) ([]domain.Payment, error) {
	args := m.Called(ctx, tenantID, minAmount, maxAmount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListPayments(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.Payment, *string, error) {
	args := m.Called(ctx, tenantID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		v := args.Get(1).(string)
		token = &v
	}
	return args.Get(0).([]domain.Payment), token, args.Error(2)
}

func (m *MockPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

// --- Mock TransferRepository ---

type MockTransferRepository struct {
	mock.Mock
}

var _ portsrepo.TransferRepositoryFacade = (*MockTransferRepository)(nil)

func (m *MockTransferRepository) FindTransferByID(ctx context.Context, tenantID, transferID string) (*domain.IncomingTransfer, error) {
	args := m.Called(ctx, tenantID, transferID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IncomingTransfer), args.Error(1)
}

func (m *MockTransferRepository) ListTransfers(ctx context.Context, tenantID string, limit int, nextToken *string, unconsumedOnly bool) ([]domain.IncomingTransfer, *string, error) {
	args := m.Called(ctx, tenantID, limit, nextToken, unconsumedOnly)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		v := args.Get(1).(string)
		token = &v
	}
	return args.Get(0).([]domain.IncomingTransfer), token, args.Error(2)
}

func (m *MockTransferRepository) SaveTransfer(ctx context.Context, transfer domain.IncomingTransfer) error {
	args := m.Called(ctx, transfer)
	return args.Error(0)
}

// --- Mock ReconciliationRepository ---

type MockReconciliationRepository struct {
	mock.Mock
}

var _ portsrepo.ReconciliationRepository = (*MockReconciliationRepository)(nil)

func (m *MockReconciliationRepository) ConfirmAndConsume(ctx context.Context, tenantID, paymentID string, transferID *string, confidence decimal.Decimal, result domain.MatchResult, confirmedBy string, confirmedAt time.Time) error {
	args := m.Called(ctx, tenantID, paymentID, transferID, confidence, result, confirmedBy, confirmedAt)
	return args.Error(0)
}

func (m *MockReconciliationRepository) ApplySuggestion(ctx context.Context, tenantID, paymentID, transferID string, confidence decimal.Decimal, result domain.MatchResult, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, tenantID, paymentID, transferID, confidence, result, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockReconciliationRepository) RefreshSaleAggregates(ctx context.Context, tenantID, saleID string, balance domain.Balance, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, tenantID, saleID, balance, updatedBy, updatedAt)
	return args.Error(0)
}

// --- Mock SaleRepository ---

type MockSaleRepository struct {
	mock.Mock
}

var _ portsrepo.SaleRepositoryFacade = (*MockSaleRepository)(nil)

func (m *MockSaleRepository) FindSaleByID(ctx context.Context, tenantID, saleID string) (*domain.Sale, error) {
	args := m.Called(ctx, tenantID, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

func (m *MockSaleRepository) ListSales(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.Sale, *string, error) {
	args := m.Called(ctx, tenantID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		v := args.Get(1).(string)
		token = &v
	}
	return args.Get(0).([]domain.Sale), token, args.Error(2)
}

func (m *MockSaleRepository) SaveSale(ctx context.Context, sale domain.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

// --- Mock CashPeriodRepository ---

type MockCashPeriodRepository struct {
	mock.Mock
}

var _ portsrepo.CashPeriodRepositoryFacade = (*MockCashPeriodRepository)(nil)

func (m *MockCashPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.CashPeriod, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashPeriod), args.Error(1)
}

func (m *MockCashPeriodRepository) FindOpenPeriodByOwner(ctx context.Context, owner domain.CashPeriodOwner) (*domain.CashPeriod, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashPeriod), args.Error(1)
}

func (m *MockCashPeriodRepository) ListPeriods(ctx context.Context, tenantID string, kind *domain.CashPeriodKind, limit int, nextToken *string) ([]domain.CashPeriod, *string, error) {
	args := m.Called(ctx, tenantID, kind, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		v := args.Get(1).(string)
		token = &v
	}
	return args.Get(0).([]domain.CashPeriod), token, args.Error(2)
}

func (m *MockCashPeriodRepository) FindMovementsByPeriod(ctx context.Context, periodID string) ([]domain.CashMovement, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashMovement), args.Error(1)
}

func (m *MockCashPeriodRepository) CreatePeriodIfNoneOpen(ctx context.Context, period domain.CashPeriod) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

func (m *MockCashPeriodRepository) SaveMovement(ctx context.Context, movement domain.CashMovement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockCashPeriodRepository) ClosePeriodIfOpen(ctx context.Context, periodID string, closing, reported, difference decimal.Decimal, closedBy string, closedAt time.Time) error {
	args := m.Called(ctx, periodID, closing, reported, difference, closedBy, closedAt)
	return args.Error(0)
}

// --- Mock SellerRepository ---

type MockSellerRepository struct {
	mock.Mock
}

var _ portsrepo.SellerRepositoryFacade = (*MockSellerRepository)(nil)

func (m *MockSellerRepository) FindSellerByID(ctx context.Context, tenantID, sellerID string) (*domain.Seller, error) {
	args := m.Called(ctx, tenantID, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Seller), args.Error(1)
}

func (m *MockSellerRepository) FindSellerByEmail(ctx context.Context, email string) (*domain.Seller, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Seller), args.Error(1)
}

func (m *MockSellerRepository) ListSellers(ctx context.Context, tenantID string, limit, offset int) ([]domain.Seller, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Seller), args.Error(1)
}

func (m *MockSellerRepository) SaveSeller(ctx context.Context, seller domain.Seller) error {
	args := m.Called(ctx, seller)
	return args.Error(0)
}

func (m *MockSellerRepository) UpdateSeller(ctx context.Context, seller domain.Seller) error {
	args := m.Called(ctx, seller)
	return args.Error(0)
}

// --- Mock MatchingService ---

type MockMatchingService struct {
	mock.Mock
}

var _ portssvc.MatchingSvcFacade = (*MockMatchingService)(nil)

func (m *MockMatchingService) Match(ctx context.Context, tenantID, transferID string) ([]domain.MatchCandidate, error) {
	args := m.Called(ctx, tenantID, transferID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MatchCandidate), args.Error(1)
}

// --- Mock LedgerService ---

type MockLedgerService struct {
	mock.Mock
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

func (m *MockLedgerService) ComputeSaleBalance(ctx context.Context, tenantID, saleID string) (*domain.Balance, error) {
	args := m.Called(ctx, tenantID, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Balance), args.Error(1)
}

func (m *MockLedgerService) ComputeCashPeriodTotals(ctx context.Context, periodID string) (*domain.CashTotals, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashTotals), args.Error(1)
}

// --- Mock ReconcileService ---

type MockReconcileService struct {
	mock.Mock
}

var _ portssvc.ReconcileSvcFacade = (*MockReconcileService)(nil)

func (m *MockReconcileService) Reconcile(ctx context.Context, tenantID, transferID string, candidates []domain.MatchCandidate, actorID string) (*domain.ReconcileResult, error) {
	args := m.Called(ctx, tenantID, transferID, candidates, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReconcileResult), args.Error(1)
}

func (m *MockReconcileService) ConfirmPayment(ctx context.Context, tenantID, paymentID, actorID string) (*domain.Payment, *domain.Balance, error) {
	args := m.Called(ctx, tenantID, paymentID, actorID)
	var payment *domain.Payment
	if args.Get(0) != nil {
		payment = args.Get(0).(*domain.Payment)
	}
	var balance *domain.Balance
	if args.Get(1) != nil {
		balance = args.Get(1).(*domain.Balance)
	}
	return payment, balance, args.Error(2)
}
