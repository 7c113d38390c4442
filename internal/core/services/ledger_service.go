package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tillpoint/tillpoint_backend/internal/core/domain"
	portsrepo "github.com/tillpoint/tillpoint_backend/internal/core/ports/repositories"
	portssvc "github.com/tillpoint/tillpoint_backend/internal/core/ports/services"
)

// ledgerService recomputes balances from ground truth rows. The folds below
// are pure functions over complete row sets: they never read cached columns
// and never mutate their inputs, so the same rows always produce the same
// balance regardless of arrival order.
type ledgerService struct {
	BaseService
	paymentRepo portsrepo.PaymentReader
	saleRepo    portsrepo.SaleReader
	cashRepo    portsrepo.CashPeriodReader
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(paymentRepo portsrepo.PaymentReader, saleRepo portsrepo.SaleReader, cashRepo portsrepo.CashPeriodReader) portssvc.LedgerSvcFacade {
	return &ledgerService{
		paymentRepo: paymentRepo,
		saleRepo:    saleRepo,
		cashRepo:    cashRepo,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// SaleBalanceFromPayments folds confirmed payments into the sale's payment
// position. Non-confirmed rows are skipped so callers can pass unfiltered
// sets without inflating the paid amount.
func SaleBalanceFromPayments(totalAmount decimal.Decimal, payments []domain.Payment) domain.Balance {
	paid := decimal.Zero
	for _, p := range payments {
		if p.Status != domain.PaymentConfirmed {
			continue
		}
		paid = paid.Add(p.Amount)
	}
	balance := totalAmount.Sub(paid)
	return domain.Balance{
		Paid:    paid,
		Balance: balance,
		IsPaid:  balance.LessThanOrEqual(decimal.Zero),
	}
}

// CashTotalsFromMovements folds the complete movement set of a period into
// its totals. Movement amounts are stored unsigned; the movement type alone
// decides whether a row adds to income or expense.
func CashTotalsFromMovements(openingBalance decimal.Decimal, movements []domain.CashMovement) domain.CashTotals {
	totals := domain.CashTotals{
		TotalIncome:     decimal.Zero,
		TotalExpense:    decimal.Zero,
		IncomeCash:      decimal.Zero,
		IncomeTransfer:  decimal.Zero,
		ExpenseCash:     decimal.Zero,
		ExpenseTransfer: decimal.Zero,
	}

	for _, m := range movements {
		switch m.Type {
		case domain.MovementSale, domain.MovementIncome:
			totals.TotalIncome = totals.TotalIncome.Add(m.Amount)
			if m.Method != nil {
				switch *m.Method {
				case domain.MethodCash:
					totals.IncomeCash = totals.IncomeCash.Add(m.Amount)
				case domain.MethodTransfer:
					totals.IncomeTransfer = totals.IncomeTransfer.Add(m.Amount)
				}
			}
		case domain.MovementRefund, domain.MovementExpense:
			totals.TotalExpense = totals.TotalExpense.Add(m.Amount)
			if m.Method != nil {
				switch *m.Method {
				case domain.MethodCash:
					totals.ExpenseCash = totals.ExpenseCash.Add(m.Amount)
				case domain.MethodTransfer:
					totals.ExpenseTransfer = totals.ExpenseTransfer.Add(m.Amount)
				}
			}
		}
	}

	totals.FinalBalance = openingBalance.Add(totals.TotalIncome).Sub(totals.TotalExpense)
	return totals
}

func (s *ledgerService) ComputeSaleBalance(ctx context.Context, tenantID, saleID string) (*domain.Balance, error) {
	sale, err := s.saleRepo.FindSaleByID(ctx, tenantID, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sale for balance computation: %w", err)
	}

	payments, err := s.paymentRepo.FindConfirmedPaymentsBySale(ctx, tenantID, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load confirmed payments for sale %s: %w", saleID, err)
	}

	balance := SaleBalanceFromPayments(sale.TotalAmount, payments)
	return &balance, nil
}

func (s *ledgerService) ComputeCashPeriodTotals(ctx context.Context, periodID string) (*domain.CashTotals, error) {
	period, err := s.cashRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cash period for totals computation: %w", err)
	}

	movements, err := s.cashRepo.FindMovementsByPeriod(ctx, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to load movements for period %s: %w", periodID, err)
	}

	totals := CashTotalsFromMovements(period.OpeningBalance, movements)
	return &totals, nil
}
