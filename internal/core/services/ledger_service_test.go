package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tillpoint/tillpoint_backend/internal/core/domain"
	"github.com/tillpoint/tillpoint_backend/internal/core/services"
)

func confirmedPayment(amount string) domain.Payment {
	return domain.Payment{
		PaymentID: uuid.NewString(),
		Amount:    decimal.RequireFromString(amount),
		Status:    domain.PaymentConfirmed,
	}
}

func TestSaleBalanceFromPayments(t *testing.T) {
	total := decimal.RequireFromString("100.00")

	t.Run("partial payment leaves a balance", func(t *testing.T) {
		balance := services.SaleBalanceFromPayments(total, []domain.Payment{confirmedPayment("60.00")})

		assert.True(t, balance.Paid.Equal(decimal.RequireFromString("60.00")), "paid was %s", balance.Paid)
		assert.True(t, balance.Balance.Equal(decimal.RequireFromString("40.00")), "balance was %s", balance.Balance)
		assert.False(t, balance.IsPaid)
	})

	t.Run("full payment marks the sale paid", func(t *testing.T) {
		payments := []domain.Payment{confirmedPayment("60.00"), confirmedPayment("40.00")}
		balance := services.SaleBalanceFromPayments(total, payments)

		assert.True(t, balance.Paid.Equal(total))
		assert.True(t, balance.Balance.IsZero())
		assert.True(t, balance.IsPaid)
	})

	t.Run("pending payments never count", func(t *testing.T) {
		pending := confirmedPayment("40.00")
		pending.Status = domain.PaymentPending
		payments := []domain.Payment{confirmedPayment("60.00"), pending}

		balance := services.SaleBalanceFromPayments(total, payments)

		assert.True(t, balance.Paid.Equal(decimal.RequireFromString("60.00")))
		assert.False(t, balance.IsPaid)
	})

	t.Run("overpayment still reads as paid", func(t *testing.T) {
		balance := services.SaleBalanceFromPayments(total, []domain.Payment{confirmedPayment("120.00")})

		assert.True(t, balance.Balance.Equal(decimal.RequireFromString("-20.00")))
		assert.True(t, balance.IsPaid)
	})

	t.Run("fold is order independent", func(t *testing.T) {
		a := confirmedPayment("12.34")
		b := confirmedPayment("7.66")
		c := confirmedPayment("55.00")

		forward := services.SaleBalanceFromPayments(total, []domain.Payment{a, b, c})
		backward := services.SaleBalanceFromPayments(total, []domain.Payment{c, b, a})

		assert.True(t, forward.Paid.Equal(backward.Paid))
		assert.True(t, forward.Balance.Equal(backward.Balance))
	})

	t.Run("recomputation is idempotent", func(t *testing.T) {
		payments := []domain.Payment{confirmedPayment("60.00"), confirmedPayment("40.00")}

		first := services.SaleBalanceFromPayments(total, payments)
		second := services.SaleBalanceFromPayments(total, payments)

		assert.True(t, first.Paid.Equal(second.Paid))
		assert.True(t, first.Balance.Equal(second.Balance))
		assert.Equal(t, first.IsPaid, second.IsPaid)
	})

	t.Run("no payments means full balance", func(t *testing.T) {
		balance := services.SaleBalanceFromPayments(total, nil)

		assert.True(t, balance.Paid.IsZero())
		assert.True(t, balance.Balance.Equal(total))
		assert.False(t, balance.IsPaid)
	})
}

func movement(mt domain.MovementType, method *domain.PaymentMethod, amount string) domain.CashMovement {
	return domain.CashMovement{
		MovementID: uuid.NewString(),
		Type:       mt,
		Method:     method,
		Amount:     decimal.RequireFromString(amount),
		CreatedAt:  time.Now(),
	}
}

func methodPtr(m domain.PaymentMethod) *domain.PaymentMethod {
	return &m
}

func TestCashTotalsFromMovements(t *testing.T) {
	opening := decimal.RequireFromString("100.00")

	t.Run("income and expense fold into the final balance", func(t *testing.T) {
		movements := []domain.CashMovement{
			movement(domain.MovementSale, methodPtr(domain.MethodCash), "200.00"),
			movement(domain.MovementSale, methodPtr(domain.MethodTransfer), "300.00"),
			movement(domain.MovementExpense, methodPtr(domain.MethodCash), "50.00"),
			movement(domain.MovementRefund, methodPtr(domain.MethodCash), "25.00"),
			movement(domain.MovementIncome, nil, "10.00"),
		}

		totals := services.CashTotalsFromMovements(opening, movements)

		assert.True(t, totals.TotalIncome.Equal(decimal.RequireFromString("510.00")), "income was %s", totals.TotalIncome)
		assert.True(t, totals.TotalExpense.Equal(decimal.RequireFromString("75.00")), "expense was %s", totals.TotalExpense)
		assert.True(t, totals.FinalBalance.Equal(decimal.RequireFromString("535.00")), "final was %s", totals.FinalBalance)
		assert.True(t, totals.IncomeCash.Equal(decimal.RequireFromString("200.00")))
		assert.True(t, totals.IncomeTransfer.Equal(decimal.RequireFromString("300.00")))
		assert.True(t, totals.ExpenseCash.Equal(decimal.RequireFromString("75.00")))
		assert.True(t, totals.ExpenseTransfer.IsZero())
	})

	t.Run("no movements leaves the opening balance", func(t *testing.T) {
		totals := services.CashTotalsFromMovements(opening, nil)

		assert.True(t, totals.TotalIncome.IsZero())
		assert.True(t, totals.TotalExpense.IsZero())
		assert.True(t, totals.FinalBalance.Equal(opening))
	})

	t.Run("fold is order independent", func(t *testing.T) {
		movements := []domain.CashMovement{
			movement(domain.MovementSale, methodPtr(domain.MethodCash), "200.00"),
			movement(domain.MovementExpense, methodPtr(domain.MethodCash), "50.00"),
			movement(domain.MovementRefund, nil, "30.00"),
		}
		reversed := []domain.CashMovement{movements[2], movements[1], movements[0]}

		forward := services.CashTotalsFromMovements(opening, movements)
		backward := services.CashTotalsFromMovements(opening, reversed)

		assert.True(t, forward.FinalBalance.Equal(backward.FinalBalance))
		assert.True(t, forward.TotalIncome.Equal(backward.TotalIncome))
		assert.True(t, forward.TotalExpense.Equal(backward.TotalExpense))
	})
}

func TestLedgerService_ComputeSaleBalance(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.NewString()
	saleID := uuid.NewString()

	paymentRepo := new(MockPaymentRepository)
	saleRepo := new(MockSaleRepository)
	cashRepo := new(MockCashPeriodRepository)
	svc := services.NewLedgerService(paymentRepo, saleRepo, cashRepo)

	sale := &domain.Sale{
		SaleID:      saleID,
		TenantID:    tenantID,
		TotalAmount: decimal.RequireFromString("100.00"),
		// Stale cache on purpose: the fold must not read these.
		PaidAmount:    decimal.RequireFromString("999.00"),
		BalanceAmount: decimal.RequireFromString("-899.00"),
	}
	saleRepo.On("FindSaleByID", ctx, tenantID, saleID).Return(sale, nil).Once()
	paymentRepo.On("FindConfirmedPaymentsBySale", ctx, tenantID, saleID).
		Return([]domain.Payment{confirmedPayment("60.00")}, nil).Once()

	balance, err := svc.ComputeSaleBalance(ctx, tenantID, saleID)

	require.NoError(t, err)
	assert.True(t, balance.Paid.Equal(decimal.RequireFromString("60.00")))
	assert.True(t, balance.Balance.Equal(decimal.RequireFromString("40.00")))
	assert.False(t, balance.IsPaid)
	saleRepo.AssertExpectations(t)
	paymentRepo.AssertExpectations(t)
}

func TestLedgerService_ComputeCashPeriodTotals(t *testing.T) {
	ctx := context.Background()
	periodID := uuid.NewString()

	paymentRepo := new(MockPaymentRepository)
	saleRepo := new(MockSaleRepository)
	cashRepo := new(MockCashPeriodRepository)
	svc := services.NewLedgerService(paymentRepo, saleRepo, cashRepo)

	period := &domain.CashPeriod{
		PeriodID:       periodID,
		OpeningBalance: decimal.RequireFromString("100.00"),
		Status:         domain.PeriodOpen,
	}
	cashRepo.On("FindPeriodByID", ctx, periodID).Return(period, nil).Once()
	cashRepo.On("FindMovementsByPeriod", ctx, periodID).Return([]domain.CashMovement{
		movement(domain.MovementSale, methodPtr(domain.MethodCash), "450.00"),
		movement(domain.MovementExpense, methodPtr(domain.MethodCash), "50.00"),
	}, nil).Once()

	totals, err := svc.ComputeCashPeriodTotals(ctx, periodID)

	require.NoError(t, err)
	assert.True(t, totals.FinalBalance.Equal(decimal.RequireFromString("500.00")))
	cashRepo.AssertExpectations(t)
}
