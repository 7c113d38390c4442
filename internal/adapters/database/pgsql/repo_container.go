package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/tillpoint/tillpoint_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	paymentRepo := newPgxPaymentRepository(dbPool)
	transferRepo := newPgxTransferRepository(dbPool)
	reconciliationRepo := newPgxReconciliationRepository(dbPool)
	saleRepo := newPgxSaleRepository(dbPool)
	cashPeriodRepo := newPgxCashPeriodRepository(dbPool)
	sellerRepo := newPgxSellerRepository(dbPool)
	productRepo := newPgxProductRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		PaymentRepo:        paymentRepo,
		TransferRepo:       transferRepo,
		ReconciliationRepo: reconciliationRepo,
		SaleRepo:           saleRepo,
		CashPeriodRepo:     cashPeriodRepo,
		SellerRepo:         sellerRepo,
		ProductRepo:        productRepo,
		ReportingRepo:      reportingRepo,
	}
}
