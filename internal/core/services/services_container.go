package services

import (
	portsrepo "github.com/tillpoint/tillpoint_backend/internal/core/ports/repositories"
	portssvc "github.com/tillpoint/tillpoint_backend/internal/core/ports/services"
	"github.com/tillpoint/tillpoint_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Ledger and matching come first since the coordinators depend on them
	container.Ledger = NewLedgerService(repos.PaymentRepo, repos.SaleRepo, repos.CashPeriodRepo)
	container.Matching = NewMatchingService(repos.TransferRepo, repos.PaymentRepo, cfg.Matching)
	container.Reconcile = NewReconcileService(repos.ReconciliationRepo, repos.PaymentRepo, repos.TransferRepo, container.Matching, container.Ledger)

	container.Payment = NewPaymentService(repos.PaymentRepo, repos.SaleRepo)
	container.Transfer = NewTransferService(repos.TransferRepo, container.Matching, container.Reconcile)
	container.CashPeriod = NewCashPeriodService(repos.CashPeriodRepo)
	container.Sale = NewSaleService(repos.SaleRepo, container.Ledger)
	container.Seller = NewSellerService(repos.SellerRepo)
	container.Product = NewProductService(repos.ProductRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.CashPeriodRepo)

	return container
}
