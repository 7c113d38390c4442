package repositories

// RepositoryProvider bundles every repository facade for service wiring.
type RepositoryProvider struct {
	PaymentRepo        PaymentRepositoryFacade
	TransferRepo       TransferRepositoryFacade
	ReconciliationRepo ReconciliationRepository
	SaleRepo           SaleRepositoryFacade
	CashPeriodRepo     CashPeriodRepositoryFacade
	SellerRepo         SellerRepositoryFacade
	ProductRepo        ProductRepositoryFacade
	ReportingRepo      ReportingRepository
}
