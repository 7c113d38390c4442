package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Payment    PaymentSvcFacade
	Transfer   TransferSvcFacade
	Matching   MatchingSvcFacade
	Reconcile  ReconcileSvcFacade
	Ledger     LedgerSvcFacade
	CashPeriod CashPeriodSvcFacade
	Sale       SaleSvcFacade
	Seller     SellerSvcFacade
	Product    ProductSvcFacade
	Reporting  ReportingSvcFacade
}
