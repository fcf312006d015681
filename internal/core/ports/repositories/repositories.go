package repositories

// RepositoryProvider bundles every repository the service layer needs.
type RepositoryProvider struct {
	InvoiceRepo     InvoiceRepositoryWithTx
	FirmRepo        FirmRepositoryFacade
	ClientRepo      ClientRepositoryFacade
	RevenueBookRepo RevenueBookRepositoryFacade
	ReportingRepo   ReportingRepositoryFacade
}
