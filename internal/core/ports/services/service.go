package services

// ServiceContainer holds instances of all the application services.
// It is passed to the handler layer so route registration can pick the
// facades it needs.
type ServiceContainer struct {
	Company CompanySvcFacade
	Account AccountSvcFacade
	Ledger  LedgerSvcFacade
	Posting PostingSvcFacade
	Report  ReportSvcFacade
}
