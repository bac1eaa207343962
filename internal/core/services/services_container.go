package services

import (
	portsrepo "github.com/tallybook/tallybook/internal/core/ports/repositories"
	portssvc "github.com/tallybook/tallybook/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Company = NewCompanyService(repos.CompanyRepo, repos.AccountRepo, repos.SettingsRepo)
	container.Account = NewAccountService(repos.AccountRepo)
	container.Ledger = NewLedgerService(repos.AccountRepo, repos.EntryRepo)
	container.Posting = NewPostingService(repos.EntryRepo, repos.AccountRepo)
	container.Report = NewReportService(repos.CompanyRepo, repos.AccountRepo, repos.EntryRepo)

	return container
}
