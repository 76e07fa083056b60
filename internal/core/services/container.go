package services

import (
	portsrepo "github.com/nusantara-construction/ledger-backend/internal/core/ports/repositories"
	portssvc "github.com/nusantara-construction/ledger-backend/internal/core/ports/services"
)

// NewServiceContainer creates the service container with properly initialized
// dependencies. The reporting service composes the account service for cash
// balances rather than reading accounts directly.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, journalOpts ...JournalServiceOption) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)
	container.Journal = NewJournalService(repos.JournalRepo, repos.AccountRepo, journalOpts...)
	container.Reporting = NewReportingService(repos.ReportingRepo, container.Account)
	container.Trends = NewTrendService(repos.ReportingRepo)

	return container
}
