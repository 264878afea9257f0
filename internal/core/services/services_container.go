package services

import (
	portsrepo "github.com/retailos/accounting_service/internal/core/ports/repositories"
	portssvc "github.com/retailos/accounting_service/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies. The posting service sits on top of the journal
// and system-account services so automated entries share every validation the
// manual path has.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Group = NewGroupService(repos.GroupRepo)
	container.Account = NewAccountService(repos.AccountRepo, repos.GroupRepo, repos.ReportingRepo)
	container.Journal = NewJournalService(repos.JournalRepo, repos.AccountRepo, repos.PeriodRepo)
	container.Period = NewPeriodService(repos.PeriodRepo)
	container.SystemAccount = NewSystemAccountService(repos.SystemAccountRepo, repos.AccountRepo, repos.GroupRepo)
	container.Posting = NewPostingService(container.Journal, container.SystemAccount, repos.JournalRepo)
	container.Reporting = NewReportingService(repos.GroupRepo, repos.AccountRepo, repos.ReportingRepo, repos.TenantResolver)

	return container
}
