package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	GroupRepo         GroupRepositoryFacade
	AccountRepo       AccountRepositoryFacade
	JournalRepo       JournalRepositoryFacade
	PeriodRepo        PeriodRepositoryFacade
	SystemAccountRepo SystemAccountRepositoryFacade
	ReportingRepo     ReportingRepository
	TenantResolver    TenantUnitResolver
}
