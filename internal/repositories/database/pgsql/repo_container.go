package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/retailos/accounting_service/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all pgsql repositories over one pool. The tenant
// resolver is injected because it talks to the company registry, not the
// database.
func NewRepositoryProvider(dbPool *pgxpool.Pool, tenantResolver portsrepo.TenantUnitResolver) portsrepo.RepositoryProvider {
	groupRepo := newPgxGroupRepository(dbPool)
	accountRepo := newPgxAccountRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool, accountRepo)
	periodRepo := newPgxPeriodRepository(dbPool)
	systemAccountRepo := newPgxSystemAccountRepository(dbPool)
	reportingRepo := newPgxReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		GroupRepo:         groupRepo,
		AccountRepo:       accountRepo,
		JournalRepo:       journalRepo,
		PeriodRepo:        periodRepo,
		SystemAccountRepo: systemAccountRepo,
		ReportingRepo:     reportingRepo,
		TenantResolver:    tenantResolver,
	}
}
