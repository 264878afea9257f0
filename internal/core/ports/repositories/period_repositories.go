package repositories

import (
	"context"
	"time"

	"github.com/retailos/accounting_service/internal/core/domain"
)

// PeriodRepositoryFacade defines operations for accounting period data.
type PeriodRepositoryFacade interface {
	// FindPeriodByID retrieves a period by its unique identifier.
	FindPeriodByID(ctx context.Context, periodID string) (*domain.AccountingPeriod, error)

	// ListPeriodsByCompany retrieves all periods of a company, newest first.
	ListPeriodsByCompany(ctx context.Context, companyID string) ([]domain.AccountingPeriod, error)

	// FindClosedPeriodContaining returns the closed period whose date range
	// contains the given date, or nil when no closed period matches. This is
	// the period-lock probe used on every entry create/amend.
	FindClosedPeriodContaining(ctx context.Context, companyID string, date time.Time) (*domain.AccountingPeriod, error)

	// SavePeriod persists a new period.
	SavePeriod(ctx context.Context, period domain.AccountingPeriod) error

	// UpdatePeriod updates an existing period, including its closed flag.
	UpdatePeriod(ctx context.Context, period domain.AccountingPeriod) error
}
