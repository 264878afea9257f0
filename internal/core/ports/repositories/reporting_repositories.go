package repositories

import (
	"context"
	"time"

	"github.com/retailos/accounting_service/internal/core/domain"
)

// ActivityFilter scopes the bulk balance aggregation. CompanyIDs is the
// resolved tenant-unit set; AsOf bounds the cumulative sums, PeriodStart/AsOf
// bound the periodic sums.
type ActivityFilter struct {
	CompanyIDs  []string
	WingID      *string
	AsOf        *time.Time
	PeriodStart *time.Time
}

// ReportingRepository defines the aggregate read path for reports. All methods
// aggregate in the database, grouped by account or month, never per-account.
type ReportingRepository interface {
	// AccountActivity returns cumulative and periodic debit/credit sums per
	// account in two grouped queries.
	AccountActivity(ctx context.Context, filter ActivityFilter) (map[string]domain.AccountActivity, error)

	// TrendByMonth returns income/expense activity bucketed by entry month
	// since the given date.
	TrendByMonth(ctx context.Context, companyIDs []string, wingID *string, since time.Time) ([]domain.MonthlyTrend, error)

	// TopExpenseAccounts returns the n expense accounts with the largest net
	// periodic debit.
	TopExpenseAccounts(ctx context.Context, companyIDs []string, wingID *string, n int) ([]domain.NamedAmount, error)
}
