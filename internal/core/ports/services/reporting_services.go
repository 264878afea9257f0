package services

import (
	"context"
	"time"

	"github.com/retailos/accounting_service/internal/core/domain"
)

// ReportingSvcFacade builds financial statements by combining bulk account
// activity with a recursive walk of the group tree. CompanyID is mandatory on
// every method; wingID narrows to one branch (excluding opening balances).
type ReportingSvcFacade interface {
	BalanceSheet(ctx context.Context, companyID string, wingID *string, asOf time.Time) (*domain.BalanceSheetReport, error)
	ProfitLoss(ctx context.Context, companyID string, wingID *string, start, end *time.Time) (*domain.ProfitLossReport, error)
	TrialBalance(ctx context.Context, companyID string, wingID *string, asOf time.Time) (*domain.TrialBalanceReport, error)
	Dashboard(ctx context.Context, companyID string, wingID *string) (*domain.DashboardReport, error)
}
