package services

import (
	"context"

	"github.com/retailos/accounting_service/internal/core/domain"
	"github.com/retailos/accounting_service/internal/dto"
)

// AccountSvcFacade defines operations on ledger accounts, including the
// balance engine entry point for opening-balance edits.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, req dto.CreateChartOfAccountRequest, creatorUserID string) (*domain.ChartOfAccount, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.ChartOfAccount, error)

	// ListAccounts returns accounts scoped to params.CompanyID. When a wing is
	// given, CurrentBalance on each returned account is recomputed from that
	// branch's activity only, excluding opening balances.
	ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.ChartOfAccount, error)

	// UpdateAccount applies the changes and recomputes the balance when the
	// opening balance changed.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateChartOfAccountRequest, updaterUserID string) (*domain.ChartOfAccount, error)

	DeleteAccount(ctx context.Context, accountID string) error

	// RecalculateBalance rebuilds current_balance from scratch for one account
	// and returns the refreshed account.
	RecalculateBalance(ctx context.Context, accountID string) (*domain.ChartOfAccount, error)
}
