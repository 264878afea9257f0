package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/retailos/accounting_service/internal/core/domain"
)

// AccountReader defines read operations for chart-of-account data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier,
	// with the owning group's type resolved.
	FindAccountByID(ctx context.Context, accountID string) (*domain.ChartOfAccount, error)

	// FindAccountsByIDs retrieves multiple accounts by their ids.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.ChartOfAccount, error)

	// ListAccountsByCompany retrieves accounts for a set of company/unit ids.
	ListAccountsByCompany(ctx context.Context, companyIDs []string, limit, offset int) ([]domain.ChartOfAccount, error)
}

// AccountWriter defines write operations for chart-of-account data.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.ChartOfAccount) error

	// UpdateAccount updates an existing account's details. The caller decides
	// whether a balance recompute must follow (it must whenever the opening
	// balance changed).
	UpdateAccount(ctx context.Context, account domain.ChartOfAccount) error

	// DeleteAccount removes an account. Returns apperrors.ErrConflict when
	// journal items still reference it.
	DeleteAccount(ctx context.Context, accountID string) error

	// GetOrCreateAccount finds an account by (company, code) or creates it with
	// the given defaults. Safe to retry.
	GetOrCreateAccount(ctx context.Context, account domain.ChartOfAccount) (*domain.ChartOfAccount, error)
}

// BalanceRecalculator is the persistence half of the balance engine: it rebuilds
// current_balance from scratch over all journal items of the given accounts.
// The in-transaction variant is invoked from the journal item-mutation path; the
// standalone variant serves opening-balance edits. Nothing else writes
// current_balance.
type BalanceRecalculator interface {
	// RecalculateBalances recomputes and persists current_balance for the given
	// accounts in its own transaction.
	RecalculateBalances(ctx context.Context, accountIDs []string) error

	// RecalculateBalancesInTx does the same inside the caller's transaction.
	RecalculateBalancesInTx(ctx context.Context, tx pgx.Tx, accountIDs []string) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	BalanceRecalculator
}
