package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/retailos/accounting_service/internal/apperrors"
	"github.com/retailos/accounting_service/internal/core/domain"
	portsrepo "github.com/retailos/accounting_service/internal/core/ports/repositories"
	"github.com/retailos/accounting_service/internal/models"
	"github.com/retailos/accounting_service/internal/utils/accounting"
	"github.com/retailos/accounting_service/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for chart-of-account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// accountColumns always joins the owning group so reads carry the group type.
const accountColumns = `a.account_id, a.company_id, a.wing_id, a.group_id, g.group_type, a.name, a.code,
	a.opening_balance, a.current_balance, a.is_active,
	a.created_at, a.created_by, a.last_updated_at, a.last_updated_by`

const accountFrom = ` FROM accounts a JOIN account_groups g ON g.group_id = a.group_id`

func scanAccount(row pgx.Row) (models.ChartOfAccount, error) {
	var m models.ChartOfAccount
	err := row.Scan(
		&m.AccountID,
		&m.CompanyID,
		&m.WingID,
		&m.GroupID,
		&m.GroupType,
		&m.Name,
		&m.Code,
		&m.OpeningBalance,
		&m.CurrentBalance,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindAccountByID retrieves an account by its ID, with the group type resolved.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.ChartOfAccount, error) {
	query := `SELECT ` + accountColumns + accountFrom + ` WHERE a.account_id = $1;`

	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}

	d := mapping.ToDomainChartOfAccount(m)
	return &d, nil
}

// FindAccountsByIDs retrieves multiple accounts by their ids. Missing ids are
// simply absent from the map; the caller decides whether that is an error.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.ChartOfAccount, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.ChartOfAccount{}, nil
	}

	query := `SELECT ` + accountColumns + accountFrom + ` WHERE a.account_id = ANY($1);`

	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs: %w", err)
	}
	defer rows.Close()

	accountsMap := make(map[string]domain.ChartOfAccount)
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row during batch fetch: %w", err)
		}
		accountsMap[m.AccountID] = mapping.ToDomainChartOfAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows during batch fetch: %w", err)
	}
	return accountsMap, nil
}

// ListAccountsByCompany retrieves accounts for a set of company/unit ids,
// ordered by code.
func (r *PgxAccountRepository) ListAccountsByCompany(ctx context.Context, companyIDs []string, limit, offset int) ([]domain.ChartOfAccount, error) {
	if len(companyIDs) == 0 {
		return []domain.ChartOfAccount{}, nil
	}
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + accountColumns + accountFrom + `
		WHERE a.company_id = ANY($1)
		ORDER BY a.code, a.name
		LIMIT $2 OFFSET $3;`

	rows, err := r.Pool.Query(ctx, query, companyIDs, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for companies: %w", err)
	}
	defer rows.Close()

	accounts := []domain.ChartOfAccount{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, mapping.ToDomainChartOfAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.ChartOfAccount) error {
	m := mapping.ToModelChartOfAccount(account)

	query := `
		INSERT INTO accounts (account_id, company_id, wing_id, group_id, name, code, opening_balance, current_balance, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID, m.CompanyID, m.WingID, m.GroupID, m.Name, m.Code,
		m.OpeningBalance, m.CurrentBalance, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if translated := translateConstraintError(err); errors.Is(translated, apperrors.ErrDuplicate) {
			return fmt.Errorf("%w: account code %q already exists for company %s", apperrors.ErrDuplicate, account.Code, account.CompanyID)
		} else if errors.Is(translated, apperrors.ErrConflict) {
			return fmt.Errorf("%w: group %s does not exist", apperrors.ErrConflict, account.GroupID)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}
	return nil
}

// UpdateAccount updates an existing account's details.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.ChartOfAccount) error {
	m := mapping.ToModelChartOfAccount(account)

	query := `
		UPDATE accounts
		SET group_id = $2, name = $3, code = $4, opening_balance = $5, is_active = $6, wing_id = $7,
		    last_updated_at = $8, last_updated_by = $9
		WHERE account_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.AccountID, m.GroupID, m.Name, m.Code, m.OpeningBalance, m.IsActive, m.WingID,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if translated := translateConstraintError(err); translated != err {
			return fmt.Errorf("%w: account %q", translated, account.Name)
		}
		return fmt.Errorf("failed to update account %s: %w", m.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteAccount removes an account. Journal items still referencing it turn
// the FK violation into apperrors.ErrConflict.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM accounts WHERE account_id = $1;`, accountID)
	if err != nil {
		if translated := translateConstraintError(err); errors.Is(translated, apperrors.ErrConflict) {
			return fmt.Errorf("%w: account has associated journal items", apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to delete account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// GetOrCreateAccount finds an account by (company, code) or inserts the given
// defaults. A concurrent insert losing the race falls through to the existing
// row, so retries are safe.
func (r *PgxAccountRepository) GetOrCreateAccount(ctx context.Context, account domain.ChartOfAccount) (*domain.ChartOfAccount, error) {
	findQuery := `SELECT ` + accountColumns + accountFrom + ` WHERE a.company_id = $1 AND a.code = $2 LIMIT 1;`

	m, err := scanAccount(r.Pool.QueryRow(ctx, findQuery, account.CompanyID, account.Code))
	if err == nil {
		d := mapping.ToDomainChartOfAccount(m)
		return &d, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to look up account code %q for company %s: %w", account.Code, account.CompanyID, err)
	}

	if err := r.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			m, err = scanAccount(r.Pool.QueryRow(ctx, findQuery, account.CompanyID, account.Code))
			if err != nil {
				return nil, fmt.Errorf("failed to re-fetch account code %q after insert race: %w", account.Code, err)
			}
			d := mapping.ToDomainChartOfAccount(m)
			return &d, nil
		}
		return nil, err
	}
	created := account
	return &created, nil
}

// RecalculateBalances recomputes and persists current_balance for the given
// accounts in its own transaction.
func (r *PgxAccountRepository) RecalculateBalances(ctx context.Context, accountIDs []string) error {
	if len(accountIDs) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.RecalculateBalancesInTx(ctx, tx, accountIDs); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// RecalculateBalancesInTx rebuilds current_balance from scratch over all
// journal items of the given accounts, inside the caller's transaction. The
// account rows are locked first so concurrent postings touching the same
// account serialize on the recompute.
func (r *PgxAccountRepository) RecalculateBalancesInTx(ctx context.Context, tx pgx.Tx, accountIDs []string) error {
	if len(accountIDs) == 0 {
		return nil
	}

	lockQuery := `
		SELECT a.account_id, a.opening_balance, g.group_type
		FROM accounts a
		JOIN account_groups g ON g.group_id = a.group_id
		WHERE a.account_id = ANY($1)
		FOR UPDATE OF a;
	`
	rows, err := tx.Query(ctx, lockQuery, accountIDs)
	if err != nil {
		return fmt.Errorf("failed to lock accounts for balance recompute: %w", err)
	}

	type accountBasis struct {
		opening   decimal.Decimal
		groupType domain.GroupType
	}
	bases := make(map[string]accountBasis, len(accountIDs))
	for rows.Next() {
		var id string
		var b accountBasis
		if err := rows.Scan(&id, &b.opening, &b.groupType); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan account basis row: %w", err)
		}
		bases[id] = b
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating account basis rows: %w", err)
	}
	for _, id := range accountIDs {
		if _, ok := bases[id]; !ok {
			return fmt.Errorf("%w: account %s missing or group unresolved during balance recompute", apperrors.ErrInternal, id)
		}
	}

	sumQuery := `
		SELECT account_id, COALESCE(SUM(debit), 0), COALESCE(SUM(credit), 0)
		FROM journal_items
		WHERE account_id = ANY($1)
		GROUP BY account_id;
	`
	sumRows, err := tx.Query(ctx, sumQuery, accountIDs)
	if err != nil {
		return fmt.Errorf("failed to sum journal items for balance recompute: %w", err)
	}

	type activity struct {
		debits  decimal.Decimal
		credits decimal.Decimal
	}
	sums := make(map[string]activity, len(accountIDs))
	for sumRows.Next() {
		var id string
		var a activity
		if err := sumRows.Scan(&id, &a.debits, &a.credits); err != nil {
			sumRows.Close()
			return fmt.Errorf("failed to scan item sum row: %w", err)
		}
		sums[id] = a
	}
	sumRows.Close()
	if err := sumRows.Err(); err != nil {
		return fmt.Errorf("error iterating item sum rows: %w", err)
	}

	now := time.Now()
	batch := &pgx.Batch{}
	for _, id := range accountIDs {
		basis := bases[id]
		sum := sums[id] // zero activity when the account has no items
		balance := accounting.ComputeCurrentBalance(basis.groupType, basis.opening, sum.debits, sum.credits)
		batch.Queue(
			`UPDATE accounts SET current_balance = $2, last_updated_at = $3 WHERE account_id = $1;`,
			id, balance, now,
		)
	}

	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for range accountIDs {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to write recomputed balance: %w", err)
		}
	}
	return nil
}
