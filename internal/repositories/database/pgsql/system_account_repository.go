package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/retailos/accounting_service/internal/apperrors"
	"github.com/retailos/accounting_service/internal/core/domain"
	portsrepo "github.com/retailos/accounting_service/internal/core/ports/repositories"
	"github.com/retailos/accounting_service/internal/models"
	"github.com/retailos/accounting_service/internal/utils/mapping"
)

type PgxSystemAccountRepository struct {
	BaseRepository
}

// newPgxSystemAccountRepository creates a new repository for purpose-to-account
// mappings.
func newPgxSystemAccountRepository(pool *pgxpool.Pool) portsrepo.SystemAccountRepositoryFacade {
	return &PgxSystemAccountRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.SystemAccountRepositoryFacade = (*PgxSystemAccountRepository)(nil)

// FindByPurpose retrieves the mapping for (company, purpose).
func (r *PgxSystemAccountRepository) FindByPurpose(ctx context.Context, companyID string, purpose domain.AccountPurpose) (*domain.SystemAccount, error) {
	query := `
		SELECT system_account_id, company_id, purpose, account_id
		FROM system_accounts
		WHERE company_id = $1 AND purpose = $2;
	`
	var m models.SystemAccount
	err := r.Pool.QueryRow(ctx, query, companyID, string(purpose)).Scan(
		&m.SystemAccountID, &m.CompanyID, &m.Purpose, &m.AccountID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find system account for purpose %s, company %s: %w", purpose, companyID, err)
	}

	d := mapping.ToDomainSystemAccount(m)
	return &d, nil
}

// ListByCompany retrieves all mappings of a company.
func (r *PgxSystemAccountRepository) ListByCompany(ctx context.Context, companyID string) ([]domain.SystemAccount, error) {
	query := `
		SELECT system_account_id, company_id, purpose, account_id
		FROM system_accounts
		WHERE company_id = $1
		ORDER BY purpose;
	`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query system accounts for company %s: %w", companyID, err)
	}
	defer rows.Close()

	mappings := []domain.SystemAccount{}
	for rows.Next() {
		var m models.SystemAccount
		if err := rows.Scan(&m.SystemAccountID, &m.CompanyID, &m.Purpose, &m.AccountID); err != nil {
			return nil, fmt.Errorf("failed to scan system account row: %w", err)
		}
		mappings = append(mappings, mapping.ToDomainSystemAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating system account rows: %w", err)
	}
	return mappings, nil
}

// Upsert replaces any existing mapping for (company, purpose) with the given
// one, leaning on the unique constraint.
func (r *PgxSystemAccountRepository) Upsert(ctx context.Context, m domain.SystemAccount) error {
	row := mapping.ToModelSystemAccount(m)

	query := `
		INSERT INTO system_accounts (system_account_id, company_id, purpose, account_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (company_id, purpose) DO UPDATE SET account_id = EXCLUDED.account_id;
	`
	_, err := r.Pool.Exec(ctx, query, row.SystemAccountID, row.CompanyID, row.Purpose, row.AccountID)
	if err != nil {
		if translated := translateConstraintError(err); errors.Is(translated, apperrors.ErrConflict) {
			return fmt.Errorf("%w: account %s does not exist", apperrors.ErrConflict, row.AccountID)
		}
		return fmt.Errorf("failed to upsert system account for purpose %s: %w", row.Purpose, err)
	}
	return nil
}

// Delete removes a mapping by id.
func (r *PgxSystemAccountRepository) Delete(ctx context.Context, systemAccountID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM system_accounts WHERE system_account_id = $1;`, systemAccountID)
	if err != nil {
		return fmt.Errorf("failed to delete system account %s: %w", systemAccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
