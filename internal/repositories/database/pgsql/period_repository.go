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
	"github.com/retailos/accounting_service/internal/utils/mapping"
)

type PgxPeriodRepository struct {
	BaseRepository
}

// newPgxPeriodRepository creates a new repository for accounting period data.
func newPgxPeriodRepository(pool *pgxpool.Pool) portsrepo.PeriodRepositoryFacade {
	return &PgxPeriodRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.PeriodRepositoryFacade = (*PgxPeriodRepository)(nil)

const periodColumns = `period_id, company_id, name, start_date, end_date, is_closed, created_at, created_by, last_updated_at, last_updated_by`

func scanPeriod(row pgx.Row) (models.AccountingPeriod, error) {
	var m models.AccountingPeriod
	err := row.Scan(
		&m.PeriodID,
		&m.CompanyID,
		&m.Name,
		&m.StartDate,
		&m.EndDate,
		&m.IsClosed,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindPeriodByID retrieves a period by its ID.
func (r *PgxPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.AccountingPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM accounting_periods WHERE period_id = $1;`

	m, err := scanPeriod(r.Pool.QueryRow(ctx, query, periodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find period by ID %s: %w", periodID, err)
	}

	d := mapping.ToDomainAccountingPeriod(m)
	return &d, nil
}

// ListPeriodsByCompany retrieves all periods of a company, newest first.
func (r *PgxPeriodRepository) ListPeriodsByCompany(ctx context.Context, companyID string) ([]domain.AccountingPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM accounting_periods WHERE company_id = $1 ORDER BY start_date DESC;`

	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query periods for company %s: %w", companyID, err)
	}
	defer rows.Close()

	periods := []domain.AccountingPeriod{}
	for rows.Next() {
		m, err := scanPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan period row: %w", err)
		}
		periods = append(periods, mapping.ToDomainAccountingPeriod(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating period rows: %w", err)
	}
	return periods, nil
}

// FindClosedPeriodContaining returns the closed period whose range contains
// the given date, or nil when no closed period matches.
func (r *PgxPeriodRepository) FindClosedPeriodContaining(ctx context.Context, companyID string, date time.Time) (*domain.AccountingPeriod, error) {
	query := `
		SELECT ` + periodColumns + `
		FROM accounting_periods
		WHERE company_id = $1 AND is_closed = TRUE AND start_date <= $2 AND end_date >= $2
		LIMIT 1;
	`
	m, err := scanPeriod(r.Pool.QueryRow(ctx, query, companyID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to probe closed periods for company %s: %w", companyID, err)
	}

	d := mapping.ToDomainAccountingPeriod(m)
	return &d, nil
}

// SavePeriod persists a new period.
func (r *PgxPeriodRepository) SavePeriod(ctx context.Context, period domain.AccountingPeriod) error {
	m := mapping.ToModelAccountingPeriod(period)

	query := `
		INSERT INTO accounting_periods (` + periodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PeriodID, m.CompanyID, m.Name, m.StartDate, m.EndDate, m.IsClosed,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if translated := translateConstraintError(err); translated != err {
			return fmt.Errorf("%w: period %q", translated, period.Name)
		}
		return fmt.Errorf("failed to save period %s: %w", m.PeriodID, err)
	}
	return nil
}

// UpdatePeriod updates an existing period, including its closed flag.
func (r *PgxPeriodRepository) UpdatePeriod(ctx context.Context, period domain.AccountingPeriod) error {
	m := mapping.ToModelAccountingPeriod(period)

	query := `
		UPDATE accounting_periods
		SET name = $2, start_date = $3, end_date = $4, is_closed = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE period_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.PeriodID, m.Name, m.StartDate, m.EndDate, m.IsClosed,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update period %s: %w", m.PeriodID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
