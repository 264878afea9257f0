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

type PgxGroupRepository struct {
	BaseRepository
}

// newPgxGroupRepository creates a new repository for account-group data.
func newPgxGroupRepository(pool *pgxpool.Pool) portsrepo.GroupRepositoryFacade {
	return &PgxGroupRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.GroupRepositoryFacade = (*PgxGroupRepository)(nil)

const groupColumns = `group_id, company_id, wing_id, name, code, group_type, parent_group_id, created_at, created_by, last_updated_at, last_updated_by`

func scanGroup(row pgx.Row) (models.AccountGroup, error) {
	var m models.AccountGroup
	err := row.Scan(
		&m.GroupID,
		&m.CompanyID,
		&m.WingID,
		&m.Name,
		&m.Code,
		&m.GroupType,
		&m.ParentGroupID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindGroupByID retrieves a group by its ID.
func (r *PgxGroupRepository) FindGroupByID(ctx context.Context, groupID string) (*domain.AccountGroup, error) {
	query := `SELECT ` + groupColumns + ` FROM account_groups WHERE group_id = $1;`

	m, err := scanGroup(r.Pool.QueryRow(ctx, query, groupID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find group by ID %s: %w", groupID, err)
	}

	d := mapping.ToDomainAccountGroup(m)
	return &d, nil
}

// ListGroupsByCompany retrieves every group owned by the given company/unit ids.
func (r *PgxGroupRepository) ListGroupsByCompany(ctx context.Context, companyIDs []string) ([]domain.AccountGroup, error) {
	if len(companyIDs) == 0 {
		return []domain.AccountGroup{}, nil
	}

	query := `SELECT ` + groupColumns + ` FROM account_groups WHERE company_id = ANY($1) ORDER BY code, name;`

	rows, err := r.Pool.Query(ctx, query, companyIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query groups for companies: %w", err)
	}
	defer rows.Close()

	groups := []domain.AccountGroup{}
	for rows.Next() {
		m, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan group row: %w", err)
		}
		groups = append(groups, mapping.ToDomainAccountGroup(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating group rows: %w", err)
	}
	return groups, nil
}

// SaveGroup inserts a new group.
func (r *PgxGroupRepository) SaveGroup(ctx context.Context, group domain.AccountGroup) error {
	m := mapping.ToModelAccountGroup(group)

	query := `
		INSERT INTO account_groups (` + groupColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.GroupID, m.CompanyID, m.WingID, m.Name, m.Code, m.GroupType, m.ParentGroupID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if translated := translateConstraintError(err); translated != err {
			return fmt.Errorf("%w: group %q", translated, group.Name)
		}
		return fmt.Errorf("failed to save group %s: %w", m.GroupID, err)
	}
	return nil
}

// UpdateGroup updates an existing group's details.
func (r *PgxGroupRepository) UpdateGroup(ctx context.Context, group domain.AccountGroup) error {
	m := mapping.ToModelAccountGroup(group)

	query := `
		UPDATE account_groups
		SET name = $2, code = $3, group_type = $4, parent_group_id = $5, wing_id = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE group_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.GroupID, m.Name, m.Code, m.GroupType, m.ParentGroupID, m.WingID,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if translated := translateConstraintError(err); translated != err {
			return fmt.Errorf("%w: group %q", translated, group.Name)
		}
		return fmt.Errorf("failed to update group %s: %w", m.GroupID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteGroup removes a group. Accounts or subgroups still referencing it turn
// the FK violation into apperrors.ErrConflict.
func (r *PgxGroupRepository) DeleteGroup(ctx context.Context, groupID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM account_groups WHERE group_id = $1;`, groupID)
	if err != nil {
		if translated := translateConstraintError(err); errors.Is(translated, apperrors.ErrConflict) {
			return fmt.Errorf("%w: group has accounts or subgroups attached", apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to delete group %s: %w", groupID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// GetOrCreateGroup finds a group by (company, groupType, name) or inserts the
// given defaults. A concurrent insert losing the race falls through to the
// existing row, so retries are safe.
func (r *PgxGroupRepository) GetOrCreateGroup(ctx context.Context, group domain.AccountGroup) (*domain.AccountGroup, error) {
	findQuery := `
		SELECT ` + groupColumns + `
		FROM account_groups
		WHERE company_id = $1 AND group_type = $2 AND name = $3
		LIMIT 1;
	`
	m, err := scanGroup(r.Pool.QueryRow(ctx, findQuery, group.CompanyID, string(group.GroupType), group.Name))
	if err == nil {
		d := mapping.ToDomainAccountGroup(m)
		return &d, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to look up group %q for company %s: %w", group.Name, group.CompanyID, err)
	}

	if err := r.SaveGroup(ctx, group); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			m, err = scanGroup(r.Pool.QueryRow(ctx, findQuery, group.CompanyID, string(group.GroupType), group.Name))
			if err != nil {
				return nil, fmt.Errorf("failed to re-fetch group %q after insert race: %w", group.Name, err)
			}
			d := mapping.ToDomainAccountGroup(m)
			return &d, nil
		}
		return nil, err
	}
	created := group
	return &created, nil
}
