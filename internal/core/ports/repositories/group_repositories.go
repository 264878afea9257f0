package repositories

import (
	"context"

	"github.com/retailos/accounting_service/internal/core/domain"
)

// GroupReader defines read operations for account-group data.
type GroupReader interface {
	// FindGroupByID retrieves a specific group by its unique identifier.
	FindGroupByID(ctx context.Context, groupID string) (*domain.AccountGroup, error)

	// ListGroupsByCompany retrieves every group owned by a set of company/unit ids
	// in one query, so report builders can assemble the tree in memory.
	ListGroupsByCompany(ctx context.Context, companyIDs []string) ([]domain.AccountGroup, error)
}

// GroupWriter defines write operations for account-group data.
type GroupWriter interface {
	// SaveGroup persists a new group.
	SaveGroup(ctx context.Context, group domain.AccountGroup) error

	// UpdateGroup updates an existing group's details.
	UpdateGroup(ctx context.Context, group domain.AccountGroup) error

	// DeleteGroup removes a group. Returns apperrors.ErrConflict when accounts
	// or subgroups still reference it.
	DeleteGroup(ctx context.Context, groupID string) error

	// GetOrCreateGroup finds a group by (company, groupType, name) or creates it
	// with the given defaults. Used by the posting automation's account
	// provisioning fallback; safe to retry.
	GetOrCreateGroup(ctx context.Context, group domain.AccountGroup) (*domain.AccountGroup, error)
}

// GroupRepositoryFacade combines all group-related repository interfaces.
type GroupRepositoryFacade interface {
	GroupReader
	GroupWriter
}
