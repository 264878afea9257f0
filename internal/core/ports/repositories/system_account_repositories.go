package repositories

import (
	"context"

	"github.com/retailos/accounting_service/internal/core/domain"
)

// SystemAccountRepositoryFacade defines operations for purpose-to-account
// mappings.
type SystemAccountRepositoryFacade interface {
	// FindByPurpose retrieves the mapping for (company, purpose), or
	// apperrors.ErrNotFound when none exists.
	FindByPurpose(ctx context.Context, companyID string, purpose domain.AccountPurpose) (*domain.SystemAccount, error)

	// ListByCompany retrieves all mappings of a company.
	ListByCompany(ctx context.Context, companyID string) ([]domain.SystemAccount, error)

	// Upsert replaces any existing mapping for (company, purpose) with the
	// given one.
	Upsert(ctx context.Context, mapping domain.SystemAccount) error

	// Delete removes a mapping by id.
	Delete(ctx context.Context, systemAccountID string) error
}
