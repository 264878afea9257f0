package services

import (
	"context"

	"github.com/retailos/accounting_service/internal/core/domain"
	"github.com/retailos/accounting_service/internal/dto"
)

// SystemAccountSvcFacade defines operations on purpose-to-account mappings and
// the resolution used by automated posting.
type SystemAccountSvcFacade interface {
	ListMappings(ctx context.Context, companyID string) ([]domain.SystemAccount, error)
	UpsertMapping(ctx context.Context, req dto.UpsertSystemAccountRequest) (*domain.SystemAccount, error)
	DeleteMapping(ctx context.Context, systemAccountID string) error

	// ResolveAccount returns the mapped account for (company, purpose). When no
	// mapping exists it provisions the fixed fallback group/account pair,
	// persists the mapping, and returns the new account.
	ResolveAccount(ctx context.Context, companyID string, purpose domain.AccountPurpose) (*domain.ChartOfAccount, error)
}
