package services

import (
	"context"

	"github.com/retailos/accounting_service/internal/core/domain"
	"github.com/retailos/accounting_service/internal/dto"
)

// GroupSvcFacade defines operations on the hierarchical chart-of-accounts
// grouping.
type GroupSvcFacade interface {
	CreateGroup(ctx context.Context, req dto.CreateAccountGroupRequest, creatorUserID string) (*domain.AccountGroup, error)
	GetGroupByID(ctx context.Context, groupID string) (*domain.AccountGroup, error)
	ListGroups(ctx context.Context, companyID string) ([]domain.AccountGroup, error)
	UpdateGroup(ctx context.Context, groupID string, req dto.UpdateAccountGroupRequest, updaterUserID string) (*domain.AccountGroup, error)
	DeleteGroup(ctx context.Context, groupID string) error
}
