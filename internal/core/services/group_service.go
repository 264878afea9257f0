package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/retailos/accounting_service/internal/apperrors"
	"github.com/retailos/accounting_service/internal/core/domain"
	portsrepo "github.com/retailos/accounting_service/internal/core/ports/repositories"
	portssvc "github.com/retailos/accounting_service/internal/core/ports/services"
	"github.com/retailos/accounting_service/internal/dto"
	"github.com/retailos/accounting_service/internal/middleware"
)

type GroupService struct {
	groupRepo portsrepo.GroupRepositoryFacade
}

func NewGroupService(groupRepo portsrepo.GroupRepositoryFacade) *GroupService {
	return &GroupService{groupRepo: groupRepo}
}

var _ portssvc.GroupSvcFacade = (*GroupService)(nil)

func (s *GroupService) CreateGroup(ctx context.Context, req dto.CreateAccountGroupRequest, creatorUserID string) (*domain.AccountGroup, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	groupType := domain.GroupType(req.GroupType)
	if !groupType.IsValid() {
		return nil, fmt.Errorf("%w: unknown group type %q", apperrors.ErrValidation, req.GroupType)
	}

	if req.ParentGroupID != nil {
		parent, err := s.groupRepo.FindGroupByID(ctx, *req.ParentGroupID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent group %s not found", apperrors.ErrValidation, *req.ParentGroupID)
			}
			return nil, err
		}
		if parent.CompanyID != req.CompanyID {
			return nil, fmt.Errorf("%w: parent group belongs to another company", apperrors.ErrValidation)
		}
		if parent.GroupType != groupType {
			return nil, fmt.Errorf("%w: parent group has type %s, child has %s", apperrors.ErrValidation, parent.GroupType, groupType)
		}
	}

	now := time.Now()
	group := domain.AccountGroup{
		GroupID:       uuid.NewString(),
		CompanyID:     req.CompanyID,
		WingID:        req.WingID,
		Name:          req.Name,
		Code:          req.Code,
		GroupType:     groupType,
		ParentGroupID: req.ParentGroupID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.groupRepo.SaveGroup(ctx, group); err != nil {
		logger.Error("Failed to save account group", slog.String("error", err.Error()), slog.String("group_id", group.GroupID))
		return nil, err
	}

	logger.Info("Account group created", slog.String("group_id", group.GroupID), slog.String("group_type", string(groupType)))
	return &group, nil
}

func (s *GroupService) GetGroupByID(ctx context.Context, groupID string) (*domain.AccountGroup, error) {
	group, err := s.groupRepo.FindGroupByID(ctx, groupID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find group", slog.String("error", err.Error()), slog.String("group_id", groupID))
		}
		return nil, err
	}
	return group, nil
}

func (s *GroupService) ListGroups(ctx context.Context, companyID string) ([]domain.AccountGroup, error) {
	groups, err := s.groupRepo.ListGroupsByCompany(ctx, []string{companyID})
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list groups", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, err
	}
	return groups, nil
}

func (s *GroupService) UpdateGroup(ctx context.Context, groupID string, req dto.UpdateAccountGroupRequest, updaterUserID string) (*domain.AccountGroup, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	group, err := s.groupRepo.FindGroupByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		group.Name = *req.Name
	}
	if req.Code != nil {
		group.Code = *req.Code
	}
	if req.ParentGroupID != nil {
		if *req.ParentGroupID == groupID {
			return nil, fmt.Errorf("%w: group cannot be its own parent", apperrors.ErrValidation)
		}
		parent, err := s.groupRepo.FindGroupByID(ctx, *req.ParentGroupID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent group %s not found", apperrors.ErrValidation, *req.ParentGroupID)
			}
			return nil, err
		}
		if parent.CompanyID != group.CompanyID || parent.GroupType != group.GroupType {
			return nil, fmt.Errorf("%w: parent group must share company and type", apperrors.ErrValidation)
		}
		group.ParentGroupID = req.ParentGroupID
	}
	group.LastUpdatedAt = time.Now()
	group.LastUpdatedBy = updaterUserID

	if err := s.groupRepo.UpdateGroup(ctx, *group); err != nil {
		logger.Error("Failed to update group", slog.String("error", err.Error()), slog.String("group_id", groupID))
		return nil, err
	}

	logger.Info("Account group updated", slog.String("group_id", groupID))
	return group, nil
}

func (s *GroupService) DeleteGroup(ctx context.Context, groupID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.groupRepo.DeleteGroup(ctx, groupID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrConflict) {
			logger.Error("Failed to delete group", slog.String("error", err.Error()), slog.String("group_id", groupID))
		}
		return err
	}

	logger.Info("Account group deleted", slog.String("group_id", groupID))
	return nil
}
