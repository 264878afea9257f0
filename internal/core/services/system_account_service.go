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
	"github.com/shopspring/decimal"
)

// SystemAccountService manages purpose-to-account mappings and resolves them
// for the posting automation, provisioning fixed fallback accounts when a
// company has no mapping yet.
type SystemAccountService struct {
	systemAccountRepo portsrepo.SystemAccountRepositoryFacade
	accountRepo       portsrepo.AccountRepositoryFacade
	groupRepo         portsrepo.GroupRepositoryFacade
}

func NewSystemAccountService(
	systemAccountRepo portsrepo.SystemAccountRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	groupRepo portsrepo.GroupRepositoryFacade,
) *SystemAccountService {
	return &SystemAccountService{
		systemAccountRepo: systemAccountRepo,
		accountRepo:       accountRepo,
		groupRepo:         groupRepo,
	}
}

var _ portssvc.SystemAccountSvcFacade = (*SystemAccountService)(nil)

func (s *SystemAccountService) ListMappings(ctx context.Context, companyID string) ([]domain.SystemAccount, error) {
	mappings, err := s.systemAccountRepo.ListByCompany(ctx, companyID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list system accounts", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, err
	}
	return mappings, nil
}

func (s *SystemAccountService) UpsertMapping(ctx context.Context, req dto.UpsertSystemAccountRequest) (*domain.SystemAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	purpose := domain.AccountPurpose(req.Purpose)
	if _, ok := domain.FallbackFor(purpose); !ok {
		return nil, fmt.Errorf("%w: unknown purpose %q", apperrors.ErrValidation, req.Purpose)
	}

	account, err := s.accountRepo.FindAccountByID(ctx, req.AccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account %s not found", apperrors.ErrValidation, req.AccountID)
		}
		return nil, err
	}
	if account.CompanyID != req.CompanyID {
		return nil, fmt.Errorf("%w: account belongs to another company", apperrors.ErrValidation)
	}

	m := domain.SystemAccount{
		SystemAccountID: uuid.NewString(),
		CompanyID:       req.CompanyID,
		Purpose:         purpose,
		AccountID:       req.AccountID,
	}
	if err := s.systemAccountRepo.Upsert(ctx, m); err != nil {
		logger.Error("Failed to upsert system account", slog.String("error", err.Error()), slog.String("purpose", req.Purpose))
		return nil, err
	}

	logger.Info("System account mapped", slog.String("purpose", req.Purpose), slog.String("account_id", req.AccountID))
	return &m, nil
}

func (s *SystemAccountService) DeleteMapping(ctx context.Context, systemAccountID string) error {
	if err := s.systemAccountRepo.Delete(ctx, systemAccountID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to delete system account", slog.String("error", err.Error()), slog.String("system_account_id", systemAccountID))
		}
		return err
	}
	return nil
}

// ResolveAccount returns the mapped account for (company, purpose). When no
// mapping exists, or the mapped account has since been removed, the fixed
// fallback group/account pair for the purpose is provisioned idempotently and
// the mapping is persisted before returning.
func (s *SystemAccountService) ResolveAccount(ctx context.Context, companyID string, purpose domain.AccountPurpose) (*domain.ChartOfAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	m, err := s.systemAccountRepo.FindByPurpose(ctx, companyID, purpose)
	if err == nil {
		account, err := s.accountRepo.FindAccountByID(ctx, m.AccountID)
		if err == nil {
			return account, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		logger.Warn("Mapped system account vanished, re-provisioning", slog.String("purpose", string(purpose)), slog.String("account_id", m.AccountID))
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	fallback, ok := domain.FallbackFor(purpose)
	if !ok {
		return nil, fmt.Errorf("%w: no fallback defined for purpose %q", apperrors.ErrInternal, purpose)
	}

	now := time.Now()
	group, err := s.groupRepo.GetOrCreateGroup(ctx, domain.AccountGroup{
		GroupID:   uuid.NewString(),
		CompanyID: companyID,
		Name:      fallback.GroupName,
		Code:      fallback.GroupCode,
		GroupType: fallback.GroupType,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	})
	if err != nil {
		logger.Error("Failed to provision fallback group", slog.String("error", err.Error()), slog.String("purpose", string(purpose)))
		return nil, err
	}

	account, err := s.accountRepo.GetOrCreateAccount(ctx, domain.ChartOfAccount{
		AccountID:      uuid.NewString(),
		CompanyID:      companyID,
		GroupID:        group.GroupID,
		GroupType:      group.GroupType,
		Name:           fallback.AccountName,
		Code:           fallback.AccountCode,
		OpeningBalance: decimal.Zero,
		CurrentBalance: decimal.Zero,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	})
	if err != nil {
		logger.Error("Failed to provision fallback account", slog.String("error", err.Error()), slog.String("purpose", string(purpose)))
		return nil, err
	}

	if err := s.systemAccountRepo.Upsert(ctx, domain.SystemAccount{
		SystemAccountID: uuid.NewString(),
		CompanyID:       companyID,
		Purpose:         purpose,
		AccountID:       account.AccountID,
	}); err != nil {
		logger.Error("Failed to persist provisioned mapping", slog.String("error", err.Error()), slog.String("purpose", string(purpose)))
		return nil, err
	}

	logger.Info("System account provisioned",
		slog.String("purpose", string(purpose)),
		slog.String("account_id", account.AccountID),
		slog.String("code", account.Code),
	)
	return account, nil
}
