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
	"github.com/retailos/accounting_service/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

type AccountService struct {
	accountRepo   portsrepo.AccountRepositoryFacade
	groupRepo     portsrepo.GroupRepositoryFacade
	reportingRepo portsrepo.ReportingRepository
}

func NewAccountService(
	accountRepo portsrepo.AccountRepositoryFacade,
	groupRepo portsrepo.GroupRepositoryFacade,
	reportingRepo portsrepo.ReportingRepository,
) *AccountService {
	return &AccountService{
		accountRepo:   accountRepo,
		groupRepo:     groupRepo,
		reportingRepo: reportingRepo,
	}
}

var _ portssvc.AccountSvcFacade = (*AccountService)(nil)

func (s *AccountService) CreateAccount(ctx context.Context, req dto.CreateChartOfAccountRequest, creatorUserID string) (*domain.ChartOfAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	group, err := s.groupRepo.FindGroupByID(ctx, req.GroupID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: group %s not found", apperrors.ErrValidation, req.GroupID)
		}
		return nil, err
	}
	if group.CompanyID != req.CompanyID {
		return nil, fmt.Errorf("%w: group belongs to another company", apperrors.ErrValidation)
	}

	now := time.Now()
	account := domain.ChartOfAccount{
		AccountID:      uuid.NewString(),
		CompanyID:      req.CompanyID,
		WingID:         req.WingID,
		GroupID:        req.GroupID,
		GroupType:      group.GroupType,
		Name:           req.Name,
		Code:           req.Code,
		OpeningBalance: req.OpeningBalance,
		// A fresh account has no items, so its balance is its opening balance.
		CurrentBalance: req.OpeningBalance,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("account_id", account.AccountID))
		return nil, err
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

func (s *AccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.ChartOfAccount, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

// ListAccounts retrieves accounts of a company. When a wing is given, each
// account's CurrentBalance is replaced by that branch's activity only, with
// opening balances excluded, so branch views never mix in company-wide
// starting positions.
func (s *AccountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.ChartOfAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accounts, err := s.accountRepo.ListAccountsByCompany(ctx, []string{params.CompanyID}, params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("error", err.Error()), slog.String("company_id", params.CompanyID))
		return nil, err
	}
	if params.WingID == nil {
		return accounts, nil
	}

	activity, err := s.reportingRepo.AccountActivity(ctx, portsrepo.ActivityFilter{
		CompanyIDs: []string{params.CompanyID},
		WingID:     params.WingID,
	})
	if err != nil {
		logger.Error("Failed to aggregate wing activity", slog.String("error", err.Error()), slog.String("company_id", params.CompanyID))
		return nil, err
	}

	for i := range accounts {
		a := activity[accounts[i].AccountID]
		accounts[i].CurrentBalance = accounting.ComputeCurrentBalance(
			accounts[i].GroupType, decimal.Zero, a.CumulativeDebit, a.CumulativeCredit,
		)
	}
	return accounts, nil
}

func (s *AccountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateChartOfAccountRequest, updaterUserID string) (*domain.ChartOfAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	openingChanged := false
	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.GroupID != nil && *req.GroupID != account.GroupID {
		group, err := s.groupRepo.FindGroupByID(ctx, *req.GroupID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: group %s not found", apperrors.ErrValidation, *req.GroupID)
			}
			return nil, err
		}
		if group.CompanyID != account.CompanyID {
			return nil, fmt.Errorf("%w: group belongs to another company", apperrors.ErrValidation)
		}
		account.GroupID = group.GroupID
		account.GroupType = group.GroupType
		// Moving between group types flips the sign convention, so the cached
		// balance must be rebuilt.
		openingChanged = true
	}
	if req.OpeningBalance != nil && !req.OpeningBalance.Equal(account.OpeningBalance) {
		account.OpeningBalance = *req.OpeningBalance
		openingChanged = true
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = updaterUserID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}

	if openingChanged {
		if err := s.accountRepo.RecalculateBalances(ctx, []string{accountID}); err != nil {
			logger.Error("Failed to recompute balance after update", slog.String("error", err.Error()), slog.String("account_id", accountID))
			return nil, err
		}
		account, err = s.accountRepo.FindAccountByID(ctx, accountID)
		if err != nil {
			return nil, err
		}
	}

	logger.Info("Account updated", slog.String("account_id", accountID))
	return account, nil
}

func (s *AccountService) DeleteAccount(ctx context.Context, accountID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrConflict) {
			logger.Error("Failed to delete account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return err
	}

	logger.Info("Account deleted", slog.String("account_id", accountID))
	return nil
}

// RecalculateBalance rebuilds current_balance from scratch for one account and
// returns the refreshed account.
func (s *AccountService) RecalculateBalance(ctx context.Context, accountID string) (*domain.ChartOfAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}
	if err := s.accountRepo.RecalculateBalances(ctx, []string{accountID}); err != nil {
		logger.Error("Failed to recompute balance", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}
	return s.accountRepo.FindAccountByID(ctx, accountID)
}
