package services

import (
	"context"
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

type PeriodService struct {
	periodRepo portsrepo.PeriodRepositoryFacade
}

func NewPeriodService(periodRepo portsrepo.PeriodRepositoryFacade) *PeriodService {
	return &PeriodService{periodRepo: periodRepo}
}

var _ portssvc.PeriodSvcFacade = (*PeriodService)(nil)

func (s *PeriodService) CreatePeriod(ctx context.Context, req dto.CreateAccountingPeriodRequest, creatorUserID string) (*domain.AccountingPeriod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.EndDate.Before(req.StartDate) {
		return nil, fmt.Errorf("%w: end date precedes start date", apperrors.ErrValidation)
	}

	now := time.Now()
	period := domain.AccountingPeriod{
		PeriodID:  uuid.NewString(),
		CompanyID: req.CompanyID,
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		IsClosed:  false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.periodRepo.SavePeriod(ctx, period); err != nil {
		logger.Error("Failed to save period", slog.String("error", err.Error()), slog.String("period_id", period.PeriodID))
		return nil, err
	}

	logger.Info("Accounting period created", slog.String("period_id", period.PeriodID), slog.String("name", period.Name))
	return &period, nil
}

func (s *PeriodService) ListPeriods(ctx context.Context, companyID string) ([]domain.AccountingPeriod, error) {
	periods, err := s.periodRepo.ListPeriodsByCompany(ctx, companyID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list periods", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, err
	}
	return periods, nil
}

func (s *PeriodService) UpdatePeriod(ctx context.Context, periodID string, req dto.UpdateAccountingPeriodRequest, updaterUserID string) (*domain.AccountingPeriod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		return nil, err
	}
	if period.IsClosed {
		return nil, fmt.Errorf("%w: closed periods cannot be edited, reopen first", apperrors.ErrValidation)
	}

	if req.Name != nil {
		period.Name = *req.Name
	}
	if req.StartDate != nil {
		period.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		period.EndDate = *req.EndDate
	}
	if period.EndDate.Before(period.StartDate) {
		return nil, fmt.Errorf("%w: end date precedes start date", apperrors.ErrValidation)
	}
	period.LastUpdatedAt = time.Now()
	period.LastUpdatedBy = updaterUserID

	if err := s.periodRepo.UpdatePeriod(ctx, *period); err != nil {
		logger.Error("Failed to update period", slog.String("error", err.Error()), slog.String("period_id", periodID))
		return nil, err
	}

	logger.Info("Accounting period updated", slog.String("period_id", periodID))
	return period, nil
}

func (s *PeriodService) ClosePeriod(ctx context.Context, periodID string, updaterUserID string) (*domain.AccountingPeriod, error) {
	return s.setClosed(ctx, periodID, updaterUserID, true)
}

func (s *PeriodService) ReopenPeriod(ctx context.Context, periodID string, updaterUserID string) (*domain.AccountingPeriod, error) {
	return s.setClosed(ctx, periodID, updaterUserID, false)
}

func (s *PeriodService) setClosed(ctx context.Context, periodID, updaterUserID string, closed bool) (*domain.AccountingPeriod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		return nil, err
	}
	if period.IsClosed == closed {
		// Already in the requested state; closing and reopening are idempotent.
		return period, nil
	}

	period.IsClosed = closed
	period.LastUpdatedAt = time.Now()
	period.LastUpdatedBy = updaterUserID

	if err := s.periodRepo.UpdatePeriod(ctx, *period); err != nil {
		logger.Error("Failed to change period state", slog.String("error", err.Error()), slog.String("period_id", periodID))
		return nil, err
	}

	logger.Info("Accounting period state changed", slog.String("period_id", periodID), slog.Bool("closed", closed))
	return period, nil
}
