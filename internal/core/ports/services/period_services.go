package services

import (
	"context"

	"github.com/retailos/accounting_service/internal/core/domain"
	"github.com/retailos/accounting_service/internal/dto"
)

// PeriodSvcFacade defines operations on accounting periods.
type PeriodSvcFacade interface {
	CreatePeriod(ctx context.Context, req dto.CreateAccountingPeriodRequest, creatorUserID string) (*domain.AccountingPeriod, error)
	ListPeriods(ctx context.Context, companyID string) ([]domain.AccountingPeriod, error)
	UpdatePeriod(ctx context.Context, periodID string, req dto.UpdateAccountingPeriodRequest, updaterUserID string) (*domain.AccountingPeriod, error)
	ClosePeriod(ctx context.Context, periodID string, updaterUserID string) (*domain.AccountingPeriod, error)
	ReopenPeriod(ctx context.Context, periodID string, updaterUserID string) (*domain.AccountingPeriod, error)
}
