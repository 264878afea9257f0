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
)

// JournalService is the journal engine. Every entry it posts is balanced,
// dated outside closed periods, and written atomically together with the
// balance recompute of the touched accounts.
type JournalService struct {
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	periodRepo  portsrepo.PeriodRepositoryFacade
}

func NewJournalService(
	journalRepo portsrepo.JournalRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	periodRepo portsrepo.PeriodRepositoryFacade,
) *JournalService {
	return &JournalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		periodRepo:  periodRepo,
	}
}

var _ portssvc.JournalSvcFacade = (*JournalService)(nil)

// checkPeriodOpen rejects dates falling inside a closed accounting period.
func (s *JournalService) checkPeriodOpen(ctx context.Context, companyID string, date time.Time) error {
	period, err := s.periodRepo.FindClosedPeriodContaining(ctx, companyID, date)
	if err != nil {
		return err
	}
	if period != nil {
		return fmt.Errorf("%w: date %s falls in closed period %q", apperrors.ErrValidation, date.Format("2006-01-02"), period.Name)
	}
	return nil
}

// validateItems checks the double-entry invariant and that every referenced
// account exists and belongs to the entry's company. It returns the totals and
// the domain items with ids assigned.
func (s *JournalService) validateItems(ctx context.Context, companyID, entryID string, reqItems []dto.JournalItemRequest) ([]domain.JournalItem, error) {
	items := make([]domain.JournalItem, len(reqItems))
	accountIDs := make([]string, 0, len(reqItems))
	for i, ri := range reqItems {
		items[i] = domain.JournalItem{
			ItemID:      uuid.NewString(),
			EntryID:     entryID,
			AccountID:   ri.AccountID,
			Debit:       ri.Debit,
			Credit:      ri.Credit,
			Description: ri.Description,
		}
		accountIDs = append(accountIDs, ri.AccountID)
	}

	if _, _, err := accounting.ValidateEntryBalance(items); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, err
	}
	for _, id := range accountIDs {
		account, ok := accounts[id]
		if !ok {
			return nil, fmt.Errorf("%w: account %s not found", apperrors.ErrValidation, id)
		}
		if account.CompanyID != companyID {
			return nil, fmt.Errorf("%w: account %s belongs to another company", apperrors.ErrValidation, id)
		}
	}
	return items, nil
}

// CreateEntry validates and posts a new journal entry. Totals are derived from
// the items, never taken from the caller. The source parameter records which
// process produced the entry; automation passes its own source so the entry
// becomes write-once.
func (s *JournalService) CreateEntry(ctx context.Context, req dto.CreateJournalEntryRequest, source domain.EntrySource, creatorUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	voucherType := domain.VoucherType(req.VoucherType)
	if req.VoucherType == "" {
		voucherType = domain.VoucherJournal
	}
	if !voucherType.IsValid() {
		return nil, fmt.Errorf("%w: unknown voucher type %q", apperrors.ErrValidation, req.VoucherType)
	}

	if err := s.checkPeriodOpen(ctx, req.CompanyID, req.Date); err != nil {
		return nil, err
	}

	entryID := uuid.NewString()
	items, err := s.validateItems(ctx, req.CompanyID, entryID, req.Items)
	if err != nil {
		return nil, err
	}
	totalDebit, totalCredit, _ := accounting.ValidateEntryBalance(items)

	wingID := req.WingID
	if wingID != nil && *wingID == "" {
		wingID = nil
	}

	now := time.Now()
	entry := domain.JournalEntry{
		EntryID:     entryID,
		CompanyID:   req.CompanyID,
		WingID:      wingID,
		VoucherType: voucherType,
		Source:      source,
		Date:        req.Date,
		Reference:   req.Reference,
		Description: req.Description,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
		IsPosted:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.journalRepo.SaveEntry(ctx, entry, items); err != nil {
		logger.Error("Failed to post journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, err
	}

	entry.Items = items
	logger.Info("Journal entry posted",
		slog.String("entry_id", entryID),
		slog.String("source", string(source)),
		slog.String("total", totalDebit.String()),
	)
	return &entry, nil
}

func (s *JournalService) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	items, err := s.journalRepo.FindItemsByEntryID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	entry.Items = items
	return entry, nil
}

func (s *JournalService) ListEntries(ctx context.Context, params dto.ListJournalEntriesParams) ([]domain.JournalEntry, error) {
	filter := portsrepo.ListEntriesFilter{
		CompanyID: params.CompanyID,
		WingID:    params.WingID,
		StartDate: params.StartDate,
		EndDate:   params.EndDate,
		Limit:     params.Limit,
		Offset:    params.Offset,
	}
	if params.VoucherType != nil {
		vt := domain.VoucherType(*params.VoucherType)
		if !vt.IsValid() {
			return nil, fmt.Errorf("%w: unknown voucher type %q", apperrors.ErrValidation, *params.VoucherType)
		}
		filter.VoucherType = &vt
	}

	entries, err := s.journalRepo.ListEntries(ctx, filter)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list journal entries", slog.String("error", err.Error()), slog.String("company_id", params.CompanyID))
		return nil, err
	}
	return entries, nil
}

// UpdateEntry amends a manual entry. The item set is replaced wholesale, so
// the amended entry's balances are rebuilt from its new items. Entries from
// automated sources are rejected.
func (s *JournalService) UpdateEntry(ctx context.Context, entryID string, req dto.UpdateJournalEntryRequest, updaterUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if !entry.Source.IsMutable() {
		return nil, fmt.Errorf("%w: entries from source %q cannot be amended", apperrors.ErrForbidden, entry.Source)
	}

	// Both the entry's current date and its new date must be open.
	if err := s.checkPeriodOpen(ctx, entry.CompanyID, entry.Date); err != nil {
		return nil, err
	}
	if req.Date != nil {
		if err := s.checkPeriodOpen(ctx, entry.CompanyID, *req.Date); err != nil {
			return nil, err
		}
		entry.Date = *req.Date
	}

	if req.VoucherType != nil {
		vt := domain.VoucherType(*req.VoucherType)
		if !vt.IsValid() {
			return nil, fmt.Errorf("%w: unknown voucher type %q", apperrors.ErrValidation, *req.VoucherType)
		}
		entry.VoucherType = vt
	}
	if req.Reference != nil {
		entry.Reference = *req.Reference
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}

	items, err := s.validateItems(ctx, entry.CompanyID, entryID, req.Items)
	if err != nil {
		return nil, err
	}
	entry.TotalDebit, entry.TotalCredit, _ = accounting.ValidateEntryBalance(items)
	entry.LastUpdatedAt = time.Now()
	entry.LastUpdatedBy = updaterUserID

	if err := s.journalRepo.ReplaceEntryItems(ctx, *entry, items); err != nil {
		logger.Error("Failed to amend journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, err
	}

	entry.Items = items
	logger.Info("Journal entry amended", slog.String("entry_id", entryID))
	return entry, nil
}

// DeleteEntry removes a manual entry and its items. Entries from automated
// sources are rejected.
func (s *JournalService) DeleteEntry(ctx context.Context, entryID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return err
	}
	if !entry.Source.IsMutable() {
		return fmt.Errorf("%w: entries from source %q cannot be deleted", apperrors.ErrForbidden, entry.Source)
	}
	if err := s.checkPeriodOpen(ctx, entry.CompanyID, entry.Date); err != nil {
		return err
	}

	if err := s.journalRepo.DeleteEntry(ctx, entryID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to delete journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return err
	}

	logger.Info("Journal entry deleted", slog.String("entry_id", entryID))
	return nil
}
