package services

import (
	"context"

	"github.com/retailos/accounting_service/internal/core/domain"
	"github.com/retailos/accounting_service/internal/dto"
)

// JournalSvcFacade is the journal engine: balanced atomic posting, period-lock
// validation, and source-gated amendment.
type JournalSvcFacade interface {
	// CreateEntry validates and posts a new entry with its items atomically.
	// Totals are computed from the items; the entry date must not fall inside a
	// closed period.
	CreateEntry(ctx context.Context, req dto.CreateJournalEntryRequest, source domain.EntrySource, creatorUserID string) (*domain.JournalEntry, error)

	// GetEntry retrieves an entry with its items.
	GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	ListEntries(ctx context.Context, params dto.ListJournalEntriesParams) ([]domain.JournalEntry, error)

	// UpdateEntry amends a manual entry, replacing its item set wholesale.
	// Entries from automated sources are rejected.
	UpdateEntry(ctx context.Context, entryID string, req dto.UpdateJournalEntryRequest, updaterUserID string) (*domain.JournalEntry, error)

	// DeleteEntry removes a manual entry and its items. Entries from automated
	// sources are rejected.
	DeleteEntry(ctx context.Context, entryID string) error
}
