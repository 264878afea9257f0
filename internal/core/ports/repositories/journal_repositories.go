package repositories

import (
	"context"
	"time"

	"github.com/retailos/accounting_service/internal/core/domain"
)

// ListEntriesFilter narrows a journal entry listing. CompanyID is mandatory;
// everything else is optional.
type ListEntriesFilter struct {
	CompanyID   string
	WingID      *string
	VoucherType *domain.VoucherType
	StartDate   *time.Time
	EndDate     *time.Time
	Limit       int
	Offset      int
}

// JournalReader defines read operations for journal data.
type JournalReader interface {
	// FindEntryByID retrieves a journal entry header.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindItemsByEntryID retrieves the line items of one entry.
	FindItemsByEntryID(ctx context.Context, entryID string) ([]domain.JournalItem, error)

	// EntryExistsByReference reports whether an entry with the given reference
	// already exists for the company. This is the idempotency probe used by the
	// posting automation.
	EntryExistsByReference(ctx context.Context, companyID, reference string) (bool, error)

	// ListEntries retrieves entry headers matching the filter, newest first.
	ListEntries(ctx context.Context, filter ListEntriesFilter) ([]domain.JournalEntry, error)
}

// JournalWriter defines write operations for journal data. Every method runs
// its header and item mutations plus the triggered balance recomputes in one
// database transaction.
type JournalWriter interface {
	// SaveEntry inserts the header and all items atomically and recomputes the
	// balance of every touched account.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, items []domain.JournalItem) error

	// ReplaceEntryItems updates the header and swaps the full item set
	// (delete-then-recreate), recomputing balances for the union of old and new
	// accounts.
	ReplaceEntryItems(ctx context.Context, entry domain.JournalEntry, items []domain.JournalItem) error

	// DeleteEntry removes the entry and its items, recomputing balances for the
	// accounts the items referenced.
	DeleteEntry(ctx context.Context, entryID string) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
