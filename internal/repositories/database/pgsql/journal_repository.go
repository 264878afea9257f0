package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/retailos/accounting_service/internal/apperrors"
	"github.com/retailos/accounting_service/internal/core/domain"
	portsrepo "github.com/retailos/accounting_service/internal/core/ports/repositories"
	"github.com/retailos/accounting_service/internal/models"
	"github.com/retailos/accounting_service/internal/utils/mapping"
)

type PgxJournalRepository struct {
	BaseRepository
	balances portsrepo.BalanceRecalculator
}

// newPgxJournalRepository creates a new repository for journal data. It takes
// the balance recalculator so every item mutation can rebuild the touched
// balances inside the same transaction.
func newPgxJournalRepository(pool *pgxpool.Pool, balances portsrepo.BalanceRecalculator) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}, balances: balances}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const entryColumns = `entry_id, company_id, wing_id, voucher_type, source, date, reference, description,
	total_debit, total_credit, is_posted, created_at, created_by, last_updated_at, last_updated_by`

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.CompanyID,
		&m.WingID,
		&m.VoucherType,
		&m.Source,
		&m.Date,
		&m.Reference,
		&m.Description,
		&m.TotalDebit,
		&m.TotalCredit,
		&m.IsPosted,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// distinctAccountIDs collects the unique account ids referenced by items.
func distinctAccountIDs(items []domain.JournalItem, extra ...string) []string {
	seen := make(map[string]struct{}, len(items)+len(extra))
	ids := make([]string, 0, len(items)+len(extra))
	for _, item := range items {
		if _, ok := seen[item.AccountID]; !ok {
			seen[item.AccountID] = struct{}{}
			ids = append(ids, item.AccountID)
		}
	}
	for _, id := range extra {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}

// FindEntryByID retrieves a journal entry header.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`

	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry by ID %s: %w", entryID, err)
	}

	d := mapping.ToDomainJournalEntry(m)
	return &d, nil
}

// FindItemsByEntryID retrieves the line items of one entry.
func (r *PgxJournalRepository) FindItemsByEntryID(ctx context.Context, entryID string) ([]domain.JournalItem, error) {
	query := `
		SELECT item_id, entry_id, account_id, debit, credit, description
		FROM journal_items
		WHERE entry_id = $1
		ORDER BY item_id;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	items := []domain.JournalItem{}
	for rows.Next() {
		var m models.JournalItem
		if err := rows.Scan(&m.ItemID, &m.EntryID, &m.AccountID, &m.Debit, &m.Credit, &m.Description); err != nil {
			return nil, fmt.Errorf("failed to scan journal item row: %w", err)
		}
		items = append(items, mapping.ToDomainJournalItem(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal item rows: %w", err)
	}
	return items, nil
}

// EntryExistsByReference reports whether an entry with the given reference
// already exists for the company.
func (r *PgxJournalRepository) EntryExistsByReference(ctx context.Context, companyID, reference string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM journal_entries WHERE company_id = $1 AND reference = $2);`

	var exists bool
	if err := r.Pool.QueryRow(ctx, query, companyID, reference).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to probe reference %q for company %s: %w", reference, companyID, err)
	}
	return exists, nil
}

// ListEntries retrieves entry headers matching the filter, newest first.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, filter portsrepo.ListEntriesFilter) ([]domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE company_id = $1`
	args := []any{filter.CompanyID}

	if filter.WingID != nil {
		args = append(args, *filter.WingID)
		query += ` AND wing_id = $` + strconv.Itoa(len(args))
	}
	if filter.VoucherType != nil {
		args = append(args, string(*filter.VoucherType))
		query += ` AND voucher_type = $` + strconv.Itoa(len(args))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += ` AND date >= $` + strconv.Itoa(len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += ` AND date <= $` + strconv.Itoa(len(args))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	args = append(args, limit)
	query += ` ORDER BY date DESC, created_at DESC LIMIT $` + strconv.Itoa(len(args))
	args = append(args, offset)
	query += ` OFFSET $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries for company %s: %w", filter.CompanyID, err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal entry row: %w", err)
		}
		entries = append(entries, mapping.ToDomainJournalEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal entry rows: %w", err)
	}
	return entries, nil
}

// SaveEntry inserts the header and all items atomically and recomputes the
// balance of every touched account before committing.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, items []domain.JournalItem) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.insertEntryInTx(ctx, tx, entry); err != nil {
		return err
	}
	if err := r.insertItemsInTx(ctx, tx, items); err != nil {
		return err
	}
	if err := r.balances.RecalculateBalancesInTx(ctx, tx, distinctAccountIDs(items)); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// ReplaceEntryItems updates the header and swaps the full item set, then
// recomputes balances for the union of old and new accounts.
func (r *PgxJournalRepository) ReplaceEntryItems(ctx context.Context, entry domain.JournalEntry, items []domain.JournalItem) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	oldAccountIDs, err := r.accountIDsOfEntryInTx(ctx, tx, entry.EntryID)
	if err != nil {
		return err
	}

	m := mapping.ToModelJournalEntry(entry)
	updateQuery := `
		UPDATE journal_entries
		SET voucher_type = $2, date = $3, reference = $4, description = $5, wing_id = $6,
		    total_debit = $7, total_credit = $8, last_updated_at = $9, last_updated_by = $10
		WHERE entry_id = $1;
	`
	tag, err := tx.Exec(ctx, updateQuery,
		m.EntryID, m.VoucherType, m.Date, m.Reference, m.Description, m.WingID,
		m.TotalDebit, m.TotalCredit, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update journal entry %s: %w", m.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_items WHERE entry_id = $1;`, entry.EntryID); err != nil {
		return fmt.Errorf("failed to delete old items of entry %s: %w", entry.EntryID, err)
	}
	if err := r.insertItemsInTx(ctx, tx, items); err != nil {
		return err
	}

	touched := distinctAccountIDs(items, oldAccountIDs...)
	if err := r.balances.RecalculateBalancesInTx(ctx, tx, touched); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// DeleteEntry removes the entry and its items, recomputing balances for the
// accounts the items referenced.
func (r *PgxJournalRepository) DeleteEntry(ctx context.Context, entryID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	accountIDs, err := r.accountIDsOfEntryInTx(ctx, tx, entryID)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_items WHERE entry_id = $1;`, entryID); err != nil {
		return fmt.Errorf("failed to delete items of entry %s: %w", entryID, err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM journal_entries WHERE entry_id = $1;`, entryID)
	if err != nil {
		return fmt.Errorf("failed to delete journal entry %s: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := r.balances.RecalculateBalancesInTx(ctx, tx, accountIDs); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxJournalRepository) insertEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)

	query := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := tx.Exec(ctx, query,
		m.EntryID, m.CompanyID, m.WingID, m.VoucherType, m.Source, m.Date, m.Reference, m.Description,
		m.TotalDebit, m.TotalCredit, m.IsPosted,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if translated := translateConstraintError(err); translated != err {
			return fmt.Errorf("%w: journal entry %s", translated, m.EntryID)
		}
		return fmt.Errorf("failed to insert journal entry %s: %w", m.EntryID, err)
	}
	return nil
}

func (r *PgxJournalRepository) insertItemsInTx(ctx context.Context, tx pgx.Tx, items []domain.JournalItem) error {
	batch := &pgx.Batch{}
	for _, item := range items {
		m := mapping.ToModelJournalItem(item)
		batch.Queue(
			`INSERT INTO journal_items (item_id, entry_id, account_id, debit, credit, description)
			 VALUES ($1, $2, $3, $4, $5, $6);`,
			m.ItemID, m.EntryID, m.AccountID, m.Debit, m.Credit, m.Description,
		)
	}

	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for range items {
		if _, err := br.Exec(); err != nil {
			if translated := translateConstraintError(err); errors.Is(translated, apperrors.ErrConflict) {
				return fmt.Errorf("%w: journal item references a missing account", apperrors.ErrConflict)
			}
			return fmt.Errorf("failed to insert journal item: %w", err)
		}
	}
	return nil
}

func (r *PgxJournalRepository) accountIDsOfEntryInTx(ctx context.Context, tx pgx.Tx, entryID string) ([]string, error) {
	rows, err := tx.Query(ctx, `SELECT DISTINCT account_id FROM journal_items WHERE entry_id = $1;`, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to collect account ids of entry %s: %w", entryID, err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan account id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account ids: %w", err)
	}
	return ids, nil
}
