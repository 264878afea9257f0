package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is the journal_entries table row.
type JournalEntry struct {
	EntryID     string          `db:"entry_id"`
	CompanyID   string          `db:"company_id"`
	WingID      *string         `db:"wing_id"`
	VoucherType string          `db:"voucher_type"`
	Source      string          `db:"source"`
	Date        time.Time       `db:"date"`
	Reference   string          `db:"reference"`
	Description string          `db:"description"`
	TotalDebit  decimal.Decimal `db:"total_debit"`
	TotalCredit decimal.Decimal `db:"total_credit"`
	IsPosted    bool            `db:"is_posted"`
	AuditFields
}

// JournalItem is the journal_items table row.
type JournalItem struct {
	ItemID      string          `db:"item_id"`
	EntryID     string          `db:"entry_id"`
	AccountID   string          `db:"account_id"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
	Description string          `db:"description"`
}
