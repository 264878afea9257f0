package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// VoucherType classifies a journal entry.
type VoucherType string

const (
	VoucherReceipt VoucherType = "receipt"
	VoucherPayment VoucherType = "payment"
	VoucherContra  VoucherType = "contra"
	VoucherJournal VoucherType = "journal"
)

// IsValid reports whether the voucher type is one of the known kinds.
func (v VoucherType) IsValid() bool {
	switch v {
	case VoucherReceipt, VoucherPayment, VoucherContra, VoucherJournal:
		return true
	}
	return false
}

// EntrySource records which process produced a journal entry. Only manual
// entries may be amended or deleted through the API; automated entries are
// write-once.
type EntrySource string

const (
	SourceManual    EntrySource = "manual"
	SourcePOS       EntrySource = "pos"
	SourcePurchase  EntrySource = "purchase"
	SourceInventory EntrySource = "inventory"
	SourceOther     EntrySource = "other"
)

// IsMutable reports whether entries from this source may be updated or deleted.
func (s EntrySource) IsMutable() bool {
	return s == SourceManual
}

// JournalEntry is the header of one balanced transaction. TotalDebit and
// TotalCredit are always computed from the item set and must be equal.
type JournalEntry struct {
	EntryID     string          `json:"entryID"` // Primary key (UUID)
	CompanyID   string          `json:"companyID"`
	WingID      *string         `json:"wingID"`
	VoucherType VoucherType     `json:"voucherType"`
	Source      EntrySource     `json:"source"`
	Date        time.Time       `json:"date"`      // Entry date, drives period-lock checks
	Reference   string          `json:"reference"` // Idempotency key for automated entries
	Description string          `json:"description"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	IsPosted    bool            `json:"isPosted"`
	Items       []JournalItem   `json:"items,omitempty"` // Loaded on demand
	AuditFields
}

// JournalItem is one posting line of an entry. Normally exactly one of
// Debit/Credit is nonzero; this is not hard-enforced.
type JournalItem struct {
	ItemID      string          `json:"itemID"` // Primary key (UUID)
	EntryID     string          `json:"entryID"`
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}
