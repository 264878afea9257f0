package mapping

import (
	"github.com/retailos/accounting_service/internal/core/domain"
	"github.com/retailos/accounting_service/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry header to a model row.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:     d.EntryID,
		CompanyID:   d.CompanyID,
		WingID:      d.WingID,
		VoucherType: string(d.VoucherType),
		Source:      string(d.Source),
		Date:        d.Date,
		Reference:   d.Reference,
		Description: d.Description,
		TotalDebit:  d.TotalDebit,
		TotalCredit: d.TotalCredit,
		IsPosted:    d.IsPosted,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model row to a domain JournalEntry header.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:     m.EntryID,
		CompanyID:   m.CompanyID,
		WingID:      m.WingID,
		VoucherType: domain.VoucherType(m.VoucherType),
		Source:      domain.EntrySource(m.Source),
		Date:        m.Date,
		Reference:   m.Reference,
		Description: m.Description,
		TotalDebit:  m.TotalDebit,
		TotalCredit: m.TotalCredit,
		IsPosted:    m.IsPosted,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalItem converts a domain JournalItem to a model row.
func ToModelJournalItem(d domain.JournalItem) models.JournalItem {
	return models.JournalItem{
		ItemID:      d.ItemID,
		EntryID:     d.EntryID,
		AccountID:   d.AccountID,
		Debit:       d.Debit,
		Credit:      d.Credit,
		Description: d.Description,
	}
}

// ToDomainJournalItem converts a model row to a domain JournalItem.
func ToDomainJournalItem(m models.JournalItem) domain.JournalItem {
	return domain.JournalItem{
		ItemID:      m.ItemID,
		EntryID:     m.EntryID,
		AccountID:   m.AccountID,
		Debit:       m.Debit,
		Credit:      m.Credit,
		Description: m.Description,
	}
}
