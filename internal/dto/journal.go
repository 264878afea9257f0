package dto

import (
	"time"

	"github.com/retailos/accounting_service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalItemRequest is one posting line of a create/update request.
type JournalItemRequest struct {
	AccountID   string          `json:"accountID" binding:"required,uuid"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description" binding:"max=255"`
}

// CreateJournalEntryRequest defines the payload for posting a journal entry.
// Totals are never taken from the caller; the engine derives them from Items.
type CreateJournalEntryRequest struct {
	CompanyID   string               `json:"companyID" binding:"required,uuid"`
	WingID      *string              `json:"wingID" binding:"omitempty,uuid"`
	VoucherType string               `json:"voucherType" binding:"omitempty,oneof=receipt payment contra journal"`
	Date        time.Time            `json:"date" binding:"required" time_format:"2006-01-02"`
	Reference   string               `json:"reference" binding:"max=100"`
	Description string               `json:"description"`
	Items       []JournalItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateJournalEntryRequest defines the payload for amending a manual entry.
// The item set replaces the existing one wholesale.
type UpdateJournalEntryRequest struct {
	VoucherType *string              `json:"voucherType" binding:"omitempty,oneof=receipt payment contra journal"`
	Date        *time.Time           `json:"date" time_format:"2006-01-02"`
	Reference   *string              `json:"reference" binding:"omitempty,max=100"`
	Description *string              `json:"description"`
	Items       []JournalItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ListJournalEntriesParams holds query parameters for listing entries.
type ListJournalEntriesParams struct {
	CompanyID   string
	WingID      *string
	VoucherType *string
	StartDate   *time.Time
	EndDate     *time.Time
	Limit       int
	Offset      int
}

// JournalItemResponse is one posting line of an entry response.
type JournalItemResponse struct {
	ItemID      string          `json:"itemID"`
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID     string                `json:"entryID"`
	CompanyID   string                `json:"companyID"`
	WingID      *string               `json:"wingID,omitempty"`
	VoucherType string                `json:"voucherType"`
	Source      string                `json:"source"`
	Date        string                `json:"date"`
	Reference   string                `json:"reference"`
	Description string                `json:"description"`
	TotalDebit  decimal.Decimal       `json:"totalDebit"`
	TotalCredit decimal.Decimal       `json:"totalCredit"`
	IsPosted    bool                  `json:"isPosted"`
	Items       []JournalItemResponse `json:"items,omitempty"`
	CreatedAt   time.Time             `json:"createdAt"`
	CreatedBy   string                `json:"createdBy,omitempty"`
}

// ToJournalEntryResponse converts a domain entry (with any loaded items) to its
// response DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		EntryID:     e.EntryID,
		CompanyID:   e.CompanyID,
		WingID:      e.WingID,
		VoucherType: string(e.VoucherType),
		Source:      string(e.Source),
		Date:        e.Date.Format("2006-01-02"),
		Reference:   e.Reference,
		Description: e.Description,
		TotalDebit:  e.TotalDebit,
		TotalCredit: e.TotalCredit,
		IsPosted:    e.IsPosted,
		CreatedAt:   e.CreatedAt,
		CreatedBy:   e.CreatedBy,
	}
	if len(e.Items) > 0 {
		resp.Items = make([]JournalItemResponse, len(e.Items))
		for i, item := range e.Items {
			resp.Items[i] = JournalItemResponse{
				ItemID:      item.ItemID,
				AccountID:   item.AccountID,
				Debit:       item.Debit,
				Credit:      item.Credit,
				Description: item.Description,
			}
		}
	}
	return resp
}

// ToJournalEntryResponses converts a slice of domain entries to response DTOs.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	responses := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToJournalEntryResponse(&entries[i])
	}
	return responses
}
