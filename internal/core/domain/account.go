package domain

import (
	"github.com/shopspring/decimal"
)

// ChartOfAccount is a single ledger account, e.g. "Cash on Hand" code "1001".
// CurrentBalance is a cached derivation; the balance recompute path is the only
// writer of that field.
type ChartOfAccount struct {
	AccountID      string          `json:"accountID"` // Primary key (UUID)
	CompanyID      string          `json:"companyID"`
	WingID         *string         `json:"wingID"`
	GroupID        string          `json:"groupID"`   // Owning AccountGroup (required)
	GroupType      GroupType       `json:"groupType"` // Resolved from the owning group on read
	Name           string          `json:"name"`
	Code           string          `json:"code"` // Unique per company
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	IsActive       bool            `json:"isActive"`
	AuditFields
}
