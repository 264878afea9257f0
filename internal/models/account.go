package models

import (
	"github.com/shopspring/decimal"
)

// ChartOfAccount is the accounts table row. GroupType is not a column; it is
// joined in from account_groups on read.
type ChartOfAccount struct {
	AccountID      string          `db:"account_id"`
	CompanyID      string          `db:"company_id"`
	WingID         *string         `db:"wing_id"`
	GroupID        string          `db:"group_id"`
	GroupType      GroupType       `db:"group_type"`
	Name           string          `db:"name"`
	Code           string          `db:"code"`
	OpeningBalance decimal.Decimal `db:"opening_balance"`
	CurrentBalance decimal.Decimal `db:"current_balance"`
	IsActive       bool            `db:"is_active"`
	AuditFields
}
