package models

// GroupType mirrors domain.GroupType at the storage layer.
type GroupType string

const (
	Asset     GroupType = "asset"
	Liability GroupType = "liability"
	Equity    GroupType = "equity"
	Income    GroupType = "income"
	Expense   GroupType = "expense"
)

// AccountGroup is the account_groups table row.
type AccountGroup struct {
	GroupID       string    `db:"group_id"`
	CompanyID     string    `db:"company_id"`
	WingID        *string   `db:"wing_id"`
	Name          string    `db:"name"`
	Code          string    `db:"code"`
	GroupType     GroupType `db:"group_type"`
	ParentGroupID *string   `db:"parent_group_id"`
	AuditFields
}
