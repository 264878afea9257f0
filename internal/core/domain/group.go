package domain

// GroupType defines the fundamental accounting category of a group of accounts.
type GroupType string

const (
	Asset     GroupType = "asset"
	Liability GroupType = "liability"
	Equity    GroupType = "equity"
	Income    GroupType = "income"
	Expense   GroupType = "expense"
)

// IsValid reports whether the group type is one of the known categories.
func (g GroupType) IsValid() bool {
	switch g {
	case Asset, Liability, Equity, Income, Expense:
		return true
	}
	return false
}

// IsDebitNormal reports whether accounts under this group type increase on the
// debit side of the accounting equation.
func (g GroupType) IsDebitNormal() bool {
	return g == Asset || g == Expense
}

// AccountGroup is a node in the hierarchical chart-of-accounts tree,
// e.g. "Current Assets" under "Assets". Root groups have no parent.
type AccountGroup struct {
	GroupID       string    `json:"groupID"`       // Primary key (UUID)
	CompanyID     string    `json:"companyID"`     // Owning tenant
	WingID        *string   `json:"wingID"`        // Optional branch scope
	Name          string    `json:"name"`          // Display name
	Code          string    `json:"code"`          // Short code, e.g. "10"
	GroupType     GroupType `json:"groupType"`     // asset, liability, equity, income, expense
	ParentGroupID *string   `json:"parentGroupID"` // Nullable self-reference
	AuditFields
}
