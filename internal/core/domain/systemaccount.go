package domain

// AccountPurpose is a fixed semantic role that automated posting resolves to a
// concrete ledger account through the per-company SystemAccount mapping.
type AccountPurpose string

const (
	PurposeSalesRevenue            AccountPurpose = "sales_revenue"
	PurposeCashOnHand              AccountPurpose = "cash_on_hand"
	PurposeSalesTaxPayable         AccountPurpose = "sales_tax_payable"
	PurposeSalesReturns            AccountPurpose = "sales_returns"
	PurposeSalariesExpense         AccountPurpose = "salaries_expense"
	PurposeSalariesPayable         AccountPurpose = "salaries_payable"
	PurposeInventory               AccountPurpose = "inventory"
	PurposeAccountsPayable         AccountPurpose = "accounts_payable"
	PurposeDepreciationExpense     AccountPurpose = "depreciation_expense"
	PurposeAccumulatedDepreciation AccountPurpose = "accumulated_depreciation"
	PurposeCostOfGoodsSold         AccountPurpose = "cost_of_goods_sold"
)

// SystemAccount maps a purpose to a ChartOfAccount for one company. Unique per
// (company, purpose).
type SystemAccount struct {
	SystemAccountID string         `json:"systemAccountID"` // Primary key (UUID)
	CompanyID       string         `json:"companyID"`
	Purpose         AccountPurpose `json:"purpose"`
	AccountID       string         `json:"accountID"`
}

// AccountFallback describes the default group and account auto-provisioned for
// a purpose when a company has no SystemAccount mapping for it.
type AccountFallback struct {
	AccountCode string
	AccountName string
	GroupType   GroupType
	GroupCode   string
	GroupName   string
}

// Fallbacks holds the fixed provisioning defaults per purpose.
var Fallbacks = map[AccountPurpose]AccountFallback{
	PurposeSalesRevenue:            {"4000", "Sales Revenue", Income, "40", "Revenue"},
	PurposeCashOnHand:              {"1000", "Cash on Hand", Asset, "10", "Current Assets"},
	PurposeSalesTaxPayable:         {"2000", "Sales Tax Payable", Liability, "20", "Current Liabilities"},
	PurposeSalesReturns:            {"4100", "Sales Returns", Income, "40", "Revenue"},
	PurposeSalariesExpense:         {"5001", "Salaries Expense", Expense, "50", "Operating Expenses"},
	PurposeSalariesPayable:         {"2001", "Salaries Payable", Liability, "20", "Current Liabilities"},
	PurposeInventory:               {"1200", "Inventory Assets", Asset, "10", "Current Assets"},
	PurposeAccountsPayable:         {"2100", "Accounts Payable", Liability, "20", "Current Liabilities"},
	PurposeDepreciationExpense:     {"6000", "Depreciation Expense", Expense, "60", "Operating Expenses"},
	PurposeAccumulatedDepreciation: {"1500", "Accumulated Depreciation", Asset, "15", "Fixed Assets"},
	PurposeCostOfGoodsSold:         {"5000", "Cost of Goods Sold", Expense, "50", "Operating Expenses"},
}

// FallbackFor returns the provisioning defaults for a purpose.
func FallbackFor(p AccountPurpose) (AccountFallback, bool) {
	fb, ok := Fallbacks[p]
	return fb, ok
}
