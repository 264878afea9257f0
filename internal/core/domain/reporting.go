package domain

import (
	"github.com/shopspring/decimal"
)

// AccountActivity holds aggregated debit/credit sums for one account, produced
// in bulk by the reporting repository so report builders never query
// per-account.
type AccountActivity struct {
	CumulativeDebit  decimal.Decimal
	CumulativeCredit decimal.Decimal
	PeriodicDebit    decimal.Decimal
	PeriodicCredit   decimal.Decimal
}

// GroupTotal is one aggregated row of a balance sheet or P&L section.
type GroupTotal struct {
	GroupID   string          `json:"groupID"`
	Name      string          `json:"name"`
	GroupType GroupType       `json:"groupType"`
	Total     decimal.Decimal `json:"total"`
}

// BalanceSheetReport aggregates root asset/liability/equity groups.
type BalanceSheetReport struct {
	Assets           []GroupTotal    `json:"assets"`
	Liabilities      []GroupTotal    `json:"liabilities"`
	Equity           []GroupTotal    `json:"equity"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
}

// ProfitLossReport aggregates income/expense activity for a period.
type ProfitLossReport struct {
	Income       []GroupTotal    `json:"income"`
	Expenses     []GroupTotal    `json:"expenses"`
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	NetProfit    decimal.Decimal `json:"netProfit"`
}

// TrialBalanceRow is one nonzero account line of a trial balance. A negative
// signed balance flips into the opposite column.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	AccountName string          `json:"accountName"`
	AccountCode string          `json:"accountCode"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceReport is the full trial balance with column totals.
type TrialBalanceReport struct {
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
	IsBalanced  bool              `json:"isBalanced"`
}

// MonthlyTrend is one month bucket of the dashboard income/expense trend.
type MonthlyTrend struct {
	Month   string          `json:"month"` // e.g. "Jan 2026"
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// NamedAmount pairs a display name with an amount, used for dashboard charts.
type NamedAmount struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// DashboardReport is the accounting dashboard summary.
type DashboardReport struct {
	Trends            []MonthlyTrend  `json:"trends"`
	AssetDistribution []NamedAmount   `json:"assetsDistribution"`
	TopExpenses       []NamedAmount   `json:"topExpenses"`
	CashBalance       decimal.Decimal `json:"cashBalance"`
}
