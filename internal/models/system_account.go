package models

// SystemAccount is the system_accounts table row, mapping an automation
// purpose to a concrete account per company.
type SystemAccount struct {
	SystemAccountID string `db:"system_account_id"`
	CompanyID       string `db:"company_id"`
	Purpose         string `db:"purpose"`
	AccountID       string `db:"account_id"`
}
