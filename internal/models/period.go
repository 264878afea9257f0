package models

import "time"

// AccountingPeriod is the accounting_periods table row.
type AccountingPeriod struct {
	PeriodID  string    `db:"period_id"`
	CompanyID string    `db:"company_id"`
	Name      string    `db:"name"`
	StartDate time.Time `db:"start_date"`
	EndDate   time.Time `db:"end_date"`
	IsClosed  bool      `db:"is_closed"`
	AuditFields
}
