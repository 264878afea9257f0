package domain

import "time"

// AccountingPeriod is a per-company date range that can be closed to further
// postings. The period-lock check inspects the entry's own date only.
type AccountingPeriod struct {
	PeriodID  string    `json:"periodID"` // Primary key (UUID)
	CompanyID string    `json:"companyID"`
	Name      string    `json:"name"` // e.g. "January 2026"
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	IsClosed  bool      `json:"isClosed"`
	AuditFields
}

// Contains reports whether the given date falls inside the period (inclusive).
func (p AccountingPeriod) Contains(date time.Time) bool {
	d := date.Truncate(24 * time.Hour)
	return !d.Before(p.StartDate.Truncate(24*time.Hour)) && !d.After(p.EndDate.Truncate(24*time.Hour))
}
