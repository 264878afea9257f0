package mapping

import (
	"github.com/retailos/accounting_service/internal/core/domain"
	"github.com/retailos/accounting_service/internal/models"
)

// ToModelAccountingPeriod converts a domain AccountingPeriod to a model row.
func ToModelAccountingPeriod(d domain.AccountingPeriod) models.AccountingPeriod {
	return models.AccountingPeriod{
		PeriodID:    d.PeriodID,
		CompanyID:   d.CompanyID,
		Name:        d.Name,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		IsClosed:    d.IsClosed,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccountingPeriod converts a model row to a domain AccountingPeriod.
func ToDomainAccountingPeriod(m models.AccountingPeriod) domain.AccountingPeriod {
	return domain.AccountingPeriod{
		PeriodID:    m.PeriodID,
		CompanyID:   m.CompanyID,
		Name:        m.Name,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		IsClosed:    m.IsClosed,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
