package mapping

import (
	"github.com/retailos/accounting_service/internal/core/domain"
	"github.com/retailos/accounting_service/internal/models"
)

// ToModelChartOfAccount converts a domain ChartOfAccount to a model row.
func ToModelChartOfAccount(d domain.ChartOfAccount) models.ChartOfAccount {
	return models.ChartOfAccount{
		AccountID:      d.AccountID,
		CompanyID:      d.CompanyID,
		WingID:         d.WingID,
		GroupID:        d.GroupID,
		GroupType:      models.GroupType(d.GroupType),
		Name:           d.Name,
		Code:           d.Code,
		OpeningBalance: d.OpeningBalance,
		CurrentBalance: d.CurrentBalance,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainChartOfAccount converts a model row to a domain ChartOfAccount.
func ToDomainChartOfAccount(m models.ChartOfAccount) domain.ChartOfAccount {
	return domain.ChartOfAccount{
		AccountID:      m.AccountID,
		CompanyID:      m.CompanyID,
		WingID:         m.WingID,
		GroupID:        m.GroupID,
		GroupType:      domain.GroupType(m.GroupType),
		Name:           m.Name,
		Code:           m.Code,
		OpeningBalance: m.OpeningBalance,
		CurrentBalance: m.CurrentBalance,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
