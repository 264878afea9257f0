package mapping

import (
	"github.com/retailos/accounting_service/internal/core/domain"
	"github.com/retailos/accounting_service/internal/models"
)

// ToModelAccountGroup converts a domain AccountGroup to a model AccountGroup.
func ToModelAccountGroup(d domain.AccountGroup) models.AccountGroup {
	return models.AccountGroup{
		GroupID:       d.GroupID,
		CompanyID:     d.CompanyID,
		WingID:        d.WingID,
		Name:          d.Name,
		Code:          d.Code,
		GroupType:     models.GroupType(d.GroupType),
		ParentGroupID: d.ParentGroupID,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccountGroup converts a model AccountGroup to a domain AccountGroup.
func ToDomainAccountGroup(m models.AccountGroup) domain.AccountGroup {
	return domain.AccountGroup{
		GroupID:       m.GroupID,
		CompanyID:     m.CompanyID,
		WingID:        m.WingID,
		Name:          m.Name,
		Code:          m.Code,
		GroupType:     domain.GroupType(m.GroupType),
		ParentGroupID: m.ParentGroupID,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
