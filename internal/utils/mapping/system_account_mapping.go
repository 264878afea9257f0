package mapping

import (
	"github.com/retailos/accounting_service/internal/core/domain"
	"github.com/retailos/accounting_service/internal/models"
)

// ToModelSystemAccount converts a domain SystemAccount to a model row.
func ToModelSystemAccount(d domain.SystemAccount) models.SystemAccount {
	return models.SystemAccount{
		SystemAccountID: d.SystemAccountID,
		CompanyID:       d.CompanyID,
		Purpose:         string(d.Purpose),
		AccountID:       d.AccountID,
	}
}

// ToDomainSystemAccount converts a model row to a domain SystemAccount.
func ToDomainSystemAccount(m models.SystemAccount) domain.SystemAccount {
	return domain.SystemAccount{
		SystemAccountID: m.SystemAccountID,
		CompanyID:       m.CompanyID,
		Purpose:         domain.AccountPurpose(m.Purpose),
		AccountID:       m.AccountID,
	}
}
