package dto

import (
	"github.com/retailos/accounting_service/internal/core/domain"
)

// UpsertSystemAccountRequest defines the payload for mapping a purpose to an
// account. An existing mapping for the same (company, purpose) is replaced.
type UpsertSystemAccountRequest struct {
	CompanyID string `json:"companyID" binding:"required,uuid"`
	Purpose   string `json:"purpose" binding:"required"`
	AccountID string `json:"accountID" binding:"required,uuid"`
}

// SystemAccountResponse defines the data returned for a purpose mapping.
type SystemAccountResponse struct {
	SystemAccountID string `json:"systemAccountID"`
	CompanyID       string `json:"companyID"`
	Purpose         string `json:"purpose"`
	AccountID       string `json:"accountID"`
}

// ToSystemAccountResponse converts a domain mapping to its response DTO.
func ToSystemAccountResponse(m *domain.SystemAccount) SystemAccountResponse {
	return SystemAccountResponse{
		SystemAccountID: m.SystemAccountID,
		CompanyID:       m.CompanyID,
		Purpose:         string(m.Purpose),
		AccountID:       m.AccountID,
	}
}

// ToSystemAccountResponses converts a slice of domain mappings to response DTOs.
func ToSystemAccountResponses(mappings []domain.SystemAccount) []SystemAccountResponse {
	responses := make([]SystemAccountResponse, len(mappings))
	for i := range mappings {
		responses[i] = ToSystemAccountResponse(&mappings[i])
	}
	return responses
}
