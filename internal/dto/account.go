package dto

import (
	"github.com/retailos/accounting_service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateChartOfAccountRequest defines the payload for creating a ledger account.
type CreateChartOfAccountRequest struct {
	CompanyID      string          `json:"companyID" binding:"required,uuid"`
	WingID         *string         `json:"wingID" binding:"omitempty,uuid"`
	GroupID        string          `json:"groupID" binding:"required,uuid"`
	Name           string          `json:"name" binding:"required,max=120"`
	Code           string          `json:"code" binding:"required,max=20"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
}

// UpdateChartOfAccountRequest defines the payload for updating a ledger account.
// Nil fields are left unchanged. Changing OpeningBalance triggers a balance
// recompute.
type UpdateChartOfAccountRequest struct {
	Name           *string          `json:"name" binding:"omitempty,max=120"`
	GroupID        *string          `json:"groupID" binding:"omitempty,uuid"`
	OpeningBalance *decimal.Decimal `json:"openingBalance"`
	IsActive       *bool            `json:"isActive"`
}

// ListAccountsParams holds query parameters for listing accounts.
type ListAccountsParams struct {
	CompanyID string
	WingID    *string
	Limit     int
	Offset    int
}

// ChartOfAccountResponse defines the data returned for a ledger account.
// Monetary fields serialize as decimal strings.
type ChartOfAccountResponse struct {
	AccountID      string          `json:"accountID"`
	CompanyID      string          `json:"companyID"`
	WingID         *string         `json:"wingID,omitempty"`
	GroupID        string          `json:"groupID"`
	GroupType      string          `json:"groupType"`
	Name           string          `json:"name"`
	Code           string          `json:"code"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	IsActive       bool            `json:"isActive"`
}

// ToChartOfAccountResponse converts a domain account to its response DTO.
func ToChartOfAccountResponse(a *domain.ChartOfAccount) ChartOfAccountResponse {
	return ChartOfAccountResponse{
		AccountID:      a.AccountID,
		CompanyID:      a.CompanyID,
		WingID:         a.WingID,
		GroupID:        a.GroupID,
		GroupType:      string(a.GroupType),
		Name:           a.Name,
		Code:           a.Code,
		OpeningBalance: a.OpeningBalance,
		CurrentBalance: a.CurrentBalance,
		IsActive:       a.IsActive,
	}
}

// ToChartOfAccountResponses converts a slice of domain accounts to response DTOs.
func ToChartOfAccountResponses(accounts []domain.ChartOfAccount) []ChartOfAccountResponse {
	responses := make([]ChartOfAccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToChartOfAccountResponse(&accounts[i])
	}
	return responses
}
