package dto

import (
	"github.com/retailos/accounting_service/internal/core/domain"
)

// CreateAccountGroupRequest defines the payload for creating an account group.
type CreateAccountGroupRequest struct {
	CompanyID     string  `json:"companyID" binding:"required,uuid"`
	WingID        *string `json:"wingID" binding:"omitempty,uuid"`
	Name          string  `json:"name" binding:"required,max=120"`
	Code          string  `json:"code" binding:"max=20"`
	GroupType     string  `json:"groupType" binding:"required,oneof=asset liability equity income expense"`
	ParentGroupID *string `json:"parentGroupID" binding:"omitempty,uuid"`
}

// UpdateAccountGroupRequest defines the payload for updating an account group.
// Nil fields are left unchanged.
type UpdateAccountGroupRequest struct {
	Name          *string `json:"name" binding:"omitempty,max=120"`
	Code          *string `json:"code" binding:"omitempty,max=20"`
	ParentGroupID *string `json:"parentGroupID" binding:"omitempty,uuid"`
}

// AccountGroupResponse defines the data returned for an account group.
type AccountGroupResponse struct {
	GroupID       string  `json:"groupID"`
	CompanyID     string  `json:"companyID"`
	WingID        *string `json:"wingID,omitempty"`
	Name          string  `json:"name"`
	Code          string  `json:"code"`
	GroupType     string  `json:"groupType"`
	ParentGroupID *string `json:"parentGroupID,omitempty"`
}

// ToAccountGroupResponse converts a domain AccountGroup to its response DTO.
func ToAccountGroupResponse(g *domain.AccountGroup) AccountGroupResponse {
	return AccountGroupResponse{
		GroupID:       g.GroupID,
		CompanyID:     g.CompanyID,
		WingID:        g.WingID,
		Name:          g.Name,
		Code:          g.Code,
		GroupType:     string(g.GroupType),
		ParentGroupID: g.ParentGroupID,
	}
}

// ToAccountGroupResponses converts a slice of domain groups to response DTOs.
func ToAccountGroupResponses(groups []domain.AccountGroup) []AccountGroupResponse {
	responses := make([]AccountGroupResponse, len(groups))
	for i := range groups {
		responses[i] = ToAccountGroupResponse(&groups[i])
	}
	return responses
}
