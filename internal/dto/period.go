package dto

import (
	"time"

	"github.com/retailos/accounting_service/internal/core/domain"
)

// CreateAccountingPeriodRequest defines the payload for creating a period.
type CreateAccountingPeriodRequest struct {
	CompanyID string    `json:"companyID" binding:"required,uuid"`
	Name      string    `json:"name" binding:"required,max=50"`
	StartDate time.Time `json:"startDate" binding:"required" time_format:"2006-01-02"`
	EndDate   time.Time `json:"endDate" binding:"required" time_format:"2006-01-02"`
}

// UpdateAccountingPeriodRequest defines the payload for updating a period.
type UpdateAccountingPeriodRequest struct {
	Name      *string    `json:"name" binding:"omitempty,max=50"`
	StartDate *time.Time `json:"startDate" time_format:"2006-01-02"`
	EndDate   *time.Time `json:"endDate" time_format:"2006-01-02"`
}

// AccountingPeriodResponse defines the data returned for a period.
type AccountingPeriodResponse struct {
	PeriodID  string `json:"periodID"`
	CompanyID string `json:"companyID"`
	Name      string `json:"name"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	IsClosed  bool   `json:"isClosed"`
}

// ToAccountingPeriodResponse converts a domain period to its response DTO.
func ToAccountingPeriodResponse(p *domain.AccountingPeriod) AccountingPeriodResponse {
	return AccountingPeriodResponse{
		PeriodID:  p.PeriodID,
		CompanyID: p.CompanyID,
		Name:      p.Name,
		StartDate: p.StartDate.Format("2006-01-02"),
		EndDate:   p.EndDate.Format("2006-01-02"),
		IsClosed:  p.IsClosed,
	}
}

// ToAccountingPeriodResponses converts a slice of domain periods to response DTOs.
func ToAccountingPeriodResponses(periods []domain.AccountingPeriod) []AccountingPeriodResponse {
	responses := make([]AccountingPeriodResponse, len(periods))
	for i := range periods {
		responses[i] = ToAccountingPeriodResponse(&periods[i])
	}
	return responses
}
