package dto

import (
	"time"

	"github.com/retailos/accounting_service/internal/core/domain"
)

// BalanceSheetResponse wraps a balance sheet with its report date.
type BalanceSheetResponse struct {
	AsOf string `json:"asOf"`
	domain.BalanceSheetReport
}

// ProfitLossResponse wraps a P&L report with its period bounds.
type ProfitLossResponse struct {
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
	domain.ProfitLossReport
}

// TrialBalanceResponse wraps a trial balance with its report date.
type TrialBalanceResponse struct {
	AsOf string `json:"asOf"`
	domain.TrialBalanceReport
}

// ToBalanceSheetResponse attaches the report date to a balance sheet.
func ToBalanceSheetResponse(report *domain.BalanceSheetReport, asOf time.Time) BalanceSheetResponse {
	return BalanceSheetResponse{
		AsOf:               asOf.Format("2006-01-02"),
		BalanceSheetReport: *report,
	}
}

// ToProfitLossResponse attaches the period bounds to a P&L report.
func ToProfitLossResponse(report *domain.ProfitLossReport, start, end *time.Time) ProfitLossResponse {
	resp := ProfitLossResponse{ProfitLossReport: *report}
	if start != nil {
		resp.StartDate = start.Format("2006-01-02")
	}
	if end != nil {
		resp.EndDate = end.Format("2006-01-02")
	}
	return resp
}

// ToTrialBalanceResponse attaches the report date to a trial balance.
func ToTrialBalanceResponse(report *domain.TrialBalanceReport, asOf time.Time) TrialBalanceResponse {
	return TrialBalanceResponse{
		AsOf:               asOf.Format("2006-01-02"),
		TrialBalanceReport: *report,
	}
}
