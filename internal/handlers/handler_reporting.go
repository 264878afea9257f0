package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	portssvc "github.com/retailos/accounting_service/internal/core/ports/services"
	"github.com/retailos/accounting_service/internal/dto"
)

// reportingHandler handles HTTP requests for financial reports. Every report
// requires company_uuid; wing_uuid narrows to one branch and as_of/start_date/
// end_date bound the window.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := &reportingHandler{reportingService: reportingService}

	reports := rg.Group("/reports")
	{
		reports.GET("/balance-sheet", h.balanceSheet)
		reports.GET("/profit-loss", h.profitLoss)
		reports.GET("/trial-balance", h.trialBalance)
		reports.GET("/dashboard", h.dashboard)
	}
}

// asOfOrToday reads the optional as_of parameter, defaulting to today.
func asOfOrToday(c *gin.Context) (time.Time, bool) {
	asOf, ok := parseDateQuery(c, "as_of")
	if !ok {
		return time.Time{}, false
	}
	if asOf == nil {
		return time.Now(), true
	}
	return *asOf, true
}

func (h *reportingHandler) balanceSheet(c *gin.Context) {
	companyID, ok := requireCompanyID(c)
	if !ok {
		return
	}
	asOf, ok := asOfOrToday(c)
	if !ok {
		return
	}

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), companyID, optionalWingID(c), asOf)
	if err != nil {
		respondError(c, err, "Failed to build balance sheet")
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(report, asOf))
}

func (h *reportingHandler) profitLoss(c *gin.Context) {
	companyID, ok := requireCompanyID(c)
	if !ok {
		return
	}
	start, ok := parseDateQuery(c, "start_date")
	if !ok {
		return
	}
	end, ok := parseDateQuery(c, "end_date")
	if !ok {
		return
	}

	report, err := h.reportingService.ProfitLoss(c.Request.Context(), companyID, optionalWingID(c), start, end)
	if err != nil {
		respondError(c, err, "Failed to build profit and loss report")
		return
	}
	c.JSON(http.StatusOK, dto.ToProfitLossResponse(report, start, end))
}

func (h *reportingHandler) trialBalance(c *gin.Context) {
	companyID, ok := requireCompanyID(c)
	if !ok {
		return
	}
	asOf, ok := asOfOrToday(c)
	if !ok {
		return
	}

	report, err := h.reportingService.TrialBalance(c.Request.Context(), companyID, optionalWingID(c), asOf)
	if err != nil {
		respondError(c, err, "Failed to build trial balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(report, asOf))
}

func (h *reportingHandler) dashboard(c *gin.Context) {
	companyID, ok := requireCompanyID(c)
	if !ok {
		return
	}

	report, err := h.reportingService.Dashboard(c.Request.Context(), companyID, optionalWingID(c))
	if err != nil {
		respondError(c, err, "Failed to build dashboard")
		return
	}
	c.JSON(http.StatusOK, report)
}
