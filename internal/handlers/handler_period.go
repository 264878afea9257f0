package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/retailos/accounting_service/internal/core/ports/services"
	"github.com/retailos/accounting_service/internal/dto"
	"github.com/retailos/accounting_service/internal/middleware"
)

// periodHandler handles HTTP requests for accounting periods.
type periodHandler struct {
	periodService portssvc.PeriodSvcFacade
}

func registerPeriodRoutes(rg *gin.RouterGroup, periodService portssvc.PeriodSvcFacade) {
	h := &periodHandler{periodService: periodService}

	periods := rg.Group("/accounting-periods")
	{
		periods.POST("", h.createPeriod)
		periods.GET("", h.listPeriods)
		periods.PUT("/:id", h.updatePeriod)
		periods.POST("/:id/close", h.closePeriod)
		periods.POST("/:id/reopen", h.reopenPeriod)
	}
}

func (h *periodHandler) createPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateAccountingPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePeriod", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	creatorUserID, ok := requireUserID(c)
	if !ok {
		return
	}

	period, err := h.periodService.CreatePeriod(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondError(c, err, "Failed to create accounting period")
		return
	}
	c.JSON(http.StatusCreated, dto.ToAccountingPeriodResponse(period))
}

func (h *periodHandler) listPeriods(c *gin.Context) {
	companyID, ok := requireCompanyID(c)
	if !ok {
		return
	}

	periods, err := h.periodService.ListPeriods(c.Request.Context(), companyID)
	if err != nil {
		respondError(c, err, "Failed to list accounting periods")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountingPeriodResponses(periods))
}

func (h *periodHandler) updatePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateAccountingPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdatePeriod", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	updaterUserID, ok := requireUserID(c)
	if !ok {
		return
	}

	period, err := h.periodService.UpdatePeriod(c.Request.Context(), c.Param("id"), req, updaterUserID)
	if err != nil {
		respondError(c, err, "Failed to update accounting period")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountingPeriodResponse(period))
}

func (h *periodHandler) closePeriod(c *gin.Context) {
	updaterUserID, ok := requireUserID(c)
	if !ok {
		return
	}

	period, err := h.periodService.ClosePeriod(c.Request.Context(), c.Param("id"), updaterUserID)
	if err != nil {
		respondError(c, err, "Failed to close accounting period")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountingPeriodResponse(period))
}

func (h *periodHandler) reopenPeriod(c *gin.Context) {
	updaterUserID, ok := requireUserID(c)
	if !ok {
		return
	}

	period, err := h.periodService.ReopenPeriod(c.Request.Context(), c.Param("id"), updaterUserID)
	if err != nil {
		respondError(c, err, "Failed to reopen accounting period")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountingPeriodResponse(period))
}
