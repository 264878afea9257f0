package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/retailos/accounting_service/internal/core/ports/services"
	"github.com/retailos/accounting_service/internal/dto"
	"github.com/retailos/accounting_service/internal/middleware"
)

// systemAccountHandler handles HTTP requests for purpose-to-account mappings.
type systemAccountHandler struct {
	systemAccountService portssvc.SystemAccountSvcFacade
}

func registerSystemAccountRoutes(rg *gin.RouterGroup, systemAccountService portssvc.SystemAccountSvcFacade) {
	h := &systemAccountHandler{systemAccountService: systemAccountService}

	mappings := rg.Group("/system-accounts")
	{
		mappings.GET("", h.listMappings)
		mappings.POST("", h.upsertMapping)
		mappings.DELETE("/:id", h.deleteMapping)
	}
}

func (h *systemAccountHandler) listMappings(c *gin.Context) {
	companyID, ok := requireCompanyID(c)
	if !ok {
		return
	}

	mappings, err := h.systemAccountService.ListMappings(c.Request.Context(), companyID)
	if err != nil {
		respondError(c, err, "Failed to list system account mappings")
		return
	}
	c.JSON(http.StatusOK, dto.ToSystemAccountResponses(mappings))
}

func (h *systemAccountHandler) upsertMapping(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpsertSystemAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpsertMapping", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	m, err := h.systemAccountService.UpsertMapping(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to map system account")
		return
	}
	c.JSON(http.StatusOK, dto.ToSystemAccountResponse(m))
}

func (h *systemAccountHandler) deleteMapping(c *gin.Context) {
	if err := h.systemAccountService.DeleteMapping(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete system account mapping")
		return
	}
	c.Status(http.StatusNoContent)
}
