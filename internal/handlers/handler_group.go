package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/retailos/accounting_service/internal/core/ports/services"
	"github.com/retailos/accounting_service/internal/dto"
	"github.com/retailos/accounting_service/internal/middleware"
)

// groupHandler handles HTTP requests for account groups.
type groupHandler struct {
	groupService portssvc.GroupSvcFacade
}

func registerGroupRoutes(rg *gin.RouterGroup, groupService portssvc.GroupSvcFacade) {
	h := &groupHandler{groupService: groupService}

	groups := rg.Group("/account-groups")
	{
		groups.POST("", h.createGroup)
		groups.GET("", h.listGroups)
		groups.GET("/:id", h.getGroup)
		groups.PUT("/:id", h.updateGroup)
		groups.DELETE("/:id", h.deleteGroup)
	}
}

func (h *groupHandler) createGroup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateAccountGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateGroup", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	creatorUserID, ok := requireUserID(c)
	if !ok {
		return
	}

	group, err := h.groupService.CreateGroup(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondError(c, err, "Failed to create account group")
		return
	}
	c.JSON(http.StatusCreated, dto.ToAccountGroupResponse(group))
}

func (h *groupHandler) listGroups(c *gin.Context) {
	companyID, ok := requireCompanyID(c)
	if !ok {
		return
	}

	groups, err := h.groupService.ListGroups(c.Request.Context(), companyID)
	if err != nil {
		respondError(c, err, "Failed to list account groups")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountGroupResponses(groups))
}

func (h *groupHandler) getGroup(c *gin.Context) {
	group, err := h.groupService.GetGroupByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve account group")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountGroupResponse(group))
}

func (h *groupHandler) updateGroup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateAccountGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateGroup", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	updaterUserID, ok := requireUserID(c)
	if !ok {
		return
	}

	group, err := h.groupService.UpdateGroup(c.Request.Context(), c.Param("id"), req, updaterUserID)
	if err != nil {
		respondError(c, err, "Failed to update account group")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountGroupResponse(group))
}

func (h *groupHandler) deleteGroup(c *gin.Context) {
	if err := h.groupService.DeleteGroup(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete account group")
		return
	}
	c.Status(http.StatusNoContent)
}
