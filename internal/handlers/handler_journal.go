package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/retailos/accounting_service/internal/core/domain"
	portssvc "github.com/retailos/accounting_service/internal/core/ports/services"
	"github.com/retailos/accounting_service/internal/dto"
	"github.com/retailos/accounting_service/internal/middleware"
)

// journalHandler handles HTTP requests for journal entries. All entries posted
// through the API carry the manual source; automated sources only enter
// through the event consumer.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := &journalHandler{journalService: journalService}

	journals := rg.Group("/journals")
	{
		journals.POST("", h.createEntry)
		journals.GET("", h.listEntries)
		journals.GET("/:id", h.getEntry)
		journals.PUT("/:id", h.updateEntry)
		journals.DELETE("/:id", h.deleteEntry)
	}
}

func (h *journalHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	creatorUserID, ok := requireUserID(c)
	if !ok {
		return
	}

	entry, err := h.journalService.CreateEntry(c.Request.Context(), req, domain.SourceManual, creatorUserID)
	if err != nil {
		respondError(c, err, "Failed to post journal entry")
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

func (h *journalHandler) listEntries(c *gin.Context) {
	companyID, ok := requireCompanyID(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	params := dto.ListJournalEntriesParams{
		CompanyID: companyID,
		WingID:    optionalWingID(c),
		Limit:     limit,
		Offset:    offset,
	}
	if vt := c.Query("voucher_type"); vt != "" {
		params.VoucherType = &vt
	}
	if from, ok := parseDateQuery(c, "start_date"); !ok {
		return
	} else {
		params.StartDate = from
	}
	if to, ok := parseDateQuery(c, "end_date"); !ok {
		return
	} else {
		params.EndDate = to
	}

	entries, err := h.journalService.ListEntries(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list journal entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponses(entries))
}

func (h *journalHandler) getEntry(c *gin.Context) {
	entry, err := h.journalService.GetEntry(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

func (h *journalHandler) updateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	updaterUserID, ok := requireUserID(c)
	if !ok {
		return
	}

	entry, err := h.journalService.UpdateEntry(c.Request.Context(), c.Param("id"), req, updaterUserID)
	if err != nil {
		respondError(c, err, "Failed to amend journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

func (h *journalHandler) deleteEntry(c *gin.Context) {
	if err := h.journalService.DeleteEntry(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete journal entry")
		return
	}
	c.Status(http.StatusNoContent)
}

// parseDateQuery reads an optional YYYY-MM-DD query parameter. The second
// return is false when the value was present but malformed, in which case a
// 400 has already been written.
func parseDateQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be formatted as YYYY-MM-DD"})
		return nil, false
	}
	return &t, true
}
