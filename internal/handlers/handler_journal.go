package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/nusantara-construction/ledger-backend/internal/core/ports/services"
	"github.com/nusantara-construction/ledger-backend/internal/dto"
	"github.com/nusantara-construction/ledger-backend/internal/middleware"
)

// journalHandler handles HTTP requests for journal entries and the trial balance.
type journalHandler struct {
	journalService   portssvc.JournalSvcFacade
	reportingService portssvc.ReportingService
}

// registerJournalRoutes registers the journal entry routes.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade, reportingService portssvc.ReportingService) {
	h := &journalHandler{
		journalService:   journalService,
		reportingService: reportingService,
	}

	entries := rg.Group("/journal-entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.GET("/reports/trial-balance", h.trialBalance)
		entries.GET("/:id", h.getEntry)
		entries.PUT("/:id/post", h.postEntry)
		entries.DELETE("/:id", h.deleteEntry)
	}
}

// createEntry godoc
// @Summary Create a draft journal entry
// @Description Creates a balanced draft entry with its lines in one atomic operation.
// @Tags journal-entries
// @Accept json
// @Produce json
// @Param entry body dto.CreateJournalEntryRequest true "Entry with lines"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Validation failure or unbalanced entry"
// @Failure 409 {object} map[string]string "Entry number contention not resolved"
// @Router /journal-entries [post]
func (h *journalHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createEntry", slog.String("error", err.Error()))
		respondError(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	entry, err := h.journalService.CreateEntry(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Failed to create journal entry")
		return
	}

	respondCreated(c, dto.ToJournalEntryResponse(entry), "Journal entry created successfully")
}

// getEntry godoc
// @Summary Get a journal entry with its lines
// @Tags journal-entries
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Router /journal-entries/{id} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	entry, err := h.journalService.GetEntryByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve journal entry")
		return
	}

	respondOK(c, dto.ToJournalEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Tags journal-entries
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Param status query string false "Filter by status (DRAFT or POSTED)"
// @Param entry_type query string false "Filter by entry type"
// @Param project_id query string false "Filter by project"
// @Param from_date query string false "Inclusive lower bound (YYYY-MM-DD)"
// @Param to_date query string false "Inclusive upper bound (YYYY-MM-DD)"
// @Param search query string false "Substring match over number and description"
// @Success 200 {object} dto.ListJournalEntriesResponse
// @Router /journal-entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var params dto.ListJournalEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for listEntries", slog.String("error", err.Error()))
		respondError(c, http.StatusBadRequest, "Invalid query parameters: "+err.Error())
		return
	}

	page, err := h.journalService.ListEntries(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err, "Failed to list journal entries")
		return
	}

	respondPage(c, page.Entries, page.Pagination)
}

// postEntry godoc
// @Summary Post a draft journal entry
// @Description Finalizes a draft entry. Posted entries are immutable.
// @Tags journal-entries
// @Accept json
// @Produce json
// @Param id path string true "Entry ID"
// @Param body body dto.PostEntryRequest false "Who posts the entry"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry already posted"
// @Router /journal-entries/{id}/post [put]
func (h *journalHandler) postEntry(c *gin.Context) {
	var req dto.PostEntryRequest
	// The body is optional; an empty posted_by is accepted.
	_ = c.ShouldBindJSON(&req)

	entry, err := h.journalService.PostEntry(c.Request.Context(), c.Param("id"), req.PostedBy)
	if err != nil {
		respondServiceError(c, err, "Failed to post journal entry")
		return
	}

	respondMessage(c, dto.ToJournalEntryResponse(entry), "Journal entry posted successfully")
}

// deleteEntry godoc
// @Summary Delete a draft journal entry
// @Description Removes a draft entry and its lines. Posted entries cannot be deleted.
// @Tags journal-entries
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry already posted"
// @Router /journal-entries/{id} [delete]
func (h *journalHandler) deleteEntry(c *gin.Context) {
	if err := h.journalService.DeleteEntry(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err, "Failed to delete journal entry")
		return
	}

	respondMessage(c, nil, "Journal entry deleted successfully")
}

// trialBalance godoc
// @Summary Generate a trial balance report
// @Tags journal-entries
// @Produce json
// @Param as_of_date query string false "Report date (YYYY-MM-DD), default today"
// @Success 200 {object} dto.TrialBalanceResponse
// @Router /journal-entries/reports/trial-balance [get]
func (h *journalHandler) trialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	asOf := time.Now()
	if raw := c.Query("as_of_date"); raw != "" {
		parsed, err := time.Parse(dto.DateLayout, raw)
		if err != nil {
			logger.Warn("Invalid as_of_date for trialBalance", slog.String("as_of_date", raw))
			respondError(c, http.StatusBadRequest, "Invalid as_of_date, expected YYYY-MM-DD")
			return
		}
		asOf = parsed
	}

	report, err := h.reportingService.TrialBalance(c.Request.Context(), asOf)
	if err != nil {
		respondServiceError(c, err, "Failed to generate trial balance")
		return
	}

	respondOK(c, dto.ToTrialBalanceResponse(report))
}
