package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ohada_ledger/internal/core/ports/services"
	"github.com/SscSPs/ohada_ledger/internal/dto"
	"github.com/SscSPs/ohada_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalEntryHandler handles HTTP requests related to journal entries.
type journalEntryHandler struct {
	journalService portssvc.JournalEntrySvcFacade
}

// newJournalEntryHandler creates a new journalEntryHandler.
func newJournalEntryHandler(journalService portssvc.JournalEntrySvcFacade) *journalEntryHandler {
	return &journalEntryHandler{
		journalService: journalService,
	}
}

// registerJournalEntryRoutes registers journal entry routes under a company group.
func registerJournalEntryRoutes(rg *gin.RouterGroup, journalService portssvc.JournalEntrySvcFacade) {
	h := newJournalEntryHandler(journalService)

	entries := rg.Group("/entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:entry_id", h.getEntry)
		entries.POST("/:entry_id/validate", h.validateEntry)
		entries.POST("/:entry_id/cancel", h.cancelEntry)
		entries.POST("/:entry_id/reverse", h.reverseEntry)
	}
	rg.GET("/account-entries", h.listAccountEntries)
}

// createEntry godoc
// @Summary Create a journal entry
// @Description Validates the lines, assigns the next entry number and stores the entry as DRAFT
// @Tags entries
// @Accept json
// @Produce json
// @Param company_id path string true "Company ID"
// @Param entry body dto.CreateJournalEntryRequest true "Journal entry"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid input or unbalanced entry"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Fiscal year closed"
// @Failure 500 {object} map[string]string "Failed to create entry"
// @Security BearerAuth
// @Router /companies/{company_id}/entries [post]
func (h *journalEntryHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	entry, err := h.journalService.CreateEntry(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to create journal entry")
		return
	}

	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// getEntry godoc
// @Summary Get a journal entry
// @Description Retrieves an entry with its lines
// @Tags entries
// @Produce json
// @Param company_id path string true "Company ID"
// @Param entry_id path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve entry"
// @Security BearerAuth
// @Router /companies/{company_id}/entries/{entry_id} [get]
func (h *journalEntryHandler) getEntry(c *gin.Context) {
	entry, err := h.journalService.GetEntryByID(c.Request.Context(), c.Param("company_id"), c.Param("entry_id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Lists entries of a company, newest first, with token-based pagination
// @Tags entries
// @Produce json
// @Param company_id path string true "Company ID"
// @Param status query string false "DRAFT, VALIDATED or CANCELLED"
// @Param journalType query string false "Journal type"
// @Param fromDate query string false "Start date (YYYY-MM-DD)"
// @Param toDate query string false "End date (YYYY-MM-DD)"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Token of the next page"
// @Param includeLines query bool false "Include lines"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 500 {object} map[string]string "Failed to list entries"
// @Security BearerAuth
// @Router /companies/{company_id}/entries [get]
func (h *journalEntryHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.journalService.ListEntries(c.Request.Context(), c.Param("company_id"), params)
	if err != nil {
		respondError(c, err, "Failed to list journal entries")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// validateEntry godoc
// @Summary Validate a journal entry
// @Description Moves a DRAFT entry to VALIDATED. Validated entries count in balances and statements.
// @Tags entries
// @Produce json
// @Param company_id path string true "Company ID"
// @Param entry_id path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not DRAFT"
// @Security BearerAuth
// @Router /companies/{company_id}/entries/{entry_id}/validate [post]
func (h *journalEntryHandler) validateEntry(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	entry, err := h.journalService.ValidateEntry(c.Request.Context(), c.Param("company_id"), c.Param("entry_id"), userID)
	if err != nil {
		respondError(c, err, "Failed to validate journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// cancelEntry godoc
// @Summary Cancel a journal entry
// @Description Moves a DRAFT entry to CANCELLED
// @Tags entries
// @Produce json
// @Param company_id path string true "Company ID"
// @Param entry_id path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not DRAFT"
// @Security BearerAuth
// @Router /companies/{company_id}/entries/{entry_id}/cancel [post]
func (h *journalEntryHandler) cancelEntry(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	entry, err := h.journalService.CancelEntry(c.Request.Context(), c.Param("company_id"), c.Param("entry_id"), userID)
	if err != nil {
		respondError(c, err, "Failed to cancel journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// reverseEntry godoc
// @Summary Reverse a journal entry
// @Description Creates a DRAFT entry with every side of a VALIDATED entry swapped
// @Tags entries
// @Produce json
// @Param company_id path string true "Company ID"
// @Param entry_id path string true "Entry ID"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not VALIDATED"
// @Security BearerAuth
// @Router /companies/{company_id}/entries/{entry_id}/reverse [post]
func (h *journalEntryHandler) reverseEntry(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	entry, err := h.journalService.ReverseEntry(c.Request.Context(), c.Param("company_id"), c.Param("entry_id"), userID)
	if err != nil {
		respondError(c, err, "Failed to reverse journal entry")
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// listAccountEntries godoc
// @Summary List ledger lines
// @Description Lists lines of a company, optionally for one account class or account
// @Tags entries
// @Produce json
// @Param company_id path string true "Company ID"
// @Param accountPrefix query string false "Account number prefix"
// @Param fromDate query string false "Start date (YYYY-MM-DD)"
// @Param toDate query string false "End date (YYYY-MM-DD)"
// @Param limit query int false "Page size" default(100)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListAccountEntriesResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Security BearerAuth
// @Router /companies/{company_id}/account-entries [get]
func (h *journalEntryHandler) listAccountEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListAccountEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listAccountEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	lines, err := h.journalService.ListAccountEntries(c.Request.Context(), c.Param("company_id"), params.ToAccountEntryFilter())
	if err != nil {
		respondError(c, err, "Failed to list account entries")
		return
	}
	c.JSON(http.StatusOK, dto.ListAccountEntriesResponse{Lines: dto.ToAccountEntryResponses(lines)})
}
