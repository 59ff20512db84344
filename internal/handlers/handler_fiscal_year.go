package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ohada_ledger/internal/core/ports/services"
	"github.com/SscSPs/ohada_ledger/internal/dto"
	"github.com/SscSPs/ohada_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type fiscalYearHandler struct {
	fiscalYearService portssvc.FiscalYearSvc
}

func registerFiscalYearRoutes(rg *gin.RouterGroup, fiscalYearService portssvc.FiscalYearSvc) {
	h := &fiscalYearHandler{fiscalYearService: fiscalYearService}

	fy := rg.Group("/fiscal-years")
	{
		fy.POST("", h.createFiscalYear)
		fy.GET("", h.listFiscalYears)
		fy.GET("/:fiscal_year_id", h.getFiscalYear)
		fy.POST("/:fiscal_year_id/close", h.closeFiscalYear)
	}
}

// createFiscalYear godoc
// @Summary Open a fiscal year
// @Tags fiscal-years
// @Accept json
// @Produce json
// @Param company_id path string true "Company ID"
// @Param fiscalYear body dto.CreateFiscalYearRequest true "Fiscal year"
// @Success 201 {object} dto.FiscalYearResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Overlaps an existing fiscal year"
// @Security BearerAuth
// @Router /companies/{company_id}/fiscal-years [post]
func (h *fiscalYearHandler) createFiscalYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateFiscalYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createFiscalYear", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	fy, err := h.fiscalYearService.CreateFiscalYear(c.Request.Context(), c.Param("company_id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create fiscal year")
		return
	}
	c.JSON(http.StatusCreated, dto.ToFiscalYearResponse(fy))
}

// listFiscalYears godoc
// @Summary List fiscal years
// @Tags fiscal-years
// @Produce json
// @Param company_id path string true "Company ID"
// @Success 200 {object} dto.ListFiscalYearsResponse
// @Security BearerAuth
// @Router /companies/{company_id}/fiscal-years [get]
func (h *fiscalYearHandler) listFiscalYears(c *gin.Context) {
	list, err := h.fiscalYearService.ListFiscalYears(c.Request.Context(), c.Param("company_id"))
	if err != nil {
		respondError(c, err, "Failed to list fiscal years")
		return
	}
	c.JSON(http.StatusOK, dto.ToListFiscalYearsResponse(list))
}

// getFiscalYear godoc
// @Summary Get a fiscal year
// @Tags fiscal-years
// @Produce json
// @Param company_id path string true "Company ID"
// @Param fiscal_year_id path string true "Fiscal year ID"
// @Success 200 {object} dto.FiscalYearResponse
// @Failure 404 {object} map[string]string "Fiscal year not found"
// @Security BearerAuth
// @Router /companies/{company_id}/fiscal-years/{fiscal_year_id} [get]
func (h *fiscalYearHandler) getFiscalYear(c *gin.Context) {
	fy, err := h.fiscalYearService.GetFiscalYear(c.Request.Context(), c.Param("company_id"), c.Param("fiscal_year_id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve fiscal year")
		return
	}
	c.JSON(http.StatusOK, dto.ToFiscalYearResponse(fy))
}

// closeFiscalYear godoc
// @Summary Close a fiscal year
// @Description Closing is final. It fails while DRAFT entries remain in the period or an earlier fiscal year is open.
// @Tags fiscal-years
// @Produce json
// @Param company_id path string true "Company ID"
// @Param fiscal_year_id path string true "Fiscal year ID"
// @Success 200 {object} dto.FiscalYearResponse
// @Failure 404 {object} map[string]string "Fiscal year not found"
// @Failure 409 {object} map[string]string "Already closed, earlier year open or drafts remain"
// @Security BearerAuth
// @Router /companies/{company_id}/fiscal-years/{fiscal_year_id}/close [post]
func (h *fiscalYearHandler) closeFiscalYear(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	fy, err := h.fiscalYearService.CloseFiscalYear(c.Request.Context(), c.Param("company_id"), c.Param("fiscal_year_id"), userID)
	if err != nil {
		respondError(c, err, "Failed to close fiscal year")
		return
	}
	c.JSON(http.StatusOK, dto.ToFiscalYearResponse(fy))
}
