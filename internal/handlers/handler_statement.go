package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/SscSPs/ohada_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/ohada_ledger/internal/core/ports/services"
	"github.com/SscSPs/ohada_ledger/internal/dto"
	"github.com/SscSPs/ohada_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type generateFunc func(ctx context.Context, companyID, fiscalYearID string, standard domain.AccountingStandard, userID string) (*domain.FinancialStatement, error)

// statementHandler handles generation and retrieval of financial statements.
type statementHandler struct {
	statementService portssvc.StatementSvcFacade
}

func registerStatementRoutes(rg *gin.RouterGroup, statementService portssvc.StatementSvcFacade) {
	h := &statementHandler{statementService: statementService}

	generate := rg.Group("/fiscal-years/:fiscal_year_id/statements")
	{
		generate.POST("/balance-sheet", h.generateBalanceSheet)
		generate.POST("/income-statement", h.generateIncomeStatement)
		generate.POST("/cash-flow", h.generateCashFlow)
	}

	statements := rg.Group("/statements")
	{
		statements.GET("", h.listStatements)
		statements.GET("/:statement_id", h.getStatement)
	}
}

func (h *statementHandler) generate(c *gin.Context, fn generateFunc, kind string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.GenerateStatementParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for statement generation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	standard := domain.StandardSYSCOHADA
	if params.Standard != "" {
		standard = domain.AccountingStandard(params.Standard)
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	statement, err := fn(c.Request.Context(), c.Param("company_id"), c.Param("fiscal_year_id"), standard, userID)
	if err != nil {
		respondError(c, err, "Failed to generate "+kind)
		return
	}

	logger.Info("Statement generated", slog.String("statement_id", statement.StatementID), slog.String("type", string(statement.Type)))
	c.JSON(http.StatusCreated, dto.ToStatementResponse(statement))
}

// generateBalanceSheet godoc
// @Summary Generate a balance sheet
// @Description Derives the balance sheet of a fiscal year from validated lines, with the prior year as comparative
// @Tags statements
// @Produce json
// @Param company_id path string true "Company ID"
// @Param fiscal_year_id path string true "Fiscal year ID"
// @Param standard query string false "Accounting standard" default(SYSCOHADA)
// @Success 201 {object} dto.StatementResponse
// @Failure 400 {object} map[string]string "Unsupported standard"
// @Failure 404 {object} map[string]string "Fiscal year not found"
// @Security BearerAuth
// @Router /companies/{company_id}/fiscal-years/{fiscal_year_id}/statements/balance-sheet [post]
func (h *statementHandler) generateBalanceSheet(c *gin.Context) {
	h.generate(c, h.statementService.GenerateBalanceSheet, "balance sheet")
}

// generateIncomeStatement godoc
// @Summary Generate an income statement
// @Tags statements
// @Produce json
// @Param company_id path string true "Company ID"
// @Param fiscal_year_id path string true "Fiscal year ID"
// @Param standard query string false "Accounting standard" default(SYSCOHADA)
// @Success 201 {object} dto.StatementResponse
// @Failure 400 {object} map[string]string "Unsupported standard"
// @Failure 404 {object} map[string]string "Fiscal year not found"
// @Security BearerAuth
// @Router /companies/{company_id}/fiscal-years/{fiscal_year_id}/statements/income-statement [post]
func (h *statementHandler) generateIncomeStatement(c *gin.Context) {
	h.generate(c, h.statementService.GenerateIncomeStatement, "income statement")
}

// generateCashFlow godoc
// @Summary Generate a cash flow statement
// @Description Requires the balance sheet of the prior fiscal year
// @Tags statements
// @Produce json
// @Param company_id path string true "Company ID"
// @Param fiscal_year_id path string true "Fiscal year ID"
// @Param standard query string false "Accounting standard" default(SYSCOHADA)
// @Success 201 {object} dto.StatementResponse
// @Failure 404 {object} map[string]string "Fiscal year not found"
// @Failure 422 {object} map[string]string "Prior fiscal year missing"
// @Security BearerAuth
// @Router /companies/{company_id}/fiscal-years/{fiscal_year_id}/statements/cash-flow [post]
func (h *statementHandler) generateCashFlow(c *gin.Context) {
	h.generate(c, h.statementService.GenerateCashFlowStatement, "cash flow statement")
}

// getStatement godoc
// @Summary Get a generated statement
// @Tags statements
// @Produce json
// @Param company_id path string true "Company ID"
// @Param statement_id path string true "Statement ID"
// @Success 200 {object} dto.StatementResponse
// @Failure 404 {object} map[string]string "Statement not found"
// @Security BearerAuth
// @Router /companies/{company_id}/statements/{statement_id} [get]
func (h *statementHandler) getStatement(c *gin.Context) {
	statement, err := h.statementService.GetStatement(c.Request.Context(), c.Param("company_id"), c.Param("statement_id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve statement")
		return
	}
	c.JSON(http.StatusOK, dto.ToStatementResponse(statement))
}

// listStatements godoc
// @Summary List generated statements
// @Tags statements
// @Produce json
// @Param company_id path string true "Company ID"
// @Param fiscalYearId query string false "Fiscal year ID"
// @Success 200 {object} dto.ListStatementsResponse
// @Security BearerAuth
// @Router /companies/{company_id}/statements [get]
func (h *statementHandler) listStatements(c *gin.Context) {
	var params dto.ListStatementsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	list, err := h.statementService.ListStatements(c.Request.Context(), c.Param("company_id"), params.FiscalYearID)
	if err != nil {
		respondError(c, err, "Failed to list statements")
		return
	}
	c.JSON(http.StatusOK, dto.ToListStatementsResponse(list))
}
