package dto

import (
	"time"

	"github.com/SscSPs/ohada_ledger/internal/apperrors"
	"github.com/SscSPs/ohada_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// GenerateStatementParams holds query parameters of a generation request.
type GenerateStatementParams struct {
	Standard string `form:"standard" binding:"omitempty,oneof=SYSCOHADA IFRS"`
}

// ListStatementsParams holds query parameters for listing statements.
type ListStatementsParams struct {
	FiscalYearID string `form:"fiscalYearId" binding:"omitempty,uuid"`
}

// StatementLineResponse is one line or total of a statement.
type StatementLineResponse struct {
	LineCode string           `json:"lineCode"`
	Label    string           `json:"label"`
	Section  string           `json:"section"`
	Gross    *decimal.Decimal `json:"gross,omitempty" swaggertype:"string"`
	Contra   *decimal.Decimal `json:"contra,omitempty" swaggertype:"string"`
	Current  decimal.Decimal  `json:"current" swaggertype:"string"`
	Prior    decimal.Decimal  `json:"prior" swaggertype:"string"`
}

// StatementResponse defines the data returned for a generated statement.
type StatementResponse struct {
	StatementID        string                                 `json:"statementID"`
	CompanyID          string                                 `json:"companyID"`
	FiscalYearID       string                                 `json:"fiscalYearID"`
	Type               string                                 `json:"type"`
	AccountingStandard string                                 `json:"accountingStandard"`
	RuleVersion        string                                 `json:"ruleVersion"`
	Status             string                                 `json:"status"`
	PeriodStart        string                                 `json:"periodStart"`
	PeriodEnd          string                                 `json:"periodEnd"`
	Lines              []StatementLineResponse                `json:"lines,omitempty"`
	Totals             []StatementLineResponse                `json:"totals,omitempty"`
	Warnings           []apperrors.UnclassifiedAccountWarning `json:"warnings"`
	GeneratedAt        time.Time                              `json:"generatedAt"`
	GeneratedBy        string                                 `json:"generatedBy"`
}

// ListStatementsResponse wraps a list of statement headers.
type ListStatementsResponse struct {
	Statements []StatementResponse `json:"statements"`
}

func toStatementLineResponses(values []domain.StatementLineValue) []StatementLineResponse {
	out := make([]StatementLineResponse, len(values))
	for i, v := range values {
		out[i] = StatementLineResponse{
			LineCode: v.LineCode,
			Label:    v.Label,
			Section:  v.Section,
			Gross:    v.Gross,
			Contra:   v.Contra,
			Current:  v.Current,
			Prior:    v.Prior,
		}
	}
	return out
}

// ToStatementResponse converts a domain.FinancialStatement to DTO.
func ToStatementResponse(s *domain.FinancialStatement) StatementResponse {
	warnings := s.Warnings
	if warnings == nil {
		warnings = []apperrors.UnclassifiedAccountWarning{}
	}
	return StatementResponse{
		StatementID:        s.StatementID,
		CompanyID:          s.CompanyID,
		FiscalYearID:       s.FiscalYearID,
		Type:               string(s.Type),
		AccountingStandard: string(s.AccountingStandard),
		RuleVersion:        s.RuleVersion,
		Status:             string(s.Status),
		PeriodStart:        s.PeriodStart.Format("2006-01-02"),
		PeriodEnd:          s.PeriodEnd.Format("2006-01-02"),
		Lines:              toStatementLineResponses(s.Lines),
		Totals:             toStatementLineResponses(s.Totals),
		Warnings:           warnings,
		GeneratedAt:        s.GeneratedAt,
		GeneratedBy:        s.GeneratedBy,
	}
}

// ToListStatementsResponse converts statement headers to DTO.
func ToListStatementsResponse(list []domain.FinancialStatement) ListStatementsResponse {
	out := make([]StatementResponse, len(list))
	for i := range list {
		out[i] = ToStatementResponse(&list[i])
	}
	return ListStatementsResponse{Statements: out}
}
