package domain

import (
	"time"

	"github.com/SscSPs/ohada_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// StatementType identifies one of the three derived financial statements.
type StatementType string

const (
	BalanceSheet    StatementType = "BALANCE_SHEET"
	IncomeStatement StatementType = "INCOME_STATEMENT"
	CashFlow        StatementType = "CASH_FLOW"
)

// StatementStatus is the review state of a generated statement document.
type StatementStatus string

const (
	StatementDraft StatementStatus = "DRAFT"
	StatementFinal StatementStatus = "FINAL"
)

// StatementLineRule maps one statement line code to account-number prefixes.
type StatementLineRule struct {
	LineCode         string
	Label            string
	Section          string
	Patterns         []string
	ContraPatterns   []string // Amortization and depreciation accounts netted against the line
	PresentationSign int      // +1 keeps the debit-positive balance, -1 flips it
}

// StatementLineValue is the presented value of one line for the current and prior period.
type StatementLineValue struct {
	LineCode string           `json:"lineCode"`
	Label    string           `json:"label"`
	Section  string           `json:"section,omitempty"`
	Gross    *decimal.Decimal `json:"gross,omitempty"`
	Contra   *decimal.Decimal `json:"contra,omitempty"`
	Current  decimal.Decimal  `json:"current"`
	Prior    decimal.Decimal  `json:"prior"`
}

// FinancialStatement is one generated statement document. It is never mutated after generation.
type FinancialStatement struct {
	StatementID        string                                 `json:"statementID"`
	CompanyID          string                                 `json:"companyID"`
	FiscalYearID       string                                 `json:"fiscalYearID"`
	Type               StatementType                          `json:"type"`
	AccountingStandard AccountingStandard                     `json:"accountingStandard"`
	RuleVersion        string                                 `json:"ruleVersion"`
	Status             StatementStatus                        `json:"status"`
	PeriodStart        time.Time                              `json:"periodStart"`
	PeriodEnd          time.Time                              `json:"periodEnd"`
	Lines              []StatementLineValue                   `json:"lines"`
	Totals             []StatementLineValue                   `json:"totals"`
	Warnings           []apperrors.UnclassifiedAccountWarning `json:"warnings,omitempty"`
	GeneratedAt        time.Time                              `json:"generatedAt"`
	GeneratedBy        string                                 `json:"generatedBy"`
}

// Total returns the named derived total, if present.
func (s FinancialStatement) Total(code string) (StatementLineValue, bool) {
	for _, t := range s.Totals {
		if t.LineCode == code {
			return t, true
		}
	}
	return StatementLineValue{}, false
}

// Line returns the line with the given code, if present.
func (s FinancialStatement) Line(code string) (StatementLineValue, bool) {
	for _, l := range s.Lines {
		if l.LineCode == code {
			return l, true
		}
	}
	return StatementLineValue{}, false
}
