package models

import "time"

// FinancialStatement is a row of the financial_statements table. Lines, totals and
// warnings are stored as JSONB documents.
type FinancialStatement struct {
	StatementID        string    `db:"statement_id"`
	CompanyID          string    `db:"company_id"`
	FiscalYearID       string    `db:"fiscal_year_id"`
	StatementType      string    `db:"statement_type"`
	AccountingStandard string    `db:"accounting_standard"`
	RuleVersion        string    `db:"rule_version"`
	Status             string    `db:"status"`
	PeriodStart        time.Time `db:"period_start"`
	PeriodEnd          time.Time `db:"period_end"`
	Lines              []byte    `db:"lines"`
	Totals             []byte    `db:"totals"`
	Warnings           []byte    `db:"warnings"`
	GeneratedAt        time.Time `db:"generated_at"`
	GeneratedBy        string    `db:"generated_by"`
}
