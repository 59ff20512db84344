package models

import "time"

// FiscalYear is a row of the fiscal_years table.
type FiscalYear struct {
	FiscalYearID string    `db:"fiscal_year_id"`
	CompanyID    string    `db:"company_id"`
	Label        string    `db:"label"`
	StartDate    time.Time `db:"start_date"`
	EndDate      time.Time `db:"end_date"`
	Status       string    `db:"status"`
	AuditFields
}
