package domain

import "time"

// FiscalYearStatus indicates whether postings are still accepted for a fiscal year.
type FiscalYearStatus string

const (
	FiscalYearOpen   FiscalYearStatus = "OPEN"
	FiscalYearClosed FiscalYearStatus = "CLOSED"
)

// FiscalYear is the reporting period statements are generated for.
type FiscalYear struct {
	FiscalYearID string           `json:"fiscalYearID"`
	CompanyID    string           `json:"companyID"`
	Label        string           `json:"label"`
	StartDate    time.Time        `json:"startDate"`
	EndDate      time.Time        `json:"endDate"` // Inclusive
	Status       FiscalYearStatus `json:"status"`
	AuditFields
}

// Contains reports whether the calendar day of t falls inside the fiscal year.
func (f FiscalYear) Contains(t time.Time) bool {
	day := truncateDay(t)
	return !day.Before(truncateDay(f.StartDate)) && !day.After(truncateDay(f.EndDate))
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
