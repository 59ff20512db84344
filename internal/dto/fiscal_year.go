package dto

import (
	"time"

	"github.com/SscSPs/ohada_ledger/internal/core/domain"
)

// CreateFiscalYearRequest defines data for opening a fiscal year.
type CreateFiscalYearRequest struct {
	Label     string    `json:"label" binding:"required,max=50"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required,gtfield=StartDate"`
}

// FiscalYearResponse defines data returned for a fiscal year.
type FiscalYearResponse struct {
	FiscalYearID string    `json:"fiscalYearID"`
	CompanyID    string    `json:"companyID"`
	Label        string    `json:"label"`
	StartDate    string    `json:"startDate"`
	EndDate      string    `json:"endDate"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	CreatedBy    string    `json:"createdBy"`
}

// ToFiscalYearResponse converts domain.FiscalYear to DTO.
func ToFiscalYearResponse(f *domain.FiscalYear) FiscalYearResponse {
	return FiscalYearResponse{
		FiscalYearID: f.FiscalYearID,
		CompanyID:    f.CompanyID,
		Label:        f.Label,
		StartDate:    f.StartDate.Format("2006-01-02"),
		EndDate:      f.EndDate.Format("2006-01-02"),
		Status:       string(f.Status),
		CreatedAt:    f.CreatedAt,
		CreatedBy:    f.CreatedBy,
	}
}

// ListFiscalYearsResponse wraps a list of fiscal years.
type ListFiscalYearsResponse struct {
	FiscalYears []FiscalYearResponse `json:"fiscalYears"`
}

// ToListFiscalYearsResponse converts a slice of domain.FiscalYear to DTO.
func ToListFiscalYearsResponse(fs []domain.FiscalYear) ListFiscalYearsResponse {
	list := make([]FiscalYearResponse, len(fs))
	for i, f := range fs {
		list[i] = ToFiscalYearResponse(&f)
	}
	return ListFiscalYearsResponse{FiscalYears: list}
}
