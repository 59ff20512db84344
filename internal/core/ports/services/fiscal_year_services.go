package services

import (
	"context"

	"github.com/SscSPs/ohada_ledger/internal/core/domain"
	"github.com/SscSPs/ohada_ledger/internal/dto"
)

// FiscalYearSvc manages the reporting periods of a company.
type FiscalYearSvc interface {
	CreateFiscalYear(ctx context.Context, companyID string, req dto.CreateFiscalYearRequest, userID string) (*domain.FiscalYear, error)
	GetFiscalYear(ctx context.Context, companyID, fiscalYearID string) (*domain.FiscalYear, error)
	ListFiscalYears(ctx context.Context, companyID string) ([]domain.FiscalYear, error)
	// CloseFiscalYear stops postings into the fiscal year. Closing is final.
	CloseFiscalYear(ctx context.Context, companyID, fiscalYearID string, userID string) (*domain.FiscalYear, error)
}
