package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ohada_ledger/internal/core/domain"
)

// FiscalYearRepository defines persistence operations for fiscal years
type FiscalYearRepository interface {
	SaveFiscalYear(ctx context.Context, fy domain.FiscalYear) error
	FindFiscalYearByID(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error)
	// FindFiscalYearByDate returns the fiscal year of a company containing the given day.
	FindFiscalYearByDate(ctx context.Context, companyID string, day time.Time) (*domain.FiscalYear, error)
	// FindPreviousFiscalYear returns the fiscal year ending right before fy starts, or ErrNotFound.
	FindPreviousFiscalYear(ctx context.Context, fy domain.FiscalYear) (*domain.FiscalYear, error)
	ListFiscalYears(ctx context.Context, companyID string) ([]domain.FiscalYear, error)
	UpdateFiscalYearStatus(ctx context.Context, fiscalYearID string, status domain.FiscalYearStatus, updatedBy string, updatedAt time.Time) error
}
