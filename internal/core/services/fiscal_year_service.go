package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/ohada_ledger/internal/apperrors"
	"github.com/SscSPs/ohada_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/ohada_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ohada_ledger/internal/core/ports/services"
	"github.com/SscSPs/ohada_ledger/internal/dto"
)

var (
	ErrFiscalYearOverlap     = errors.New("fiscal year overlaps an existing fiscal year")
	ErrFiscalYearHasDrafts   = errors.New("fiscal year still has draft entries")
	ErrFiscalYearAlreadyShut = errors.New("fiscal year is already closed")
	ErrEarlierFiscalYearOpen = errors.New("an earlier fiscal year is still open")
	ErrFiscalYearBeforeShut  = errors.New("fiscal year would precede a closed fiscal year")
)

type fiscalYearService struct {
	BaseService
	fiscalYearRepo portsrepo.FiscalYearRepository
	entryRepo      portsrepo.JournalEntryReader
	now            func() time.Time
}

// NewFiscalYearService creates a new FiscalYearSvc.
func NewFiscalYearService(fiscalYearRepo portsrepo.FiscalYearRepository, entryRepo portsrepo.JournalEntryReader) portssvc.FiscalYearSvc {
	return &fiscalYearService{
		fiscalYearRepo: fiscalYearRepo,
		entryRepo:      entryRepo,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

var _ portssvc.FiscalYearSvc = (*fiscalYearService)(nil)

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CreateFiscalYear opens a new fiscal year. Fiscal years of a company never overlap.
func (s *fiscalYearService) CreateFiscalYear(ctx context.Context, companyID string, req dto.CreateFiscalYearRequest, userID string) (*domain.FiscalYear, error) {
	start, end := dayOf(req.StartDate), dayOf(req.EndDate)
	if !end.After(start) {
		return nil, fmt.Errorf("%w: end date must be after start date", apperrors.ErrValidation)
	}

	existing, err := s.fiscalYearRepo.ListFiscalYears(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list fiscal years")
		return nil, fmt.Errorf("failed to list fiscal years: %w", err)
	}
	for _, other := range existing {
		if !start.After(dayOf(other.EndDate)) && !end.Before(dayOf(other.StartDate)) {
			s.LogWarn(ctx, "Fiscal year overlaps", slog.String("existing", other.FiscalYearID))
			return nil, fmt.Errorf("%w: %w (%s)", apperrors.ErrConflict, ErrFiscalYearOverlap, other.Label)
		}
		// Postings into it would change the cumulative balances of the closed year.
		if other.Status == domain.FiscalYearClosed && dayOf(other.StartDate).After(end) {
			return nil, fmt.Errorf("%w: %w (%s)", apperrors.ErrConflict, ErrFiscalYearBeforeShut, other.Label)
		}
	}

	now := s.now()
	fy := domain.FiscalYear{
		FiscalYearID: uuid.NewString(),
		CompanyID:    companyID,
		Label:        strings.TrimSpace(req.Label),
		StartDate:    start,
		EndDate:      end,
		Status:       domain.FiscalYearOpen,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.fiscalYearRepo.SaveFiscalYear(ctx, fy); err != nil {
		s.LogError(ctx, err, "Failed to save fiscal year")
		return nil, fmt.Errorf("failed to save fiscal year: %w", err)
	}

	s.LogInfo(ctx, "Fiscal year created", slog.String("fiscal_year_id", fy.FiscalYearID), slog.String("label", fy.Label))
	return &fy, nil
}

// GetFiscalYear retrieves a fiscal year of the company.
func (s *fiscalYearService) GetFiscalYear(ctx context.Context, companyID, fiscalYearID string) (*domain.FiscalYear, error) {
	fy, err := s.fiscalYearRepo.FindFiscalYearByID(ctx, fiscalYearID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureCompany(ctx, fy.CompanyID, companyID, "fiscal year", fiscalYearID); err != nil {
		return nil, err
	}
	return fy, nil
}

func (s *fiscalYearService) ListFiscalYears(ctx context.Context, companyID string) ([]domain.FiscalYear, error) {
	list, err := s.fiscalYearRepo.ListFiscalYears(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list fiscal years")
		return nil, fmt.Errorf("failed to list fiscal years: %w", err)
	}
	return list, nil
}

// CloseFiscalYear closes an OPEN fiscal year once every earlier fiscal year is closed and no DRAFT
// entry is left in it.
func (s *fiscalYearService) CloseFiscalYear(ctx context.Context, companyID, fiscalYearID string, userID string) (*domain.FiscalYear, error) {
	fy, err := s.GetFiscalYear(ctx, companyID, fiscalYearID)
	if err != nil {
		return nil, err
	}
	if fy.Status == domain.FiscalYearClosed {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrFiscalYearAlreadyShut)
	}

	years, err := s.fiscalYearRepo.ListFiscalYears(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list fiscal years")
		return nil, fmt.Errorf("failed to list fiscal years: %w", err)
	}
	for _, earlier := range years {
		if earlier.Status == domain.FiscalYearOpen && earlier.EndDate.Before(fy.StartDate) {
			s.LogWarn(ctx, "Earlier fiscal year still open", slog.String("fiscal_year_id", fiscalYearID), slog.String("earlier", earlier.FiscalYearID))
			return nil, fmt.Errorf("%w: %w (%s)", apperrors.ErrConflict, ErrEarlierFiscalYearOpen, earlier.Label)
		}
	}

	draft := domain.StatusDraft
	drafts, _, err := s.entryRepo.ListEntries(ctx, domain.EntryFilter{
		CompanyID: companyID,
		Status:    &draft,
		FromDate:  &fy.StartDate,
		ToDate:    &fy.EndDate,
		Limit:     1,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to look up draft entries", slog.String("fiscal_year_id", fiscalYearID))
		return nil, fmt.Errorf("failed to look up draft entries: %w", err)
	}
	if len(drafts) > 0 {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrFiscalYearHasDrafts)
	}

	now := s.now()
	if err := s.fiscalYearRepo.UpdateFiscalYearStatus(ctx, fiscalYearID, domain.FiscalYearClosed, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to close fiscal year", slog.String("fiscal_year_id", fiscalYearID))
		return nil, fmt.Errorf("failed to close fiscal year: %w", err)
	}

	fy.Status = domain.FiscalYearClosed
	fy.LastUpdatedAt = now
	fy.LastUpdatedBy = userID
	s.LogInfo(ctx, "Fiscal year closed", slog.String("fiscal_year_id", fiscalYearID))
	return fy, nil
}
