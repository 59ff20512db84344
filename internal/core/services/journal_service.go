package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/SscSPs/ohada_ledger/internal/apperrors"
	"github.com/SscSPs/ohada_ledger/internal/core/classification"
	"github.com/SscSPs/ohada_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/ohada_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ohada_ledger/internal/core/ports/services"
	"github.com/SscSPs/ohada_ledger/internal/dto"
	"github.com/SscSPs/ohada_ledger/internal/utils/accounting"
)

var (
	ErrFiscalYearClosed      = errors.New("fiscal year is closed")
	ErrDateOutsideFiscalYear = errors.New("entry date is outside the fiscal year")
	ErrNoFiscalYear          = errors.New("no fiscal year covers the entry date")
	ErrDescriptionMissing    = errors.New("entry description is required")
	ErrReverseReversal       = errors.New("cannot reverse an entry that is itself a reversal")
)

const (
	defaultEntryPageSize   = 20
	defaultLinePageSize    = 100
	reversalDescriptionFmt = "Reversal of %s: %s"
)

// journalEntryService implements the journal entry lifecycle.
type journalEntryService struct {
	BaseService
	entryRepo      portsrepo.JournalEntryRepositoryWithTx
	reportingRepo  portsrepo.ReportingRepository
	fiscalYearRepo portsrepo.FiscalYearRepository
	numbering      portssvc.NumberingSvc
	rules          *classification.Registry
	policy         *bluemonday.Policy
	now            func() time.Time
}

// JournalEntryServiceOption configures optional dependencies of the journal entry service.
type JournalEntryServiceOption func(*journalEntryService)

// WithDescriptionPolicy replaces the sanitizing policy applied to free-text fields.
func WithDescriptionPolicy(policy *bluemonday.Policy) JournalEntryServiceOption {
	return func(s *journalEntryService) {
		s.policy = policy
	}
}

// WithJournalClock replaces the clock used for audit and validation timestamps.
func WithJournalClock(now func() time.Time) JournalEntryServiceOption {
	return func(s *journalEntryService) {
		s.now = now
	}
}

// NewJournalEntryService creates a new JournalEntrySvcFacade.
func NewJournalEntryService(
	entryRepo portsrepo.JournalEntryRepositoryWithTx,
	reportingRepo portsrepo.ReportingRepository,
	fiscalYearRepo portsrepo.FiscalYearRepository,
	numbering portssvc.NumberingSvc,
	rules *classification.Registry,
	opts ...JournalEntryServiceOption,
) portssvc.JournalEntrySvcFacade {
	s := &journalEntryService{
		entryRepo:      entryRepo,
		reportingRepo:  reportingRepo,
		fiscalYearRepo: fiscalYearRepo,
		numbering:      numbering,
		rules:          rules,
		policy:         bluemonday.StrictPolicy(),
		now:            func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.JournalEntrySvcFacade = (*journalEntryService)(nil)

func (s *journalEntryService) sanitize(text string) string {
	return strings.TrimSpace(s.policy.Sanitize(text))
}

// sanitizeRef sanitizes an optional reference; nothing left means no reference.
func (s *journalEntryService) sanitizeRef(ref *string) *string {
	if ref == nil {
		return nil
	}
	clean := s.sanitize(*ref)
	if clean == "" {
		return nil
	}
	return &clean
}

// CreateEntry validates the lines, obtains an entry number and persists the entry as DRAFT.
func (s *journalEntryService) CreateEntry(ctx context.Context, companyID string, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	logger := s.GetLogger(ctx).With(slog.String("company_id", companyID))

	if companyID == "" {
		return nil, fmt.Errorf("%w: company ID is required", apperrors.ErrValidation)
	}

	format, err := s.rules.AccountFormat(req.AccountingStandard)
	if err != nil {
		logger.Warn("Unknown accounting standard", slog.String("standard", string(req.AccountingStandard)))
		return nil, err
	}

	fy, err := s.resolveFiscalYear(ctx, companyID, req.FiscalYearID, req.EntryDate)
	if err != nil {
		return nil, err
	}

	description := s.sanitize(req.Description)
	if description == "" {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrDescriptionMissing)
	}

	now := s.now()
	entry := domain.JournalEntry{
		EntryID:            uuid.NewString(),
		CompanyID:          companyID,
		FiscalYearID:       fy.FiscalYearID,
		EntryDate:          req.EntryDate,
		JournalType:        req.JournalType,
		Description:        description,
		Reference:          s.sanitize(req.Reference),
		CurrencyCode:       strings.ToUpper(req.CurrencyCode),
		CountryCode:        strings.ToUpper(req.CountryCode),
		AccountingStandard: req.AccountingStandard,
		Status:             domain.StatusDraft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	tags := entry.Tags()
	lines := make([]domain.AccountEntry, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = domain.AccountEntry{
			LineID:        uuid.NewString(),
			EntryID:       entry.EntryID,
			LineNumber:    i + 1,
			AccountNumber: strings.TrimSpace(l.AccountNumber),
			AccountName:   s.sanitize(l.AccountName),
			Side:          l.Side,
			Amount:        l.Amount,
			Description:   s.sanitize(l.Description),
			ThirdPartyRef: s.sanitizeRef(l.ThirdPartyRef),
			EntryTags:     tags,
		}
	}

	if err := accounting.ValidateEntry(lines, entry.AccountingStandard, format); err != nil {
		logger.Warn("Journal entry rejected", slog.String("error", err.Error()))
		return nil, err
	}
	entry.TotalDebit, entry.TotalCredit = accounting.Totals(lines)

	return s.numberAndSave(ctx, entry, lines)
}

// numberAndSave assigns the next entry number and persists header and lines atomically.
func (s *journalEntryService) numberAndSave(ctx context.Context, entry domain.JournalEntry, lines []domain.AccountEntry) (*domain.JournalEntry, error) {
	number, err := s.numbering.NextEntryNumber(ctx, entry.CompanyID, entry.EntryDate)
	if err != nil {
		s.LogError(ctx, err, "Failed to number journal entry", slog.String("entry_id", entry.EntryID))
		return nil, err
	}
	entry.EntryNumber = number

	if err := s.entryRepo.SaveEntry(ctx, entry, lines); err != nil {
		s.LogError(ctx, err, "Failed to save journal entry", slog.String("entry_id", entry.EntryID), slog.String("entry_number", number))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	s.LogInfo(ctx, "Journal entry created",
		slog.String("entry_id", entry.EntryID),
		slog.String("entry_number", number),
		slog.Int("line_count", len(lines)))
	entry.Lines = lines
	return &entry, nil
}

// resolveFiscalYear finds the open fiscal year the entry date belongs to.
func (s *journalEntryService) resolveFiscalYear(ctx context.Context, companyID, fiscalYearID string, date time.Time) (*domain.FiscalYear, error) {
	var (
		fy  *domain.FiscalYear
		err error
	)
	if fiscalYearID != "" {
		fy, err = s.fiscalYearRepo.FindFiscalYearByID(ctx, fiscalYearID)
		if err != nil {
			return nil, err
		}
		if err := s.ensureCompany(ctx, fy.CompanyID, companyID, "fiscal year", fiscalYearID); err != nil {
			return nil, err
		}
	} else {
		fy, err = s.fiscalYearRepo.FindFiscalYearByDate(ctx, companyID, date)
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %w (%s)", apperrors.ErrValidation, ErrNoFiscalYear, date.Format("2006-01-02"))
		}
		if err != nil {
			return nil, err
		}
	}

	if !fy.Contains(date) {
		return nil, fmt.Errorf("%w: %w: %s not in %s", apperrors.ErrValidation, ErrDateOutsideFiscalYear, date.Format("2006-01-02"), fy.Label)
	}
	if fy.Status == domain.FiscalYearClosed {
		return nil, fmt.Errorf("%w: %w: %s", apperrors.ErrConflict, ErrFiscalYearClosed, fy.Label)
	}
	return fy, nil
}

// loadEntry fetches an entry header and hides entries of other companies.
func (s *journalEntryService) loadEntry(ctx context.Context, companyID, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}
	if err := s.ensureCompany(ctx, entry.CompanyID, companyID, "journal entry", entryID); err != nil {
		return nil, err
	}
	return entry, nil
}

// transition applies a conditional status change. A lost race is reported as a StateError
// carrying the status that won.
func (s *journalEntryService) transition(ctx context.Context, entry *domain.JournalEntry, t domain.StatusTransition, action string) error {
	err := s.entryRepo.TransitionStatus(ctx, t)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrConflict) {
		s.LogError(ctx, err, "Failed to update journal entry status", slog.String("entry_id", entry.EntryID), slog.String("action", action))
		return fmt.Errorf("failed to %s journal entry: %w", action, err)
	}

	status := entry.Status
	if current, ferr := s.entryRepo.FindEntryByID(ctx, entry.EntryID); ferr == nil {
		status = current.Status
	}
	s.LogWarn(ctx, "Concurrent status change detected", slog.String("entry_id", entry.EntryID), slog.String("status", string(status)))
	return &apperrors.StateError{EntryID: entry.EntryID, Status: string(status), Action: action}
}

// ValidateEntry moves a DRAFT entry to VALIDATED after re-checking its persisted lines.
func (s *journalEntryService) ValidateEntry(ctx context.Context, companyID string, entryID string, validatorUserID string) (*domain.JournalEntry, error) {
	entry, err := s.loadEntry(ctx, companyID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.StatusDraft {
		return nil, &apperrors.StateError{EntryID: entryID, Status: string(entry.Status), Action: "validate"}
	}
	if _, err := s.resolveFiscalYear(ctx, companyID, entry.FiscalYearID, entry.EntryDate); err != nil {
		return nil, err
	}

	lines, err := s.entryRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch lines for validation", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to retrieve lines of entry %s: %w", entryID, err)
	}
	if err := accounting.ValidateBalance(lines); err != nil {
		s.LogWarn(ctx, "Persisted entry is unbalanced", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return nil, err
	}

	now := s.now()
	t := domain.StatusTransition{
		EntryID:     entryID,
		From:        domain.StatusDraft,
		To:          domain.StatusValidated,
		ValidatedBy: &validatorUserID,
		ValidatedAt: &now,
		UpdatedBy:   validatorUserID,
		UpdatedAt:   now,
	}
	if err := s.transition(ctx, entry, t, "validate"); err != nil {
		return nil, err
	}

	entry.Status = domain.StatusValidated
	entry.Posted = true
	entry.ValidatedBy = &validatorUserID
	entry.ValidatedAt = &now
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = validatorUserID
	entry.Lines = lines

	s.LogInfo(ctx, "Journal entry validated", slog.String("entry_id", entryID), slog.String("entry_number", entry.EntryNumber))
	return entry, nil
}

// CancelEntry moves a DRAFT entry to CANCELLED. Validated entries must be reversed instead.
func (s *journalEntryService) CancelEntry(ctx context.Context, companyID string, entryID string, userID string) (*domain.JournalEntry, error) {
	entry, err := s.loadEntry(ctx, companyID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.StatusDraft {
		return nil, &apperrors.StateError{EntryID: entryID, Status: string(entry.Status), Action: "cancel"}
	}

	now := s.now()
	t := domain.StatusTransition{
		EntryID:   entryID,
		From:      domain.StatusDraft,
		To:        domain.StatusCancelled,
		UpdatedBy: userID,
		UpdatedAt: now,
	}
	if err := s.transition(ctx, entry, t, "cancel"); err != nil {
		return nil, err
	}

	entry.Status = domain.StatusCancelled
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID

	s.LogInfo(ctx, "Journal entry cancelled", slog.String("entry_id", entryID))
	return entry, nil
}

// ReverseEntry creates a new DRAFT entry with every side of a VALIDATED entry swapped.
// The reversal is dated like the original and must itself be validated to take effect.
func (s *journalEntryService) ReverseEntry(ctx context.Context, companyID string, entryID string, userID string) (*domain.JournalEntry, error) {
	original, err := s.loadEntry(ctx, companyID, entryID)
	if err != nil {
		return nil, err
	}
	if original.Status != domain.StatusValidated {
		return nil, &apperrors.StateError{EntryID: entryID, Status: string(original.Status), Action: "reverse"}
	}
	if original.ReversalOfEntryID != nil {
		s.LogWarn(ctx, "Attempted to reverse a reversal", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrReverseReversal)
	}

	fy, err := s.resolveFiscalYear(ctx, companyID, original.FiscalYearID, original.EntryDate)
	if err != nil {
		return nil, err
	}

	originalLines, err := s.entryRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch original lines for reversal", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to retrieve lines of entry %s: %w", entryID, err)
	}

	now := s.now()
	reversal := domain.JournalEntry{
		EntryID:            uuid.NewString(),
		CompanyID:          original.CompanyID,
		FiscalYearID:       fy.FiscalYearID,
		EntryDate:          original.EntryDate,
		JournalType:        original.JournalType,
		Description:        fmt.Sprintf(reversalDescriptionFmt, original.EntryNumber, original.Description),
		Reference:          original.Reference,
		CurrencyCode:       original.CurrencyCode,
		CountryCode:        original.CountryCode,
		AccountingStandard: original.AccountingStandard,
		Status:             domain.StatusDraft,
		ReversalOfEntryID:  &original.EntryID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	tags := reversal.Tags()
	lines := make([]domain.AccountEntry, len(originalLines))
	for i, l := range originalLines {
		lines[i] = domain.AccountEntry{
			LineID:        uuid.NewString(),
			EntryID:       reversal.EntryID,
			LineNumber:    i + 1,
			AccountNumber: l.AccountNumber,
			AccountName:   l.AccountName,
			Side:          l.Side.Opposite(),
			Amount:        l.Amount,
			Description:   l.Description,
			ThirdPartyRef: l.ThirdPartyRef,
			EntryTags:     tags,
		}
	}

	if err := accounting.ValidateBalance(lines); err != nil {
		return nil, err
	}
	reversal.TotalDebit, reversal.TotalCredit = accounting.Totals(lines)

	created, err := s.numberAndSave(ctx, reversal, lines)
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Journal entry reversed", slog.String("entry_id", entryID), slog.String("reversal_entry_id", created.EntryID))
	return created, nil
}

// GetEntryByID retrieves an entry with its lines.
func (s *journalEntryService) GetEntryByID(ctx context.Context, companyID string, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.loadEntry(ctx, companyID, entryID)
	if err != nil {
		return nil, err
	}

	lines, err := s.entryRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch lines for entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to retrieve lines for entry %s: %w", entryID, apperrors.ErrInternal)
	}
	entry.Lines = lines

	s.LogDebug(ctx, "Journal entry retrieved", slog.String("entry_id", entryID), slog.Int("line_count", len(lines)))
	return entry, nil
}

// ListEntries retrieves a filtered page of entries of a company.
func (s *journalEntryService) ListEntries(ctx context.Context, companyID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	filter := params.ToEntryFilter(companyID)
	if filter.Limit <= 0 {
		filter.Limit = defaultEntryPageSize
	}
	if filter.FromDate != nil && filter.ToDate != nil && filter.FromDate.After(*filter.ToDate) {
		return nil, fmt.Errorf("%w: fromDate is after toDate", apperrors.ErrValidation)
	}

	entries, nextToken, err := s.entryRepo.ListEntries(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries")
		return nil, fmt.Errorf("failed to retrieve journal entries: %w", err)
	}

	var linesByEntry map[string][]domain.AccountEntry
	if params.IncludeLines && len(entries) > 0 {
		ids := make([]string, len(entries))
		for i, e := range entries {
			ids[i] = e.EntryID
		}
		linesByEntry, err = s.entryRepo.FindLinesByEntryIDs(ctx, ids)
		if err != nil {
			// The headers are still useful without their lines.
			s.LogWarn(ctx, "Failed to fetch lines for entries", slog.String("error", err.Error()))
		}
	}

	resp := &dto.ListEntriesResponse{
		Entries:   make([]dto.JournalEntryResponse, len(entries)),
		NextToken: nextToken,
	}
	for i := range entries {
		entries[i].Lines = linesByEntry[entries[i].EntryID]
		resp.Entries[i] = dto.ToJournalEntryResponse(&entries[i])
	}

	s.LogInfo(ctx, "Journal entries listed", slog.Int("count", len(entries)), slog.Bool("include_lines", params.IncludeLines))
	return resp, nil
}

// GetEntriesByDateRange retrieves every entry of a company dated within [from, to].
func (s *journalEntryService) GetEntriesByDateRange(ctx context.Context, companyID string, from, to time.Time) ([]domain.JournalEntry, error) {
	if from.After(to) {
		return nil, fmt.Errorf("%w: from date is after to date", apperrors.ErrValidation)
	}
	entries, err := s.entryRepo.FindEntriesByDateRange(ctx, companyID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch entries by date range")
		return nil, fmt.Errorf("failed to retrieve journal entries: %w", err)
	}
	return entries, nil
}

// ListAccountEntries retrieves ledger lines of a company.
func (s *journalEntryService) ListAccountEntries(ctx context.Context, companyID string, filter domain.AccountEntryFilter) ([]domain.AccountEntry, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultLinePageSize
	}
	lines, err := s.entryRepo.ListAccountEntries(ctx, companyID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list account entries", slog.String("account_prefix", filter.AccountPrefix))
		return nil, fmt.Errorf("failed to retrieve account entries: %w", err)
	}
	return lines, nil
}

// TrialBalance lists per-account totals of validated lines as of a date.
func (s *journalEntryService) TrialBalance(ctx context.Context, companyID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	if asOf.IsZero() {
		asOf = s.now()
	}
	rows, err := s.reportingRepo.GetTrialBalance(ctx, companyID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute trial balance", slog.Time("as_of", asOf))
		return nil, fmt.Errorf("failed to compute trial balance: %w", err)
	}
	return rows, nil
}
