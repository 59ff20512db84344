package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/SscSPs/ohada_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/ohada_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

// --- Mock JournalEntryRepository ---
type MockJournalEntryRepository struct {
	mock.Mock
}

var _ portsrepo.JournalEntryRepositoryWithTx = (*MockJournalEntryRepository)(nil)

func (m *MockJournalEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	// Hand out a copy so the service cannot mutate the fixture between calls.
	entry := *args.Get(0).(*domain.JournalEntry)
	return &entry, args.Error(1)
}

func (m *MockJournalEntryRepository) ListEntries(ctx context.Context, filter domain.EntryFilter) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var next *string
	if args.Get(1) != nil {
		token := args.Get(1).(string)
		next = &token
	}
	return args.Get(0).([]domain.JournalEntry), next, args.Error(2)
}

func (m *MockJournalEntryRepository) FindEntriesByDateRange(ctx context.Context, companyID string, from, to time.Time) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, companyID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.AccountEntry) error {
	args := m.Called(ctx, entry, lines)
	return args.Error(0)
}

func (m *MockJournalEntryRepository) TransitionStatus(ctx context.Context, t domain.StatusTransition) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockJournalEntryRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.AccountEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.AccountEntry, error) {
	args := m.Called(ctx, entryIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]domain.AccountEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) ListAccountEntries(ctx context.Context, companyID string, filter domain.AccountEntryFilter) ([]domain.AccountEntry, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockJournalEntryRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockJournalEntryRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetAccountBalances(ctx context.Context, companyID string, from *time.Time, to time.Time) (domain.AccountBalances, error) {
	args := m.Called(ctx, companyID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.AccountBalances), args.Error(1)
}

func (m *MockReportingRepository) GetTrialBalance(ctx context.Context, companyID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, companyID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

// --- Mock FiscalYearRepository ---
type MockFiscalYearRepository struct {
	mock.Mock
}

var _ portsrepo.FiscalYearRepository = (*MockFiscalYearRepository)(nil)

func (m *MockFiscalYearRepository) SaveFiscalYear(ctx context.Context, fy domain.FiscalYear) error {
	return m.Called(ctx, fy).Error(0)
}

func (m *MockFiscalYearRepository) FindFiscalYearByID(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error) {
	args := m.Called(ctx, fiscalYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	fy := *args.Get(0).(*domain.FiscalYear)
	return &fy, args.Error(1)
}

func (m *MockFiscalYearRepository) FindFiscalYearByDate(ctx context.Context, companyID string, day time.Time) (*domain.FiscalYear, error) {
	args := m.Called(ctx, companyID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	fy := *args.Get(0).(*domain.FiscalYear)
	return &fy, args.Error(1)
}

func (m *MockFiscalYearRepository) FindPreviousFiscalYear(ctx context.Context, fy domain.FiscalYear) (*domain.FiscalYear, error) {
	args := m.Called(ctx, fy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	prev := *args.Get(0).(*domain.FiscalYear)
	return &prev, args.Error(1)
}

func (m *MockFiscalYearRepository) ListFiscalYears(ctx context.Context, companyID string) ([]domain.FiscalYear, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalYearRepository) UpdateFiscalYearStatus(ctx context.Context, fiscalYearID string, status domain.FiscalYearStatus, updatedBy string, updatedAt time.Time) error {
	return m.Called(ctx, fiscalYearID, status, updatedBy, updatedAt).Error(0)
}

// --- Mock StatementRepository ---
type MockStatementRepository struct {
	mock.Mock
}

var _ portsrepo.StatementRepository = (*MockStatementRepository)(nil)

func (m *MockStatementRepository) SaveStatement(ctx context.Context, statement domain.FinancialStatement) error {
	return m.Called(ctx, statement).Error(0)
}

func (m *MockStatementRepository) FindStatementByID(ctx context.Context, statementID string) (*domain.FinancialStatement, error) {
	args := m.Called(ctx, statementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialStatement), args.Error(1)
}

func (m *MockStatementRepository) ListStatements(ctx context.Context, companyID, fiscalYearID string) ([]domain.FinancialStatement, error) {
	args := m.Called(ctx, companyID, fiscalYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FinancialStatement), args.Error(1)
}

// memorySequenceRepository is an in-process sequence store for tests.
type memorySequenceRepository struct {
	mu     sync.Mutex
	values map[string]int64
}

var _ portsrepo.SequenceRepository = (*memorySequenceRepository)(nil)

func newMemorySequenceRepository() *memorySequenceRepository {
	return &memorySequenceRepository{values: make(map[string]int64)}
}

func (r *memorySequenceRepository) NextValue(_ context.Context, scopeKey string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[scopeKey]++
	return r.values[scopeKey], nil
}
