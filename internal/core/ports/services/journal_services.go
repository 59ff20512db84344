package services

import (
	"context"
	"time"

	"github.com/SscSPs/ohada_ledger/internal/core/domain"
	"github.com/SscSPs/ohada_ledger/internal/dto"
)

// JournalEntryReaderSvc defines read operations for journal entries
type JournalEntryReaderSvc interface {
	// GetEntryByID retrieves an entry of a company with its lines.
	GetEntryByID(ctx context.Context, companyID string, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a paginated, filtered list of entries of a company.
	ListEntries(ctx context.Context, companyID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)

	// GetEntriesByDateRange retrieves all entries of a company dated within [from, to].
	GetEntriesByDateRange(ctx context.Context, companyID string, from, to time.Time) ([]domain.JournalEntry, error)
}

// JournalEntryWriterSvc defines the lifecycle operations of journal entries
type JournalEntryWriterSvc interface {
	// CreateEntry validates the lines, numbers the entry and persists it as DRAFT.
	CreateEntry(ctx context.Context, companyID string, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	// ValidateEntry moves a DRAFT entry to VALIDATED.
	ValidateEntry(ctx context.Context, companyID string, entryID string, validatorUserID string) (*domain.JournalEntry, error)

	// CancelEntry moves a DRAFT entry to CANCELLED.
	CancelEntry(ctx context.Context, companyID string, entryID string, userID string) (*domain.JournalEntry, error)

	// ReverseEntry creates a DRAFT entry mirroring a VALIDATED one with every side swapped.
	ReverseEntry(ctx context.Context, companyID string, entryID string, userID string) (*domain.JournalEntry, error)
}

// AccountEntryReaderSvc defines read operations over ledger lines
type AccountEntryReaderSvc interface {
	// ListAccountEntries retrieves the lines of a company.
	ListAccountEntries(ctx context.Context, companyID string, filter domain.AccountEntryFilter) ([]domain.AccountEntry, error)

	// TrialBalance lists per-account totals of VALIDATED lines as of a date.
	TrialBalance(ctx context.Context, companyID string, asOf time.Time) ([]domain.TrialBalanceRow, error)
}

// JournalEntrySvcFacade combines all journal-entry service interfaces
// This is a facade for clients that need access to all operations
type JournalEntrySvcFacade interface {
	JournalEntryReaderSvc
	JournalEntryWriterSvc
	AccountEntryReaderSvc
}
