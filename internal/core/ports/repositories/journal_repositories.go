package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ohada_ledger/internal/core/domain"
)

// JournalEntryReader defines read operations for journal entry headers
type JournalEntryReader interface {
	// FindEntryByID retrieves an entry header by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a page of entries matching the filter using token-based pagination.
	// It returns the entries, a token for the next page, and an error.
	ListEntries(ctx context.Context, filter domain.EntryFilter) ([]domain.JournalEntry, *string, error)

	// FindEntriesByDateRange retrieves all entries of a company dated within [from, to].
	FindEntriesByDateRange(ctx context.Context, companyID string, from, to time.Time) ([]domain.JournalEntry, error)
}

// JournalEntryWriter defines write operations for journal entries
type JournalEntryWriter interface {
	// SaveEntry persists an entry header and its lines atomically.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.AccountEntry) error

	// TransitionStatus moves an entry from t.From to t.To.
	// It returns apperrors.ErrConflict when the stored status is no longer t.From.
	TransitionStatus(ctx context.Context, t domain.StatusTransition) error
}

// AccountEntryReader defines read operations for ledger lines
type AccountEntryReader interface {
	// FindLinesByEntryID retrieves the lines of one entry ordered by line number.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.AccountEntry, error)

	// FindLinesByEntryIDs retrieves lines for several entries, grouped by entry ID.
	FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.AccountEntry, error)

	// ListAccountEntries retrieves lines of a company, optionally restricted to an account prefix and dates.
	ListAccountEntries(ctx context.Context, companyID string, filter domain.AccountEntryFilter) ([]domain.AccountEntry, error)
}

// JournalEntryRepositoryFacade combines all journal-entry repository interfaces
type JournalEntryRepositoryFacade interface {
	JournalEntryReader
	JournalEntryWriter
	AccountEntryReader
}

// JournalEntryRepositoryWithTx extends JournalEntryRepositoryFacade with transaction capabilities
type JournalEntryRepositoryWithTx interface {
	JournalEntryRepositoryFacade
	TransactionManager
}
