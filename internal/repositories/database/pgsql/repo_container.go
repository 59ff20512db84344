package pgsql

import (
	portsrepo "github.com/SscSPs/ohada_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider builds every Postgres repository. A non-nil sequenceRepo replaces the
// entry_sequences table as the source of document numbers.
func NewRepositoryProvider(dbPool *pgxpool.Pool, sequenceRepo portsrepo.SequenceRepository) portsrepo.RepositoryProvider {
	if sequenceRepo == nil {
		sequenceRepo = newPgxSequenceRepository(dbPool)
	}

	return portsrepo.RepositoryProvider{
		JournalEntryRepo: newPgxJournalEntryRepository(dbPool),
		SequenceRepo:     sequenceRepo,
		ReportingRepo:    newReportingRepository(dbPool),
		FiscalYearRepo:   newPgxFiscalYearRepository(dbPool),
		StatementRepo:    newPgxStatementRepository(dbPool),
	}
}
