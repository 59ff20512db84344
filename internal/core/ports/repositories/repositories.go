package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	JournalEntryRepo JournalEntryRepositoryWithTx
	SequenceRepo     SequenceRepository
	ReportingRepo    ReportingRepository
	FiscalYearRepo   FiscalYearRepository
	StatementRepo    StatementRepository
}
