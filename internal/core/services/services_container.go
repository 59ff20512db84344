package services

import (
	"github.com/SscSPs/ohada_ledger/internal/core/classification"
	portsrepo "github.com/SscSPs/ohada_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ohada_ledger/internal/core/ports/services"
	"github.com/SscSPs/ohada_ledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, rules *classification.Registry) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Numbering first, journal entries depend on it
	container.Numbering = NewNumberingService(repos.SequenceRepo)

	container.Journal = NewJournalEntryService(
		repos.JournalEntryRepo,
		repos.ReportingRepo,
		repos.FiscalYearRepo,
		container.Numbering,
		rules,
	)
	container.FiscalYear = NewFiscalYearService(repos.FiscalYearRepo, repos.JournalEntryRepo)
	container.Statement = NewStatementService(
		repos.ReportingRepo,
		repos.FiscalYearRepo,
		repos.StatementRepo,
		rules,
		cfg.SnapshotCacheTTL,
	)

	return container
}
