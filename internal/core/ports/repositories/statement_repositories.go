package repositories

import (
	"context"

	"github.com/SscSPs/ohada_ledger/internal/core/domain"
)

// StatementRepository defines persistence operations for generated financial statements
type StatementRepository interface {
	SaveStatement(ctx context.Context, statement domain.FinancialStatement) error
	FindStatementByID(ctx context.Context, statementID string) (*domain.FinancialStatement, error)
	// ListStatements lists statement headers of a company, newest first. An empty fiscalYearID lists all years.
	ListStatements(ctx context.Context, companyID, fiscalYearID string) ([]domain.FinancialStatement, error)
}
