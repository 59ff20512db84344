package services

import (
	"context"

	"github.com/SscSPs/ohada_ledger/internal/core/domain"
)

// StatementGeneratorSvc derives financial statements from validated ledger lines.
// Every call persists and returns a new DRAFT document.
type StatementGeneratorSvc interface {
	GenerateBalanceSheet(ctx context.Context, companyID, fiscalYearID string, standard domain.AccountingStandard, userID string) (*domain.FinancialStatement, error)
	GenerateIncomeStatement(ctx context.Context, companyID, fiscalYearID string, standard domain.AccountingStandard, userID string) (*domain.FinancialStatement, error)
	GenerateCashFlowStatement(ctx context.Context, companyID, fiscalYearID string, standard domain.AccountingStandard, userID string) (*domain.FinancialStatement, error)
}

// StatementReaderSvc reads previously generated statements.
type StatementReaderSvc interface {
	GetStatement(ctx context.Context, companyID, statementID string) (*domain.FinancialStatement, error)
	ListStatements(ctx context.Context, companyID, fiscalYearID string) ([]domain.FinancialStatement, error)
}

// StatementSvcFacade combines statement generation and reads
type StatementSvcFacade interface {
	StatementGeneratorSvc
	StatementReaderSvc
}
