package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/SscSPs/ohada_ledger/internal/apperrors"
	"github.com/SscSPs/ohada_ledger/internal/core/classification"
	"github.com/SscSPs/ohada_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/ohada_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ohada_ledger/internal/core/ports/services"
	"github.com/SscSPs/ohada_ledger/internal/core/statements"
)

const snapshotDateLayout = "2006-01-02"

type statementService struct {
	BaseService
	reportingRepo  portsrepo.ReportingRepository
	fiscalYearRepo portsrepo.FiscalYearRepository
	statementRepo  portsrepo.StatementRepository
	rules          *classification.Registry
	snapshots      *cache.Cache
	now            func() time.Time
}

// StatementServiceOption configures optional dependencies of the statement service.
type StatementServiceOption func(*statementService)

// WithStatementClock replaces the clock used for generation timestamps.
func WithStatementClock(now func() time.Time) StatementServiceOption {
	return func(s *statementService) {
		s.now = now
	}
}

// NewStatementService creates a new StatementSvcFacade. Balance snapshots of closed fiscal
// years are cached for snapshotTTL; a non-positive TTL disables the cache.
func NewStatementService(
	reportingRepo portsrepo.ReportingRepository,
	fiscalYearRepo portsrepo.FiscalYearRepository,
	statementRepo portsrepo.StatementRepository,
	rules *classification.Registry,
	snapshotTTL time.Duration,
	opts ...StatementServiceOption,
) portssvc.StatementSvcFacade {
	s := &statementService{
		reportingRepo:  reportingRepo,
		fiscalYearRepo: fiscalYearRepo,
		statementRepo:  statementRepo,
		rules:          rules,
		now:            func() time.Time { return time.Now().UTC() },
	}
	if snapshotTTL > 0 {
		s.snapshots = cache.New(snapshotTTL, 2*snapshotTTL)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.StatementSvcFacade = (*statementService)(nil)

func snapshotKey(companyID string, from *time.Time, to time.Time) string {
	start := "-"
	if from != nil {
		start = from.Format(snapshotDateLayout)
	}
	return fmt.Sprintf("%s|%s|%s", companyID, start, to.Format(snapshotDateLayout))
}

// settled reports whether every fiscal year of the company touching [from, to] is closed.
// A nil from reaches back to the first fiscal year.
func (s *statementService) settled(ctx context.Context, companyID string, from *time.Time, to time.Time) (bool, error) {
	years, err := s.fiscalYearRepo.ListFiscalYears(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list fiscal years for snapshot cache")
		return false, fmt.Errorf("failed to list fiscal years: %w", err)
	}
	for _, fy := range years {
		if fy.StartDate.After(to) || (from != nil && fy.EndDate.Before(*from)) {
			continue
		}
		if fy.Status != domain.FiscalYearClosed {
			return false, nil
		}
	}
	return true, nil
}

// snapshot returns debit-positive balances of validated lines. A snapshot whose whole range lies in
// closed fiscal years can no longer change, so it is served from the cache.
func (s *statementService) snapshot(ctx context.Context, companyID string, from *time.Time, to time.Time) (domain.AccountBalances, error) {
	cacheable := false
	if s.snapshots != nil {
		var err error
		if cacheable, err = s.settled(ctx, companyID, from, to); err != nil {
			return nil, err
		}
	}
	key := snapshotKey(companyID, from, to)
	if cacheable {
		if cached, found := s.snapshots.Get(key); found {
			s.LogDebug(ctx, "Balance snapshot served from cache", slog.String("key", key))
			return cached.(domain.AccountBalances), nil
		}
	}

	balances, err := s.reportingRepo.GetAccountBalances(ctx, companyID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to load account balances", slog.String("key", key))
		return nil, fmt.Errorf("failed to load account balances: %w", err)
	}
	if cacheable {
		s.snapshots.Set(key, balances, cache.DefaultExpiration)
	}
	return balances, nil
}

// balanceSheetFigures derives the balance sheet at the end of fy. Results booked before the year
// are carried into retained earnings.
func (s *statementService) balanceSheetFigures(ctx context.Context, table *classification.RuleTable, fy domain.FiscalYear) (*statements.BalanceSheetFigures, error) {
	balances, err := s.snapshot(ctx, fy.CompanyID, nil, fy.EndDate)
	if err != nil {
		return nil, err
	}
	openingBalances, err := s.snapshot(ctx, fy.CompanyID, nil, fy.StartDate.AddDate(0, 0, -1))
	if err != nil {
		return nil, err
	}
	figures := statements.ComputeBalanceSheet(table, balances)
	figures.CarryForwardResult(statements.ComputeBalanceSheet(table, openingBalances))
	return figures, nil
}

func (s *statementService) incomeStatementFigures(ctx context.Context, table *classification.RuleTable, fy domain.FiscalYear) (*statements.IncomeStatementFigures, error) {
	start := fy.StartDate
	flows, err := s.snapshot(ctx, fy.CompanyID, &start, fy.EndDate)
	if err != nil {
		return nil, err
	}
	return statements.ComputeIncomeStatement(table, flows), nil
}

// loadFiscalYear returns the fiscal year and the one before it, nil when there is none.
func (s *statementService) loadFiscalYear(ctx context.Context, companyID, fiscalYearID string) (*domain.FiscalYear, *domain.FiscalYear, error) {
	fy, err := s.fiscalYearRepo.FindFiscalYearByID(ctx, fiscalYearID)
	if err != nil {
		return nil, nil, err
	}
	if err := s.ensureCompany(ctx, fy.CompanyID, companyID, "fiscal year", fiscalYearID); err != nil {
		return nil, nil, err
	}
	prior, err := s.previous(ctx, *fy)
	if err != nil {
		return nil, nil, err
	}
	return fy, prior, nil
}

func (s *statementService) previous(ctx context.Context, fy domain.FiscalYear) (*domain.FiscalYear, error) {
	prior, err := s.fiscalYearRepo.FindPreviousFiscalYear(ctx, fy)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to find previous fiscal year", slog.String("fiscal_year_id", fy.FiscalYearID))
		return nil, fmt.Errorf("failed to find previous fiscal year: %w", err)
	}
	return prior, nil
}

// persist stores a freshly generated document as DRAFT.
func (s *statementService) persist(ctx context.Context, stmt domain.FinancialStatement) (*domain.FinancialStatement, error) {
	stmt.StatementID = uuid.NewString()
	stmt.Status = domain.StatementDraft
	stmt.GeneratedAt = s.now()

	if err := s.statementRepo.SaveStatement(ctx, stmt); err != nil {
		s.LogError(ctx, err, "Failed to save statement", slog.String("type", string(stmt.Type)))
		return nil, fmt.Errorf("failed to save %s: %w", stmt.Type, err)
	}

	logger := s.GetLogger(ctx).With(
		slog.String("statement_id", stmt.StatementID),
		slog.String("type", string(stmt.Type)),
		slog.String("fiscal_year_id", stmt.FiscalYearID))
	if len(stmt.Warnings) > 0 {
		logger.Warn("Statement generated with unclassified accounts", slog.Int("unclassified", len(stmt.Warnings)))
	} else {
		logger.Info("Statement generated")
	}
	return &stmt, nil
}

func newStatementHeader(fy *domain.FiscalYear, statementType domain.StatementType, standard domain.AccountingStandard, version, userID string) domain.FinancialStatement {
	return domain.FinancialStatement{
		CompanyID:          fy.CompanyID,
		FiscalYearID:       fy.FiscalYearID,
		Type:               statementType,
		AccountingStandard: standard,
		RuleVersion:        version,
		PeriodStart:        fy.StartDate,
		PeriodEnd:          fy.EndDate,
		GeneratedBy:        userID,
	}
}

// GenerateBalanceSheet builds the balance sheet from cumulative balances up to the fiscal-year end.
func (s *statementService) GenerateBalanceSheet(ctx context.Context, companyID, fiscalYearID string, standard domain.AccountingStandard, userID string) (*domain.FinancialStatement, error) {
	table, err := s.rules.Table(standard, domain.BalanceSheet)
	if err != nil {
		return nil, err
	}
	fy, priorFY, err := s.loadFiscalYear(ctx, companyID, fiscalYearID)
	if err != nil {
		return nil, err
	}

	current, err := s.balanceSheetFigures(ctx, table, *fy)
	if err != nil {
		return nil, err
	}
	var prior *statements.BalanceSheetFigures
	if priorFY != nil {
		if prior, err = s.balanceSheetFigures(ctx, table, *priorFY); err != nil {
			return nil, err
		}
	}

	stmt := newStatementHeader(fy, domain.BalanceSheet, standard, table.Version(), userID)
	stmt.Lines, stmt.Totals = statements.BalanceSheetDocument(table, current, prior)
	stmt.Warnings = current.Unclassified
	return s.persist(ctx, stmt)
}

// GenerateIncomeStatement builds the income statement from the flows of the fiscal year.
func (s *statementService) GenerateIncomeStatement(ctx context.Context, companyID, fiscalYearID string, standard domain.AccountingStandard, userID string) (*domain.FinancialStatement, error) {
	table, err := s.rules.Table(standard, domain.IncomeStatement)
	if err != nil {
		return nil, err
	}
	fy, priorFY, err := s.loadFiscalYear(ctx, companyID, fiscalYearID)
	if err != nil {
		return nil, err
	}

	current, err := s.incomeStatementFigures(ctx, table, *fy)
	if err != nil {
		return nil, err
	}
	var prior *statements.IncomeStatementFigures
	if priorFY != nil {
		if prior, err = s.incomeStatementFigures(ctx, table, *priorFY); err != nil {
			return nil, err
		}
	}

	stmt := newStatementHeader(fy, domain.IncomeStatement, standard, table.Version(), userID)
	stmt.Lines, stmt.Totals = statements.IncomeStatementDocument(table, current, prior)
	stmt.Warnings = current.Unclassified
	return s.persist(ctx, stmt)
}

// cashFlowFigures derives the cash flow of fy. A nil priorFY yields a MissingPrerequisiteError.
func (s *statementService) cashFlowFigures(ctx context.Context, bsTable, isTable *classification.RuleTable, fy, priorFY *domain.FiscalYear) (statements.Figures, []apperrors.UnclassifiedAccountWarning, error) {
	income, err := s.incomeStatementFigures(ctx, isTable, *fy)
	if err != nil {
		return nil, nil, err
	}
	current, err := s.balanceSheetFigures(ctx, bsTable, *fy)
	if err != nil {
		return nil, nil, err
	}
	in := statements.CashFlowInputs{Income: income, Current: current}
	if priorFY != nil {
		if in.Prior, err = s.balanceSheetFigures(ctx, bsTable, *priorFY); err != nil {
			return nil, nil, err
		}
	}

	figures, err := statements.ComputeCashFlow(in)
	if err != nil {
		return nil, nil, err
	}
	warnings := append(append([]apperrors.UnclassifiedAccountWarning{}, current.Unclassified...), income.Unclassified...)
	return figures, warnings, nil
}

// GenerateCashFlowStatement builds the cash-flow statement. It requires the previous fiscal year;
// its prior column is filled only when the year before that exists too.
func (s *statementService) GenerateCashFlowStatement(ctx context.Context, companyID, fiscalYearID string, standard domain.AccountingStandard, userID string) (*domain.FinancialStatement, error) {
	bsTable, err := s.rules.Table(standard, domain.BalanceSheet)
	if err != nil {
		return nil, err
	}
	isTable, err := s.rules.Table(standard, domain.IncomeStatement)
	if err != nil {
		return nil, err
	}
	fy, priorFY, err := s.loadFiscalYear(ctx, companyID, fiscalYearID)
	if err != nil {
		return nil, err
	}

	current, warnings, err := s.cashFlowFigures(ctx, bsTable, isTable, fy, priorFY)
	if err != nil {
		if errors.Is(err, apperrors.ErrPrerequisite) {
			s.LogWarn(ctx, "Cash-flow statement prerequisites missing", slog.String("fiscal_year_id", fiscalYearID), slog.String("error", err.Error()))
		}
		return nil, err
	}

	var prior statements.Figures
	if earlierFY, err := s.previous(ctx, *priorFY); err != nil {
		return nil, err
	} else if earlierFY != nil {
		if prior, _, err = s.cashFlowFigures(ctx, bsTable, isTable, priorFY, earlierFY); err != nil {
			return nil, err
		}
	}

	version := bsTable.Version()
	if isTable.Version() != version {
		version = bsTable.Version() + "+" + isTable.Version()
	}
	stmt := newStatementHeader(fy, domain.CashFlow, standard, version, userID)
	stmt.Lines, stmt.Totals = statements.CashFlowDocument(current, prior)
	stmt.Warnings = warnings
	return s.persist(ctx, stmt)
}

// GetStatement retrieves a generated statement of the company.
func (s *statementService) GetStatement(ctx context.Context, companyID, statementID string) (*domain.FinancialStatement, error) {
	stmt, err := s.statementRepo.FindStatementByID(ctx, statementID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find statement", slog.String("statement_id", statementID))
		}
		return nil, err
	}
	if err := s.ensureCompany(ctx, stmt.CompanyID, companyID, "statement", statementID); err != nil {
		return nil, err
	}
	return stmt, nil
}

// ListStatements lists generated statements of a company, optionally restricted to one fiscal year.
func (s *statementService) ListStatements(ctx context.Context, companyID, fiscalYearID string) ([]domain.FinancialStatement, error) {
	list, err := s.statementRepo.ListStatements(ctx, companyID, fiscalYearID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list statements")
		return nil, fmt.Errorf("failed to list statements: %w", err)
	}
	return list, nil
}
