package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/ohada_ledger/internal/apperrors"
	"github.com/SscSPs/ohada_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/ohada_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/ohada_ledger/internal/models"
	"github.com/SscSPs/ohada_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const statementHeaderColumns = `statement_id, company_id, fiscal_year_id, statement_type, accounting_standard,
	rule_version, status, period_start, period_end, generated_at, generated_by`

type PgxStatementRepository struct {
	BaseRepository
}

func newPgxStatementRepository(pool *pgxpool.Pool) portsrepo.StatementRepository {
	return &PgxStatementRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.StatementRepository = (*PgxStatementRepository)(nil)

// SaveStatement stores a generated statement; lines, totals and warnings go to JSONB columns.
func (r *PgxStatementRepository) SaveStatement(ctx context.Context, statement domain.FinancialStatement) error {
	m, err := mapping.ToModelFinancialStatement(statement)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode statement "+statement.StatementID, err)
	}

	query := `INSERT INTO financial_statements (` + statementHeaderColumns + `, lines, totals, warnings)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);`
	_, err = r.Pool.Exec(ctx, query,
		m.StatementID,
		m.CompanyID,
		m.FiscalYearID,
		m.StatementType,
		m.AccountingStandard,
		m.RuleVersion,
		m.Status,
		m.PeriodStart,
		m.PeriodEnd,
		m.GeneratedAt,
		m.GeneratedBy,
		string(m.Lines),
		string(m.Totals),
		string(m.Warnings),
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert statement "+m.StatementID, err)
	}
	return nil
}

func (r *PgxStatementRepository) FindStatementByID(ctx context.Context, statementID string) (*domain.FinancialStatement, error) {
	query := `SELECT ` + statementHeaderColumns + `, lines, totals, warnings
		FROM financial_statements WHERE statement_id = $1;`

	var m models.FinancialStatement
	err := r.Pool.QueryRow(ctx, query, statementID).Scan(
		&m.StatementID,
		&m.CompanyID,
		&m.FiscalYearID,
		&m.StatementType,
		&m.AccountingStandard,
		&m.RuleVersion,
		&m.Status,
		&m.PeriodStart,
		&m.PeriodEnd,
		&m.GeneratedAt,
		&m.GeneratedBy,
		&m.Lines,
		&m.Totals,
		&m.Warnings,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("statement", statementID)
		}
		return nil, apperrors.NewAppError(500, "failed to find statement "+statementID, err)
	}

	statement, err := mapping.ToDomainFinancialStatement(m)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to decode statement "+statementID, err)
	}
	return &statement, nil
}

// ListStatements returns headers only; lines and totals are left empty.
func (r *PgxStatementRepository) ListStatements(ctx context.Context, companyID, fiscalYearID string) ([]domain.FinancialStatement, error) {
	query := `SELECT ` + statementHeaderColumns + ` FROM financial_statements
		WHERE company_id = $1 AND ($2 = '' OR fiscal_year_id = $2)
		ORDER BY generated_at DESC;`

	rows, err := r.Pool.Query(ctx, query, companyID, fiscalYearID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list statements", err)
	}
	defer rows.Close()

	list := []domain.FinancialStatement{}
	for rows.Next() {
		var m models.FinancialStatement
		if err := rows.Scan(
			&m.StatementID,
			&m.CompanyID,
			&m.FiscalYearID,
			&m.StatementType,
			&m.AccountingStandard,
			&m.RuleVersion,
			&m.Status,
			&m.PeriodStart,
			&m.PeriodEnd,
			&m.GeneratedAt,
			&m.GeneratedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan statement row", err)
		}
		statement, err := mapping.ToDomainFinancialStatement(m)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to decode statement "+m.StatementID, err)
		}
		list = append(list, statement)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating statement rows", err)
	}
	return list, nil
}
