package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/ohada_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/ohada_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// NewReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// GetAccountBalances sums validated lines per account, debits positive.
func (r *reportingRepository) GetAccountBalances(ctx context.Context, companyID string, from *time.Time, to time.Time) (domain.AccountBalances, error) {
	query := `
		SELECT
			l.account_number,
			SUM(CASE WHEN l.side = 'DEBIT' THEN l.amount ELSE -l.amount END) AS balance
		FROM account_entries l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		WHERE l.company_id = $1
			AND e.status = 'VALIDATED'
			AND l.entry_date <= $2
			AND ($3::date IS NULL OR l.entry_date >= $3::date)
		GROUP BY l.account_number
	`

	rows, err := r.Pool.Query(ctx, query, companyID, to, from)
	if err != nil {
		return nil, fmt.Errorf("error querying account balances: %w", err)
	}
	defer rows.Close()

	balances := domain.AccountBalances{}
	for rows.Next() {
		var account string
		var balance decimal.Decimal
		if err := rows.Scan(&account, &balance); err != nil {
			return nil, fmt.Errorf("error scanning account balance row: %w", err)
		}
		balances[account] = balance
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account balance rows: %w", err)
	}

	return balances, nil
}

// GetTrialBalance retrieves trial balance data as of a specific date
func (r *reportingRepository) GetTrialBalance(ctx context.Context, companyID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT
			l.account_number,
			COALESCE(MAX(l.account_name), '') AS account_name,
			SUM(CASE WHEN l.side = 'DEBIT' THEN l.amount ELSE 0 END) AS total_debit,
			SUM(CASE WHEN l.side = 'CREDIT' THEN l.amount ELSE 0 END) AS total_credit
		FROM account_entries l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		WHERE l.company_id = $1
			AND e.status = 'VALIDATED'
			AND l.entry_date <= $2
		GROUP BY l.account_number
		ORDER BY l.account_number
	`

	rows, err := r.Pool.Query(ctx, query, companyID, asOf)
	if err != nil {
		return nil, fmt.Errorf("error querying trial balance data: %w", err)
	}
	defer rows.Close()

	result := []domain.TrialBalanceRow{}
	for rows.Next() {
		var row domain.TrialBalanceRow
		if err := rows.Scan(
			&row.AccountNumber,
			&row.AccountName,
			&row.TotalDebit,
			&row.TotalCredit,
		); err != nil {
			return nil, fmt.Errorf("error scanning trial balance row: %w", err)
		}
		row.Balance = row.TotalDebit.Sub(row.TotalCredit)
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trial balance rows: %w", err)
	}

	return result, nil
}
