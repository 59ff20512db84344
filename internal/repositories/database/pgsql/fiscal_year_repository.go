package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/ohada_ledger/internal/apperrors"
	"github.com/SscSPs/ohada_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/ohada_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/ohada_ledger/internal/models"
	"github.com/SscSPs/ohada_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const fiscalYearColumns = `fiscal_year_id, company_id, label, start_date, end_date, status,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxFiscalYearRepository struct {
	BaseRepository
}

func newPgxFiscalYearRepository(pool *pgxpool.Pool) portsrepo.FiscalYearRepository {
	return &PgxFiscalYearRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.FiscalYearRepository = (*PgxFiscalYearRepository)(nil)

func scanFiscalYear(row rowScanner) (models.FiscalYear, error) {
	var m models.FiscalYear
	err := row.Scan(
		&m.FiscalYearID,
		&m.CompanyID,
		&m.Label,
		&m.StartDate,
		&m.EndDate,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxFiscalYearRepository) findOne(ctx context.Context, what, query string, args ...any) (*domain.FiscalYear, error) {
	m, err := scanFiscalYear(r.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("fiscal year", what)
		}
		return nil, apperrors.NewAppError(500, "failed to find fiscal year "+what, err)
	}
	fy := mapping.ToDomainFiscalYear(m)
	return &fy, nil
}

// SaveFiscalYear inserts a new fiscal year.
func (r *PgxFiscalYearRepository) SaveFiscalYear(ctx context.Context, fy domain.FiscalYear) error {
	m := mapping.ToModelFiscalYear(fy)
	query := `INSERT INTO fiscal_years (` + fiscalYearColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`

	_, err := r.Pool.Exec(ctx, query,
		m.FiscalYearID,
		m.CompanyID,
		m.Label,
		m.StartDate,
		m.EndDate,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "fiscal year already exists", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert fiscal year "+m.FiscalYearID, err)
	}
	return nil
}

func (r *PgxFiscalYearRepository) FindFiscalYearByID(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error) {
	query := `SELECT ` + fiscalYearColumns + ` FROM fiscal_years WHERE fiscal_year_id = $1;`
	return r.findOne(ctx, fiscalYearID, query, fiscalYearID)
}

// FindFiscalYearByDate returns the fiscal year of the company whose range contains day.
func (r *PgxFiscalYearRepository) FindFiscalYearByDate(ctx context.Context, companyID string, day time.Time) (*domain.FiscalYear, error) {
	query := `SELECT ` + fiscalYearColumns + ` FROM fiscal_years
		WHERE company_id = $1 AND $2::date BETWEEN start_date AND end_date
		LIMIT 1;`
	return r.findOne(ctx, day.Format(time.DateOnly), query, companyID, day)
}

// FindPreviousFiscalYear returns the latest fiscal year ending before fy starts.
func (r *PgxFiscalYearRepository) FindPreviousFiscalYear(ctx context.Context, fy domain.FiscalYear) (*domain.FiscalYear, error) {
	query := `SELECT ` + fiscalYearColumns + ` FROM fiscal_years
		WHERE company_id = $1 AND end_date < $2
		ORDER BY end_date DESC
		LIMIT 1;`
	return r.findOne(ctx, "before "+fy.FiscalYearID, query, fy.CompanyID, fy.StartDate)
}

func (r *PgxFiscalYearRepository) ListFiscalYears(ctx context.Context, companyID string) ([]domain.FiscalYear, error) {
	query := `SELECT ` + fiscalYearColumns + ` FROM fiscal_years WHERE company_id = $1 ORDER BY start_date;`

	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list fiscal years", err)
	}
	defer rows.Close()

	list := []domain.FiscalYear{}
	for rows.Next() {
		m, err := scanFiscalYear(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan fiscal year row", err)
		}
		list = append(list, mapping.ToDomainFiscalYear(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating fiscal year rows", err)
	}
	return list, nil
}

func (r *PgxFiscalYearRepository) UpdateFiscalYearStatus(ctx context.Context, fiscalYearID string, status domain.FiscalYearStatus, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE fiscal_years
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE fiscal_year_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, fiscalYearID, string(status), updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update fiscal year "+fiscalYearID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("fiscal year", fiscalYearID)
	}
	return nil
}
