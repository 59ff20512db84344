package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/ohada_ledger/internal/apperrors"
	"github.com/SscSPs/ohada_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/ohada_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/ohada_ledger/internal/models"
	"github.com/SscSPs/ohada_ledger/internal/utils/mapping"
	"github.com/SscSPs/ohada_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const entryColumns = `
	entry_id, company_id, fiscal_year_id, entry_number, entry_date, journal_type, description,
	reference, currency_code, country_code, accounting_standard, total_debit, total_credit,
	status, posted, validated_by, validated_at, reversal_of_entry_id,
	created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `
	line_id, entry_id, line_number, account_number, account_name, side, amount, description,
	third_party_ref, company_id, country_code, accounting_standard, fiscal_year_id, journal_type, entry_date`

type PgxJournalEntryRepository struct {
	BaseRepository
}

// newPgxJournalEntryRepository creates a new repository for journal entries and their lines.
func newPgxJournalEntryRepository(pool *pgxpool.Pool) portsrepo.JournalEntryRepositoryWithTx {
	return &PgxJournalEntryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxJournalEntryRepository implements portsrepo.JournalEntryRepositoryWithTx
var _ portsrepo.JournalEntryRepositoryWithTx = (*PgxJournalEntryRepository)(nil)

func scanEntry(row rowScanner) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.CompanyID,
		&m.FiscalYearID,
		&m.EntryNumber,
		&m.EntryDate,
		&m.JournalType,
		&m.Description,
		&m.Reference,
		&m.CurrencyCode,
		&m.CountryCode,
		&m.AccountingStandard,
		&m.TotalDebit,
		&m.TotalCredit,
		&m.Status,
		&m.Posted,
		&m.ValidatedBy,
		&m.ValidatedAt,
		&m.ReversalOfEntryID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanLine(row rowScanner) (models.AccountEntry, error) {
	var m models.AccountEntry
	err := row.Scan(
		&m.LineID,
		&m.EntryID,
		&m.LineNumber,
		&m.AccountNumber,
		&m.AccountName,
		&m.Side,
		&m.Amount,
		&m.Description,
		&m.ThirdPartyRef,
		&m.CompanyID,
		&m.CountryCode,
		&m.AccountingStandard,
		&m.FiscalYearID,
		&m.JournalType,
		&m.EntryDate,
	)
	return m, err
}

// SaveEntry inserts the entry header and its lines within one DB transaction.
func (r *PgxJournalEntryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.AccountEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	// Ignored once the transaction is committed
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelJournalEntry(entry)
	entryQuery := `INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22);`
	_, err = tx.Exec(ctx, entryQuery,
		m.EntryID,
		m.CompanyID,
		m.FiscalYearID,
		m.EntryNumber,
		m.EntryDate,
		m.JournalType,
		m.Description,
		m.Reference,
		m.CurrencyCode,
		m.CountryCode,
		m.AccountingStandard,
		m.TotalDebit,
		m.TotalCredit,
		m.Status,
		m.Posted,
		m.ValidatedBy,
		m.ValidatedAt,
		m.ReversalOfEntryID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: entry number %s already used", apperrors.ErrDuplicate, m.EntryNumber)
		}
		return apperrors.NewAppError(500, "failed to insert journal entry "+m.EntryID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `INSERT INTO account_entries (` + lineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);`
	for _, line := range lines {
		l := mapping.ToModelAccountEntry(line)
		batch.Queue(lineQuery,
			l.LineID,
			l.EntryID,
			l.LineNumber,
			l.AccountNumber,
			l.AccountName,
			l.Side,
			l.Amount,
			l.Description,
			l.ThirdPartyRef,
			l.CompanyID,
			l.CountryCode,
			l.AccountingStandard,
			l.FiscalYearID,
			l.JournalType,
			l.EntryDate,
		)
	}

	br := tx.SendBatch(ctx, batch)
	// Close surfaces the first failed insert of the batch
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert lines of journal entry "+m.EntryID, err)
	}

	return r.Commit(ctx, tx)
}

// TransitionStatus applies a conditional status update. Zero affected rows means either the
// entry does not exist or another writer changed its status first.
func (r *PgxJournalEntryRepository) TransitionStatus(ctx context.Context, t domain.StatusTransition) error {
	query := `
		UPDATE journal_entries
		SET status = $3,
		    posted = $4,
		    validated_by = COALESCE($5, validated_by),
		    validated_at = COALESCE($6, validated_at),
		    last_updated_at = $7,
		    last_updated_by = $8
		WHERE entry_id = $1 AND status = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		t.EntryID,
		string(t.From),
		string(t.To),
		t.To == domain.StatusValidated,
		t.ValidatedBy,
		t.ValidatedAt,
		t.UpdatedAt,
		t.UpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of journal entry "+t.EntryID, err)
	}
	if cmdTag.RowsAffected() == 1 {
		return nil
	}

	var exists bool
	if err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM journal_entries WHERE entry_id = $1);`, t.EntryID).Scan(&exists); err != nil {
		return apperrors.NewAppError(500, "failed to check journal entry "+t.EntryID, err)
	}
	if !exists {
		return apperrors.NewNotFoundError("journal entry", t.EntryID)
	}
	return fmt.Errorf("%w: journal entry %s is no longer %s", apperrors.ErrConflict, t.EntryID, t.From)
}

// FindEntryByID retrieves an entry header by its ID.
func (r *PgxJournalEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`

	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("journal entry", entryID)
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry by ID "+entryID, err)
	}

	entry := mapping.ToDomainJournalEntry(m)
	return &entry, nil
}

// ListEntries retrieves a page of entries using token-based pagination, newest first.
func (r *PgxJournalEntryRepository) ListEntries(ctx context.Context, filter domain.EntryFilter) ([]domain.JournalEntry, *string, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	// One extra row tells whether a next page exists
	fetchLimit := limit + 1

	conditions := []string{"company_id = $1"}
	args := []any{filter.CompanyID}
	addCondition := func(clause string, value any) {
		args = append(args, value)
		conditions = append(conditions, strings.ReplaceAll(clause, "?", "$"+strconv.Itoa(len(args))))
	}

	if filter.Status != nil {
		addCondition("status = ?", string(*filter.Status))
	}
	if filter.JournalType != nil {
		addCondition("journal_type = ?", string(*filter.JournalType))
	}
	if filter.FromDate != nil {
		addCondition("entry_date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		addCondition("entry_date <= ?", *filter.ToDate)
	}
	if filter.NextToken != nil && *filter.NextToken != "" {
		cursor, err := pagination.DecodeToken(*filter.NextToken)
		if err != nil {
			return nil, nil, err
		}
		args = append(args, cursor.EntryDate, cursor.CreatedAt, cursor.EntryID)
		n := len(args)
		conditions = append(conditions, fmt.Sprintf("(entry_date, created_at, entry_id) < ($%d, $%d, $%d)", n-2, n-1, n))
	}

	args = append(args, fetchLimit)
	query := `SELECT ` + entryColumns + ` FROM journal_entries
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY entry_date DESC, created_at DESC, entry_id DESC
		LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journal entries for company "+filter.CompanyID, err)
	}
	defer rows.Close()

	modelEntries := make([]models.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}

	var nextToken *string
	results := modelEntries
	if len(modelEntries) > limit {
		last := modelEntries[limit-1]
		token := pagination.EncodeToken(pagination.Cursor{EntryDate: last.EntryDate, CreatedAt: last.CreatedAt, EntryID: last.EntryID})
		nextToken = &token
		results = modelEntries[:limit]
	}

	entries := make([]domain.JournalEntry, len(results))
	for i, m := range results {
		entries[i] = mapping.ToDomainJournalEntry(m)
	}
	return entries, nextToken, nil
}

// FindEntriesByDateRange retrieves every entry of a company dated within [from, to], oldest first.
func (r *PgxJournalEntryRepository) FindEntriesByDateRange(ctx context.Context, companyID string, from, to time.Time) ([]domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries
		WHERE company_id = $1 AND entry_date BETWEEN $2 AND $3
		ORDER BY entry_date, entry_number;`

	rows, err := r.Pool.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal entries by date range", err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		entries = append(entries, mapping.ToDomainJournalEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}
	return entries, nil
}

func (r *PgxJournalEntryRepository) queryLines(ctx context.Context, query string, args ...any) ([]models.AccountEntry, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query account entries", err)
	}
	defer rows.Close()

	lines := []models.AccountEntry{}
	for rows.Next() {
		m, err := scanLine(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account entry row", err)
		}
		lines = append(lines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account entry rows", err)
	}
	return lines, nil
}

// FindLinesByEntryID retrieves the lines of an entry in line order.
func (r *PgxJournalEntryRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.AccountEntry, error) {
	query := `SELECT ` + lineColumns + ` FROM account_entries WHERE entry_id = $1 ORDER BY line_number;`
	lines, err := r.queryLines(ctx, query, entryID)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainAccountEntrySlice(lines), nil
}

// FindLinesByEntryIDs retrieves the lines of several entries, grouped by entry ID.
func (r *PgxJournalEntryRepository) FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.AccountEntry, error) {
	if len(entryIDs) == 0 {
		return map[string][]domain.AccountEntry{}, nil
	}

	query := `SELECT ` + lineColumns + ` FROM account_entries WHERE entry_id = ANY($1) ORDER BY entry_id, line_number;`
	lines, err := r.queryLines(ctx, query, entryIDs)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]domain.AccountEntry, len(entryIDs))
	for _, id := range entryIDs {
		grouped[id] = []domain.AccountEntry{}
	}
	for _, m := range lines {
		grouped[m.EntryID] = append(grouped[m.EntryID], mapping.ToDomainAccountEntry(m))
	}
	return grouped, nil
}

// ListAccountEntries retrieves lines of a company using the denormalized tag columns.
func (r *PgxJournalEntryRepository) ListAccountEntries(ctx context.Context, companyID string, filter domain.AccountEntryFilter) ([]domain.AccountEntry, error) {
	conditions := []string{"company_id = $1"}
	args := []any{companyID}

	if filter.AccountPrefix != "" {
		args = append(args, filter.AccountPrefix+"%")
		conditions = append(conditions, "account_number LIKE $"+strconv.Itoa(len(args)))
	}
	if filter.FromDate != nil {
		args = append(args, *filter.FromDate)
		conditions = append(conditions, "entry_date >= $"+strconv.Itoa(len(args)))
	}
	if filter.ToDate != nil {
		args = append(args, *filter.ToDate)
		conditions = append(conditions, "entry_date <= $"+strconv.Itoa(len(args)))
	}
	args = append(args, filter.Limit, filter.Offset)

	query := `SELECT ` + lineColumns + ` FROM account_entries
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY entry_date, entry_id, line_number
		LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args)) + `;`

	lines, err := r.queryLines(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainAccountEntrySlice(lines), nil
}
