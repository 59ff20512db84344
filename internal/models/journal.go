package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is a row of the journal_entries table.
type JournalEntry struct {
	EntryID            string          `db:"entry_id"`
	CompanyID          string          `db:"company_id"`
	FiscalYearID       string          `db:"fiscal_year_id"`
	EntryNumber        string          `db:"entry_number"`
	EntryDate          time.Time       `db:"entry_date"`
	JournalType        string          `db:"journal_type"`
	Description        string          `db:"description"`
	Reference          *string         `db:"reference"` // Nullable
	CurrencyCode       string          `db:"currency_code"`
	CountryCode        string          `db:"country_code"`
	AccountingStandard string          `db:"accounting_standard"`
	TotalDebit         decimal.Decimal `db:"total_debit"`
	TotalCredit        decimal.Decimal `db:"total_credit"`
	Status             string          `db:"status"`
	Posted             bool            `db:"posted"`
	ValidatedBy        *string         `db:"validated_by"`
	ValidatedAt        *time.Time      `db:"validated_at"`
	ReversalOfEntryID  *string         `db:"reversal_of_entry_id"`
	AuditFields
}

// AccountEntry is a row of the account_entries table. The tag columns are copied
// from the parent entry on insert.
type AccountEntry struct {
	LineID             string          `db:"line_id"`
	EntryID            string          `db:"entry_id"`
	LineNumber         int             `db:"line_number"`
	AccountNumber      string          `db:"account_number"`
	AccountName        *string         `db:"account_name"`
	Side               string          `db:"side"`
	Amount             decimal.Decimal `db:"amount"`
	Description        *string         `db:"description"`
	ThirdPartyRef      *string         `db:"third_party_ref"`
	CompanyID          string          `db:"company_id"`
	CountryCode        string          `db:"country_code"`
	AccountingStandard string          `db:"accounting_standard"`
	FiscalYearID       string          `db:"fiscal_year_id"`
	JournalType        string          `db:"journal_type"`
	EntryDate          time.Time       `db:"entry_date"`
}
