package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Side is the debit or credit side of a ledger line.
type Side string

const (
	Debit  Side = "DEBIT"
	Credit Side = "CREDIT"
)

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == Debit {
		return Credit
	}
	return Debit
}

// EntryTags are denormalized from the parent entry when a line is built.
// They are never edited independently of the entry.
type EntryTags struct {
	CompanyID          string             `json:"companyID"`
	CountryCode        string             `json:"countryCode"`
	AccountingStandard AccountingStandard `json:"accountingStandard"`
	FiscalYearID       string             `json:"fiscalYearID"`
	JournalType        JournalType        `json:"journalType"`
	EntryDate          time.Time          `json:"entryDate"`
}

// AccountEntry is one debit or credit line of a journal entry.
type AccountEntry struct {
	LineID        string          `json:"lineID"`
	EntryID       string          `json:"entryID"`
	LineNumber    int             `json:"lineNumber"`
	AccountNumber string          `json:"accountNumber"`
	AccountName   string          `json:"accountName,omitempty"`
	Side          Side            `json:"side"`
	Amount        decimal.Decimal `json:"amount"` // Always positive, the side carries the direction
	Description   string          `json:"description,omitempty"`
	ThirdPartyRef *string         `json:"thirdPartyRef,omitempty"`
	EntryTags
}

// AccountEntryFilter selects ledger lines of a company.
type AccountEntryFilter struct {
	AccountPrefix string
	FromDate      *time.Time
	ToDate        *time.Time
	Limit         int
	Offset        int
}

// AccountBalances maps an account number to its debit-positive balance (debits minus credits).
type AccountBalances map[string]decimal.Decimal

// TrialBalanceRow holds the validated totals of one account.
type TrialBalanceRow struct {
	AccountNumber string          `json:"accountNumber"`
	AccountName   string          `json:"accountName"`
	TotalDebit    decimal.Decimal `json:"totalDebit"`
	TotalCredit   decimal.Decimal `json:"totalCredit"`
	Balance       decimal.Decimal `json:"balance"`
}
