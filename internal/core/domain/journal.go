package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the lifecycle state of a journal entry.
type EntryStatus string

const (
	StatusDraft     EntryStatus = "DRAFT"
	StatusValidated EntryStatus = "VALIDATED"
	StatusCancelled EntryStatus = "CANCELLED"
)

// IsTerminal reports whether no further transition is possible from this status.
func (s EntryStatus) IsTerminal() bool {
	return s == StatusValidated || s == StatusCancelled
}

// JournalType groups entries by their source journal.
type JournalType string

const (
	JournalPurchases JournalType = "ACHATS"
	JournalSales     JournalType = "VENTES"
	JournalBank      JournalType = "BANQUE"
	JournalCash      JournalType = "CAISSE"
	JournalMisc      JournalType = "OPERATIONS_DIVERSES"
	JournalPayroll   JournalType = "PAIE"
	JournalOpening   JournalType = "A_NOUVEAU"
)

// JournalEntry is one balanced accounting transaction.
type JournalEntry struct {
	EntryID            string             `json:"entryID"`
	CompanyID          string             `json:"companyID"`
	FiscalYearID       string             `json:"fiscalYearID"`
	EntryNumber        string             `json:"entryNumber"` // JE-YYYYMMDD-NNNN, unique per company
	EntryDate          time.Time          `json:"entryDate"`
	JournalType        JournalType        `json:"journalType"`
	Description        string             `json:"description"`
	Reference          string             `json:"reference,omitempty"`
	CurrencyCode       string             `json:"currencyCode"`
	CountryCode        string             `json:"countryCode"`
	AccountingStandard AccountingStandard `json:"accountingStandard"`
	TotalDebit         decimal.Decimal    `json:"totalDebit"`
	TotalCredit        decimal.Decimal    `json:"totalCredit"`
	Status             EntryStatus        `json:"status"`
	Posted             bool               `json:"posted"`
	ValidatedBy        *string            `json:"validatedBy,omitempty"`
	ValidatedAt        *time.Time         `json:"validatedAt,omitempty"`
	ReversalOfEntryID  *string            `json:"reversalOfEntryID,omitempty"`
	AuditFields
	Lines []AccountEntry `json:"lines,omitempty"` // Loaded separately
}

// Tags returns the fields mirrored onto every line of the entry.
func (e JournalEntry) Tags() EntryTags {
	return EntryTags{
		CompanyID:          e.CompanyID,
		CountryCode:        e.CountryCode,
		AccountingStandard: e.AccountingStandard,
		FiscalYearID:       e.FiscalYearID,
		JournalType:        e.JournalType,
		EntryDate:          e.EntryDate,
	}
}

// EntryFilter selects journal entries for listing.
type EntryFilter struct {
	CompanyID   string
	Status      *EntryStatus
	JournalType *JournalType
	FromDate    *time.Time
	ToDate      *time.Time
	Limit       int
	NextToken   *string
}

// StatusTransition describes a conditional status change of one entry.
type StatusTransition struct {
	EntryID     string
	From        EntryStatus
	To          EntryStatus
	ValidatedBy *string
	ValidatedAt *time.Time
	UpdatedBy   string
	UpdatedAt   time.Time
}
