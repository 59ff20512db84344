package dto

import (
	"time"

	"github.com/SscSPs/ohada_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// --- Journal entry DTOs ---

// CreateAccountEntryRequest defines one debit or credit line of a new entry.
type CreateAccountEntryRequest struct {
	AccountNumber string          `json:"accountNumber" binding:"required,account_number"`
	AccountName   string          `json:"accountName" binding:"omitempty,max=255"`
	Side          domain.Side     `json:"side" binding:"required,oneof=DEBIT CREDIT"`
	Amount        decimal.Decimal `json:"amount" swaggertype:"string" example:"1500.00"`
	Description   string          `json:"description" binding:"omitempty,max=500"`
	ThirdPartyRef *string         `json:"thirdPartyRef,omitempty" binding:"omitempty,max=100"`
}

// CreateJournalEntryRequest defines data for creating a new DRAFT journal entry.
// When FiscalYearID is empty the fiscal year containing EntryDate is used.
type CreateJournalEntryRequest struct {
	FiscalYearID       string                      `json:"fiscalYearID" binding:"omitempty,uuid"`
	EntryDate          time.Time                   `json:"entryDate" binding:"required"`
	JournalType        domain.JournalType          `json:"journalType" binding:"required,oneof=ACHATS VENTES BANQUE CAISSE OPERATIONS_DIVERSES PAIE A_NOUVEAU"`
	Description        string                      `json:"description" binding:"required,max=500"`
	Reference          string                      `json:"reference" binding:"omitempty,max=100"`
	CurrencyCode       string                      `json:"currencyCode" binding:"required,iso4217"`
	CountryCode        string                      `json:"countryCode" binding:"required,iso3166_1_alpha2"`
	AccountingStandard domain.AccountingStandard   `json:"accountingStandard" binding:"required"`
	Lines              []CreateAccountEntryRequest `json:"lines" binding:"required,min=2,dive"`
}

// ListEntriesParams holds query parameters for listing entries.
type ListEntriesParams struct {
	Status       string     `form:"status" binding:"omitempty,oneof=DRAFT VALIDATED CANCELLED"`
	JournalType  string     `form:"journalType" binding:"omitempty,oneof=ACHATS VENTES BANQUE CAISSE OPERATIONS_DIVERSES PAIE A_NOUVEAU"`
	FromDate     *time.Time `form:"fromDate" time_format:"2006-01-02"`
	ToDate       *time.Time `form:"toDate" time_format:"2006-01-02"`
	Limit        int        `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken    *string    `form:"nextToken"`
	IncludeLines bool       `form:"includeLines"`
}

// ToEntryFilter converts query parameters to a repository filter.
func (p ListEntriesParams) ToEntryFilter(companyID string) domain.EntryFilter {
	filter := domain.EntryFilter{
		CompanyID: companyID,
		FromDate:  p.FromDate,
		ToDate:    p.ToDate,
		Limit:     p.Limit,
		NextToken: p.NextToken,
	}
	if p.Status != "" {
		status := domain.EntryStatus(p.Status)
		filter.Status = &status
	}
	if p.JournalType != "" {
		jt := domain.JournalType(p.JournalType)
		filter.JournalType = &jt
	}
	return filter
}

// AccountEntryResponse defines the data returned for a ledger line.
type AccountEntryResponse struct {
	LineID        string          `json:"lineID"`
	LineNumber    int             `json:"lineNumber"`
	AccountNumber string          `json:"accountNumber"`
	AccountName   string          `json:"accountName,omitempty"`
	Side          string          `json:"side"`
	Amount        decimal.Decimal `json:"amount" swaggertype:"string"`
	Description   string          `json:"description,omitempty"`
	ThirdPartyRef *string         `json:"thirdPartyRef,omitempty"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID            string                 `json:"entryID"`
	CompanyID          string                 `json:"companyID"`
	FiscalYearID       string                 `json:"fiscalYearID"`
	EntryNumber        string                 `json:"entryNumber"`
	EntryDate          time.Time              `json:"entryDate"`
	JournalType        string                 `json:"journalType"`
	Description        string                 `json:"description"`
	Reference          string                 `json:"reference,omitempty"`
	CurrencyCode       string                 `json:"currencyCode"`
	CountryCode        string                 `json:"countryCode"`
	AccountingStandard string                 `json:"accountingStandard"`
	TotalDebit         decimal.Decimal        `json:"totalDebit" swaggertype:"string"`
	TotalCredit        decimal.Decimal        `json:"totalCredit" swaggertype:"string"`
	Status             string                 `json:"status"`
	Posted             bool                   `json:"posted"`
	ValidatedBy        *string                `json:"validatedBy,omitempty"`
	ValidatedAt        *time.Time             `json:"validatedAt,omitempty"`
	ReversalOfEntryID  *string                `json:"reversalOfEntryID,omitempty"`
	CreatedAt          time.Time              `json:"createdAt"`
	CreatedBy          string                 `json:"createdBy"`
	Lines              []AccountEntryResponse `json:"lines,omitempty"`
}

// ListEntriesResponse wraps a page of entries.
type ListEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ToAccountEntryResponses converts ledger lines to DTOs.
func ToAccountEntryResponses(lines []domain.AccountEntry) []AccountEntryResponse {
	responses := make([]AccountEntryResponse, len(lines))
	for i, l := range lines {
		responses[i] = AccountEntryResponse{
			LineID:        l.LineID,
			LineNumber:    l.LineNumber,
			AccountNumber: l.AccountNumber,
			AccountName:   l.AccountName,
			Side:          string(l.Side),
			Amount:        l.Amount,
			Description:   l.Description,
			ThirdPartyRef: l.ThirdPartyRef,
		}
	}
	return responses
}

// ToJournalEntryResponse converts a domain.JournalEntry to its DTO, lines included when loaded.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		EntryID:            e.EntryID,
		CompanyID:          e.CompanyID,
		FiscalYearID:       e.FiscalYearID,
		EntryNumber:        e.EntryNumber,
		EntryDate:          e.EntryDate,
		JournalType:        string(e.JournalType),
		Description:        e.Description,
		Reference:          e.Reference,
		CurrencyCode:       e.CurrencyCode,
		CountryCode:        e.CountryCode,
		AccountingStandard: string(e.AccountingStandard),
		TotalDebit:         e.TotalDebit,
		TotalCredit:        e.TotalCredit,
		Status:             string(e.Status),
		Posted:             e.Posted,
		ValidatedBy:        e.ValidatedBy,
		ValidatedAt:        e.ValidatedAt,
		ReversalOfEntryID:  e.ReversalOfEntryID,
		CreatedAt:          e.CreatedAt,
		CreatedBy:          e.CreatedBy,
	}
	if len(e.Lines) > 0 {
		resp.Lines = ToAccountEntryResponses(e.Lines)
	}
	return resp
}

// ListAccountEntriesParams holds query parameters for listing ledger lines.
type ListAccountEntriesParams struct {
	AccountPrefix string     `form:"accountPrefix" binding:"omitempty,numeric,max=12"`
	FromDate      *time.Time `form:"fromDate" time_format:"2006-01-02"`
	ToDate        *time.Time `form:"toDate" time_format:"2006-01-02"`
	Limit         int        `form:"limit" binding:"omitempty,min=1,max=500"`
	Offset        int        `form:"offset" binding:"omitempty,min=0"`
}

// ToAccountEntryFilter converts query parameters to a repository filter.
func (p ListAccountEntriesParams) ToAccountEntryFilter() domain.AccountEntryFilter {
	return domain.AccountEntryFilter{
		AccountPrefix: p.AccountPrefix,
		FromDate:      p.FromDate,
		ToDate:        p.ToDate,
		Limit:         p.Limit,
		Offset:        p.Offset,
	}
}

// ListAccountEntriesResponse wraps a page of ledger lines.
type ListAccountEntriesResponse struct {
	Lines []AccountEntryResponse `json:"lines"`
}
