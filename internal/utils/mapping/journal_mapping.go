package mapping

import (
	"github.com/SscSPs/ohada_ledger/internal/core/domain"
	"github.com/SscSPs/ohada_ledger/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:            d.EntryID,
		CompanyID:          d.CompanyID,
		FiscalYearID:       d.FiscalYearID,
		EntryNumber:        d.EntryNumber,
		EntryDate:          d.EntryDate,
		JournalType:        string(d.JournalType),
		Description:        d.Description,
		Reference:          nullable(d.Reference),
		CurrencyCode:       d.CurrencyCode,
		CountryCode:        d.CountryCode,
		AccountingStandard: string(d.AccountingStandard),
		TotalDebit:         d.TotalDebit,
		TotalCredit:        d.TotalCredit,
		Status:             string(d.Status),
		Posted:             d.Posted,
		ValidatedBy:        d.ValidatedBy,
		ValidatedAt:        d.ValidatedAt,
		ReversalOfEntryID:  d.ReversalOfEntryID,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:            m.EntryID,
		CompanyID:          m.CompanyID,
		FiscalYearID:       m.FiscalYearID,
		EntryNumber:        m.EntryNumber,
		EntryDate:          m.EntryDate,
		JournalType:        domain.JournalType(m.JournalType),
		Description:        m.Description,
		Reference:          deref(m.Reference),
		CurrencyCode:       m.CurrencyCode,
		CountryCode:        m.CountryCode,
		AccountingStandard: domain.AccountingStandard(m.AccountingStandard),
		TotalDebit:         m.TotalDebit,
		TotalCredit:        m.TotalCredit,
		Status:             domain.EntryStatus(m.Status),
		Posted:             m.Posted,
		ValidatedBy:        m.ValidatedBy,
		ValidatedAt:        m.ValidatedAt,
		ReversalOfEntryID:  m.ReversalOfEntryID,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelAccountEntry converts a domain AccountEntry to a model AccountEntry
func ToModelAccountEntry(d domain.AccountEntry) models.AccountEntry {
	return models.AccountEntry{
		LineID:             d.LineID,
		EntryID:            d.EntryID,
		LineNumber:         d.LineNumber,
		AccountNumber:      d.AccountNumber,
		AccountName:        nullable(d.AccountName),
		Side:               string(d.Side),
		Amount:             d.Amount,
		Description:        nullable(d.Description),
		ThirdPartyRef:      d.ThirdPartyRef,
		CompanyID:          d.CompanyID,
		CountryCode:        d.CountryCode,
		AccountingStandard: string(d.AccountingStandard),
		FiscalYearID:       d.FiscalYearID,
		JournalType:        string(d.JournalType),
		EntryDate:          d.EntryDate,
	}
}

// ToDomainAccountEntry converts a model AccountEntry to a domain AccountEntry
func ToDomainAccountEntry(m models.AccountEntry) domain.AccountEntry {
	return domain.AccountEntry{
		LineID:        m.LineID,
		EntryID:       m.EntryID,
		LineNumber:    m.LineNumber,
		AccountNumber: m.AccountNumber,
		AccountName:   deref(m.AccountName),
		Side:          domain.Side(m.Side),
		Amount:        m.Amount,
		Description:   deref(m.Description),
		ThirdPartyRef: m.ThirdPartyRef,
		EntryTags: domain.EntryTags{
			CompanyID:          m.CompanyID,
			CountryCode:        m.CountryCode,
			AccountingStandard: domain.AccountingStandard(m.AccountingStandard),
			FiscalYearID:       m.FiscalYearID,
			JournalType:        domain.JournalType(m.JournalType),
			EntryDate:          m.EntryDate,
		},
	}
}

// ToDomainAccountEntrySlice converts a slice of model AccountEntries to a slice of domain AccountEntries
func ToDomainAccountEntrySlice(ms []models.AccountEntry) []domain.AccountEntry {
	ds := make([]domain.AccountEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccountEntry(m)
	}
	return ds
}
