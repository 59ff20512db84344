package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/ohada_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSide_Opposite(t *testing.T) {
	assert.Equal(t, domain.Credit, domain.Debit.Opposite())
	assert.Equal(t, domain.Debit, domain.Credit.Opposite())
}

func TestEntryStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		status domain.EntryStatus
		want   bool
	}{
		{domain.StatusDraft, false},
		{domain.StatusValidated, true},
		{domain.StatusCancelled, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.IsTerminal())
		})
	}
}

func TestJournalEntry_Tags(t *testing.T) {
	date := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	entry := domain.JournalEntry{
		CompanyID:          "company-1",
		FiscalYearID:       "fy-2025",
		EntryDate:          date,
		JournalType:        domain.JournalSales,
		CountryCode:        "CI",
		AccountingStandard: domain.StandardSYSCOHADA,
	}

	assert.Equal(t, domain.EntryTags{
		CompanyID:          "company-1",
		CountryCode:        "CI",
		AccountingStandard: domain.StandardSYSCOHADA,
		FiscalYearID:       "fy-2025",
		JournalType:        domain.JournalSales,
		EntryDate:          date,
	}, entry.Tags())
}

func TestFiscalYear_Contains(t *testing.T) {
	fy := domain.FiscalYear{
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"first day", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"last day late evening", time.Date(2025, 12, 31, 23, 59, 0, 0, time.UTC), true},
		{"day before", time.Date(2024, 12, 31, 12, 0, 0, 0, time.UTC), false},
		{"day after", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fy.Contains(tt.at))
		})
	}
}

func TestFinancialStatement_Lookup(t *testing.T) {
	statement := domain.FinancialStatement{
		Lines:  []domain.StatementLineValue{{LineCode: "AD", Current: decimal.NewFromInt(10)}},
		Totals: []domain.StatementLineValue{{LineCode: "BZ", Current: decimal.NewFromInt(42)}},
	}

	line, ok := statement.Line("AD")
	assert.True(t, ok)
	assert.True(t, line.Current.Equal(decimal.NewFromInt(10)))

	total, ok := statement.Total("BZ")
	assert.True(t, ok)
	assert.True(t, total.Current.Equal(decimal.NewFromInt(42)))

	_, ok = statement.Total("AD")
	assert.False(t, ok)
	_, ok = statement.Line("ZZ")
	assert.False(t, ok)
}
