package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/ohada_ledger/internal/apperrors"
	"github.com/SscSPs/ohada_ledger/internal/core/domain"
	"github.com/SscSPs/ohada_ledger/internal/models"
)

// ToModelFinancialStatement converts a domain FinancialStatement to a model, encoding its
// lines, totals and warnings as JSON documents.
func ToModelFinancialStatement(d domain.FinancialStatement) (models.FinancialStatement, error) {
	lines, err := json.Marshal(d.Lines)
	if err != nil {
		return models.FinancialStatement{}, fmt.Errorf("failed to encode statement lines: %w", err)
	}
	totals, err := json.Marshal(d.Totals)
	if err != nil {
		return models.FinancialStatement{}, fmt.Errorf("failed to encode statement totals: %w", err)
	}
	warnings := d.Warnings
	if warnings == nil {
		warnings = []apperrors.UnclassifiedAccountWarning{}
	}
	warningsJSON, err := json.Marshal(warnings)
	if err != nil {
		return models.FinancialStatement{}, fmt.Errorf("failed to encode statement warnings: %w", err)
	}

	return models.FinancialStatement{
		StatementID:        d.StatementID,
		CompanyID:          d.CompanyID,
		FiscalYearID:       d.FiscalYearID,
		StatementType:      string(d.Type),
		AccountingStandard: string(d.AccountingStandard),
		RuleVersion:        d.RuleVersion,
		Status:             string(d.Status),
		PeriodStart:        d.PeriodStart,
		PeriodEnd:          d.PeriodEnd,
		Lines:              lines,
		Totals:             totals,
		Warnings:           warningsJSON,
		GeneratedAt:        d.GeneratedAt,
		GeneratedBy:        d.GeneratedBy,
	}, nil
}

// ToDomainFinancialStatement converts a model FinancialStatement to a domain one. Empty JSON
// columns (header-only listings) decode to nil slices.
func ToDomainFinancialStatement(m models.FinancialStatement) (domain.FinancialStatement, error) {
	d := domain.FinancialStatement{
		StatementID:        m.StatementID,
		CompanyID:          m.CompanyID,
		FiscalYearID:       m.FiscalYearID,
		Type:               domain.StatementType(m.StatementType),
		AccountingStandard: domain.AccountingStandard(m.AccountingStandard),
		RuleVersion:        m.RuleVersion,
		Status:             domain.StatementStatus(m.Status),
		PeriodStart:        m.PeriodStart,
		PeriodEnd:          m.PeriodEnd,
		GeneratedAt:        m.GeneratedAt,
		GeneratedBy:        m.GeneratedBy,
	}
	if len(m.Lines) > 0 {
		if err := json.Unmarshal(m.Lines, &d.Lines); err != nil {
			return d, fmt.Errorf("failed to decode statement lines: %w", err)
		}
	}
	if len(m.Totals) > 0 {
		if err := json.Unmarshal(m.Totals, &d.Totals); err != nil {
			return d, fmt.Errorf("failed to decode statement totals: %w", err)
		}
	}
	if len(m.Warnings) > 0 {
		if err := json.Unmarshal(m.Warnings, &d.Warnings); err != nil {
			return d, fmt.Errorf("failed to decode statement warnings: %w", err)
		}
	}
	return d, nil
}
