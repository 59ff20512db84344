package accounting

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/SscSPs/ohada_ledger/internal/apperrors"
	"github.com/SscSPs/ohada_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrEntryMissingSide   = errors.New("entry must have at least one debit line and one credit line")
	ErrLineAmountPositive = errors.New("line amount must be positive")
	ErrLineInvalidSide    = errors.New("line side must be DEBIT or CREDIT")
	ErrLineMissingAccount = errors.New("line account number is required")
)

// SignedAmount returns the debit-positive contribution of a line to its account balance.
// This is used in both services and repositories to keep one balance convention.
func SignedAmount(line domain.AccountEntry) decimal.Decimal {
	if line.Side == domain.Credit {
		return line.Amount.Neg()
	}
	return line.Amount
}

// Totals sums the debit and credit lines separately.
func Totals(lines []domain.AccountEntry) (totalDebit, totalCredit decimal.Decimal) {
	totalDebit, totalCredit = decimal.Zero, decimal.Zero
	for _, line := range lines {
		switch line.Side {
		case domain.Debit:
			totalDebit = totalDebit.Add(line.Amount)
		case domain.Credit:
			totalCredit = totalCredit.Add(line.Amount)
		}
	}
	return totalDebit, totalCredit
}

// BalancesFromLines folds lines into debit-positive balances per account.
func BalancesFromLines(lines []domain.AccountEntry) domain.AccountBalances {
	balances := make(domain.AccountBalances)
	for _, line := range lines {
		balances[line.AccountNumber] = balances[line.AccountNumber].Add(SignedAmount(line))
	}
	return balances
}

// ValidateLines checks the shape of each line: an account, a known side and a positive amount,
// with both sides represented.
func ValidateLines(lines []domain.AccountEntry) error {
	hasDebit, hasCredit := false, false
	for i, line := range lines {
		if line.AccountNumber == "" {
			return fmt.Errorf("%w: %w (line %d)", apperrors.ErrValidation, ErrLineMissingAccount, i+1)
		}
		switch line.Side {
		case domain.Debit:
			hasDebit = true
		case domain.Credit:
			hasCredit = true
		default:
			return fmt.Errorf("%w: %w (line %d has %q)", apperrors.ErrValidation, ErrLineInvalidSide, i+1, line.Side)
		}
		if !line.Amount.IsPositive() {
			return fmt.Errorf("%w: %w (line %d, account %s, amount %s)",
				apperrors.ErrValidation, ErrLineAmountPositive, i+1, line.AccountNumber, line.Amount.String())
		}
	}
	if !hasDebit || !hasCredit {
		return fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrEntryMissingSide)
	}
	return nil
}

// ValidateBalance requires the debit total to equal the credit total exactly.
func ValidateBalance(lines []domain.AccountEntry) error {
	totalDebit, totalCredit := Totals(lines)
	if !totalDebit.Equal(totalCredit) {
		return &apperrors.BalanceError{TotalDebit: totalDebit, TotalCredit: totalCredit}
	}
	return nil
}

// ValidateFormat requires every account number to match the standard's format.
// A nil format means the standard defines none and the check is skipped.
func ValidateFormat(lines []domain.AccountEntry, standard domain.AccountingStandard, format *regexp.Regexp) error {
	if format == nil {
		return nil
	}
	for _, line := range lines {
		if !format.MatchString(line.AccountNumber) {
			return &apperrors.FormatError{AccountNumber: line.AccountNumber, Standard: string(standard)}
		}
	}
	return nil
}

// ValidateEntry runs the line, balance and format checks in that order.
func ValidateEntry(lines []domain.AccountEntry, standard domain.AccountingStandard, format *regexp.Regexp) error {
	if err := ValidateLines(lines); err != nil {
		return err
	}
	if err := ValidateBalance(lines); err != nil {
		return err
	}
	return ValidateFormat(lines, standard, format)
}
