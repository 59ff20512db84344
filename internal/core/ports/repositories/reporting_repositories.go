package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ohada_ledger/internal/core/domain"
)

// ReportingRepository defines read operations over validated ledger lines
type ReportingRepository interface {
	// GetAccountBalances returns debit-positive balances of VALIDATED lines dated up to `to`.
	// A nil `from` means since the beginning of the ledger.
	GetAccountBalances(ctx context.Context, companyID string, from *time.Time, to time.Time) (domain.AccountBalances, error)

	// GetTrialBalance retrieves per-account totals of VALIDATED lines as of a specific date
	GetTrialBalance(ctx context.Context, companyID string, asOf time.Time) ([]domain.TrialBalanceRow, error)
}
