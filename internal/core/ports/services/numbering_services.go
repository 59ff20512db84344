package services

import (
	"context"
	"time"
)

// NumberingSvc issues human-readable document numbers.
type NumberingSvc interface {
	// NextEntryNumber returns JE-YYYYMMDD-NNNN for the company and calendar day.
	NextEntryNumber(ctx context.Context, companyID string, date time.Time) (string, error)

	// NextReconciliationNumber returns REC-YYYYMMDD-NNNN for the company and calendar day.
	NextReconciliationNumber(ctx context.Context, companyID string, date time.Time) (string, error)
}
