package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/ohada_ledger/internal/apperrors"
	portsrepo "github.com/SscSPs/ohada_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ohada_ledger/internal/core/ports/services"
)

const (
	EntryNumberPrefix          = "JE"
	ReconciliationNumberPrefix = "REC"
)

type numberingService struct {
	BaseService
	sequenceRepo portsrepo.SequenceRepository
}

// NewNumberingService creates a NumberingSvc backed by an atomic sequence store.
func NewNumberingService(sequenceRepo portsrepo.SequenceRepository) portssvc.NumberingSvc {
	return &numberingService{sequenceRepo: sequenceRepo}
}

var _ portssvc.NumberingSvc = (*numberingService)(nil)

// FormatDocumentNumber renders PREFIX-YYYYMMDD-NNNN.
func FormatDocumentNumber(prefix string, date time.Time, seq int64) string {
	return fmt.Sprintf("%s-%s-%04d", prefix, date.Format("20060102"), seq)
}

// SequenceScope is the key of the counter shared by all numbers of one prefix, company and day.
func SequenceScope(prefix, companyID string, date time.Time) string {
	return prefix + ":" + companyID + ":" + date.Format("20060102")
}

func (s *numberingService) NextEntryNumber(ctx context.Context, companyID string, date time.Time) (string, error) {
	return s.next(ctx, EntryNumberPrefix, companyID, date)
}

func (s *numberingService) NextReconciliationNumber(ctx context.Context, companyID string, date time.Time) (string, error) {
	return s.next(ctx, ReconciliationNumberPrefix, companyID, date)
}

func (s *numberingService) next(ctx context.Context, prefix, companyID string, date time.Time) (string, error) {
	if companyID == "" {
		return "", fmt.Errorf("%w: company ID is required for numbering", apperrors.ErrValidation)
	}
	if date.IsZero() {
		return "", fmt.Errorf("%w: date is required for numbering", apperrors.ErrValidation)
	}

	scope := SequenceScope(prefix, companyID, date)
	seq, err := s.sequenceRepo.NextValue(ctx, scope)
	if err != nil {
		s.LogError(ctx, err, "Failed to obtain next sequence value", slog.String("scope", scope))
		return "", fmt.Errorf("failed to obtain next number for %s: %w", scope, err)
	}
	return FormatDocumentNumber(prefix, date, seq), nil
}
