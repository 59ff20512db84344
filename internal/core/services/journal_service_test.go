package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/ohada_ledger/internal/apperrors"
	"github.com/SscSPs/ohada_ledger/internal/core/classification"
	"github.com/SscSPs/ohada_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/ohada_ledger/internal/core/ports/services"
	"github.com/SscSPs/ohada_ledger/internal/core/services"
	"github.com/SscSPs/ohada_ledger/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type JournalEntryServiceTestSuite struct {
	suite.Suite
	mockEntryRepo      *MockJournalEntryRepository
	mockReportingRepo  *MockReportingRepository
	mockFiscalYearRepo *MockFiscalYearRepository
	service            portssvc.JournalEntrySvcFacade
	ctx                context.Context
	companyID          string
	userID             string
	entryDate          time.Time
	fiscalYear         domain.FiscalYear
	now                time.Time
}

func (suite *JournalEntryServiceTestSuite) SetupTest() {
	registry, err := classification.LoadEmbedded()
	suite.Require().NoError(err)

	suite.mockEntryRepo = new(MockJournalEntryRepository)
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockFiscalYearRepo = new(MockFiscalYearRepository)
	suite.now = time.Date(2025, 3, 20, 10, 0, 0, 0, time.UTC)
	suite.service = services.NewJournalEntryService(
		suite.mockEntryRepo,
		suite.mockReportingRepo,
		suite.mockFiscalYearRepo,
		services.NewNumberingService(newMemorySequenceRepository()),
		registry,
		services.WithJournalClock(func() time.Time { return suite.now }),
	)

	suite.ctx = context.Background()
	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.entryDate = time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	suite.fiscalYear = domain.FiscalYear{
		FiscalYearID: uuid.NewString(),
		CompanyID:    suite.companyID,
		Label:        "FY2025",
		StartDate:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		Status:       domain.FiscalYearOpen,
	}
}

func (suite *JournalEntryServiceTestSuite) createRequest(debit, credit string) dto.CreateJournalEntryRequest {
	return dto.CreateJournalEntryRequest{
		EntryDate:          suite.entryDate,
		JournalType:        domain.JournalSales,
		Description:        "Facture <b>client</b> 2025-031",
		CurrencyCode:       "xof",
		CountryCode:        "ci",
		AccountingStandard: domain.StandardSYSCOHADA,
		Lines: []dto.CreateAccountEntryRequest{
			{AccountNumber: "411000", AccountName: "Clients", Side: domain.Debit, Amount: decimal.RequireFromString(debit)},
			{AccountNumber: "701000", AccountName: "Ventes de marchandises", Side: domain.Credit, Amount: decimal.RequireFromString(credit)},
		},
	}
}

func (suite *JournalEntryServiceTestSuite) storedEntry(status domain.EntryStatus) *domain.JournalEntry {
	return &domain.JournalEntry{
		EntryID:            uuid.NewString(),
		CompanyID:          suite.companyID,
		FiscalYearID:       suite.fiscalYear.FiscalYearID,
		EntryNumber:        "JE-20250315-0007",
		EntryDate:          suite.entryDate,
		JournalType:        domain.JournalSales,
		Description:        "Facture client",
		CurrencyCode:       "XOF",
		CountryCode:        "CI",
		AccountingStandard: domain.StandardSYSCOHADA,
		Status:             status,
	}
}

func storedLines(entryID string, debit, credit string) []domain.AccountEntry {
	return []domain.AccountEntry{
		{LineID: uuid.NewString(), EntryID: entryID, LineNumber: 1, AccountNumber: "411000", Side: domain.Debit, Amount: decimal.RequireFromString(debit)},
		{LineID: uuid.NewString(), EntryID: entryID, LineNumber: 2, AccountNumber: "701000", Side: domain.Credit, Amount: decimal.RequireFromString(credit)},
	}
}

// --- CreateEntry ---

func (suite *JournalEntryServiceTestSuite) TestCreateEntry_Success() {
	req := suite.createRequest("1500.00", "1500.00")
	suite.mockFiscalYearRepo.On("FindFiscalYearByDate", suite.ctx, suite.companyID, suite.entryDate).Return(&suite.fiscalYear, nil).Once()
	suite.mockEntryRepo.On("SaveEntry", suite.ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.AccountEntry")).Return(nil).Once()

	entry, err := suite.service.CreateEntry(suite.ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal("JE-20250315-0001", entry.EntryNumber)
	suite.Equal(domain.StatusDraft, entry.Status)
	suite.False(entry.Posted)
	suite.Equal(suite.fiscalYear.FiscalYearID, entry.FiscalYearID)
	suite.Equal("Facture client 2025-031", entry.Description)
	suite.Equal("XOF", entry.CurrencyCode)
	suite.Equal("CI", entry.CountryCode)
	suite.True(entry.TotalDebit.Equal(decimal.RequireFromString("1500")))
	suite.True(entry.TotalCredit.Equal(entry.TotalDebit))
	suite.Equal(suite.userID, entry.CreatedBy)
	suite.Equal(suite.now, entry.CreatedAt)

	suite.Require().Len(entry.Lines, 2)
	for i, line := range entry.Lines {
		suite.Equal(i+1, line.LineNumber)
		suite.Equal(entry.EntryID, line.EntryID)
		suite.Equal(entry.Tags(), line.EntryTags, "line tags mirror the parent entry")
	}

	saved := suite.mockEntryRepo.Calls[0].Arguments.Get(1).(domain.JournalEntry)
	suite.Equal(entry.EntryNumber, saved.EntryNumber)
	suite.mockFiscalYearRepo.AssertExpectations(suite.T())
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *JournalEntryServiceTestSuite) TestCreateEntry_SanitizesLineText() {
	req := suite.createRequest("100", "100")
	ref, blank := "<b>CLI</b>-0042", "<br/>"
	req.Lines[0].ThirdPartyRef = &ref
	req.Lines[1].ThirdPartyRef = &blank
	req.Lines[0].Description = "<i>Acompte</i>"
	suite.mockFiscalYearRepo.On("FindFiscalYearByDate", suite.ctx, suite.companyID, suite.entryDate).Return(&suite.fiscalYear, nil).Once()
	suite.mockEntryRepo.On("SaveEntry", suite.ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.AccountEntry")).Return(nil).Once()

	entry, err := suite.service.CreateEntry(suite.ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	saved := suite.mockEntryRepo.Calls[0].Arguments.Get(2).([]domain.AccountEntry)
	suite.Require().NotNil(saved[0].ThirdPartyRef)
	suite.Equal("CLI-0042", *saved[0].ThirdPartyRef)
	suite.Nil(saved[1].ThirdPartyRef)
	suite.Equal("Acompte", saved[0].Description)
	suite.Equal(saved[0].ThirdPartyRef, entry.Lines[0].ThirdPartyRef)
}

func (suite *JournalEntryServiceTestSuite) TestCreateEntry_NumbersIncreaseWithinTheDay() {
	suite.mockFiscalYearRepo.On("FindFiscalYearByDate", suite.ctx, suite.companyID, suite.entryDate).Return(&suite.fiscalYear, nil)
	suite.mockEntryRepo.On("SaveEntry", suite.ctx, mock.Anything, mock.Anything).Return(nil)

	first, err := suite.service.CreateEntry(suite.ctx, suite.companyID, suite.createRequest("10", "10"), suite.userID)
	suite.Require().NoError(err)
	second, err := suite.service.CreateEntry(suite.ctx, suite.companyID, suite.createRequest("20", "20"), suite.userID)
	suite.Require().NoError(err)

	suite.Equal("JE-20250315-0001", first.EntryNumber)
	suite.Equal("JE-20250315-0002", second.EntryNumber)
}

func (suite *JournalEntryServiceTestSuite) TestCreateEntry_Unbalanced() {
	req := suite.createRequest("100.00", "99.99")
	suite.mockFiscalYearRepo.On("FindFiscalYearByDate", suite.ctx, suite.companyID, suite.entryDate).Return(&suite.fiscalYear, nil).Once()

	entry, err := suite.service.CreateEntry(suite.ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
	var balanceErr *apperrors.BalanceError
	suite.Require().ErrorAs(err, &balanceErr)
	suite.Equal("100", balanceErr.TotalDebit.String())
	suite.Equal("99.99", balanceErr.TotalCredit.String())
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalEntryServiceTestSuite) TestCreateEntry_InvalidAccountFormat() {
	req := suite.createRequest("50", "50")
	req.Lines[1].AccountNumber = "70"
	suite.mockFiscalYearRepo.On("FindFiscalYearByDate", suite.ctx, suite.companyID, suite.entryDate).Return(&suite.fiscalYear, nil).Once()

	_, err := suite.service.CreateEntry(suite.ctx, suite.companyID, req, suite.userID)

	var formatErr *apperrors.FormatError
	suite.Require().ErrorAs(err, &formatErr)
	suite.Equal("70", formatErr.AccountNumber)
	suite.Equal("SYSCOHADA", formatErr.Standard)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalEntryServiceTestSuite) TestCreateEntry_ZeroAmountRejected() {
	req := suite.createRequest("0", "0")
	suite.mockFiscalYearRepo.On("FindFiscalYearByDate", suite.ctx, suite.companyID, suite.entryDate).Return(&suite.fiscalYear, nil).Once()

	_, err := suite.service.CreateEntry(suite.ctx, suite.companyID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalEntryServiceTestSuite) TestCreateEntry_UnknownStandard() {
	req := suite.createRequest("50", "50")
	req.AccountingStandard = "US_GAAP"

	_, err := suite.service.CreateEntry(suite.ctx, suite.companyID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockFiscalYearRepo.AssertNotCalled(suite.T(), "FindFiscalYearByDate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalEntryServiceTestSuite) TestCreateEntry_FiscalYearClosed() {
	closed := suite.fiscalYear
	closed.Status = domain.FiscalYearClosed
	suite.mockFiscalYearRepo.On("FindFiscalYearByDate", suite.ctx, suite.companyID, suite.entryDate).Return(&closed, nil).Once()

	_, err := suite.service.CreateEntry(suite.ctx, suite.companyID, suite.createRequest("50", "50"), suite.userID)

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.ErrorIs(err, services.ErrFiscalYearClosed)
}

func (suite *JournalEntryServiceTestSuite) TestCreateEntry_NoFiscalYear() {
	suite.mockFiscalYearRepo.On("FindFiscalYearByDate", suite.ctx, suite.companyID, suite.entryDate).
		Return(nil, apperrors.NewNotFoundError("fiscal year", suite.entryDate.Format("2006-01-02"))).Once()

	_, err := suite.service.CreateEntry(suite.ctx, suite.companyID, suite.createRequest("50", "50"), suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorIs(err, services.ErrNoFiscalYear)
}

func (suite *JournalEntryServiceTestSuite) TestCreateEntry_DateOutsideExplicitFiscalYear() {
	req := suite.createRequest("50", "50")
	req.FiscalYearID = suite.fiscalYear.FiscalYearID
	req.EntryDate = time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	suite.mockFiscalYearRepo.On("FindFiscalYearByID", suite.ctx, suite.fiscalYear.FiscalYearID).Return(&suite.fiscalYear, nil).Once()

	_, err := suite.service.CreateEntry(suite.ctx, suite.companyID, req, suite.userID)

	suite.ErrorIs(err, services.ErrDateOutsideFiscalYear)
}

func (suite *JournalEntryServiceTestSuite) TestCreateEntry_SaveError() {
	suite.mockFiscalYearRepo.On("FindFiscalYearByDate", suite.ctx, suite.companyID, suite.entryDate).Return(&suite.fiscalYear, nil).Once()
	suite.mockEntryRepo.On("SaveEntry", suite.ctx, mock.Anything, mock.Anything).Return(assert.AnError).Once()

	_, err := suite.service.CreateEntry(suite.ctx, suite.companyID, suite.createRequest("50", "50"), suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, assert.AnError)
}

// --- Lifecycle ---

func (suite *JournalEntryServiceTestSuite) TestValidateEntry_Success() {
	entry := suite.storedEntry(domain.StatusDraft)
	lines := storedLines(entry.EntryID, "250", "250")
	suite.mockEntryRepo.On("FindEntryByID", suite.ctx, entry.EntryID).Return(entry, nil).Once()
	suite.mockFiscalYearRepo.On("FindFiscalYearByID", suite.ctx, suite.fiscalYear.FiscalYearID).Return(&suite.fiscalYear, nil).Once()
	suite.mockEntryRepo.On("FindLinesByEntryID", suite.ctx, entry.EntryID).Return(lines, nil).Once()
	suite.mockEntryRepo.On("TransitionStatus", suite.ctx, mock.MatchedBy(func(t domain.StatusTransition) bool {
		return t.EntryID == entry.EntryID && t.From == domain.StatusDraft && t.To == domain.StatusValidated &&
			t.ValidatedBy != nil && *t.ValidatedBy == suite.userID && t.ValidatedAt != nil && t.ValidatedAt.Equal(suite.now)
	})).Return(nil).Once()

	validated, err := suite.service.ValidateEntry(suite.ctx, suite.companyID, entry.EntryID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusValidated, validated.Status)
	suite.True(validated.Posted)
	suite.Equal(suite.userID, *validated.ValidatedBy)
	suite.Equal(suite.now, *validated.ValidatedAt)
	suite.Len(validated.Lines, 2)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *JournalEntryServiceTestSuite) TestValidateEntry_PersistedLinesUnbalanced() {
	entry := suite.storedEntry(domain.StatusDraft)
	suite.mockEntryRepo.On("FindEntryByID", suite.ctx, entry.EntryID).Return(entry, nil).Once()
	suite.mockFiscalYearRepo.On("FindFiscalYearByID", suite.ctx, suite.fiscalYear.FiscalYearID).Return(&suite.fiscalYear, nil).Once()
	suite.mockEntryRepo.On("FindLinesByEntryID", suite.ctx, entry.EntryID).Return(storedLines(entry.EntryID, "100.00", "99.99"), nil).Once()

	_, err := suite.service.ValidateEntry(suite.ctx, suite.companyID, entry.EntryID, suite.userID)

	var balanceErr *apperrors.BalanceError
	suite.ErrorAs(err, &balanceErr)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "TransitionStatus", mock.Anything, mock.Anything)
}

func (suite *JournalEntryServiceTestSuite) TestValidateEntry_ClosedFiscalYear() {
	entry := suite.storedEntry(domain.StatusDraft)
	closed := suite.fiscalYear
	closed.Status = domain.FiscalYearClosed
	suite.mockEntryRepo.On("FindEntryByID", suite.ctx, entry.EntryID).Return(entry, nil).Once()
	suite.mockFiscalYearRepo.On("FindFiscalYearByID", suite.ctx, suite.fiscalYear.FiscalYearID).Return(&closed, nil).Once()

	_, err := suite.service.ValidateEntry(suite.ctx, suite.companyID, entry.EntryID, suite.userID)

	suite.ErrorIs(err, services.ErrFiscalYearClosed)
}

func (suite *JournalEntryServiceTestSuite) TestIllegalTransitions() {
	cases := []struct {
		name   string
		status domain.EntryStatus
		action string
		call   func(entryID string) (*domain.JournalEntry, error)
		msg    string
	}{
		{
			name: "cancel validated", status: domain.StatusValidated, action: "cancel",
			call: func(id string) (*domain.JournalEntry, error) {
				return suite.service.CancelEntry(suite.ctx, suite.companyID, id, suite.userID)
			},
			msg: "cannot cancel validated entry",
		},
		{
			name: "cancel cancelled", status: domain.StatusCancelled, action: "cancel",
			call: func(id string) (*domain.JournalEntry, error) {
				return suite.service.CancelEntry(suite.ctx, suite.companyID, id, suite.userID)
			},
			msg: "in status CANCELLED",
		},
		{
			name: "validate cancelled", status: domain.StatusCancelled, action: "validate",
			call: func(id string) (*domain.JournalEntry, error) {
				return suite.service.ValidateEntry(suite.ctx, suite.companyID, id, suite.userID)
			},
			msg: "in status CANCELLED",
		},
		{
			name: "validate validated", status: domain.StatusValidated, action: "validate",
			call: func(id string) (*domain.JournalEntry, error) {
				return suite.service.ValidateEntry(suite.ctx, suite.companyID, id, suite.userID)
			},
			msg: "in status VALIDATED",
		},
		{
			name: "reverse draft", status: domain.StatusDraft, action: "reverse",
			call: func(id string) (*domain.JournalEntry, error) {
				return suite.service.ReverseEntry(suite.ctx, suite.companyID, id, suite.userID)
			},
			msg: "in status DRAFT",
		},
	}

	for _, tc := range cases {
		suite.Run(tc.name, func() {
			entry := suite.storedEntry(tc.status)
			suite.mockEntryRepo.On("FindEntryByID", suite.ctx, entry.EntryID).Return(entry, nil).Once()

			result, err := tc.call(entry.EntryID)

			suite.Nil(result)
			suite.ErrorIs(err, apperrors.ErrConflict)
			var stateErr *apperrors.StateError
			suite.Require().ErrorAs(err, &stateErr)
			suite.Equal(string(tc.status), stateErr.Status)
			suite.Equal(tc.action, stateErr.Action)
			suite.Contains(err.Error(), tc.msg)
		})
	}
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "TransitionStatus", mock.Anything, mock.Anything)
}

func (suite *JournalEntryServiceTestSuite) TestCancelEntry_Success() {
	entry := suite.storedEntry(domain.StatusDraft)
	suite.mockEntryRepo.On("FindEntryByID", suite.ctx, entry.EntryID).Return(entry, nil).Once()
	suite.mockEntryRepo.On("TransitionStatus", suite.ctx, mock.MatchedBy(func(t domain.StatusTransition) bool {
		return t.From == domain.StatusDraft && t.To == domain.StatusCancelled && t.ValidatedBy == nil
	})).Return(nil).Once()

	cancelled, err := suite.service.CancelEntry(suite.ctx, suite.companyID, entry.EntryID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusCancelled, cancelled.Status)
	suite.Equal(suite.userID, cancelled.LastUpdatedBy)
}

func (suite *JournalEntryServiceTestSuite) TestCancelEntry_LosesRaceToValidation() {
	entry := suite.storedEntry(domain.StatusDraft)
	winner := suite.storedEntry(domain.StatusValidated)
	winner.EntryID = entry.EntryID
	suite.mockEntryRepo.On("FindEntryByID", suite.ctx, entry.EntryID).Return(entry, nil).Once()
	suite.mockEntryRepo.On("TransitionStatus", suite.ctx, mock.Anything).Return(apperrors.ErrConflict).Once()
	suite.mockEntryRepo.On("FindEntryByID", suite.ctx, entry.EntryID).Return(winner, nil).Once()

	_, err := suite.service.CancelEntry(suite.ctx, suite.companyID, entry.EntryID, suite.userID)

	var stateErr *apperrors.StateError
	suite.Require().ErrorAs(err, &stateErr)
	suite.Equal("VALIDATED", stateErr.Status)
	suite.Contains(err.Error(), "reverse it instead")
}

func (suite *JournalEntryServiceTestSuite) TestEntryOfOtherCompanyIsNotFound() {
	entry := suite.storedEntry(domain.StatusDraft)
	entry.CompanyID = uuid.NewString()
	suite.mockEntryRepo.On("FindEntryByID", suite.ctx, entry.EntryID).Return(entry, nil).Once()

	_, err := suite.service.GetEntryByID(suite.ctx, suite.companyID, entry.EntryID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "FindLinesByEntryID", mock.Anything, mock.Anything)
}

func (suite *JournalEntryServiceTestSuite) TestReverseEntry_SwapsSides() {
	original := suite.storedEntry(domain.StatusValidated)
	lines := storedLines(original.EntryID, "800", "800")
	suite.mockEntryRepo.On("FindEntryByID", suite.ctx, original.EntryID).Return(original, nil).Once()
	suite.mockFiscalYearRepo.On("FindFiscalYearByID", suite.ctx, suite.fiscalYear.FiscalYearID).Return(&suite.fiscalYear, nil).Once()
	suite.mockEntryRepo.On("FindLinesByEntryID", suite.ctx, original.EntryID).Return(lines, nil).Once()
	suite.mockEntryRepo.On("SaveEntry", suite.ctx, mock.Anything, mock.Anything).Return(nil).Once()

	reversal, err := suite.service.ReverseEntry(suite.ctx, suite.companyID, original.EntryID, suite.userID)

	suite.Require().NoError(err)
	suite.NotEqual(original.EntryID, reversal.EntryID)
	suite.Equal(domain.StatusDraft, reversal.Status)
	suite.Require().NotNil(reversal.ReversalOfEntryID)
	suite.Equal(original.EntryID, *reversal.ReversalOfEntryID)
	suite.Equal("JE-20250315-0001", reversal.EntryNumber)
	suite.Contains(reversal.Description, original.EntryNumber)
	suite.Require().Len(reversal.Lines, 2)
	suite.Equal("411000", reversal.Lines[0].AccountNumber)
	suite.Equal(domain.Credit, reversal.Lines[0].Side)
	suite.Equal(domain.Debit, reversal.Lines[1].Side)
	suite.True(reversal.TotalDebit.Equal(decimal.NewFromInt(800)))
}

func (suite *JournalEntryServiceTestSuite) TestReverseEntry_RejectsReversalOfReversal() {
	original := suite.storedEntry(domain.StatusValidated)
	source := uuid.NewString()
	original.ReversalOfEntryID = &source
	suite.mockEntryRepo.On("FindEntryByID", suite.ctx, original.EntryID).Return(original, nil).Once()

	_, err := suite.service.ReverseEntry(suite.ctx, suite.companyID, original.EntryID, suite.userID)

	suite.ErrorIs(err, services.ErrReverseReversal)
	suite.True(errors.Is(err, apperrors.ErrConflict))
}

// --- Queries ---

func (suite *JournalEntryServiceTestSuite) TestListEntries_WithLines() {
	first := suite.storedEntry(domain.StatusValidated)
	second := suite.storedEntry(domain.StatusDraft)
	params := dto.ListEntriesParams{IncludeLines: true}
	suite.mockEntryRepo.On("ListEntries", suite.ctx, mock.MatchedBy(func(f domain.EntryFilter) bool {
		return f.CompanyID == suite.companyID && f.Limit == 20
	})).Return([]domain.JournalEntry{*first, *second}, "next-page", nil).Once()
	suite.mockEntryRepo.On("FindLinesByEntryIDs", suite.ctx, []string{first.EntryID, second.EntryID}).
		Return(map[string][]domain.AccountEntry{first.EntryID: storedLines(first.EntryID, "5", "5")}, nil).Once()

	resp, err := suite.service.ListEntries(suite.ctx, suite.companyID, params)

	suite.Require().NoError(err)
	suite.Require().Len(resp.Entries, 2)
	suite.Len(resp.Entries[0].Lines, 2)
	suite.Empty(resp.Entries[1].Lines)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal("next-page", *resp.NextToken)
}

func (suite *JournalEntryServiceTestSuite) TestListEntries_InvertedDateRange() {
	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	_, err := suite.service.ListEntries(suite.ctx, suite.companyID, dto.ListEntriesParams{FromDate: &from, ToDate: &to})

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalEntryServiceTestSuite) TestGetEntriesByDateRange() {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	entry := suite.storedEntry(domain.StatusValidated)
	suite.mockEntryRepo.On("FindEntriesByDateRange", suite.ctx, suite.companyID, from, to).
		Return([]domain.JournalEntry{*entry}, nil).Once()

	got, err := suite.service.GetEntriesByDateRange(suite.ctx, suite.companyID, from, to)

	suite.Require().NoError(err)
	suite.Len(got, 1)

	_, err = suite.service.GetEntriesByDateRange(suite.ctx, suite.companyID, to, from)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *JournalEntryServiceTestSuite) TestTrialBalance_DefaultsToNow() {
	rows := []domain.TrialBalanceRow{{AccountNumber: "411000", TotalDebit: decimal.NewFromInt(5), TotalCredit: decimal.Zero, Balance: decimal.NewFromInt(5)}}
	suite.mockReportingRepo.On("GetTrialBalance", suite.ctx, suite.companyID, suite.now).Return(rows, nil).Once()

	got, err := suite.service.TrialBalance(suite.ctx, suite.companyID, time.Time{})

	suite.Require().NoError(err)
	suite.Equal(rows, got)
}

func TestJournalEntryService(t *testing.T) {
	suite.Run(t, new(JournalEntryServiceTestSuite))
}
