package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/ohada_ledger/internal/apperrors"
	"github.com/SscSPs/ohada_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/ohada_ledger/internal/core/ports/services"
	"github.com/SscSPs/ohada_ledger/internal/dto"
	"github.com/SscSPs/ohada_ledger/internal/handlers"
	"github.com/SscSPs/ohada_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock JournalEntryService ---
type MockJournalEntryService struct {
	mock.Mock
}

func (m *MockJournalEntryService) entryResult(args mock.Arguments) (*domain.JournalEntry, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryService) GetEntryByID(ctx context.Context, companyID string, entryID string) (*domain.JournalEntry, error) {
	return m.entryResult(m.Called(ctx, companyID, entryID))
}
func (m *MockJournalEntryService) ListEntries(ctx context.Context, companyID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	args := m.Called(ctx, companyID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListEntriesResponse), args.Error(1)
}
func (m *MockJournalEntryService) GetEntriesByDateRange(ctx context.Context, companyID string, from, to time.Time) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, companyID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}
func (m *MockJournalEntryService) CreateEntry(ctx context.Context, companyID string, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	return m.entryResult(m.Called(ctx, companyID, req, creatorUserID))
}
func (m *MockJournalEntryService) ValidateEntry(ctx context.Context, companyID string, entryID string, validatorUserID string) (*domain.JournalEntry, error) {
	return m.entryResult(m.Called(ctx, companyID, entryID, validatorUserID))
}
func (m *MockJournalEntryService) CancelEntry(ctx context.Context, companyID string, entryID string, userID string) (*domain.JournalEntry, error) {
	return m.entryResult(m.Called(ctx, companyID, entryID, userID))
}
func (m *MockJournalEntryService) ReverseEntry(ctx context.Context, companyID string, entryID string, userID string) (*domain.JournalEntry, error) {
	return m.entryResult(m.Called(ctx, companyID, entryID, userID))
}
func (m *MockJournalEntryService) ListAccountEntries(ctx context.Context, companyID string, filter domain.AccountEntryFilter) ([]domain.AccountEntry, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountEntry), args.Error(1)
}
func (m *MockJournalEntryService) TrialBalance(ctx context.Context, companyID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, companyID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

var _ portssvc.JournalEntrySvcFacade = (*MockJournalEntryService)(nil)

// --- Mock FiscalYearService ---
type MockFiscalYearService struct {
	mock.Mock
}

func (m *MockFiscalYearService) result(args mock.Arguments) (*domain.FiscalYear, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalYearService) CreateFiscalYear(ctx context.Context, companyID string, req dto.CreateFiscalYearRequest, userID string) (*domain.FiscalYear, error) {
	return m.result(m.Called(ctx, companyID, req, userID))
}
func (m *MockFiscalYearService) GetFiscalYear(ctx context.Context, companyID, fiscalYearID string) (*domain.FiscalYear, error) {
	return m.result(m.Called(ctx, companyID, fiscalYearID))
}
func (m *MockFiscalYearService) ListFiscalYears(ctx context.Context, companyID string) ([]domain.FiscalYear, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalYear), args.Error(1)
}
func (m *MockFiscalYearService) CloseFiscalYear(ctx context.Context, companyID, fiscalYearID string, userID string) (*domain.FiscalYear, error) {
	return m.result(m.Called(ctx, companyID, fiscalYearID, userID))
}

var _ portssvc.FiscalYearSvc = (*MockFiscalYearService)(nil)

// --- Mock StatementService ---
type MockStatementService struct {
	mock.Mock
}

func (m *MockStatementService) result(args mock.Arguments) (*domain.FinancialStatement, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialStatement), args.Error(1)
}

func (m *MockStatementService) GenerateBalanceSheet(ctx context.Context, companyID, fiscalYearID string, standard domain.AccountingStandard, userID string) (*domain.FinancialStatement, error) {
	return m.result(m.Called(ctx, companyID, fiscalYearID, standard, userID))
}
func (m *MockStatementService) GenerateIncomeStatement(ctx context.Context, companyID, fiscalYearID string, standard domain.AccountingStandard, userID string) (*domain.FinancialStatement, error) {
	return m.result(m.Called(ctx, companyID, fiscalYearID, standard, userID))
}
func (m *MockStatementService) GenerateCashFlowStatement(ctx context.Context, companyID, fiscalYearID string, standard domain.AccountingStandard, userID string) (*domain.FinancialStatement, error) {
	return m.result(m.Called(ctx, companyID, fiscalYearID, standard, userID))
}
func (m *MockStatementService) GetStatement(ctx context.Context, companyID, statementID string) (*domain.FinancialStatement, error) {
	return m.result(m.Called(ctx, companyID, statementID))
}
func (m *MockStatementService) ListStatements(ctx context.Context, companyID, fiscalYearID string) ([]domain.FinancialStatement, error) {
	args := m.Called(ctx, companyID, fiscalYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FinancialStatement), args.Error(1)
}

var _ portssvc.StatementSvcFacade = (*MockStatementService)(nil)

// --- Test Suite ---
type HandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	journalSvc    *MockJournalEntryService
	fiscalYearSvc *MockFiscalYearService
	statementSvc  *MockStatementService
	jwtSecret     string
	companyID     string
	userID        string
}

func (suite *HandlerTestSuite) generateTestToken(userID string, companies ...string) string {
	claims := middleware.LedgerClaims{
		Companies: companies,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "ohada-test",
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.journalSvc = new(MockJournalEntryService)
	suite.fiscalYearSvc = new(MockFiscalYearService)
	suite.statementSvc = new(MockStatementService)

	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(suite.jwtSecret))
	handlers.RegisterCompanyRoutes(v1, &portssvc.ServiceContainer{
		Journal:    suite.journalSvc,
		FiscalYear: suite.fiscalYearSvc,
		Statement:  suite.statementSvc,
	})
}

func (suite *HandlerTestSuite) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) url(format string, args ...any) string {
	return fmt.Sprintf("/api/v1/companies/%s", suite.companyID) + fmt.Sprintf(format, args...)
}

func createEntryBody(debitAccount string) map[string]any {
	return map[string]any{
		"entryDate":          "2025-03-15T00:00:00Z",
		"journalType":        "VENTES",
		"description":        "Facture client 2025-031",
		"currencyCode":       "XOF",
		"countryCode":        "CI",
		"accountingStandard": "SYSCOHADA",
		"lines": []map[string]any{
			{"accountNumber": debitAccount, "side": "DEBIT", "amount": "118000"},
			{"accountNumber": "701100", "side": "CREDIT", "amount": "118000"},
		},
	}
}

// --- Test Cases ---

func (suite *HandlerTestSuite) TestCreateEntry_Success() {
	entry := &domain.JournalEntry{
		EntryID:     uuid.NewString(),
		CompanyID:   suite.companyID,
		EntryNumber: "JE-20250315-0001",
		Status:      domain.StatusDraft,
		TotalDebit:  decimal.NewFromInt(118000),
		TotalCredit: decimal.NewFromInt(118000),
	}
	suite.journalSvc.On("CreateEntry", mock.Anything, suite.companyID,
		mock.MatchedBy(func(req dto.CreateJournalEntryRequest) bool {
			return len(req.Lines) == 2 && req.Lines[0].Amount.Equal(decimal.NewFromInt(118000))
		}),
		suite.userID,
	).Return(entry, nil).Once()

	w := suite.do(http.MethodPost, suite.url("/entries"), createEntryBody("411100"), suite.generateTestToken(suite.userID))

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.JournalEntryResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("JE-20250315-0001", resp.EntryNumber)
	suite.Equal("DRAFT", resp.Status)
	suite.journalSvc.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCreateEntry_InvalidAccountNumber() {
	w := suite.do(http.MethodPost, suite.url("/entries"), createEntryBody("41A"), suite.generateTestToken(suite.userID))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.journalSvc.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateEntry_Unbalanced() {
	suite.journalSvc.On("CreateEntry", mock.Anything, suite.companyID, mock.Anything, suite.userID).
		Return(nil, &apperrors.BalanceError{TotalDebit: decimal.RequireFromString("100.00"), TotalCredit: decimal.RequireFromString("99.99")}).Once()

	w := suite.do(http.MethodPost, suite.url("/entries"), createEntryBody("411100"), suite.generateTestToken(suite.userID))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "99.99")
}

func (suite *HandlerTestSuite) TestMissingToken() {
	w := suite.do(http.MethodGet, suite.url("/entries"), nil, "")
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestTokenScopedToAnotherCompany() {
	w := suite.do(http.MethodGet, suite.url("/entries"), nil, suite.generateTestToken(suite.userID, uuid.NewString()))
	suite.Equal(http.StatusForbidden, w.Code)
	suite.journalSvc.AssertNotCalled(suite.T(), "ListEntries", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestGetEntry_NotFound() {
	entryID := uuid.NewString()
	suite.journalSvc.On("GetEntryByID", mock.Anything, suite.companyID, entryID).
		Return(nil, apperrors.NewNotFoundError("journal entry", entryID)).Once()

	w := suite.do(http.MethodGet, suite.url("/entries/%s", entryID), nil, suite.generateTestToken(suite.userID, suite.companyID))

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestCancelValidatedEntry_Conflict() {
	entryID := uuid.NewString()
	suite.journalSvc.On("CancelEntry", mock.Anything, suite.companyID, entryID, suite.userID).
		Return(nil, &apperrors.StateError{EntryID: entryID, Status: "VALIDATED", Action: "cancel"}).Once()

	w := suite.do(http.MethodPost, suite.url("/entries/%s/cancel", entryID), nil, suite.generateTestToken(suite.userID))

	suite.Equal(http.StatusConflict, w.Code)
	suite.Contains(w.Body.String(), "reverse it instead")
}

func (suite *HandlerTestSuite) TestListEntries_PassesFilters() {
	suite.journalSvc.On("ListEntries", mock.Anything, suite.companyID,
		mock.MatchedBy(func(p dto.ListEntriesParams) bool {
			return p.Status == "VALIDATED" && p.Limit == 5 && p.IncludeLines
		}),
	).Return(&dto.ListEntriesResponse{Entries: []dto.JournalEntryResponse{}}, nil).Once()

	w := suite.do(http.MethodGet, suite.url("/entries?status=VALIDATED&limit=5&includeLines=true"), nil, suite.generateTestToken(suite.userID))

	suite.Equal(http.StatusOK, w.Code)
	suite.journalSvc.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestTrialBalance() {
	asOf := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	rows := []domain.TrialBalanceRow{
		{AccountNumber: "411100", TotalDebit: decimal.NewFromInt(118000), TotalCredit: decimal.Zero, Balance: decimal.NewFromInt(118000)},
		{AccountNumber: "701100", TotalDebit: decimal.Zero, TotalCredit: decimal.NewFromInt(118000), Balance: decimal.NewFromInt(-118000)},
	}
	suite.journalSvc.On("TrialBalance", mock.Anything, suite.companyID, asOf).Return(rows, nil).Once()

	w := suite.do(http.MethodGet, suite.url("/reports/trial-balance?asOf=2025-06-30"), nil, suite.generateTestToken(suite.userID))

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.TrialBalanceResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Rows, 2)
	suite.True(resp.Totals.Debit.Equal(resp.Totals.Credit))
}

func (suite *HandlerTestSuite) TestTrialBalance_InvalidDate() {
	w := suite.do(http.MethodGet, suite.url("/reports/trial-balance?asOf=30-06-2025"), nil, suite.generateTestToken(suite.userID))
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestGenerateBalanceSheet_DefaultsToSYSCOHADA() {
	fyID := uuid.NewString()
	statement := &domain.FinancialStatement{
		StatementID:        uuid.NewString(),
		CompanyID:          suite.companyID,
		FiscalYearID:       fyID,
		Type:               domain.BalanceSheet,
		AccountingStandard: domain.StandardSYSCOHADA,
		Status:             domain.StatementDraft,
	}
	suite.statementSvc.On("GenerateBalanceSheet", mock.Anything, suite.companyID, fyID, domain.StandardSYSCOHADA, suite.userID).
		Return(statement, nil).Once()

	w := suite.do(http.MethodPost, suite.url("/fiscal-years/%s/statements/balance-sheet", fyID), nil, suite.generateTestToken(suite.userID))

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.StatementResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("BALANCE_SHEET", resp.Type)
	suite.NotNil(resp.Warnings)
	suite.statementSvc.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestGenerateCashFlow_MissingPriorYear() {
	fyID := uuid.NewString()
	suite.statementSvc.On("GenerateCashFlowStatement", mock.Anything, suite.companyID, fyID, domain.StandardSYSCOHADA, suite.userID).
		Return(nil, &apperrors.MissingPrerequisiteError{Statement: "cash flow statement", Missing: "prior-period balance sheet"}).Once()

	w := suite.do(http.MethodPost, suite.url("/fiscal-years/%s/statements/cash-flow", fyID), nil, suite.generateTestToken(suite.userID))

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *HandlerTestSuite) TestGenerateStatement_UnknownStandard() {
	w := suite.do(http.MethodPost, suite.url("/fiscal-years/%s/statements/income-statement?standard=GAAP", uuid.NewString()), nil, suite.generateTestToken(suite.userID))
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestCloseFiscalYear_DraftsLeft() {
	fyID := uuid.NewString()
	suite.fiscalYearSvc.On("CloseFiscalYear", mock.Anything, suite.companyID, fyID, suite.userID).
		Return(nil, fmt.Errorf("%w: fiscal year still has draft entries", apperrors.ErrConflict)).Once()

	w := suite.do(http.MethodPost, suite.url("/fiscal-years/%s/close", fyID), nil, suite.generateTestToken(suite.userID))

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestInternalErrorIsHidden() {
	suite.fiscalYearSvc.On("ListFiscalYears", mock.Anything, suite.companyID).
		Return(nil, apperrors.NewAppError(500, "failed to list fiscal years", fmt.Errorf("connection refused"))).Once()

	w := suite.do(http.MethodGet, suite.url("/fiscal-years"), nil, suite.generateTestToken(suite.userID))

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.NotContains(w.Body.String(), "connection refused")
}

// --- Run Test Suite ---
func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
