package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/corefin/gl_ledger_app/internal/apperrors"
	"github.com/corefin/gl_ledger_app/internal/core/domain"
	portsrepo "github.com/corefin/gl_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/corefin/gl_ledger_app/internal/core/ports/services"
	"github.com/corefin/gl_ledger_app/internal/core/services"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// --- Mock EntryRepository ---
type MockEntryRepository struct {
	mock.Mock
}

// Ensure MockEntryRepository implements portsrepo.EntryRepositoryFacade
var _ portsrepo.EntryRepositoryFacade = (*MockEntryRepository)(nil)

func (m *MockEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockEntryRepository) FindEntryByReference(ctx context.Context, companyID string, reference string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, companyID, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockEntryRepository) SearchEntriesByDescription(ctx context.Context, companyID string, fragment string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, companyID, fragment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockEntryRepository) ListEntriesByCompany(ctx context.Context, companyID string, limit int, nextToken *string, includeReversals bool) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, companyID, limit, nextToken, includeReversals)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), returnedNextToken, args.Error(2)
}

func (m *MockEntryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	args := m.Called(ctx, entry, lines)
	return args.Error(0)
}

func (m *MockEntryRepository) SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, lines []domain.JournalLine) error {
	args := m.Called(ctx, tx, entry, lines)
	return args.Error(0)
}

func (m *MockEntryRepository) UpdateEntryStatus(ctx context.Context, entryID string, from domain.EntryStatus, to domain.EntryStatus, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, entryID, from, to, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockEntryRepository) UpdateEntryStatusInTx(ctx context.Context, tx pgx.Tx, entryID string, from domain.EntryStatus, to domain.EntryStatus, reversingEntryID *string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, tx, entryID, from, to, reversingEntryID, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockEntryRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockEntryRepository) FindOpenItemsByPartner(ctx context.Context, companyID string, businessPartnerID string) ([]domain.OpenItem, error) {
	args := m.Called(ctx, companyID, businessPartnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OpenItem), args.Error(1)
}

func (m *MockEntryRepository) FindLinesByIDsForUpdate(ctx context.Context, tx pgx.Tx, lineIDs []string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, tx, lineIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockEntryRepository) FindEntriesByIDsInTx(ctx context.Context, tx pgx.Tx, entryIDs []string) (map[string]domain.JournalEntry, error) {
	args := m.Called(ctx, tx, entryIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.JournalEntry), args.Error(1)
}

func (m *MockEntryRepository) AssignClearingID(ctx context.Context, tx pgx.Tx, lineIDs []string, clearingID string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, tx, lineIDs, clearingID, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockEntryRepository) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(nil)
}

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) CreateAccount(ctx context.Context, input portssvc.CreateAccountInput, createdBy string) (*domain.Account, error) {
	args := m.Called(ctx, input, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, companyID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, companyID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// --- Mock SequenceGenerator ---
type MockSequenceGenerator struct {
	mock.Mock
}

var _ portsrepo.SequenceGenerator = (*MockSequenceGenerator)(nil)

func (m *MockSequenceGenerator) NextDocumentNo(ctx context.Context, companyID string, entryType domain.EntryType) (string, error) {
	args := m.Called(ctx, companyID, entryType)
	return args.String(0), args.Error(1)
}

// --- Test Suite Setup ---
type EntryServiceTestSuite struct {
	suite.Suite
	mockEntryRepo  *MockEntryRepository
	mockAccountSvc *MockAccountService
	mockSequences  *MockSequenceGenerator
	service        portssvc.EntrySvcFacade
	companyID      string
	userID         string
	debitAccount   domain.Account
	creditAccount  domain.Account
}

func (s *EntryServiceTestSuite) SetupTest() {
	s.mockEntryRepo = new(MockEntryRepository)
	s.mockAccountSvc = new(MockAccountService)
	s.mockSequences = new(MockSequenceGenerator)
	s.service = services.NewEntryService(s.mockEntryRepo, s.mockAccountSvc, s.mockSequences)

	s.companyID = uuid.NewString()
	s.userID = uuid.NewString()
	s.debitAccount = domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   s.companyID,
		Name:        "Office Supplies",
		AccountType: domain.Expense,
		IsActive:    true,
	}
	s.creditAccount = domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   s.companyID,
		Name:        "Main Bank",
		AccountType: domain.Asset,
		IsActive:    true,
	}
}

func (s *EntryServiceTestSuite) accountsByID() map[string]domain.Account {
	return map[string]domain.Account{
		s.debitAccount.AccountID:  s.debitAccount,
		s.creditAccount.AccountID: s.creditAccount,
	}
}

func (s *EntryServiceTestSuite) createInput(debitAmount, creditAmount string) portssvc.CreateEntryInput {
	return portssvc.CreateEntryInput{
		CompanyID:   s.companyID,
		PostingDate: time.Now(),
		Description: "stationery purchase",
		Lines: []portssvc.CreateLineInput{
			{AccountID: s.debitAccount.AccountID, Amount: decimal.RequireFromString(debitAmount), Direction: domain.Debit},
			{AccountID: s.creditAccount.AccountID, Amount: decimal.RequireFromString(creditAmount), Direction: domain.Credit},
		},
	}
}

func (s *EntryServiceTestSuite) TestCreateEntry_Success() {
	s.mockAccountSvc.On("GetAccountByIDs", mock.Anything, mock.Anything).Return(s.accountsByID(), nil)
	s.mockSequences.On("NextDocumentNo", mock.Anything, s.companyID, domain.Standard).Return("JE-000001", nil)
	s.mockEntryRepo.On("SaveEntry", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	entry, err := s.service.CreateEntry(context.Background(), s.createInput("100.00", "100.00"), s.userID)

	require.NoError(s.T(), err)
	assert.Equal(s.T(), domain.Draft, entry.Status)
	assert.Equal(s.T(), "JE-000001", entry.DocumentNo)
	assert.Equal(s.T(), domain.Standard, entry.EntryType)
	assert.Len(s.T(), entry.Lines, 2)
	assert.Equal(s.T(), s.userID, entry.CreatedBy)
	s.mockEntryRepo.AssertExpectations(s.T())
}

func (s *EntryServiceTestSuite) TestCreateEntry_UnbalancedDraftIsAllowed() {
	// Balance is only enforced at posting time
	s.mockAccountSvc.On("GetAccountByIDs", mock.Anything, mock.Anything).Return(s.accountsByID(), nil)
	s.mockSequences.On("NextDocumentNo", mock.Anything, s.companyID, domain.Standard).Return("JE-000002", nil)
	s.mockEntryRepo.On("SaveEntry", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	entry, err := s.service.CreateEntry(context.Background(), s.createInput("100.00", "40.00"), s.userID)

	require.NoError(s.T(), err)
	assert.False(s.T(), entry.IsBalanced())
}

func (s *EntryServiceTestSuite) TestCreateEntry_RejectsMissingDescription() {
	input := s.createInput("100.00", "100.00")
	input.Description = ""

	_, err := s.service.CreateEntry(context.Background(), input, s.userID)

	assert.ErrorIs(s.T(), err, services.ErrDescriptionMissing)
	s.mockEntryRepo.AssertNotCalled(s.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (s *EntryServiceTestSuite) TestCreateEntry_RejectsSingleLine() {
	input := s.createInput("100.00", "100.00")
	input.Lines = input.Lines[:1]

	_, err := s.service.CreateEntry(context.Background(), input, s.userID)

	assert.ErrorIs(s.T(), err, domain.ErrEntryMinLines)
}

func (s *EntryServiceTestSuite) TestCreateEntry_RejectsInactiveAccount() {
	s.creditAccount.IsActive = false
	s.mockAccountSvc.On("GetAccountByIDs", mock.Anything, mock.Anything).Return(s.accountsByID(), nil)

	_, err := s.service.CreateEntry(context.Background(), s.createInput("100.00", "100.00"), s.userID)

	assert.ErrorIs(s.T(), err, services.ErrAccountInactive)
	s.mockEntryRepo.AssertNotCalled(s.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (s *EntryServiceTestSuite) TestCreateEntry_RejectsForeignCompanyAccount() {
	s.creditAccount.CompanyID = uuid.NewString()
	s.mockAccountSvc.On("GetAccountByIDs", mock.Anything, mock.Anything).Return(s.accountsByID(), nil)

	_, err := s.service.CreateEntry(context.Background(), s.createInput("100.00", "100.00"), s.userID)

	assert.ErrorIs(s.T(), err, services.ErrAccountWrongCompany)
}

func (s *EntryServiceTestSuite) TestCreateEntry_RejectsNegativeLineAmount() {
	s.mockAccountSvc.On("GetAccountByIDs", mock.Anything, mock.Anything).Return(s.accountsByID(), nil)
	s.mockSequences.On("NextDocumentNo", mock.Anything, s.companyID, domain.Standard).Return("JE-000003", nil)

	_, err := s.service.CreateEntry(context.Background(), s.createInput("-10.00", "100.00"), s.userID)

	assert.ErrorIs(s.T(), err, domain.ErrInvalidAmount)
	s.mockEntryRepo.AssertNotCalled(s.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (s *EntryServiceTestSuite) TestCreatePostedEntry_SavesPostedInOneWrite() {
	s.mockAccountSvc.On("GetAccountByIDs", mock.Anything, mock.Anything).Return(s.accountsByID(), nil)
	s.mockSequences.On("NextDocumentNo", mock.Anything, s.companyID, domain.Standard).Return("JE-000004", nil)

	var savedEntry domain.JournalEntry
	s.mockEntryRepo.On("SaveEntry", mock.Anything, mock.AnythingOfType("domain.JournalEntry"), mock.Anything).
		Run(func(args mock.Arguments) { savedEntry = args.Get(1).(domain.JournalEntry) }).
		Return(nil)

	entry, err := s.service.CreatePostedEntry(context.Background(), s.createInput("100.00", "100.00"), s.userID)

	require.NoError(s.T(), err)
	assert.Equal(s.T(), domain.Posted, entry.Status)
	assert.Equal(s.T(), domain.Posted, savedEntry.Status)
	s.mockEntryRepo.AssertNumberOfCalls(s.T(), "SaveEntry", 1)
	s.mockEntryRepo.AssertNotCalled(s.T(), "UpdateEntryStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *EntryServiceTestSuite) TestCreatePostedEntry_UnbalancedPersistsNothing() {
	s.mockAccountSvc.On("GetAccountByIDs", mock.Anything, mock.Anything).Return(s.accountsByID(), nil)
	s.mockSequences.On("NextDocumentNo", mock.Anything, s.companyID, domain.Standard).Return("JE-000005", nil)

	_, err := s.service.CreatePostedEntry(context.Background(), s.createInput("100.00", "40.00"), s.userID)

	var unbalanced *domain.UnbalancedEntryError
	require.ErrorAs(s.T(), err, &unbalanced)
	s.mockEntryRepo.AssertNotCalled(s.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (s *EntryServiceTestSuite) storedEntry(debitAmount, creditAmount string) (*domain.JournalEntry, []domain.JournalLine) {
	entryID := uuid.NewString()
	entry := &domain.JournalEntry{
		EntryID:     entryID,
		CompanyID:   s.companyID,
		DocumentNo:  "JE-000010",
		EntryType:   domain.Standard,
		Status:      domain.Draft,
		PostingDate: time.Now(),
		Description: "stationery purchase",
	}
	lines := []domain.JournalLine{
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: s.debitAccount.AccountID, Amount: decimal.RequireFromString(debitAmount), Direction: domain.Debit},
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: s.creditAccount.AccountID, Amount: decimal.RequireFromString(creditAmount), Direction: domain.Credit},
	}
	return entry, lines
}

func (s *EntryServiceTestSuite) TestPostEntry_Success() {
	entry, lines := s.storedEntry("100.00", "100.00")
	s.mockEntryRepo.On("FindEntryByID", mock.Anything, entry.EntryID).Return(entry, nil)
	s.mockEntryRepo.On("FindLinesByEntryID", mock.Anything, entry.EntryID).Return(lines, nil)
	s.mockEntryRepo.On("UpdateEntryStatus", mock.Anything, entry.EntryID, domain.Draft, domain.Posted, s.userID, mock.AnythingOfType("time.Time")).Return(nil)

	posted, err := s.service.PostEntry(context.Background(), entry.EntryID, s.userID)

	require.NoError(s.T(), err)
	assert.Equal(s.T(), domain.Posted, posted.Status)
	s.mockEntryRepo.AssertExpectations(s.T())
}

func (s *EntryServiceTestSuite) TestPostEntry_RejectsUnbalanced() {
	entry, lines := s.storedEntry("100.00", "40.00")
	s.mockEntryRepo.On("FindEntryByID", mock.Anything, entry.EntryID).Return(entry, nil)
	s.mockEntryRepo.On("FindLinesByEntryID", mock.Anything, entry.EntryID).Return(lines, nil)

	_, err := s.service.PostEntry(context.Background(), entry.EntryID, s.userID)

	var unbalanced *domain.UnbalancedEntryError
	require.ErrorAs(s.T(), err, &unbalanced)
	assert.True(s.T(), unbalanced.Delta.Equal(decimal.RequireFromString("60.00")))
	s.mockEntryRepo.AssertNotCalled(s.T(), "UpdateEntryStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *EntryServiceTestSuite) TestPostEntry_RejectsNonDraft() {
	entry, lines := s.storedEntry("100.00", "100.00")
	entry.Status = domain.Posted
	s.mockEntryRepo.On("FindEntryByID", mock.Anything, entry.EntryID).Return(entry, nil)
	s.mockEntryRepo.On("FindLinesByEntryID", mock.Anything, entry.EntryID).Return(lines, nil)

	_, err := s.service.PostEntry(context.Background(), entry.EntryID, s.userID)

	var stateErr *domain.InvalidStateTransitionError
	assert.ErrorAs(s.T(), err, &stateErr)
}

func (s *EntryServiceTestSuite) TestPostEntry_LostRaceSurfacesAsStateError() {
	entry, lines := s.storedEntry("100.00", "100.00")
	s.mockEntryRepo.On("FindEntryByID", mock.Anything, entry.EntryID).Return(entry, nil)
	s.mockEntryRepo.On("FindLinesByEntryID", mock.Anything, entry.EntryID).Return(lines, nil)
	s.mockEntryRepo.On("UpdateEntryStatus", mock.Anything, entry.EntryID, domain.Draft, domain.Posted, s.userID, mock.AnythingOfType("time.Time")).
		Return(apperrors.NewAppError(409, "status changed", apperrors.ErrConflict))

	_, err := s.service.PostEntry(context.Background(), entry.EntryID, s.userID)

	var stateErr *domain.InvalidStateTransitionError
	assert.ErrorAs(s.T(), err, &stateErr)
}

func (s *EntryServiceTestSuite) TestCancelEntry_FromPosted() {
	entry, lines := s.storedEntry("100.00", "100.00")
	entry.Status = domain.Posted
	s.mockEntryRepo.On("FindEntryByID", mock.Anything, entry.EntryID).Return(entry, nil)
	s.mockEntryRepo.On("FindLinesByEntryID", mock.Anything, entry.EntryID).Return(lines, nil)
	s.mockEntryRepo.On("UpdateEntryStatus", mock.Anything, entry.EntryID, domain.Posted, domain.Cancelled, s.userID, mock.AnythingOfType("time.Time")).Return(nil)

	cancelled, err := s.service.CancelEntry(context.Background(), entry.EntryID, s.userID)

	require.NoError(s.T(), err)
	assert.Equal(s.T(), domain.Cancelled, cancelled.Status)
}

func (s *EntryServiceTestSuite) TestCancelEntry_RejectsCancelled() {
	entry, lines := s.storedEntry("100.00", "100.00")
	entry.Status = domain.Cancelled
	s.mockEntryRepo.On("FindEntryByID", mock.Anything, entry.EntryID).Return(entry, nil)
	s.mockEntryRepo.On("FindLinesByEntryID", mock.Anything, entry.EntryID).Return(lines, nil)

	_, err := s.service.CancelEntry(context.Background(), entry.EntryID, s.userID)

	var stateErr *domain.InvalidStateTransitionError
	assert.ErrorAs(s.T(), err, &stateErr)
	s.mockEntryRepo.AssertNotCalled(s.T(), "UpdateEntryStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *EntryServiceTestSuite) TestGetEntryByID_PopulatesLines() {
	entry, lines := s.storedEntry("100.00", "100.00")
	s.mockEntryRepo.On("FindEntryByID", mock.Anything, entry.EntryID).Return(entry, nil)
	s.mockEntryRepo.On("FindLinesByEntryID", mock.Anything, entry.EntryID).Return(lines, nil)

	got, err := s.service.GetEntryByID(context.Background(), entry.EntryID)

	require.NoError(s.T(), err)
	assert.Len(s.T(), got.Lines, 2)
}

func (s *EntryServiceTestSuite) TestGetEntryByID_NotFound() {
	entryID := uuid.NewString()
	s.mockEntryRepo.On("FindEntryByID", mock.Anything, entryID).Return(nil, apperrors.ErrNotFound)

	_, err := s.service.GetEntryByID(context.Background(), entryID)

	assert.ErrorIs(s.T(), err, apperrors.ErrNotFound)
}

func (s *EntryServiceTestSuite) TestListEntries_ClampsLimit() {
	s.mockEntryRepo.On("ListEntriesByCompany", mock.Anything, s.companyID, 20, (*string)(nil), false).Return([]domain.JournalEntry{}, nil, nil).Once()
	s.mockEntryRepo.On("ListEntriesByCompany", mock.Anything, s.companyID, 100, (*string)(nil), false).Return([]domain.JournalEntry{}, nil, nil).Once()

	_, _, err := s.service.ListEntries(context.Background(), s.companyID, 0, nil, false)
	require.NoError(s.T(), err)
	_, _, err = s.service.ListEntries(context.Background(), s.companyID, 500, nil, false)
	require.NoError(s.T(), err)

	s.mockEntryRepo.AssertExpectations(s.T())
}

func TestEntryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(EntryServiceTestSuite))
}
