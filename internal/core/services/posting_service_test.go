package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tallybook/tallybook/internal/apperrors"
	"github.com/tallybook/tallybook/internal/core/domain"
	portssvc "github.com/tallybook/tallybook/internal/core/ports/services"
	"github.com/tallybook/tallybook/internal/core/services"
	"github.com/tallybook/tallybook/internal/dto"
)

type PostingServiceTestSuite struct {
	suite.Suite
	mockEntryRepo   *MockEntryRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.PostingSvcFacade
	companyID       string
	cashAccount     domain.Account
	salesAccount    domain.Account
}

func (suite *PostingServiceTestSuite) SetupTest() {
	suite.mockEntryRepo = new(MockEntryRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewPostingService(suite.mockEntryRepo, suite.mockAccountRepo)

	suite.companyID = uuid.NewString()
	suite.cashAccount = domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   suite.companyID,
		Name:        "Cash",
		AccountType: domain.Asset,
	}
	suite.salesAccount = domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   suite.companyID,
		Name:        "Sales Income",
		AccountType: domain.Revenue,
	}
}

func (suite *PostingServiceTestSuite) accountsMap() map[string]domain.Account {
	return map[string]domain.Account{
		suite.cashAccount.AccountID:  suite.cashAccount,
		suite.salesAccount.AccountID: suite.salesAccount,
	}
}

func (suite *PostingServiceTestSuite) TestPostEntry_Success() {
	ctx := context.Background()
	req := dto.PostEntryRequest{
		Date: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		Memo: "Cash sale",
		Lines: []dto.PostEntryLineRequest{
			{AccountID: suite.cashAccount.AccountID, Amount: decimal.NewFromInt(100), IsDebit: true},
			{AccountID: suite.salesAccount.AccountID, Amount: decimal.NewFromInt(100), IsDebit: false},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{suite.cashAccount.AccountID, suite.salesAccount.AccountID}).
		Return(suite.accountsMap(), nil).Once()
	suite.mockEntryRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()

	entry, err := suite.service.PostEntry(ctx, suite.companyID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.NotEmpty(entry.EntryID)
	suite.Equal(suite.companyID, entry.CompanyID)
	suite.Equal("Cash sale", entry.Memo)
	suite.Require().Len(entry.Lines, 2)
	suite.Equal(1, entry.Lines[0].LineNo)
	suite.Equal(2, entry.Lines[1].LineNo)
	suite.Equal(entry.EntryID, entry.Lines[0].EntryID)
	suite.True(entry.Lines[0].Debit.Equal(decimal.NewFromInt(100)))
	suite.True(entry.Lines[0].Credit.IsZero())
	suite.True(entry.Lines[1].Credit.Equal(decimal.NewFromInt(100)))
	suite.True(entry.IsBalanced())
	suite.True(entry.DisplayAmount().Equal(decimal.NewFromInt(100)))

	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestPostEntry_UnbalancedRejectedWithoutPersisting() {
	ctx := context.Background()
	req := dto.PostEntryRequest{
		Date: time.Now(),
		Lines: []dto.PostEntryLineRequest{
			{AccountID: suite.cashAccount.AccountID, Amount: decimal.NewFromInt(100), IsDebit: true},
			{AccountID: suite.salesAccount.AccountID, Amount: decimal.NewFromInt(90), IsDebit: false},
		},
	}

	entry, err := suite.service.PostEntry(ctx, suite.companyID, req)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorIs(err, services.ErrEntryUnbalanced)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPostEntry_FewerThanTwoUsableLines() {
	ctx := context.Background()
	// One real line plus blank form rows: no account, zero amount.
	req := dto.PostEntryRequest{
		Date: time.Now(),
		Lines: []dto.PostEntryLineRequest{
			{AccountID: suite.cashAccount.AccountID, Amount: decimal.NewFromInt(50), IsDebit: true},
			{AccountID: "", Amount: decimal.NewFromInt(50), IsDebit: false},
			{AccountID: suite.salesAccount.AccountID, Amount: decimal.Zero, IsDebit: false},
		},
	}

	entry, err := suite.service.PostEntry(ctx, suite.companyID, req)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, services.ErrEntryMinLines)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPostEntry_ForeignAccountRejected() {
	ctx := context.Background()
	foreign := domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   uuid.NewString(),
		Name:        "Other Cash",
		AccountType: domain.Asset,
	}
	req := dto.PostEntryRequest{
		Date: time.Now(),
		Lines: []dto.PostEntryLineRequest{
			{AccountID: foreign.AccountID, Amount: decimal.NewFromInt(10), IsDebit: true},
			{AccountID: suite.salesAccount.AccountID, Amount: decimal.NewFromInt(10), IsDebit: false},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{foreign.AccountID, suite.salesAccount.AccountID}).
		Return(map[string]domain.Account{
			foreign.AccountID:            foreign,
			suite.salesAccount.AccountID: suite.salesAccount,
		}, nil).Once()

	entry, err := suite.service.PostEntry(ctx, suite.companyID, req)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestGetEntry_WrongCompanyIsNotFound() {
	ctx := context.Background()
	entryID := uuid.NewString()
	stored := &domain.JournalEntry{
		EntryID:   entryID,
		CompanyID: uuid.NewString(),
	}

	suite.mockEntryRepo.On("FindEntryByID", ctx, entryID).Return(stored, nil).Once()

	entry, err := suite.service.GetEntry(ctx, suite.companyID, entryID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *PostingServiceTestSuite) TestDeleteEntry_Idempotent() {
	ctx := context.Background()
	entryID := uuid.NewString()

	// The repository treats deleting an absent entry as a no-op, so a repeat
	// delete succeeds the same way the first one did.
	suite.mockEntryRepo.On("DeleteEntry", ctx, entryID).Return(nil).Twice()

	suite.Require().NoError(suite.service.DeleteEntry(ctx, entryID))
	suite.Require().NoError(suite.service.DeleteEntry(ctx, entryID))

	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func TestPostingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PostingServiceTestSuite))
}
