package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tallybook/tallybook/internal/apperrors"
	"github.com/tallybook/tallybook/internal/core/domain"
	portssvc "github.com/tallybook/tallybook/internal/core/ports/services"
	"github.com/tallybook/tallybook/internal/core/services"
)

type CompanyServiceTestSuite struct {
	suite.Suite
	mockCompanyRepo *MockCompanyRepository
	mockAccountRepo *MockAccountRepository
	mockSettings    *MockSettingsRepository
	service         portssvc.CompanySvcFacade
}

func (suite *CompanyServiceTestSuite) SetupTest() {
	suite.mockCompanyRepo = new(MockCompanyRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockSettings = new(MockSettingsRepository)
	suite.service = services.NewCompanyService(suite.mockCompanyRepo, suite.mockAccountRepo, suite.mockSettings)
}

func (suite *CompanyServiceTestSuite) TestBootstrap_FirstRunSeedsDefaultCompany() {
	ctx := context.Background()

	suite.mockCompanyRepo.On("ListCompanies", ctx).Return([]domain.Company{}, nil).Once()
	suite.mockSettings.On("Get", ctx, services.SeedCompletedKey).Return("", apperrors.ErrNotFound).Once()
	suite.mockCompanyRepo.On("SaveCompany", ctx, mock.AnythingOfType("domain.Company")).Return(nil).Once()
	suite.mockCompanyRepo.On("AdoptUnowned", ctx, mock.AnythingOfType("string")).Return(0, nil).Once()

	var seeded []domain.Account
	suite.mockAccountRepo.On("SaveAccounts", ctx, mock.AnythingOfType("[]domain.Account")).
		Run(func(args mock.Arguments) {
			seeded = args.Get(1).([]domain.Account)
		}).Return(nil).Once()

	suite.mockSettings.On("Set", ctx, services.SeedCompletedKey, "true").Return(nil).Once()
	suite.mockSettings.On("Get", ctx, services.ActiveCompanyKey).Return("", apperrors.ErrNotFound).Once()
	suite.mockSettings.On("Set", ctx, services.ActiveCompanyKey, mock.AnythingOfType("string")).Return(nil).Once()

	active, err := suite.service.Bootstrap(ctx)

	suite.Require().NoError(err)
	suite.Require().NotNil(active)
	suite.Equal(services.DefaultCompanyName, active.Name)

	// The default chart: every account belongs to the new company, ordered and
	// covering all five types.
	suite.Require().NotEmpty(seeded)
	suite.Len(seeded, 23)
	typeCounts := map[domain.AccountType]int{}
	for _, a := range seeded {
		suite.Equal(active.CompanyID, a.CompanyID)
		typeCounts[a.AccountType]++
	}
	suite.Equal(5, typeCounts[domain.Asset])
	suite.Equal(3, typeCounts[domain.Liability])
	suite.Equal(2, typeCounts[domain.Equity])
	suite.Equal(3, typeCounts[domain.Revenue])
	suite.Equal(10, typeCounts[domain.Expense])

	suite.mockCompanyRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockSettings.AssertExpectations(suite.T())
}

func (suite *CompanyServiceTestSuite) TestBootstrap_AdoptsUnownedInsteadOfSeeding() {
	ctx := context.Background()

	suite.mockCompanyRepo.On("ListCompanies", ctx).Return([]domain.Company{}, nil).Once()
	suite.mockSettings.On("Get", ctx, services.SeedCompletedKey).Return("", apperrors.ErrNotFound).Once()
	suite.mockCompanyRepo.On("SaveCompany", ctx, mock.AnythingOfType("domain.Company")).Return(nil).Once()
	suite.mockCompanyRepo.On("AdoptUnowned", ctx, mock.AnythingOfType("string")).Return(7, nil).Once()
	suite.mockSettings.On("Set", ctx, services.SeedCompletedKey, "true").Return(nil).Once()
	suite.mockSettings.On("Get", ctx, services.ActiveCompanyKey).Return("", apperrors.ErrNotFound).Once()
	suite.mockSettings.On("Set", ctx, services.ActiveCompanyKey, mock.AnythingOfType("string")).Return(nil).Once()

	_, err := suite.service.Bootstrap(ctx)

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccounts", mock.Anything, mock.Anything)
}

func (suite *CompanyServiceTestSuite) TestBootstrap_RestoresRememberedSelection() {
	ctx := context.Background()
	first := domain.Company{CompanyID: uuid.NewString(), Name: "First", CreatedAt: time.Now()}
	second := domain.Company{CompanyID: uuid.NewString(), Name: "Second", CreatedAt: time.Now()}

	suite.mockCompanyRepo.On("ListCompanies", ctx).Return([]domain.Company{first, second}, nil).Once()
	suite.mockSettings.On("Get", ctx, services.ActiveCompanyKey).Return(second.CompanyID, nil).Once()
	suite.mockSettings.On("Set", ctx, services.ActiveCompanyKey, second.CompanyID).Return(nil).Once()

	active, err := suite.service.Bootstrap(ctx)

	suite.Require().NoError(err)
	suite.Equal(second.CompanyID, active.CompanyID)
}

func (suite *CompanyServiceTestSuite) TestBootstrap_FallsBackWhenRememberedCompanyGone() {
	ctx := context.Background()
	first := domain.Company{CompanyID: uuid.NewString(), Name: "First", CreatedAt: time.Now()}

	suite.mockCompanyRepo.On("ListCompanies", ctx).Return([]domain.Company{first}, nil).Once()
	suite.mockSettings.On("Get", ctx, services.ActiveCompanyKey).Return(uuid.NewString(), nil).Once()
	suite.mockSettings.On("Set", ctx, services.ActiveCompanyKey, first.CompanyID).Return(nil).Once()

	active, err := suite.service.Bootstrap(ctx)

	suite.Require().NoError(err)
	suite.Equal(first.CompanyID, active.CompanyID)
}

func (suite *CompanyServiceTestSuite) TestCreateCompany_TrimsNameAndSeedsChart() {
	ctx := context.Background()

	suite.mockCompanyRepo.On("SaveCompany", ctx, mock.MatchedBy(func(c domain.Company) bool {
		return c.Name == "Acme Widgets"
	})).Return(nil).Once()
	suite.mockAccountRepo.On("SaveAccounts", ctx, mock.AnythingOfType("[]domain.Account")).Return(nil).Once()

	company, err := suite.service.CreateCompany(ctx, "  Acme Widgets  ")

	suite.Require().NoError(err)
	suite.Equal("Acme Widgets", company.Name)
	suite.mockCompanyRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *CompanyServiceTestSuite) TestCreateCompany_EmptyNameRejected() {
	ctx := context.Background()

	company, err := suite.service.CreateCompany(ctx, "   ")

	suite.Require().Error(err)
	suite.Nil(company)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockCompanyRepo.AssertNotCalled(suite.T(), "SaveCompany", mock.Anything, mock.Anything)
}

func (suite *CompanyServiceTestSuite) TestSwitchActiveCompany_PersistsSelection() {
	ctx := context.Background()
	company := domain.Company{CompanyID: uuid.NewString(), Name: "Second"}

	suite.mockCompanyRepo.On("FindCompanyByID", ctx, company.CompanyID).Return(&company, nil).Once()
	suite.mockSettings.On("Set", ctx, services.ActiveCompanyKey, company.CompanyID).Return(nil).Once()

	switched, err := suite.service.SwitchActiveCompany(ctx, company.CompanyID)

	suite.Require().NoError(err)
	suite.Equal(company.CompanyID, switched.CompanyID)
	suite.mockSettings.AssertExpectations(suite.T())
}

func (suite *CompanyServiceTestSuite) TestDeleteCompany_RepairsActiveSelection() {
	ctx := context.Background()
	deleted := uuid.NewString()
	remaining := domain.Company{CompanyID: uuid.NewString(), Name: "Remaining"}

	suite.mockCompanyRepo.On("DeleteCompany", ctx, deleted).Return(nil).Once()
	suite.mockSettings.On("Get", ctx, services.ActiveCompanyKey).Return(deleted, nil).Once()
	suite.mockCompanyRepo.On("ListCompanies", ctx).Return([]domain.Company{remaining}, nil).Once()
	suite.mockSettings.On("Set", ctx, services.ActiveCompanyKey, remaining.CompanyID).Return(nil).Once()

	err := suite.service.DeleteCompany(ctx, deleted)

	suite.Require().NoError(err)
	suite.mockSettings.AssertExpectations(suite.T())
}

func TestCompanyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CompanyServiceTestSuite))
}
