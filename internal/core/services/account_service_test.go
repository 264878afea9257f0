package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/retailos/accounting_service/internal/apperrors"
	"github.com/retailos/accounting_service/internal/core/domain"
	"github.com/retailos/accounting_service/internal/core/services"
	"github.com/retailos/accounting_service/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo   *MockAccountRepository
	mockGroupRepo     *MockGroupRepository
	mockReportingRepo *MockReportingRepository
	service           *services.AccountService

	companyID  string
	assetGroup domain.AccountGroup
}

func (s *AccountServiceTestSuite) SetupTest() {
	s.mockAccountRepo = new(MockAccountRepository)
	s.mockGroupRepo = new(MockGroupRepository)
	s.mockReportingRepo = new(MockReportingRepository)
	s.service = services.NewAccountService(s.mockAccountRepo, s.mockGroupRepo, s.mockReportingRepo)

	s.companyID = uuid.NewString()
	s.assetGroup = domain.AccountGroup{
		GroupID:   uuid.NewString(),
		CompanyID: s.companyID,
		Name:      "Current Assets",
		GroupType: domain.Asset,
	}
}

func (s *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateChartOfAccountRequest{
		CompanyID:      s.companyID,
		GroupID:        s.assetGroup.GroupID,
		Name:           "Cash on Hand",
		Code:           "1000",
		OpeningBalance: decimal.NewFromInt(500),
	}

	s.mockGroupRepo.On("FindGroupByID", mock.Anything, s.assetGroup.GroupID).Return(&s.assetGroup, nil).Once()
	s.mockAccountRepo.On("SaveAccount", mock.Anything, mock.AnythingOfType("domain.ChartOfAccount")).Return(nil).Once()

	account, err := s.service.CreateAccount(ctx, req, "user-1")

	s.Require().NoError(err)
	s.NotEmpty(account.AccountID)
	s.Equal(domain.Asset, account.GroupType)
	s.True(account.CurrentBalance.Equal(decimal.NewFromInt(500)), "a fresh account starts at its opening balance")
	s.True(account.IsActive)
	s.Equal("user-1", account.CreatedBy)
}

func (s *AccountServiceTestSuite) TestCreateAccount_GroupFromOtherCompany() {
	ctx := context.Background()
	foreignGroup := s.assetGroup
	foreignGroup.CompanyID = uuid.NewString()

	s.mockGroupRepo.On("FindGroupByID", mock.Anything, s.assetGroup.GroupID).Return(&foreignGroup, nil).Once()

	_, err := s.service.CreateAccount(ctx, dto.CreateChartOfAccountRequest{
		CompanyID: s.companyID,
		GroupID:   s.assetGroup.GroupID,
		Name:      "Cash",
		Code:      "1000",
	}, "user-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockAccountRepo.AssertNotCalled(s.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (s *AccountServiceTestSuite) TestListAccounts_WingRecomputesBalances() {
	ctx := context.Background()
	wingID := uuid.NewString()

	account := domain.ChartOfAccount{
		AccountID:      uuid.NewString(),
		CompanyID:      s.companyID,
		GroupID:        s.assetGroup.GroupID,
		GroupType:      domain.Asset,
		Name:           "Cash on Hand",
		Code:           "1000",
		OpeningBalance: decimal.NewFromInt(1000),
		CurrentBalance: decimal.NewFromInt(1400),
	}
	s.mockAccountRepo.On("ListAccountsByCompany", mock.Anything, []string{s.companyID}, 100, 0).
		Return([]domain.ChartOfAccount{account}, nil).Once()

	activity := map[string]domain.AccountActivity{
		account.AccountID: {
			CumulativeDebit:  decimal.NewFromInt(90),
			CumulativeCredit: decimal.NewFromInt(40),
		},
	}
	s.mockReportingRepo.On("AccountActivity", mock.Anything, mock.AnythingOfType("repositories.ActivityFilter")).
		Return(activity, nil).Once()

	accounts, err := s.service.ListAccounts(ctx, dto.ListAccountsParams{
		CompanyID: s.companyID,
		WingID:    &wingID,
		Limit:     100,
	})

	s.Require().NoError(err)
	s.Require().Len(accounts, 1)
	s.True(accounts[0].CurrentBalance.Equal(decimal.NewFromInt(50)), "branch balance excludes the opening balance: got %s", accounts[0].CurrentBalance)
}

func (s *AccountServiceTestSuite) TestListAccounts_NoWingKeepsCachedBalances() {
	ctx := context.Background()
	account := domain.ChartOfAccount{
		AccountID:      uuid.NewString(),
		CompanyID:      s.companyID,
		CurrentBalance: decimal.NewFromInt(1400),
	}
	s.mockAccountRepo.On("ListAccountsByCompany", mock.Anything, []string{s.companyID}, 100, 0).
		Return([]domain.ChartOfAccount{account}, nil).Once()

	accounts, err := s.service.ListAccounts(ctx, dto.ListAccountsParams{CompanyID: s.companyID, Limit: 100})

	s.Require().NoError(err)
	s.True(accounts[0].CurrentBalance.Equal(decimal.NewFromInt(1400)))
	s.mockReportingRepo.AssertNotCalled(s.T(), "AccountActivity", mock.Anything, mock.Anything)
}

func (s *AccountServiceTestSuite) TestUpdateAccount_OpeningBalanceTriggersRecompute() {
	ctx := context.Background()
	accountID := uuid.NewString()
	existing := &domain.ChartOfAccount{
		AccountID:      accountID,
		CompanyID:      s.companyID,
		GroupID:        s.assetGroup.GroupID,
		GroupType:      domain.Asset,
		OpeningBalance: decimal.NewFromInt(100),
		CurrentBalance: decimal.NewFromInt(100),
	}
	refreshed := &domain.ChartOfAccount{
		AccountID:      accountID,
		CompanyID:      s.companyID,
		OpeningBalance: decimal.NewFromInt(250),
		CurrentBalance: decimal.NewFromInt(250),
	}

	s.mockAccountRepo.On("FindAccountByID", mock.Anything, accountID).Return(existing, nil).Once()
	s.mockAccountRepo.On("UpdateAccount", mock.Anything, mock.AnythingOfType("domain.ChartOfAccount")).Return(nil).Once()
	s.mockAccountRepo.On("RecalculateBalances", mock.Anything, []string{accountID}).Return(nil).Once()
	s.mockAccountRepo.On("FindAccountByID", mock.Anything, accountID).Return(refreshed, nil).Once()

	newOpening := decimal.NewFromInt(250)
	account, err := s.service.UpdateAccount(ctx, accountID, dto.UpdateChartOfAccountRequest{OpeningBalance: &newOpening}, "user-2")

	s.Require().NoError(err)
	s.True(account.CurrentBalance.Equal(decimal.NewFromInt(250)))
	s.mockAccountRepo.AssertExpectations(s.T())
}

func (s *AccountServiceTestSuite) TestUpdateAccount_NameOnlySkipsRecompute() {
	ctx := context.Background()
	accountID := uuid.NewString()
	existing := &domain.ChartOfAccount{
		AccountID: accountID,
		CompanyID: s.companyID,
		GroupID:   s.assetGroup.GroupID,
		Name:      "Old Name",
	}

	s.mockAccountRepo.On("FindAccountByID", mock.Anything, accountID).Return(existing, nil).Once()
	s.mockAccountRepo.On("UpdateAccount", mock.Anything, mock.AnythingOfType("domain.ChartOfAccount")).Return(nil).Once()

	name := "New Name"
	account, err := s.service.UpdateAccount(ctx, accountID, dto.UpdateChartOfAccountRequest{Name: &name}, "user-2")

	s.Require().NoError(err)
	s.Equal("New Name", account.Name)
	s.mockAccountRepo.AssertNotCalled(s.T(), "RecalculateBalances", mock.Anything, mock.Anything)
}

func (s *AccountServiceTestSuite) TestDeleteAccount_PropagatesConflict() {
	ctx := context.Background()
	accountID := uuid.NewString()
	s.mockAccountRepo.On("DeleteAccount", mock.Anything, accountID).Return(apperrors.ErrConflict).Once()

	err := s.service.DeleteAccount(ctx, accountID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrConflict)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
