package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/retailos/accounting_service/internal/apperrors"
	"github.com/retailos/accounting_service/internal/core/domain"
	"github.com/retailos/accounting_service/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockGroupRepo     *MockGroupRepository
	mockAccountRepo   *MockAccountRepository
	mockReportingRepo *MockReportingRepository
	mockResolver      *MockTenantResolver
	service           *services.ReportingService

	companyID string
	asOf      time.Time
}

func (s *ReportingServiceTestSuite) SetupTest() {
	s.mockGroupRepo = new(MockGroupRepository)
	s.mockAccountRepo = new(MockAccountRepository)
	s.mockReportingRepo = new(MockReportingRepository)
	s.mockResolver = new(MockTenantResolver)
	s.service = services.NewReportingService(s.mockGroupRepo, s.mockAccountRepo, s.mockReportingRepo, s.mockResolver)

	s.companyID = uuid.NewString()
	s.asOf = time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
}

func (s *ReportingServiceTestSuite) group(name, code string, groupType domain.GroupType, parentID *string) domain.AccountGroup {
	return domain.AccountGroup{
		GroupID:       uuid.NewString(),
		CompanyID:     s.companyID,
		Name:          name,
		Code:          code,
		GroupType:     groupType,
		ParentGroupID: parentID,
	}
}

func (s *ReportingServiceTestSuite) account(name, code string, g domain.AccountGroup, opening int64) domain.ChartOfAccount {
	return domain.ChartOfAccount{
		AccountID:      uuid.NewString(),
		CompanyID:      s.companyID,
		GroupID:        g.GroupID,
		GroupType:      g.GroupType,
		Name:           name,
		Code:           code,
		OpeningBalance: decimal.NewFromInt(opening),
		IsActive:       true,
	}
}

func (s *ReportingServiceTestSuite) expectSnapshot(groups []domain.AccountGroup, accounts []domain.ChartOfAccount, activity map[string]domain.AccountActivity) {
	s.mockResolver.On("ResolveUnitIDs", mock.Anything, s.companyID).Return([]string{s.companyID})
	s.mockGroupRepo.On("ListGroupsByCompany", mock.Anything, []string{s.companyID}).Return(groups, nil).Once()
	s.mockAccountRepo.On("ListAccountsByCompany", mock.Anything, []string{s.companyID}, mock.AnythingOfType("int"), 0).Return(accounts, nil).Once()
	s.mockReportingRepo.On("AccountActivity", mock.Anything, mock.AnythingOfType("repositories.ActivityFilter")).Return(activity, nil).Once()
}

func activityOf(debit, credit int64) domain.AccountActivity {
	return domain.AccountActivity{
		CumulativeDebit:  decimal.NewFromInt(debit),
		CumulativeCredit: decimal.NewFromInt(credit),
	}
}

func (s *ReportingServiceTestSuite) TestBalanceSheet_RecursiveGroupTotals() {
	ctx := context.Background()

	rootAssets := s.group("Assets", "10", domain.Asset, nil)
	currentAssets := s.group("Current Assets", "11", domain.Asset, &rootAssets.GroupID)
	rootLiabilities := s.group("Liabilities", "20", domain.Liability, nil)

	cash := s.account("Cash on Hand", "1000", currentAssets, 100)
	bank := s.account("Bank", "1100", rootAssets, 0)
	payable := s.account("Accounts Payable", "2100", rootLiabilities, 0)

	activity := map[string]domain.AccountActivity{
		cash.AccountID:    activityOf(200, 50),  // 100 + 150 = 250
		bank.AccountID:    activityOf(300, 0),   // 300
		payable.AccountID: activityOf(100, 400), // 300 credit normal
	}
	s.expectSnapshot(
		[]domain.AccountGroup{rootAssets, currentAssets, rootLiabilities},
		[]domain.ChartOfAccount{cash, bank, payable},
		activity,
	)

	report, err := s.service.BalanceSheet(ctx, s.companyID, nil, s.asOf)

	s.Require().NoError(err)
	s.Require().Len(report.Assets, 1)
	s.Equal("Assets", report.Assets[0].Name)
	s.True(report.Assets[0].Total.Equal(decimal.NewFromInt(550)), "subgroup balances roll up into the root: got %s", report.Assets[0].Total)
	s.Require().Len(report.Liabilities, 1)
	s.True(report.Liabilities[0].Total.Equal(decimal.NewFromInt(300)))
	s.True(report.TotalAssets.Equal(decimal.NewFromInt(550)))
	s.True(report.TotalLiabilities.Equal(decimal.NewFromInt(300)))
	s.Empty(report.Equity)
}

func (s *ReportingServiceTestSuite) TestBalanceSheet_WingExcludesOpeningBalances() {
	ctx := context.Background()
	wingID := uuid.NewString()

	rootAssets := s.group("Assets", "10", domain.Asset, nil)
	cash := s.account("Cash on Hand", "1000", rootAssets, 500)

	activity := map[string]domain.AccountActivity{
		cash.AccountID: activityOf(80, 30),
	}
	s.expectSnapshot([]domain.AccountGroup{rootAssets}, []domain.ChartOfAccount{cash}, activity)

	report, err := s.service.BalanceSheet(ctx, s.companyID, &wingID, s.asOf)

	s.Require().NoError(err)
	s.Require().Len(report.Assets, 1)
	s.True(report.Assets[0].Total.Equal(decimal.NewFromInt(50)), "branch view must not include the company-wide opening balance")
}

func (s *ReportingServiceTestSuite) TestProfitLoss_WindowUsesPeriodicSums() {
	ctx := context.Background()

	rootIncome := s.group("Revenue", "40", domain.Income, nil)
	rootExpense := s.group("Expenses", "50", domain.Expense, nil)
	revenue := s.account("Sales Revenue", "4000", rootIncome, 0)
	rent := s.account("Rent Expense", "5000", rootExpense, 0)

	activity := map[string]domain.AccountActivity{
		revenue.AccountID: {
			CumulativeDebit:  decimal.Zero,
			CumulativeCredit: decimal.NewFromInt(900),
			PeriodicDebit:    decimal.Zero,
			PeriodicCredit:   decimal.NewFromInt(400),
		},
		rent.AccountID: {
			CumulativeDebit:  decimal.NewFromInt(500),
			CumulativeCredit: decimal.Zero,
			PeriodicDebit:    decimal.NewFromInt(150),
			PeriodicCredit:   decimal.Zero,
		},
	}
	s.expectSnapshot([]domain.AccountGroup{rootIncome, rootExpense}, []domain.ChartOfAccount{revenue, rent}, activity)

	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	report, err := s.service.ProfitLoss(ctx, s.companyID, nil, &start, &s.asOf)

	s.Require().NoError(err)
	s.True(report.TotalIncome.Equal(decimal.NewFromInt(400)), "windowed report must use in-window activity only")
	s.True(report.TotalExpense.Equal(decimal.NewFromInt(150)))
	s.True(report.NetProfit.Equal(decimal.NewFromInt(250)))
}

func (s *ReportingServiceTestSuite) TestProfitLoss_NoWindowUsesCumulativeSums() {
	ctx := context.Background()

	rootIncome := s.group("Revenue", "40", domain.Income, nil)
	revenue := s.account("Sales Revenue", "4000", rootIncome, 0)

	activity := map[string]domain.AccountActivity{
		revenue.AccountID: activityOf(0, 900),
	}
	s.expectSnapshot([]domain.AccountGroup{rootIncome}, []domain.ChartOfAccount{revenue}, activity)

	report, err := s.service.ProfitLoss(ctx, s.companyID, nil, nil, &s.asOf)

	s.Require().NoError(err)
	s.True(report.TotalIncome.Equal(decimal.NewFromInt(900)))
	s.True(report.NetProfit.Equal(decimal.NewFromInt(900)))
}

func (s *ReportingServiceTestSuite) TestTrialBalance_FlipsAndOmitsZeroRows() {
	ctx := context.Background()

	rootAssets := s.group("Assets", "10", domain.Asset, nil)
	rootIncome := s.group("Revenue", "40", domain.Income, nil)

	cash := s.account("Cash on Hand", "1000", rootAssets, 0)
	dormant := s.account("Dormant", "1900", rootAssets, 0)
	revenue := s.account("Sales Revenue", "4000", rootIncome, 0)

	activity := map[string]domain.AccountActivity{
		cash.AccountID: activityOf(300, 100), // 200 debit
		// Debit-heavy income account ends up negative and flips columns.
		revenue.AccountID: activityOf(250, 50),
	}
	s.expectSnapshot(
		[]domain.AccountGroup{rootAssets, rootIncome},
		[]domain.ChartOfAccount{cash, dormant, revenue},
		activity,
	)

	report, err := s.service.TrialBalance(ctx, s.companyID, nil, s.asOf)

	s.Require().NoError(err)
	s.Require().Len(report.Rows, 2, "zero-balance accounts are omitted")
	s.Equal("1000", report.Rows[0].AccountCode)
	s.True(report.Rows[0].Debit.Equal(decimal.NewFromInt(200)))
	s.True(report.Rows[0].Credit.IsZero())
	s.Equal("4000", report.Rows[1].AccountCode)
	s.True(report.Rows[1].Debit.Equal(decimal.NewFromInt(200)), "negative credit-normal balance flips to the debit column")
	s.True(report.Rows[1].Credit.IsZero())
	s.True(report.TotalDebit.Equal(decimal.NewFromInt(400)))
	s.True(report.TotalCredit.IsZero())
	s.False(report.IsBalanced)
}

func (s *ReportingServiceTestSuite) TestTrialBalance_BalancedLedger() {
	ctx := context.Background()

	rootAssets := s.group("Assets", "10", domain.Asset, nil)
	rootIncome := s.group("Revenue", "40", domain.Income, nil)
	cash := s.account("Cash on Hand", "1000", rootAssets, 0)
	revenue := s.account("Sales Revenue", "4000", rootIncome, 0)

	activity := map[string]domain.AccountActivity{
		cash.AccountID:    activityOf(500, 0),
		revenue.AccountID: activityOf(0, 500),
	}
	s.expectSnapshot([]domain.AccountGroup{rootAssets, rootIncome}, []domain.ChartOfAccount{cash, revenue}, activity)

	report, err := s.service.TrialBalance(ctx, s.companyID, nil, s.asOf)

	s.Require().NoError(err)
	s.True(report.IsBalanced)
	s.True(report.TotalDebit.Equal(report.TotalCredit))
}

func (s *ReportingServiceTestSuite) TestReports_RequireCompanyID() {
	ctx := context.Background()

	_, err := s.service.TrialBalance(ctx, "", nil, s.asOf)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockGroupRepo.AssertNotCalled(s.T(), "ListGroupsByCompany", mock.Anything, mock.Anything)
}

func (s *ReportingServiceTestSuite) TestDashboard() {
	ctx := context.Background()

	rootAssets := s.group("Assets", "10", domain.Asset, nil)
	rootLiabilities := s.group("Liabilities", "20", domain.Liability, nil)

	cash := s.account("Cash on Hand", "1000", rootAssets, 50)
	petty := s.account("Petty Cash", "1001", rootAssets, 0)
	bank := s.account("Bank", "1100", rootAssets, 0)
	// Liability with "cash" in the name must not count toward the cash position.
	advance := s.account("Cash Advances Payable", "2300", rootLiabilities, 0)

	activity := map[string]domain.AccountActivity{
		cash.AccountID:    activityOf(100, 30), // 120
		petty.AccountID:   activityOf(25, 0),   // 25
		bank.AccountID:    activityOf(400, 0),  // 400
		advance.AccountID: activityOf(0, 80),
	}
	s.expectSnapshot(
		[]domain.AccountGroup{rootAssets, rootLiabilities},
		[]domain.ChartOfAccount{cash, petty, bank, advance},
		activity,
	)

	trends := []domain.MonthlyTrend{{Month: "Jun 2026", Income: decimal.NewFromInt(900), Expense: decimal.NewFromInt(400)}}
	topExpenses := []domain.NamedAmount{{Name: "Rent Expense", Value: decimal.NewFromInt(150)}}
	s.mockReportingRepo.On("TrendByMonth", mock.Anything, []string{s.companyID}, (*string)(nil), mock.AnythingOfType("time.Time")).Return(trends, nil).Once()
	s.mockReportingRepo.On("TopExpenseAccounts", mock.Anything, []string{s.companyID}, (*string)(nil), 5).Return(topExpenses, nil).Once()

	report, err := s.service.Dashboard(ctx, s.companyID, nil)

	s.Require().NoError(err)
	s.Equal(trends, report.Trends)
	s.Equal(topExpenses, report.TopExpenses)
	s.Require().Len(report.AssetDistribution, 1)
	s.Equal("Assets", report.AssetDistribution[0].Name)
	s.True(report.CashBalance.Equal(decimal.NewFromInt(145)), "cash position sums asset accounts with cash in the name: got %s", report.CashBalance)
}

func (s *ReportingServiceTestSuite) TestBalanceSheet_IgnoresSelfParentedGroup() {
	ctx := context.Background()

	root := s.group("Assets", "10", domain.Asset, nil)
	// Corrupted row pointing at itself must not hang the tree walk.
	orphan := s.group("Broken", "99", domain.Asset, nil)
	orphan.ParentGroupID = &orphan.GroupID

	cash := s.account("Cash on Hand", "1000", root, 10)
	stray := s.account("Stray", "9900", orphan, 0)

	activity := map[string]domain.AccountActivity{
		cash.AccountID:  activityOf(5, 0),
		stray.AccountID: activityOf(99, 0),
	}
	s.expectSnapshot([]domain.AccountGroup{root, orphan}, []domain.ChartOfAccount{cash, stray}, activity)

	report, err := s.service.BalanceSheet(ctx, s.companyID, nil, s.asOf)

	s.Require().NoError(err)
	s.Require().Len(report.Assets, 1)
	s.Equal("Assets", report.Assets[0].Name)
	s.True(report.TotalAssets.Equal(decimal.NewFromInt(15)))
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
