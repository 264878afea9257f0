package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/retailos/accounting_service/internal/core/domain"
	portsrepo "github.com/retailos/accounting_service/internal/core/ports/repositories"
	portssvc "github.com/retailos/accounting_service/internal/core/ports/services"
	"github.com/retailos/accounting_service/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock GroupRepository ---
type MockGroupRepository struct {
	mock.Mock
}

var _ portsrepo.GroupRepositoryFacade = (*MockGroupRepository)(nil)

func (m *MockGroupRepository) FindGroupByID(ctx context.Context, groupID string) (*domain.AccountGroup, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountGroup), args.Error(1)
}

func (m *MockGroupRepository) ListGroupsByCompany(ctx context.Context, companyIDs []string) ([]domain.AccountGroup, error) {
	args := m.Called(ctx, companyIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountGroup), args.Error(1)
}

func (m *MockGroupRepository) SaveGroup(ctx context.Context, group domain.AccountGroup) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockGroupRepository) UpdateGroup(ctx context.Context, group domain.AccountGroup) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockGroupRepository) DeleteGroup(ctx context.Context, groupID string) error {
	args := m.Called(ctx, groupID)
	return args.Error(0)
}

func (m *MockGroupRepository) GetOrCreateGroup(ctx context.Context, group domain.AccountGroup) (*domain.AccountGroup, error) {
	args := m.Called(ctx, group)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountGroup), args.Error(1)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.ChartOfAccount, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChartOfAccount), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.ChartOfAccount, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.ChartOfAccount), args.Error(1)
}

func (m *MockAccountRepository) ListAccountsByCompany(ctx context.Context, companyIDs []string, limit, offset int) ([]domain.ChartOfAccount, error) {
	args := m.Called(ctx, companyIDs, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChartOfAccount), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.ChartOfAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.ChartOfAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

func (m *MockAccountRepository) GetOrCreateAccount(ctx context.Context, account domain.ChartOfAccount) (*domain.ChartOfAccount, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChartOfAccount), args.Error(1)
}

func (m *MockAccountRepository) RecalculateBalances(ctx context.Context, accountIDs []string) error {
	args := m.Called(ctx, accountIDs)
	return args.Error(0)
}

func (m *MockAccountRepository) RecalculateBalancesInTx(ctx context.Context, tx pgx.Tx, accountIDs []string) error {
	args := m.Called(ctx, tx, accountIDs)
	return args.Error(0)
}

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindItemsByEntryID(ctx context.Context, entryID string) ([]domain.JournalItem, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalItem), args.Error(1)
}

func (m *MockJournalRepository) EntryExistsByReference(ctx context.Context, companyID, reference string) (bool, error) {
	args := m.Called(ctx, companyID, reference)
	return args.Bool(0), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, filter portsrepo.ListEntriesFilter) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, items []domain.JournalItem) error {
	args := m.Called(ctx, entry, items)
	return args.Error(0)
}

func (m *MockJournalRepository) ReplaceEntryItems(ctx context.Context, entry domain.JournalEntry, items []domain.JournalItem) error {
	args := m.Called(ctx, entry, items)
	return args.Error(0)
}

func (m *MockJournalRepository) DeleteEntry(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

// --- Mock PeriodRepository ---
type MockPeriodRepository struct {
	mock.Mock
}

var _ portsrepo.PeriodRepositoryFacade = (*MockPeriodRepository)(nil)

func (m *MockPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodRepository) ListPeriodsByCompany(ctx context.Context, companyID string) ([]domain.AccountingPeriod, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodRepository) FindClosedPeriodContaining(ctx context.Context, companyID string, date time.Time) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, companyID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodRepository) SavePeriod(ctx context.Context, period domain.AccountingPeriod) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

func (m *MockPeriodRepository) UpdatePeriod(ctx context.Context, period domain.AccountingPeriod) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

// --- Mock SystemAccountRepository ---
type MockSystemAccountRepository struct {
	mock.Mock
}

var _ portsrepo.SystemAccountRepositoryFacade = (*MockSystemAccountRepository)(nil)

func (m *MockSystemAccountRepository) FindByPurpose(ctx context.Context, companyID string, purpose domain.AccountPurpose) (*domain.SystemAccount, error) {
	args := m.Called(ctx, companyID, purpose)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SystemAccount), args.Error(1)
}

func (m *MockSystemAccountRepository) ListByCompany(ctx context.Context, companyID string) ([]domain.SystemAccount, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SystemAccount), args.Error(1)
}

func (m *MockSystemAccountRepository) Upsert(ctx context.Context, mapping domain.SystemAccount) error {
	args := m.Called(ctx, mapping)
	return args.Error(0)
}

func (m *MockSystemAccountRepository) Delete(ctx context.Context, systemAccountID string) error {
	args := m.Called(ctx, systemAccountID)
	return args.Error(0)
}

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) AccountActivity(ctx context.Context, filter portsrepo.ActivityFilter) (map[string]domain.AccountActivity, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.AccountActivity), args.Error(1)
}

func (m *MockReportingRepository) TrendByMonth(ctx context.Context, companyIDs []string, wingID *string, since time.Time) ([]domain.MonthlyTrend, error) {
	args := m.Called(ctx, companyIDs, wingID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyTrend), args.Error(1)
}

func (m *MockReportingRepository) TopExpenseAccounts(ctx context.Context, companyIDs []string, wingID *string, n int) ([]domain.NamedAmount, error) {
	args := m.Called(ctx, companyIDs, wingID, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.NamedAmount), args.Error(1)
}

// --- Mock TenantUnitResolver ---
type MockTenantResolver struct {
	mock.Mock
}

var _ portsrepo.TenantUnitResolver = (*MockTenantResolver)(nil)

func (m *MockTenantResolver) ResolveUnitIDs(ctx context.Context, companyID string) []string {
	args := m.Called(ctx, companyID)
	return args.Get(0).([]string)
}

// --- Mock JournalService (as used by PostingService) ---
type MockJournalService struct {
	mock.Mock
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

func (m *MockJournalService) CreateEntry(ctx context.Context, req dto.CreateJournalEntryRequest, source domain.EntrySource, creatorUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, req, source, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) ListEntries(ctx context.Context, params dto.ListJournalEntriesParams) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) UpdateEntry(ctx context.Context, entryID string, req dto.UpdateJournalEntryRequest, updaterUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID, req, updaterUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) DeleteEntry(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

// --- Mock SystemAccountService (as used by PostingService) ---
type MockSystemAccountService struct {
	mock.Mock
}

var _ portssvc.SystemAccountSvcFacade = (*MockSystemAccountService)(nil)

func (m *MockSystemAccountService) ListMappings(ctx context.Context, companyID string) ([]domain.SystemAccount, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SystemAccount), args.Error(1)
}

func (m *MockSystemAccountService) UpsertMapping(ctx context.Context, req dto.UpsertSystemAccountRequest) (*domain.SystemAccount, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SystemAccount), args.Error(1)
}

func (m *MockSystemAccountService) DeleteMapping(ctx context.Context, systemAccountID string) error {
	args := m.Called(ctx, systemAccountID)
	return args.Error(0)
}

func (m *MockSystemAccountService) ResolveAccount(ctx context.Context, companyID string, purpose domain.AccountPurpose) (*domain.ChartOfAccount, error) {
	args := m.Called(ctx, companyID, purpose)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChartOfAccount), args.Error(1)
}
