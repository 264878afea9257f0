package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/retailos/accounting_service/internal/apperrors"
	"github.com/retailos/accounting_service/internal/core/domain"
	portsrepo "github.com/retailos/accounting_service/internal/core/ports/repositories"
	portssvc "github.com/retailos/accounting_service/internal/core/ports/services"
	"github.com/retailos/accounting_service/internal/middleware"
	"github.com/retailos/accounting_service/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// trendMonths is how far back the dashboard income/expense trend reaches.
const trendMonths = 6

// topExpenseCount is how many expense accounts the dashboard surfaces.
const topExpenseCount = 5

// ReportingService builds financial statements. It pulls account activity in
// bulk, resolves the tenant-unit set through the registry, and walks the group
// tree in memory, so report cost does not grow with chart size times queries.
type ReportingService struct {
	groupRepo      portsrepo.GroupRepositoryFacade
	accountRepo    portsrepo.AccountRepositoryFacade
	reportingRepo  portsrepo.ReportingRepository
	tenantResolver portsrepo.TenantUnitResolver
}

func NewReportingService(
	groupRepo portsrepo.GroupRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	reportingRepo portsrepo.ReportingRepository,
	tenantResolver portsrepo.TenantUnitResolver,
) *ReportingService {
	return &ReportingService{
		groupRepo:      groupRepo,
		accountRepo:    accountRepo,
		reportingRepo:  reportingRepo,
		tenantResolver: tenantResolver,
	}
}

var _ portssvc.ReportingSvcFacade = (*ReportingService)(nil)

// chartSnapshot is the in-memory material a report is built from: the full
// group tree, all accounts bucketed by group, and the aggregated activity.
type chartSnapshot struct {
	groups         []domain.AccountGroup
	childrenOf     map[string][]*domain.AccountGroup
	accountsOf     map[string][]*domain.ChartOfAccount
	activity       map[string]domain.AccountActivity
	excludeOpening bool
}

func (s *ReportingService) loadSnapshot(ctx context.Context, companyID string, wingID *string, asOf, periodStart *time.Time) (*chartSnapshot, error) {
	if companyID == "" {
		return nil, fmt.Errorf("%w: company id is required", apperrors.ErrValidation)
	}
	unitIDs := s.tenantResolver.ResolveUnitIDs(ctx, companyID)

	groups, err := s.groupRepo.ListGroupsByCompany(ctx, unitIDs)
	if err != nil {
		return nil, err
	}
	// One unpaginated pull; the chart of accounts is bounded per tenant.
	accounts, err := s.accountRepo.ListAccountsByCompany(ctx, unitIDs, 10000, 0)
	if err != nil {
		return nil, err
	}
	activity, err := s.reportingRepo.AccountActivity(ctx, portsrepo.ActivityFilter{
		CompanyIDs:  unitIDs,
		WingID:      wingID,
		AsOf:        asOf,
		PeriodStart: periodStart,
	})
	if err != nil {
		return nil, err
	}

	snap := &chartSnapshot{
		groups:         groups,
		childrenOf:     make(map[string][]*domain.AccountGroup),
		accountsOf:     make(map[string][]*domain.ChartOfAccount),
		activity:       activity,
		excludeOpening: wingID != nil,
	}
	for i := range groups {
		g := &groups[i]
		if g.ParentGroupID != nil {
			snap.childrenOf[*g.ParentGroupID] = append(snap.childrenOf[*g.ParentGroupID], g)
		}
	}
	for i := range accounts {
		a := &accounts[i]
		snap.accountsOf[a.GroupID] = append(snap.accountsOf[a.GroupID], a)
	}
	return snap, nil
}

// accountBalance returns the signed balance of one account from the snapshot's
// aggregated activity. Branch-scoped snapshots exclude opening balances.
func (snap *chartSnapshot) accountBalance(a *domain.ChartOfAccount) decimal.Decimal {
	opening := a.OpeningBalance
	if snap.excludeOpening {
		opening = decimal.Zero
	}
	act := snap.activity[a.AccountID]
	return accounting.ComputeCurrentBalance(a.GroupType, opening, act.CumulativeDebit, act.CumulativeCredit)
}

// groupTotal sums the balances of a group's accounts and, recursively, its
// subgroups. The visited set guards against parent cycles in stored data.
func (snap *chartSnapshot) groupTotal(g *domain.AccountGroup, visited map[string]bool) decimal.Decimal {
	if visited[g.GroupID] {
		return decimal.Zero
	}
	visited[g.GroupID] = true

	total := decimal.Zero
	for _, a := range snap.accountsOf[g.GroupID] {
		total = total.Add(snap.accountBalance(a))
	}
	for _, child := range snap.childrenOf[g.GroupID] {
		total = total.Add(snap.groupTotal(child, visited))
	}
	return total
}

// rootTotals builds one statement section: the totals of every root group of
// the given type, ordered by code.
func (snap *chartSnapshot) rootTotals(groupType domain.GroupType) []domain.GroupTotal {
	totals := []domain.GroupTotal{}
	for i := range snap.groups {
		g := &snap.groups[i]
		if g.ParentGroupID != nil || g.GroupType != groupType {
			continue
		}
		totals = append(totals, domain.GroupTotal{
			GroupID:   g.GroupID,
			Name:      g.Name,
			GroupType: g.GroupType,
			Total:     snap.groupTotal(g, map[string]bool{}),
		})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Name < totals[j].Name })
	return totals
}

func sumTotals(totals []domain.GroupTotal) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range totals {
		sum = sum.Add(t.Total)
	}
	return sum
}

// BalanceSheet aggregates root asset, liability and equity groups as of a date.
func (s *ReportingService) BalanceSheet(ctx context.Context, companyID string, wingID *string, asOf time.Time) (*domain.BalanceSheetReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	snap, err := s.loadSnapshot(ctx, companyID, wingID, &asOf, nil)
	if err != nil {
		logger.Error("Failed to load balance sheet data", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, err
	}

	report := &domain.BalanceSheetReport{
		Assets:      snap.rootTotals(domain.Asset),
		Liabilities: snap.rootTotals(domain.Liability),
		Equity:      snap.rootTotals(domain.Equity),
	}
	report.TotalAssets = sumTotals(report.Assets)
	report.TotalLiabilities = sumTotals(report.Liabilities)
	report.TotalEquity = sumTotals(report.Equity)
	return report, nil
}

// ProfitLoss aggregates income and expense activity. With a start date the
// report covers [start, end]; without one it covers everything up to end.
func (s *ReportingService) ProfitLoss(ctx context.Context, companyID string, wingID *string, start, end *time.Time) (*domain.ProfitLossReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	snap, err := s.loadSnapshot(ctx, companyID, wingID, end, start)
	if err != nil {
		logger.Error("Failed to load profit and loss data", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, err
	}

	// P&L totals come from activity inside the window, never from opening
	// balances. When a window start is given the periodic sums carry it;
	// otherwise the cumulative sums are the window.
	if start != nil {
		periodActivity := make(map[string]domain.AccountActivity, len(snap.activity))
		for id, act := range snap.activity {
			periodActivity[id] = domain.AccountActivity{
				CumulativeDebit:  act.PeriodicDebit,
				CumulativeCredit: act.PeriodicCredit,
			}
		}
		snap.activity = periodActivity
	}
	snap.excludeOpening = true

	report := &domain.ProfitLossReport{
		Income:   snap.rootTotals(domain.Income),
		Expenses: snap.rootTotals(domain.Expense),
	}
	report.TotalIncome = sumTotals(report.Income)
	report.TotalExpense = sumTotals(report.Expenses)
	report.NetProfit = report.TotalIncome.Sub(report.TotalExpense)
	return report, nil
}

// TrialBalance lists every account with a nonzero balance as of a date. A
// negative signed balance flips into the opposite column, so both columns stay
// non-negative and their totals match when the ledger is consistent.
func (s *ReportingService) TrialBalance(ctx context.Context, companyID string, wingID *string, asOf time.Time) (*domain.TrialBalanceReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	snap, err := s.loadSnapshot(ctx, companyID, wingID, &asOf, nil)
	if err != nil {
		logger.Error("Failed to load trial balance data", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, err
	}

	report := &domain.TrialBalanceReport{Rows: []domain.TrialBalanceRow{}}
	for _, accounts := range snap.accountsOf {
		for _, a := range accounts {
			balance := snap.accountBalance(a)
			if balance.IsZero() {
				continue
			}

			row := domain.TrialBalanceRow{
				AccountID:   a.AccountID,
				AccountName: a.Name,
				AccountCode: a.Code,
			}
			debitSide := a.GroupType.IsDebitNormal()
			if balance.IsNegative() {
				debitSide = !debitSide
				balance = balance.Neg()
			}
			if debitSide {
				row.Debit = balance
			} else {
				row.Credit = balance
			}
			report.Rows = append(report.Rows, row)
			report.TotalDebit = report.TotalDebit.Add(row.Debit)
			report.TotalCredit = report.TotalCredit.Add(row.Credit)
		}
	}
	sort.Slice(report.Rows, func(i, j int) bool { return report.Rows[i].AccountCode < report.Rows[j].AccountCode })
	report.IsBalanced = report.TotalDebit.Equal(report.TotalCredit)
	return report, nil
}

// Dashboard assembles the accounting overview: a six-month income/expense
// trend, the distribution of assets over root groups, the top expense
// accounts, and the combined balance of cash accounts.
func (s *ReportingService) Dashboard(ctx context.Context, companyID string, wingID *string) (*domain.DashboardReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	snap, err := s.loadSnapshot(ctx, companyID, wingID, nil, nil)
	if err != nil {
		logger.Error("Failed to load dashboard data", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, err
	}
	unitIDs := s.tenantResolver.ResolveUnitIDs(ctx, companyID)

	now := time.Now()
	since := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(trendMonths - 1), 0)
	trends, err := s.reportingRepo.TrendByMonth(ctx, unitIDs, wingID, since)
	if err != nil {
		logger.Error("Failed to load monthly trend", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, err
	}

	topExpenses, err := s.reportingRepo.TopExpenseAccounts(ctx, unitIDs, wingID, topExpenseCount)
	if err != nil {
		logger.Error("Failed to load top expenses", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, err
	}

	distribution := []domain.NamedAmount{}
	for _, t := range snap.rootTotals(domain.Asset) {
		if t.Total.IsZero() {
			continue
		}
		distribution = append(distribution, domain.NamedAmount{Name: t.Name, Value: t.Total})
	}

	// Cash position is a name heuristic, restricted to asset accounts so a
	// liability like "Cash Advances Payable" never counts as cash on hand.
	// Companies name their float accounts freely and there may be no system
	// mapping yet.
	cash := decimal.Zero
	for _, accounts := range snap.accountsOf {
		for _, a := range accounts {
			if a.GroupType != domain.Asset {
				continue
			}
			if !strings.Contains(strings.ToLower(a.Name), "cash") {
				continue
			}
			cash = cash.Add(snap.accountBalance(a))
		}
	}

	return &domain.DashboardReport{
		Trends:            trends,
		AssetDistribution: distribution,
		TopExpenses:       topExpenses,
		CashBalance:       cash,
	}, nil
}
