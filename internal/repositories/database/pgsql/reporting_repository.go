package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/retailos/accounting_service/internal/core/domain"
	portsrepo "github.com/retailos/accounting_service/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates the aggregate read path for reports.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// AccountActivity returns cumulative and periodic debit/credit sums per
// account. Cumulative sums cover everything up to AsOf; periodic sums are
// bounded by [PeriodStart, AsOf] and only computed when PeriodStart is set.
func (r *PgxReportingRepository) AccountActivity(ctx context.Context, filter portsrepo.ActivityFilter) (map[string]domain.AccountActivity, error) {
	activity := make(map[string]domain.AccountActivity)

	if len(filter.CompanyIDs) == 0 {
		return activity, nil
	}

	cumulative, err := r.sumByAccount(ctx, filter.CompanyIDs, filter.WingID, nil, filter.AsOf)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate cumulative activity: %w", err)
	}
	for id, sums := range cumulative {
		a := activity[id]
		a.CumulativeDebit = sums.debit
		a.CumulativeCredit = sums.credit
		activity[id] = a
	}

	if filter.PeriodStart != nil {
		periodic, err := r.sumByAccount(ctx, filter.CompanyIDs, filter.WingID, filter.PeriodStart, filter.AsOf)
		if err != nil {
			return nil, fmt.Errorf("failed to aggregate periodic activity: %w", err)
		}
		for id, sums := range periodic {
			a := activity[id]
			a.PeriodicDebit = sums.debit
			a.PeriodicCredit = sums.credit
			activity[id] = a
		}
	}

	return activity, nil
}

type debitCredit struct {
	debit  decimal.Decimal
	credit decimal.Decimal
}

func (r *PgxReportingRepository) sumByAccount(ctx context.Context, companyIDs []string, wingID *string, from, to *time.Time) (map[string]debitCredit, error) {
	query := `
		SELECT i.account_id, COALESCE(SUM(i.debit), 0), COALESCE(SUM(i.credit), 0)
		FROM journal_items i
		JOIN journal_entries e ON e.entry_id = i.entry_id
		WHERE e.company_id = ANY($1)`
	args := []any{companyIDs}

	if wingID != nil {
		args = append(args, *wingID)
		query += ` AND e.wing_id = $` + strconv.Itoa(len(args))
	}
	if from != nil {
		args = append(args, *from)
		query += ` AND e.date >= $` + strconv.Itoa(len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += ` AND e.date <= $` + strconv.Itoa(len(args))
	}
	query += ` GROUP BY i.account_id;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sums := make(map[string]debitCredit)
	for rows.Next() {
		var id string
		var dc debitCredit
		if err := rows.Scan(&id, &dc.debit, &dc.credit); err != nil {
			return nil, fmt.Errorf("failed to scan activity row: %w", err)
		}
		sums[id] = dc
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity rows: %w", err)
	}
	return sums, nil
}

// TrendByMonth returns income/expense activity bucketed by entry month since
// the given date, oldest month first.
func (r *PgxReportingRepository) TrendByMonth(ctx context.Context, companyIDs []string, wingID *string, since time.Time) ([]domain.MonthlyTrend, error) {
	if len(companyIDs) == 0 {
		return []domain.MonthlyTrend{}, nil
	}

	query := `
		SELECT date_trunc('month', e.date) AS month,
		       COALESCE(SUM(CASE WHEN g.group_type = 'income' THEN i.credit - i.debit ELSE 0 END), 0) AS income,
		       COALESCE(SUM(CASE WHEN g.group_type = 'expense' THEN i.debit - i.credit ELSE 0 END), 0) AS expense
		FROM journal_items i
		JOIN journal_entries e ON e.entry_id = i.entry_id
		JOIN accounts a ON a.account_id = i.account_id
		JOIN account_groups g ON g.group_id = a.group_id
		WHERE e.company_id = ANY($1) AND e.date >= $2 AND g.group_type IN ('income', 'expense')`
	args := []any{companyIDs, since}

	if wingID != nil {
		args = append(args, *wingID)
		query += ` AND e.wing_id = $` + strconv.Itoa(len(args))
	}
	query += ` GROUP BY month ORDER BY month;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly trend: %w", err)
	}
	defer rows.Close()

	trends := []domain.MonthlyTrend{}
	for rows.Next() {
		var month time.Time
		var t domain.MonthlyTrend
		if err := rows.Scan(&month, &t.Income, &t.Expense); err != nil {
			return nil, fmt.Errorf("failed to scan trend row: %w", err)
		}
		t.Month = month.Format("Jan 2006")
		trends = append(trends, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trend rows: %w", err)
	}
	return trends, nil
}

// TopExpenseAccounts returns the n expense accounts with the largest net
// debit activity.
func (r *PgxReportingRepository) TopExpenseAccounts(ctx context.Context, companyIDs []string, wingID *string, n int) ([]domain.NamedAmount, error) {
	if len(companyIDs) == 0 || n <= 0 {
		return []domain.NamedAmount{}, nil
	}

	query := `
		SELECT a.name, COALESCE(SUM(i.debit - i.credit), 0) AS spent
		FROM journal_items i
		JOIN journal_entries e ON e.entry_id = i.entry_id
		JOIN accounts a ON a.account_id = i.account_id
		JOIN account_groups g ON g.group_id = a.group_id
		WHERE e.company_id = ANY($1) AND g.group_type = 'expense'`
	args := []any{companyIDs}

	if wingID != nil {
		args = append(args, *wingID)
		query += ` AND e.wing_id = $` + strconv.Itoa(len(args))
	}
	args = append(args, n)
	query += ` GROUP BY a.account_id, a.name ORDER BY spent DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query top expense accounts: %w", err)
	}
	defer rows.Close()

	top := []domain.NamedAmount{}
	for rows.Next() {
		var na domain.NamedAmount
		if err := rows.Scan(&na.Name, &na.Value); err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		top = append(top, na)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense rows: %w", err)
	}
	return top, nil
}
