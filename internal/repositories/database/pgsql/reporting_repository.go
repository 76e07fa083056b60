package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nusantara-construction/ledger-backend/internal/core/domain"
	portsrepo "github.com/nusantara-construction/ledger-backend/internal/core/ports/repositories"
)

// reportingRepository implements the ReportingRepository interface. It reads
// posted ledger activity plus the externally-owned sub-ledger tables
// (progress_payments, milestone_costs) that feed the statements.
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db PgxPool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// GetTrialBalanceRows sums posted debit/credit activity per active account on
// or before asOf. Zero-activity accounts are dropped.
func (r *reportingRepository) GetTrialBalanceRows(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT
			a.id,
			a.account_code,
			a.account_name,
			a.account_type,
			a.normal_balance,
			COALESCE(SUM(l.debit_amount), 0) AS total_debit,
			COALESCE(SUM(l.credit_amount), 0) AS total_credit
		FROM journal_entry_lines l
		JOIN chart_of_accounts a ON l.account_id = a.id
		JOIN journal_entries e ON l.journal_entry_id = e.id
		WHERE e.status = 'POSTED'
			AND e.entry_date <= $1
			AND a.is_active = TRUE
		GROUP BY a.id, a.account_code, a.account_name, a.account_type, a.normal_balance
		HAVING SUM(l.debit_amount) <> 0 OR SUM(l.credit_amount) <> 0
		ORDER BY a.account_code
	`

	rows, err := r.Pool.Query(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("error querying trial balance data: %w", err)
	}
	defer rows.Close()

	result := []domain.TrialBalanceRow{}
	for rows.Next() {
		var row domain.TrialBalanceRow
		if err := rows.Scan(
			&row.AccountID,
			&row.Code,
			&row.Name,
			&row.AccountType,
			&row.NormalBalance,
			&row.TotalDebit,
			&row.TotalCredit,
		); err != nil {
			return nil, fmt.Errorf("error scanning trial balance row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trial balance rows: %w", err)
	}

	return result, nil
}

// dateConditions appends optional range conditions over the given column.
func dateConditions(column string, dr portsrepo.DateRange, args []any) (string, []any) {
	clause := ""
	if dr.Start != nil {
		args = append(args, *dr.Start)
		clause += fmt.Sprintf(" AND %s >= $%d", column, len(args))
	}
	if dr.End != nil {
		args = append(args, *dr.End)
		clause += fmt.Sprintf(" AND %s <= $%d", column, len(args))
	}
	return clause, args
}

// GetRevenueSummary totals paid-invoice net amounts with a by-bank breakdown.
func (r *reportingRepository) GetRevenueSummary(ctx context.Context, dr portsrepo.DateRange) (*domain.RevenueSummary, error) {
	args := []any{}
	clause, args := dateConditions("paid_at", dr, args)

	totalQuery := `
		SELECT COALESCE(SUM(net_amount), 0), COUNT(*)
		FROM progress_payments
		WHERE status = 'paid'` + clause + `
	`
	summary := &domain.RevenueSummary{ByBank: []domain.BankAmount{}}
	if err := r.Pool.QueryRow(ctx, totalQuery, args...).Scan(&summary.TotalRevenue, &summary.InvoiceCount); err != nil {
		return nil, fmt.Errorf("error querying revenue total: %w", err)
	}

	bankQuery := `
		SELECT COALESCE(payment_received_bank, 'UNKNOWN'), COALESCE(SUM(net_amount), 0), COUNT(*)
		FROM progress_payments
		WHERE status = 'paid'` + clause + `
		GROUP BY payment_received_bank
		ORDER BY 2 DESC
	`
	rows, err := r.Pool.Query(ctx, bankQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying revenue by bank: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var row domain.BankAmount
		if err := rows.Scan(&row.BankName, &row.Amount, &row.TransactionCount); err != nil {
			return nil, fmt.Errorf("error scanning revenue bank row: %w", err)
		}
		summary.ByBank = append(summary.ByBank, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating revenue bank rows: %w", err)
	}

	return summary, nil
}

// GetExpenseSummary totals approved and paid milestone costs with by-category
// and by-account breakdowns.
func (r *reportingRepository) GetExpenseSummary(ctx context.Context, dr portsrepo.DateRange) (*domain.ExpenseSummary, error) {
	args := []any{}
	clause, args := dateConditions("c.created_at", dr, args)

	base := `
		FROM milestone_costs c
		WHERE c.deleted_at IS NULL
			AND c.status IN ('approved', 'paid')` + clause

	summary := &domain.ExpenseSummary{
		ByCategory: []domain.CategoryAmount{},
		ByAccount:  []domain.AccountAmount{},
	}

	totalQuery := `SELECT COALESCE(SUM(c.amount), 0), COUNT(*) ` + base
	if err := r.Pool.QueryRow(ctx, totalQuery, args...).Scan(&summary.TotalExpenses, &summary.CostCount); err != nil {
		return nil, fmt.Errorf("error querying expense total: %w", err)
	}

	categoryQuery := `
		SELECT COALESCE(c.cost_category, 'UNCATEGORIZED'), COALESCE(SUM(c.amount), 0), COUNT(*) ` + base + `
		GROUP BY c.cost_category
		ORDER BY 2 DESC
	`
	rows, err := r.Pool.Query(ctx, categoryQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying expenses by category: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var row domain.CategoryAmount
		if err := rows.Scan(&row.Category, &row.Amount, &row.TransactionCount); err != nil {
			return nil, fmt.Errorf("error scanning expense category row: %w", err)
		}
		summary.ByCategory = append(summary.ByCategory, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense category rows: %w", err)
	}

	accountQuery := `
		SELECT a.account_code, a.account_name, COALESCE(SUM(c.amount), 0), COUNT(*)
		FROM milestone_costs c
		JOIN chart_of_accounts a ON c.account_id = a.id
		WHERE c.deleted_at IS NULL
			AND c.status IN ('approved', 'paid')` + clause + `
		GROUP BY a.account_code, a.account_name
		ORDER BY 3 DESC
	`
	accRows, err := r.Pool.Query(ctx, accountQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying expenses by account: %w", err)
	}
	defer accRows.Close()

	for accRows.Next() {
		var row domain.AccountAmount
		if err := accRows.Scan(&row.Code, &row.Name, &row.Amount, &row.TransactionCount); err != nil {
			return nil, fmt.Errorf("error scanning expense account row: %w", err)
		}
		summary.ByAccount = append(summary.ByAccount, row)
	}
	if err := accRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense account rows: %w", err)
	}

	return summary, nil
}

// GetReceivables sums the net amounts of invoices that are neither paid nor
// cancelled.
func (r *reportingRepository) GetReceivables(ctx context.Context) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(net_amount), 0)
		FROM progress_payments
		WHERE status NOT IN ('paid', 'cancelled')
	`
	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("error querying receivables: %w", err)
	}
	return total, nil
}

// trendSelect builds the period projection for a trend query over dateColumn.
func trendSelect(periodType domain.PeriodType, dateColumn string) string {
	switch periodType {
	case domain.Quarterly:
		return fmt.Sprintf(`to_char(%s, 'YYYY-"Q"Q'), EXTRACT(YEAR FROM %s)::int, EXTRACT(QUARTER FROM %s)::int`, dateColumn, dateColumn, dateColumn)
	case domain.Yearly:
		return fmt.Sprintf(`to_char(%s, 'YYYY'), EXTRACT(YEAR FROM %s)::int, 0`, dateColumn, dateColumn)
	default:
		return fmt.Sprintf(`to_char(%s, 'YYYY-MM'), EXTRACT(YEAR FROM %s)::int, EXTRACT(MONTH FROM %s)::int`, dateColumn, dateColumn, dateColumn)
	}
}

// queryTrend runs a bucketed aggregation and scans the buckets.
func (r *reportingRepository) queryTrend(ctx context.Context, query string, args []any) ([]portsrepo.TrendBucket, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying trend buckets: %w", err)
	}
	defer rows.Close()

	buckets := []portsrepo.TrendBucket{}
	for rows.Next() {
		var b portsrepo.TrendBucket
		if err := rows.Scan(&b.Period, &b.Year, &b.Month, &b.Amount, &b.Count); err != nil {
			return nil, fmt.Errorf("error scanning trend bucket: %w", err)
		}
		buckets = append(buckets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trend buckets: %w", err)
	}

	return buckets, nil
}

// GetRevenueTrend buckets paid-invoice net amounts by period.
func (r *reportingRepository) GetRevenueTrend(ctx context.Context, periodType domain.PeriodType, dr portsrepo.DateRange) ([]portsrepo.TrendBucket, error) {
	args := []any{}
	clause, args := dateConditions("paid_at", dr, args)

	query := `
		SELECT ` + trendSelect(periodType, "paid_at") + `, COALESCE(SUM(net_amount), 0), COUNT(*)
		FROM progress_payments
		WHERE status = 'paid'` + clause + `
		GROUP BY 1, 2, 3
		ORDER BY 1
	`
	return r.queryTrend(ctx, query, args)
}

// GetExpenseTrend buckets approved and paid milestone costs by period.
func (r *reportingRepository) GetExpenseTrend(ctx context.Context, periodType domain.PeriodType, dr portsrepo.DateRange) ([]portsrepo.TrendBucket, error) {
	args := []any{}
	clause, args := dateConditions("created_at", dr, args)

	query := `
		SELECT ` + trendSelect(periodType, "created_at") + `, COALESCE(SUM(amount), 0), COUNT(*)
		FROM milestone_costs
		WHERE deleted_at IS NULL
			AND status IN ('approved', 'paid')` + clause + `
		GROUP BY 1, 2, 3
		ORDER BY 1
	`
	return r.queryTrend(ctx, query, args)
}

// Ensure reportingRepository implements portsrepo.ReportingRepository
var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)
