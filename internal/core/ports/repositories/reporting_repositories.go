package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nusantara-construction/ledger-backend/internal/core/domain"
)

// DateRange is an optional inclusive range over sub-ledger fact dates. Nil
// ends leave that side open.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// TrendBucket is one period's worth of a single fact stream (revenue or
// expense) before merging.
type TrendBucket struct {
	Period string
	Year   int
	Month  int
	Amount decimal.Decimal
	Count  int
}

// ReportingRepository reads posted ledger activity and the external
// sub-ledger facts (paid invoices, milestone costs) that feed statements.
// All methods are read-only: reporting never mutates ledger state.
type ReportingRepository interface {
	// GetTrialBalanceRows sums posted debit/credit activity per active
	// account on or before asOf, dropping zero-activity accounts, ordered by
	// account code.
	GetTrialBalanceRows(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error)

	// GetRevenueSummary totals paid-invoice net amounts in the range, with a
	// by-bank breakdown.
	GetRevenueSummary(ctx context.Context, r DateRange) (*domain.RevenueSummary, error)

	// GetExpenseSummary totals approved/paid milestone costs in the range,
	// with by-category and by-account breakdowns.
	GetExpenseSummary(ctx context.Context, r DateRange) (*domain.ExpenseSummary, error)

	// GetReceivables sums the net amounts of invoices that are neither paid
	// nor cancelled.
	GetReceivables(ctx context.Context) (decimal.Decimal, error)

	// GetRevenueTrend buckets paid-invoice net amounts by period.
	GetRevenueTrend(ctx context.Context, periodType domain.PeriodType, r DateRange) ([]TrendBucket, error)

	// GetExpenseTrend buckets approved/paid milestone costs by period.
	GetExpenseTrend(ctx context.Context, periodType domain.PeriodType, r DateRange) ([]TrendBucket, error)
}
