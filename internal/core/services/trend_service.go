package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nusantara-construction/ledger-backend/internal/apperrors"
	"github.com/nusantara-construction/ledger-backend/internal/core/domain"
	portsrepo "github.com/nusantara-construction/ledger-backend/internal/core/ports/repositories"
	portssvc "github.com/nusantara-construction/ledger-backend/internal/core/ports/services"
)

// trendService implements the TrendService interface
type trendService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// NewTrendService creates a new trend service
func NewTrendService(repo portsrepo.ReportingRepository) portssvc.TrendService {
	return &trendService{reportingRepo: repo}
}

// Ensure trendService implements the TrendService interface
var _ portssvc.TrendService = (*trendService)(nil)

// Trends buckets revenue and expense facts by period and merges them into a
// single chronological series. A period seen on only one side still appears,
// with the missing side at zero.
func (s *trendService) Trends(ctx context.Context, periodType domain.PeriodType, start, end *time.Time) (*domain.TrendReport, error) {
	if !periodType.Valid() {
		return nil, fmt.Errorf("%w: invalid period_type %q", apperrors.ErrValidation, periodType)
	}
	if err := validateRange(start, end); err != nil {
		return nil, err
	}
	dr := portsrepo.DateRange{Start: start, End: end}

	revenueBuckets, err := s.reportingRepo.GetRevenueTrend(ctx, periodType, dr)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve revenue trend")
		return nil, fmt.Errorf("failed to retrieve revenue trend: %w", err)
	}

	expenseBuckets, err := s.reportingRepo.GetExpenseTrend(ctx, periodType, dr)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve expense trend")
		return nil, fmt.Errorf("failed to retrieve expense trend: %w", err)
	}

	merged := make(map[string]*domain.TrendPoint)
	for _, b := range revenueBuckets {
		merged[b.Period] = &domain.TrendPoint{
			Period:  b.Period,
			Year:    b.Year,
			Month:   bucketStartMonth(periodType, b.Month),
			Revenue: b.Amount,
			Expense: decimal.Zero,
		}
	}
	for _, b := range expenseBuckets {
		point, ok := merged[b.Period]
		if !ok {
			point = &domain.TrendPoint{
				Period:  b.Period,
				Year:    b.Year,
				Month:   bucketStartMonth(periodType, b.Month),
				Revenue: decimal.Zero,
			}
			merged[b.Period] = point
		}
		point.Expense = b.Amount
	}

	trends := make([]domain.TrendPoint, 0, len(merged))
	for _, point := range merged {
		point.Profit = point.Revenue.Sub(point.Expense)
		point.MonthName = time.Month(point.Month).String()
		point.DisplayLabel = displayLabel(periodType, point.Year, point.Month)
		trends = append(trends, *point)
	}
	// Period keys are zero-padded, so lexicographic order is chronological.
	sort.Slice(trends, func(i, j int) bool {
		return trends[i].Period < trends[j].Period
	})

	report := &domain.TrendReport{
		Trends:     trends,
		PeriodType: periodType,
		DataPoints: len(trends),
		Summary:    summarize(trends),
	}

	s.LogInfo(ctx, "Trend report generated successfully",
		slog.String("period_type", string(periodType)),
		slog.Int("data_points", report.DataPoints))
	return report, nil
}

// bucketStartMonth maps a raw bucket index to the first month it covers.
func bucketStartMonth(periodType domain.PeriodType, raw int) int {
	switch periodType {
	case domain.Quarterly:
		return (raw-1)*3 + 1
	case domain.Yearly:
		return 1
	default:
		return raw
	}
}

// displayLabel renders the human-facing bucket label, e.g. "Jan 2025",
// "Q1 2025" or "2025".
func displayLabel(periodType domain.PeriodType, year, month int) string {
	switch periodType {
	case domain.Quarterly:
		quarter := (month-1)/3 + 1
		return fmt.Sprintf("Q%d %d", quarter, year)
	case domain.Yearly:
		return fmt.Sprintf("%d", year)
	default:
		return fmt.Sprintf("%s %d", time.Month(month).String()[:3], year)
	}
}

// summarize totals the series and averages it over its data points.
func summarize(trends []domain.TrendPoint) domain.TrendSummary {
	summary := domain.TrendSummary{
		TotalRevenue:   decimal.Zero,
		TotalExpense:   decimal.Zero,
		TotalProfit:    decimal.Zero,
		AverageRevenue: decimal.Zero,
		AverageExpense: decimal.Zero,
	}
	for _, point := range trends {
		summary.TotalRevenue = summary.TotalRevenue.Add(point.Revenue)
		summary.TotalExpense = summary.TotalExpense.Add(point.Expense)
		summary.TotalProfit = summary.TotalProfit.Add(point.Profit)
	}
	if n := int64(len(trends)); n > 0 {
		count := decimal.NewFromInt(n)
		summary.AverageRevenue = summary.TotalRevenue.Div(count).Round(2)
		summary.AverageExpense = summary.TotalExpense.Div(count).Round(2)
	}
	return summary
}
