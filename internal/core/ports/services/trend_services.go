package services

import (
	"context"
	"time"

	"github.com/nusantara-construction/ledger-backend/internal/core/domain"
)

// TrendService defines operations for time-bucketed revenue/expense analysis
type TrendService interface {
	// Trends buckets revenue and expense facts by the given period type and
	// merges them into a single chronological series with summary totals.
	Trends(ctx context.Context, periodType domain.PeriodType, start, end *time.Time) (*domain.TrendReport, error)
}
