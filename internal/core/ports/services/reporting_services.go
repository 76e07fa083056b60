package services

import (
	"context"
	"time"

	"github.com/nusantara-construction/ledger-backend/internal/core/domain"
)

// ReportingService defines operations for generating financial reports
type ReportingService interface {
	// TrialBalance generates a trial balance report as of a specific date.
	TrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalanceReport, error)

	// DashboardOverview aggregates revenue, expense and cash positions for
	// the given date range.
	DashboardOverview(ctx context.Context, start, end *time.Time) (*domain.DashboardOverview, error)

	// IncomeStatement generates a profit and loss statement for the period.
	IncomeStatement(ctx context.Context, start, end *time.Time) (*domain.IncomeStatement, error)

	// CashFlowStatement generates a cash flow statement for the period.
	CashFlowStatement(ctx context.Context, start, end *time.Time) (*domain.CashFlowStatement, error)

	// BalanceSheet generates a balance sheet stamped with asOf, defaulting
	// to now when nil.
	BalanceSheet(ctx context.Context, asOf *time.Time) (*domain.BalanceSheet, error)
}
