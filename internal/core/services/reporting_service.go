package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nusantara-construction/ledger-backend/internal/apperrors"
	"github.com/nusantara-construction/ledger-backend/internal/core/domain"
	portsrepo "github.com/nusantara-construction/ledger-backend/internal/core/ports/repositories"
	portssvc "github.com/nusantara-construction/ledger-backend/internal/core/ports/services"
	"github.com/nusantara-construction/ledger-backend/internal/utils/accounting"
)

// reportingService implements the ReportingService interface. Statements are
// derived from sub-ledger facts; the posted ledger backs the trial balance.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	accountSvc    portssvc.AccountReaderSvc
	now           func() time.Time
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportingClock overrides the service clock, used by tests.
func WithReportingClock(now func() time.Time) ReportingServiceOption {
	return func(s *reportingService) {
		s.now = now
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(repo portsrepo.ReportingRepository, accountSvc portssvc.AccountReaderSvc, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		reportingRepo: repo,
		accountSvc:    accountSvc,
		now:           time.Now,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// validateRange rejects inverted date ranges.
func validateRange(start, end *time.Time) error {
	if start != nil && end != nil && start.After(*end) {
		return fmt.Errorf("%w: start_date must not be after end_date", apperrors.ErrValidation)
	}
	return nil
}

// requireRange validates a range that must be fully bounded. Period statements
// need both dates; the dashboard overview accepts open-ended ranges.
func requireRange(start, end *time.Time) error {
	if start == nil || end == nil {
		return fmt.Errorf("%w: start_date and end_date are required", apperrors.ErrValidation)
	}
	return validateRange(start, end)
}

// TrialBalance generates a trial balance report as of a specific date. Row
// balances are signed by each account's normal balance side.
func (s *reportingService) TrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalanceReport, error) {
	rows, err := s.reportingRepo.GetTrialBalanceRows(ctx, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve trial balance data",
			slog.String("as_of", asOf.Format(time.RFC3339)))
		return nil, fmt.Errorf("failed to retrieve trial balance data: %w", err)
	}

	totalDebits := decimal.Zero
	totalCredits := decimal.Zero
	for i := range rows {
		rows[i].Balance = accounting.SignedBalance(rows[i].NormalBalance, rows[i].TotalDebit, rows[i].TotalCredit)
		totalDebits = totalDebits.Add(rows[i].TotalDebit)
		totalCredits = totalCredits.Add(rows[i].TotalCredit)
	}

	difference := totalDebits.Sub(totalCredits)
	report := &domain.TrialBalanceReport{
		AsOfDate: asOf,
		Accounts: rows,
		Summary: domain.TrialBalanceSummary{
			TotalDebits:  totalDebits,
			TotalCredits: totalCredits,
			Difference:   difference,
			IsBalanced:   difference.Abs().LessThan(domain.BalanceTolerance),
		},
	}

	s.LogInfo(ctx, "Trial balance report generated successfully",
		slog.String("as_of", asOf.Format(time.RFC3339)),
		slog.Int("row_count", len(rows)),
		slog.Bool("is_balanced", report.Summary.IsBalanced))
	return report, nil
}

// percentOf computes part/whole*100 rounded to two decimals, 0 when whole is 0.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(decimal.NewFromInt(100)).Round(2)
}

// DashboardOverview aggregates revenue, expense and cash positions for the
// given date range.
func (s *reportingService) DashboardOverview(ctx context.Context, start, end *time.Time) (*domain.DashboardOverview, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}
	dr := portsrepo.DateRange{Start: start, End: end}

	revenue, err := s.reportingRepo.GetRevenueSummary(ctx, dr)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve revenue summary")
		return nil, fmt.Errorf("failed to retrieve revenue summary: %w", err)
	}

	expenses, err := s.reportingRepo.GetExpenseSummary(ctx, dr)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve expense summary")
		return nil, fmt.Errorf("failed to retrieve expense summary: %w", err)
	}

	cash, err := s.accountSvc.ListCashAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve cash balances")
		return nil, fmt.Errorf("failed to retrieve cash balances: %w", err)
	}

	netProfit := revenue.TotalRevenue.Sub(expenses.TotalExpenses)
	overview := &domain.DashboardOverview{
		TotalRevenue:      revenue.TotalRevenue,
		TotalExpenses:     expenses.TotalExpenses,
		NetProfit:         netProfit,
		ProfitMargin:      percentOf(netProfit, revenue.TotalRevenue),
		TotalCash:         cash.TotalBalance,
		RevenueByBank:     revenue.ByBank,
		ExpenseByCategory: expenses.ByCategory,
		ExpenseByAccount:  expenses.ByAccount,
		CashAccounts:      cash.Accounts,
	}

	s.LogInfo(ctx, "Dashboard overview generated successfully",
		slog.Int("bank_count", len(overview.RevenueByBank)),
		slog.Int("cash_account_count", len(overview.CashAccounts)))
	return overview, nil
}

// reportPeriod normalises an optional range into the period block statements carry.
func reportPeriod(start, end *time.Time) domain.ReportPeriod {
	period := domain.ReportPeriod{}
	if start != nil {
		period.StartDate = *start
	}
	if end != nil {
		period.EndDate = *end
	}
	return period
}

// IncomeStatement generates a profit and loss statement for the period. There
// is no cost-of-goods split, so gross profit equals net income, and with no
// interest/tax/depreciation layer EBITDA equals net income too.
func (s *reportingService) IncomeStatement(ctx context.Context, start, end *time.Time) (*domain.IncomeStatement, error) {
	if err := requireRange(start, end); err != nil {
		return nil, err
	}
	dr := portsrepo.DateRange{Start: start, End: end}

	revenue, err := s.reportingRepo.GetRevenueSummary(ctx, dr)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve revenue summary")
		return nil, fmt.Errorf("failed to retrieve revenue summary: %w", err)
	}

	expenses, err := s.reportingRepo.GetExpenseSummary(ctx, dr)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve expense summary")
		return nil, fmt.Errorf("failed to retrieve expense summary: %w", err)
	}

	grossProfit := revenue.TotalRevenue.Sub(expenses.TotalExpenses)
	statement := &domain.IncomeStatement{
		Period:      reportPeriod(start, end),
		Revenue:     *revenue,
		Expenses:    *expenses,
		GrossProfit: grossProfit,
		GrossMargin: percentOf(grossProfit, revenue.TotalRevenue),
		NetIncome:   grossProfit,
		EBITDA:      grossProfit,
	}

	s.LogInfo(ctx, "Income statement generated successfully")
	return statement, nil
}

// CashFlowStatement generates a cash flow statement for the period. Investing
// and financing sections stay zero until their sub-ledgers are wired in.
func (s *reportingService) CashFlowStatement(ctx context.Context, start, end *time.Time) (*domain.CashFlowStatement, error) {
	if err := requireRange(start, end); err != nil {
		return nil, err
	}
	dr := portsrepo.DateRange{Start: start, End: end}

	revenue, err := s.reportingRepo.GetRevenueSummary(ctx, dr)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve revenue summary")
		return nil, fmt.Errorf("failed to retrieve revenue summary: %w", err)
	}

	expenses, err := s.reportingRepo.GetExpenseSummary(ctx, dr)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve expense summary")
		return nil, fmt.Errorf("failed to retrieve expense summary: %w", err)
	}

	cash, err := s.accountSvc.ListCashAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve cash balances")
		return nil, fmt.Errorf("failed to retrieve cash balances: %w", err)
	}

	netOperating := revenue.TotalRevenue.Sub(expenses.TotalExpenses)
	statement := &domain.CashFlowStatement{
		Period: reportPeriod(start, end),
		OperatingActivities: domain.OperatingActivities{
			CashFromCustomers: revenue.TotalRevenue,
			CashToSuppliers:   expenses.TotalExpenses.Neg(),
			NetOperatingCash:  netOperating,
		},
		NetCashFlow:    netOperating,
		CurrentBalance: cash.TotalBalance,
	}

	s.LogInfo(ctx, "Cash flow statement generated successfully")
	return statement, nil
}

// BalanceSheet generates the asset/receivable snapshot. The report carries the
// caller's as-of date (now when absent) while the underlying balances are
// current positions. Equity capital is forced to equal total assets;
// liabilities stay zero until a payables sub-ledger exists.
func (s *reportingService) BalanceSheet(ctx context.Context, asOf *time.Time) (*domain.BalanceSheet, error) {
	cash, err := s.accountSvc.ListCashAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve cash balances")
		return nil, fmt.Errorf("failed to retrieve cash balances: %w", err)
	}

	receivables, err := s.reportingRepo.GetReceivables(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve receivables")
		return nil, fmt.Errorf("failed to retrieve receivables: %w", err)
	}

	asOfDate := s.now()
	if asOf != nil {
		asOfDate = *asOf
	}

	totalCurrent := cash.TotalBalance.Add(receivables)
	sheet := &domain.BalanceSheet{
		AsOfDate: asOfDate,
		Assets: domain.BalanceSheetAssets{
			CurrentAssets: domain.CurrentAssets{
				CashAndBank:        cash.TotalBalance,
				AccountsReceivable: receivables,
				TotalCurrentAssets: totalCurrent,
			},
			TotalAssets: totalCurrent,
		},
		Equity: domain.BalanceSheetEquity{
			Capital:     totalCurrent,
			TotalEquity: totalCurrent,
		},
	}

	s.LogInfo(ctx, "Balance sheet generated successfully")
	return sheet, nil
}
