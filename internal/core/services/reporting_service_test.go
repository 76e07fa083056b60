package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/nusantara-construction/ledger-backend/internal/apperrors"
	"github.com/nusantara-construction/ledger-backend/internal/core/domain"
	portsrepo "github.com/nusantara-construction/ledger-backend/internal/core/ports/repositories"
	portssvc "github.com/nusantara-construction/ledger-backend/internal/core/ports/services"
	"github.com/nusantara-construction/ledger-backend/internal/core/services"
)

// MockReportingRepository is a mock type for the ReportingRepository interface
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) GetTrialBalanceRows(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

func (m *MockReportingRepository) GetRevenueSummary(ctx context.Context, r portsrepo.DateRange) (*domain.RevenueSummary, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RevenueSummary), args.Error(1)
}

func (m *MockReportingRepository) GetExpenseSummary(ctx context.Context, r portsrepo.DateRange) (*domain.ExpenseSummary, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExpenseSummary), args.Error(1)
}

func (m *MockReportingRepository) GetReceivables(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReportingRepository) GetRevenueTrend(ctx context.Context, periodType domain.PeriodType, r portsrepo.DateRange) ([]portsrepo.TrendBucket, error) {
	args := m.Called(ctx, periodType, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]portsrepo.TrendBucket), args.Error(1)
}

func (m *MockReportingRepository) GetExpenseTrend(ctx context.Context, periodType domain.PeriodType, r portsrepo.DateRange) ([]portsrepo.TrendBucket, error) {
	args := m.Called(ctx, periodType, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]portsrepo.TrendBucket), args.Error(1)
}

// MockAccountReaderSvc is a mock type for the AccountReaderSvc interface
type MockAccountReaderSvc struct {
	mock.Mock
}

func (m *MockAccountReaderSvc) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountReaderSvc) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountReaderSvc) ListAccounts(ctx context.Context, filter portsrepo.AccountFilter) ([]domain.Account, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountReaderSvc) GetHierarchy(ctx context.Context, filter portsrepo.AccountFilter) ([]*domain.AccountNode, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AccountNode), args.Error(1)
}

func (m *MockAccountReaderSvc) ListCashAccounts(ctx context.Context) (*domain.CashBalances, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashBalances), args.Error(1)
}

func (m *MockAccountReaderSvc) GetTypeSummary(ctx context.Context) ([]domain.AccountTypeCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountTypeCount), args.Error(1)
}

// --- Test Suite Setup ---

type ReportingServiceTestSuite struct {
	suite.Suite
	mockRepo       *MockReportingRepository
	mockAccountSvc *MockAccountReaderSvc
	service        portssvc.ReportingService
	now            time.Time
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockReportingRepository)
	suite.mockAccountSvc = new(MockAccountReaderSvc)
	suite.now = time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	suite.service = services.NewReportingService(
		suite.mockRepo,
		suite.mockAccountSvc,
		services.WithReportingClock(func() time.Time { return suite.now }),
	)
}

// --- Test Cases ---

func (suite *ReportingServiceTestSuite) TestTrialBalance_SignsBalancesAndSums() {
	ctx := context.Background()
	asOf := time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC)
	rows := []domain.TrialBalanceRow{
		{
			AccountID:     "COA-1",
			Code:          "1101",
			NormalBalance: domain.DebitNormal,
			TotalDebit:    decimal.NewFromInt(800),
			TotalCredit:   decimal.NewFromInt(300),
		},
		{
			AccountID:     "COA-2",
			Code:          "4101",
			NormalBalance: domain.CreditNormal,
			TotalDebit:    decimal.NewFromInt(0),
			TotalCredit:   decimal.NewFromInt(500),
		},
	}

	suite.mockRepo.On("GetTrialBalanceRows", ctx, asOf).Return(rows, nil).Once()

	report, err := suite.service.TrialBalance(ctx, asOf)

	suite.Require().NoError(err)
	suite.Require().Len(report.Accounts, 2)
	// Debit-normal account: debit minus credit.
	suite.True(report.Accounts[0].Balance.Equal(decimal.NewFromInt(500)))
	// Credit-normal account: credit minus debit.
	suite.True(report.Accounts[1].Balance.Equal(decimal.NewFromInt(500)))
	suite.True(report.Summary.TotalDebits.Equal(decimal.NewFromInt(800)))
	suite.True(report.Summary.TotalCredits.Equal(decimal.NewFromInt(800)))
	suite.True(report.Summary.Difference.IsZero())
	suite.True(report.Summary.IsBalanced)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_UnbalancedLedgerFlagged() {
	ctx := context.Background()
	asOf := time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC)
	rows := []domain.TrialBalanceRow{
		{
			AccountID:     "COA-1",
			NormalBalance: domain.DebitNormal,
			TotalDebit:    decimal.NewFromInt(100),
			TotalCredit:   decimal.Zero,
		},
	}

	suite.mockRepo.On("GetTrialBalanceRows", ctx, asOf).Return(rows, nil).Once()

	report, err := suite.service.TrialBalance(ctx, asOf)

	suite.Require().NoError(err)
	suite.False(report.Summary.IsBalanced)
	suite.True(report.Summary.Difference.Equal(decimal.NewFromInt(100)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestDashboardOverview_ComputesMargin() {
	ctx := context.Background()

	revenue := &domain.RevenueSummary{
		TotalRevenue: decimal.NewFromInt(3000),
		InvoiceCount: 4,
		ByBank:       []domain.BankAmount{{BankName: "BCA", Amount: decimal.NewFromInt(3000), TransactionCount: 4}},
	}
	expenses := &domain.ExpenseSummary{
		TotalExpenses: decimal.NewFromInt(1000),
		CostCount:     7,
	}
	cash := &domain.CashBalances{
		TotalBalance: decimal.NewFromInt(1234),
		AccountCount: 2,
	}

	suite.mockRepo.On("GetRevenueSummary", ctx, mock.AnythingOfType("repositories.DateRange")).Return(revenue, nil).Once()
	suite.mockRepo.On("GetExpenseSummary", ctx, mock.AnythingOfType("repositories.DateRange")).Return(expenses, nil).Once()
	suite.mockAccountSvc.On("ListCashAccounts", ctx).Return(cash, nil).Once()

	overview, err := suite.service.DashboardOverview(ctx, nil, nil)

	suite.Require().NoError(err)
	suite.True(overview.NetProfit.Equal(decimal.NewFromInt(2000)))
	// 2000 / 3000 * 100 rounded to 2dp.
	suite.True(overview.ProfitMargin.Equal(decimal.NewFromFloat(66.67)))
	suite.True(overview.TotalCash.Equal(decimal.NewFromInt(1234)))
	suite.Len(overview.RevenueByBank, 1)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockAccountSvc.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestDashboardOverview_ZeroRevenueZeroMargin() {
	ctx := context.Background()

	suite.mockRepo.On("GetRevenueSummary", ctx, mock.Anything).
		Return(&domain.RevenueSummary{TotalRevenue: decimal.Zero}, nil).Once()
	suite.mockRepo.On("GetExpenseSummary", ctx, mock.Anything).
		Return(&domain.ExpenseSummary{TotalExpenses: decimal.NewFromInt(200)}, nil).Once()
	suite.mockAccountSvc.On("ListCashAccounts", ctx).
		Return(&domain.CashBalances{TotalBalance: decimal.Zero}, nil).Once()

	overview, err := suite.service.DashboardOverview(ctx, nil, nil)

	suite.Require().NoError(err)
	suite.True(overview.ProfitMargin.IsZero())
	suite.True(overview.NetProfit.Equal(decimal.NewFromInt(-200)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestDashboardOverview_InvertedRangeRejected() {
	ctx := context.Background()
	start := time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	overview, err := suite.service.DashboardOverview(ctx, &start, &end)

	suite.Require().Error(err)
	suite.Nil(overview)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "GetRevenueSummary", mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestIncomeStatement_MarginsAndIdentities() {
	ctx := context.Background()
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	suite.mockRepo.On("GetRevenueSummary", ctx, mock.Anything).
		Return(&domain.RevenueSummary{TotalRevenue: decimal.NewFromInt(10000)}, nil).Once()
	suite.mockRepo.On("GetExpenseSummary", ctx, mock.Anything).
		Return(&domain.ExpenseSummary{TotalExpenses: decimal.NewFromInt(6500)}, nil).Once()

	statement, err := suite.service.IncomeStatement(ctx, &start, &end)

	suite.Require().NoError(err)
	suite.True(statement.GrossProfit.Equal(decimal.NewFromInt(3500)))
	suite.True(statement.GrossMargin.Equal(decimal.NewFromFloat(35)))
	// No COGS split and no interest/tax layer: both collapse to gross profit.
	suite.True(statement.NetIncome.Equal(statement.GrossProfit))
	suite.True(statement.EBITDA.Equal(statement.GrossProfit))
	suite.Equal(start, statement.Period.StartDate)
	suite.Equal(end, statement.Period.EndDate)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestCashFlowStatement_OperatingOnly() {
	ctx := context.Background()
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	suite.mockRepo.On("GetRevenueSummary", ctx, mock.Anything).
		Return(&domain.RevenueSummary{TotalRevenue: decimal.NewFromInt(4000)}, nil).Once()
	suite.mockRepo.On("GetExpenseSummary", ctx, mock.Anything).
		Return(&domain.ExpenseSummary{TotalExpenses: decimal.NewFromInt(2500)}, nil).Once()
	suite.mockAccountSvc.On("ListCashAccounts", ctx).
		Return(&domain.CashBalances{TotalBalance: decimal.NewFromInt(900)}, nil).Once()

	statement, err := suite.service.CashFlowStatement(ctx, &start, &end)

	suite.Require().NoError(err)
	suite.True(statement.OperatingActivities.CashFromCustomers.Equal(decimal.NewFromInt(4000)))
	suite.True(statement.OperatingActivities.CashToSuppliers.Equal(decimal.NewFromInt(-2500)))
	suite.True(statement.OperatingActivities.NetOperatingCash.Equal(decimal.NewFromInt(1500)))
	suite.True(statement.NetCashFlow.Equal(decimal.NewFromInt(1500)))
	suite.True(statement.CurrentBalance.Equal(decimal.NewFromInt(900)))
	suite.True(statement.InvestingActivities.NetInvestingCash.IsZero())
	suite.True(statement.FinancingActivities.NetFinancingCash.IsZero())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestIncomeStatement_MissingDatesRejected() {
	ctx := context.Background()
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	statement, err := suite.service.IncomeStatement(ctx, nil, &end)

	suite.Require().Error(err)
	suite.Nil(statement)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "GetRevenueSummary", mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestCashFlowStatement_MissingDatesRejected() {
	ctx := context.Background()

	statement, err := suite.service.CashFlowStatement(ctx, nil, nil)

	suite.Require().Error(err)
	suite.Nil(statement)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "GetRevenueSummary", mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_AssetsEqualEquity() {
	ctx := context.Background()

	suite.mockAccountSvc.On("ListCashAccounts", ctx).
		Return(&domain.CashBalances{TotalBalance: decimal.NewFromInt(7000)}, nil).Once()
	suite.mockRepo.On("GetReceivables", ctx).Return(decimal.NewFromInt(3000), nil).Once()

	sheet, err := suite.service.BalanceSheet(ctx, nil)

	suite.Require().NoError(err)
	suite.Equal(suite.now, sheet.AsOfDate)
	suite.True(sheet.Assets.CurrentAssets.CashAndBank.Equal(decimal.NewFromInt(7000)))
	suite.True(sheet.Assets.CurrentAssets.AccountsReceivable.Equal(decimal.NewFromInt(3000)))
	suite.True(sheet.Assets.TotalAssets.Equal(decimal.NewFromInt(10000)))
	suite.True(sheet.Equity.TotalEquity.Equal(sheet.Assets.TotalAssets))
	suite.True(sheet.Liabilities.TotalLiabilities.IsZero())
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockAccountSvc.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_EchoesRequestedDate() {
	ctx := context.Background()
	asOf := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	suite.mockAccountSvc.On("ListCashAccounts", ctx).
		Return(&domain.CashBalances{TotalBalance: decimal.NewFromInt(1000)}, nil).Once()
	suite.mockRepo.On("GetReceivables", ctx).Return(decimal.Zero, nil).Once()

	sheet, err := suite.service.BalanceSheet(ctx, &asOf)

	suite.Require().NoError(err)
	suite.Equal(asOf, sheet.AsOfDate)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
