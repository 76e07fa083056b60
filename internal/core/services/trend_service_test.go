package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/nusantara-construction/ledger-backend/internal/apperrors"
	"github.com/nusantara-construction/ledger-backend/internal/core/domain"
	portsrepo "github.com/nusantara-construction/ledger-backend/internal/core/ports/repositories"
	portssvc "github.com/nusantara-construction/ledger-backend/internal/core/ports/services"
	"github.com/nusantara-construction/ledger-backend/internal/core/services"
)

type TrendServiceTestSuite struct {
	suite.Suite
	mockRepo *MockReportingRepository
	service  portssvc.TrendService
}

func (suite *TrendServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockReportingRepository)
	suite.service = services.NewTrendService(suite.mockRepo)
}

func (suite *TrendServiceTestSuite) TestTrends_MergesRevenueAndExpenseBuckets() {
	ctx := context.Background()

	revenue := []portsrepo.TrendBucket{
		{Period: "2025-01", Year: 2025, Month: 1, Amount: decimal.NewFromInt(1000), Count: 2},
		{Period: "2025-03", Year: 2025, Month: 3, Amount: decimal.NewFromInt(3000), Count: 1},
	}
	expense := []portsrepo.TrendBucket{
		{Period: "2025-01", Year: 2025, Month: 1, Amount: decimal.NewFromInt(400), Count: 5},
		{Period: "2025-02", Year: 2025, Month: 2, Amount: decimal.NewFromInt(600), Count: 3},
	}

	suite.mockRepo.On("GetRevenueTrend", ctx, domain.Monthly, mock.AnythingOfType("repositories.DateRange")).Return(revenue, nil).Once()
	suite.mockRepo.On("GetExpenseTrend", ctx, domain.Monthly, mock.AnythingOfType("repositories.DateRange")).Return(expense, nil).Once()

	report, err := suite.service.Trends(ctx, domain.Monthly, nil, nil)

	suite.Require().NoError(err)
	suite.Equal(3, report.DataPoints)
	suite.Require().Len(report.Trends, 3)

	// Chronological order with one-sided periods present on both sides.
	suite.Equal("2025-01", report.Trends[0].Period)
	suite.True(report.Trends[0].Revenue.Equal(decimal.NewFromInt(1000)))
	suite.True(report.Trends[0].Expense.Equal(decimal.NewFromInt(400)))
	suite.True(report.Trends[0].Profit.Equal(decimal.NewFromInt(600)))
	suite.Equal("January", report.Trends[0].MonthName)
	suite.Equal("Jan 2025", report.Trends[0].DisplayLabel)

	suite.Equal("2025-02", report.Trends[1].Period)
	suite.True(report.Trends[1].Revenue.IsZero())
	suite.True(report.Trends[1].Expense.Equal(decimal.NewFromInt(600)))
	suite.True(report.Trends[1].Profit.Equal(decimal.NewFromInt(-600)))

	suite.Equal("2025-03", report.Trends[2].Period)
	suite.True(report.Trends[2].Expense.IsZero())

	suite.True(report.Summary.TotalRevenue.Equal(decimal.NewFromInt(4000)))
	suite.True(report.Summary.TotalExpense.Equal(decimal.NewFromInt(1000)))
	suite.True(report.Summary.TotalProfit.Equal(decimal.NewFromInt(3000)))
	suite.True(report.Summary.AverageRevenue.Equal(decimal.NewFromFloat(1333.33)))
	suite.True(report.Summary.AverageExpense.Equal(decimal.NewFromFloat(333.33)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TrendServiceTestSuite) TestTrends_QuarterlyLabelsAndBucketMonths() {
	ctx := context.Background()

	revenue := []portsrepo.TrendBucket{
		{Period: "2025-Q2", Year: 2025, Month: 2, Amount: decimal.NewFromInt(500), Count: 1},
	}

	suite.mockRepo.On("GetRevenueTrend", ctx, domain.Quarterly, mock.Anything).Return(revenue, nil).Once()
	suite.mockRepo.On("GetExpenseTrend", ctx, domain.Quarterly, mock.Anything).Return([]portsrepo.TrendBucket{}, nil).Once()

	report, err := suite.service.Trends(ctx, domain.Quarterly, nil, nil)

	suite.Require().NoError(err)
	suite.Require().Len(report.Trends, 1)
	// Quarter 2 starts in April.
	suite.Equal(4, report.Trends[0].Month)
	suite.Equal("April", report.Trends[0].MonthName)
	suite.Equal("Q2 2025", report.Trends[0].DisplayLabel)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TrendServiceTestSuite) TestTrends_YearlyLabels() {
	ctx := context.Background()

	expense := []portsrepo.TrendBucket{
		{Period: "2024", Year: 2024, Month: 0, Amount: decimal.NewFromInt(900), Count: 9},
	}

	suite.mockRepo.On("GetRevenueTrend", ctx, domain.Yearly, mock.Anything).Return([]portsrepo.TrendBucket{}, nil).Once()
	suite.mockRepo.On("GetExpenseTrend", ctx, domain.Yearly, mock.Anything).Return(expense, nil).Once()

	report, err := suite.service.Trends(ctx, domain.Yearly, nil, nil)

	suite.Require().NoError(err)
	suite.Require().Len(report.Trends, 1)
	suite.Equal(1, report.Trends[0].Month)
	suite.Equal("2024", report.Trends[0].DisplayLabel)
	suite.True(report.Trends[0].Revenue.IsZero())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TrendServiceTestSuite) TestTrends_InvalidPeriodType() {
	ctx := context.Background()

	report, err := suite.service.Trends(ctx, domain.PeriodType("weekly"), nil, nil)

	suite.Require().Error(err)
	suite.Nil(report)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "GetRevenueTrend", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TrendServiceTestSuite) TestTrends_EmptySeries() {
	ctx := context.Background()

	suite.mockRepo.On("GetRevenueTrend", ctx, domain.Monthly, mock.Anything).Return([]portsrepo.TrendBucket{}, nil).Once()
	suite.mockRepo.On("GetExpenseTrend", ctx, domain.Monthly, mock.Anything).Return([]portsrepo.TrendBucket{}, nil).Once()

	report, err := suite.service.Trends(ctx, domain.Monthly, nil, nil)

	suite.Require().NoError(err)
	suite.Equal(0, report.DataPoints)
	suite.Empty(report.Trends)
	suite.True(report.Summary.AverageRevenue.IsZero())
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestTrendServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TrendServiceTestSuite))
}
