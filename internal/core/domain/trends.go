package domain

import "github.com/shopspring/decimal"

// PeriodType selects the bucket width for trend aggregation.
type PeriodType string

const (
	Monthly   PeriodType = "monthly"
	Quarterly PeriodType = "quarterly"
	Yearly    PeriodType = "yearly"
)

// Valid reports whether p is one of the supported period types.
func (p PeriodType) Valid() bool {
	switch p {
	case Monthly, Quarterly, Yearly:
		return true
	}
	return false
}

// TrendPoint is one time bucket of merged revenue/expense activity. A period
// with revenue but no expense (or vice versa) still appears, with the missing
// side at zero.
type TrendPoint struct {
	Period       string          `json:"period"` // bucket key, e.g. 2025-01, 2025-Q1, 2025
	Year         int             `json:"year"`
	Month        int             `json:"month"` // first month of the bucket
	Revenue      decimal.Decimal `json:"revenue"`
	Expense      decimal.Decimal `json:"expense"`
	Profit       decimal.Decimal `json:"profit"`
	MonthName    string          `json:"monthName"`
	DisplayLabel string          `json:"displayLabel"` // "Jan 2025", "Q1 2025" or "2025"
}

// TrendSummary totals and averages the buckets of a trend report.
type TrendSummary struct {
	TotalRevenue   decimal.Decimal `json:"totalRevenue"`
	TotalExpense   decimal.Decimal `json:"totalExpense"`
	TotalProfit    decimal.Decimal `json:"totalProfit"`
	AverageRevenue decimal.Decimal `json:"averageRevenue"`
	AverageExpense decimal.Decimal `json:"averageExpense"`
}

// TrendReport is the chronologically sorted bucket series plus its summary.
type TrendReport struct {
	Trends     []TrendPoint `json:"trends"`
	PeriodType PeriodType   `json:"periodType"`
	DataPoints int          `json:"dataPoints"`
	Summary    TrendSummary `json:"summary"`
}
