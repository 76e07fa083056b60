package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nusantara-construction/ledger-backend/internal/core/domain"
)

// DateRangeParams are the optional date-range query parameters shared by the
// dashboard read endpoints.
type DateRangeParams struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

// TrendParams selects the bucket width for the trends endpoint.
type TrendParams struct {
	DateRangeParams
	PeriodType string `form:"period_type,default=monthly"`
}

// TrialBalanceRowResponse is one account row of the trial balance report.
type TrialBalanceRowResponse struct {
	AccountCode   string          `json:"account_code"`
	AccountName   string          `json:"account_name"`
	AccountType   string          `json:"account_type"`
	NormalBalance string          `json:"normal_balance"`
	TotalDebit    decimal.Decimal `json:"total_debit"`
	TotalCredit   decimal.Decimal `json:"total_credit"`
	Balance       decimal.Decimal `json:"balance"`
}

// TrialBalanceSummaryResponse is the whole-ledger closure check.
type TrialBalanceSummaryResponse struct {
	TotalDebits  decimal.Decimal `json:"total_debits"`
	TotalCredits decimal.Decimal `json:"total_credits"`
	IsBalanced   bool            `json:"is_balanced"`
}

// TrialBalanceResponse is the trial balance report payload.
type TrialBalanceResponse struct {
	AsOfDate string                      `json:"as_of_date"`
	Accounts []TrialBalanceRowResponse   `json:"accounts"`
	Summary  TrialBalanceSummaryResponse `json:"summary"`
}

// ToTrialBalanceResponse converts a domain trial balance report.
func ToTrialBalanceResponse(report *domain.TrialBalanceReport) TrialBalanceResponse {
	resp := TrialBalanceResponse{
		AsOfDate: report.AsOfDate.Format(DateLayout),
		Accounts: make([]TrialBalanceRowResponse, len(report.Accounts)),
		Summary: TrialBalanceSummaryResponse{
			TotalDebits:  report.Summary.TotalDebits,
			TotalCredits: report.Summary.TotalCredits,
			IsBalanced:   report.Summary.IsBalanced,
		},
	}
	for i, row := range report.Accounts {
		resp.Accounts[i] = TrialBalanceRowResponse{
			AccountCode:   row.Code,
			AccountName:   row.Name,
			AccountType:   string(row.AccountType),
			NormalBalance: string(row.NormalBalance),
			TotalDebit:    row.TotalDebit,
			TotalCredit:   row.TotalCredit,
			Balance:       row.Balance,
		}
	}
	return resp
}

// ParseDateRange parses the optional start/end query parameters. A nil
// pointer means that side of the range is open.
func (p DateRangeParams) ParseDateRange() (*time.Time, *time.Time, error) {
	var start, end *time.Time
	if p.StartDate != "" {
		t, err := time.Parse(DateLayout, p.StartDate)
		if err != nil {
			return nil, nil, err
		}
		start = &t
	}
	if p.EndDate != "" {
		t, err := time.Parse(DateLayout, p.EndDate)
		if err != nil {
			return nil, nil, err
		}
		end = &t
	}
	return start, end, nil
}
