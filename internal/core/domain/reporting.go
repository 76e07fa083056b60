package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow is one account's activity in a trial balance report.
type TrialBalanceRow struct {
	AccountID     string          `json:"accountID"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	AccountType   AccountType     `json:"accountType"`
	NormalBalance NormalBalance   `json:"normalBalance"`
	TotalDebit    decimal.Decimal `json:"totalDebit"`
	TotalCredit   decimal.Decimal `json:"totalCredit"`
	Balance       decimal.Decimal `json:"balance"` // signed per normal balance
}

// TrialBalanceSummary is the whole-ledger closure check attached to a trial balance.
type TrialBalanceSummary struct {
	TotalDebits  decimal.Decimal `json:"totalDebits"`
	TotalCredits decimal.Decimal `json:"totalCredits"`
	Difference   decimal.Decimal `json:"difference"`
	IsBalanced   bool            `json:"isBalanced"`
}

// TrialBalanceReport lists every account with non-zero posted activity as of a date.
type TrialBalanceReport struct {
	AsOfDate time.Time           `json:"asOfDate"`
	Accounts []TrialBalanceRow   `json:"accounts"`
	Summary  TrialBalanceSummary `json:"summary"`
}

// BankAmount is a revenue breakdown row keyed by receiving bank.
type BankAmount struct {
	BankName         string          `json:"bankName"`
	Amount           decimal.Decimal `json:"amount"`
	TransactionCount int             `json:"transactionCount"`
}

// CategoryAmount is an expense breakdown row keyed by cost category.
type CategoryAmount struct {
	Category         string          `json:"category"`
	Amount           decimal.Decimal `json:"amount"`
	TransactionCount int             `json:"transactionCount"`
}

// AccountAmount is an expense breakdown row keyed by the linked ledger account.
type AccountAmount struct {
	Code             string          `json:"code"`
	Name             string          `json:"name"`
	Amount           decimal.Decimal `json:"amount"`
	TransactionCount int             `json:"transactionCount"`
}

// RevenueSummary aggregates paid-invoice facts from the invoice sub-ledger.
type RevenueSummary struct {
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	InvoiceCount int             `json:"invoiceCount"`
	ByBank       []BankAmount    `json:"byBank"`
}

// ExpenseSummary aggregates approved/paid milestone costs from the cost sub-ledger.
type ExpenseSummary struct {
	TotalExpenses decimal.Decimal  `json:"totalExpenses"`
	CostCount     int              `json:"costCount"`
	ByCategory    []CategoryAmount `json:"byCategory"`
	ByAccount     []AccountAmount  `json:"byAccount"`
}

// CashAccount is an active CASH_AND_BANK detail account with its cached balance.
type CashAccount struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	SubType   string          `json:"subType"`
	Balance   decimal.Decimal `json:"balance"`
}

// CashBalances is the set of cash accounts plus their sum.
type CashBalances struct {
	TotalBalance decimal.Decimal `json:"totalBalance"`
	AccountCount int             `json:"accountCount"`
	Accounts     []CashAccount   `json:"accounts"`
}

// ReportPeriod is the inclusive date range a statement covers.
type ReportPeriod struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// IncomeStatement is derived from sub-ledger facts: paid invoices as revenue,
// approved/paid milestone costs as expenses.
type IncomeStatement struct {
	Period      ReportPeriod    `json:"period"`
	Revenue     RevenueSummary  `json:"revenue"`
	Expenses    ExpenseSummary  `json:"expenses"`
	GrossProfit decimal.Decimal `json:"grossProfit"`
	GrossMargin decimal.Decimal `json:"grossMargin"` // percent, 0 when revenue is 0
	NetIncome   decimal.Decimal `json:"netIncome"`
	EBITDA      decimal.Decimal `json:"ebitda"` // no interest/tax/depreciation layer yet
}

// OperatingActivities is the operating section of a cash flow statement.
type OperatingActivities struct {
	CashFromCustomers decimal.Decimal `json:"cashFromCustomers"`
	CashToSuppliers   decimal.Decimal `json:"cashToSuppliers"` // negative outflow
	NetOperatingCash  decimal.Decimal `json:"netOperatingCash"`
}

// InvestingActivities is a placeholder: no capex sub-ledger is wired in yet.
type InvestingActivities struct {
	EquipmentPurchases decimal.Decimal `json:"equipmentPurchases"`
	NetInvestingCash   decimal.Decimal `json:"netInvestingCash"`
}

// FinancingActivities is a placeholder: no financing sub-ledger is wired in yet.
type FinancingActivities struct {
	CapitalContributions decimal.Decimal `json:"capitalContributions"`
	Dividends            decimal.Decimal `json:"dividends"`
	NetFinancingCash     decimal.Decimal `json:"netFinancingCash"`
}

// CashFlowStatement is the cash-flow proxy built from sub-ledger facts.
type CashFlowStatement struct {
	Period              ReportPeriod        `json:"period"`
	OperatingActivities OperatingActivities `json:"operatingActivities"`
	InvestingActivities InvestingActivities `json:"investingActivities"`
	FinancingActivities FinancingActivities `json:"financingActivities"`
	NetCashFlow         decimal.Decimal     `json:"netCashFlow"`
	CurrentBalance      decimal.Decimal     `json:"currentBalance"`
}

// CurrentAssets is the current-asset section of the balance sheet.
type CurrentAssets struct {
	CashAndBank        decimal.Decimal `json:"cashAndBank"`
	AccountsReceivable decimal.Decimal `json:"accountsReceivable"`
	TotalCurrentAssets decimal.Decimal `json:"totalCurrentAssets"`
}

// FixedAssets is intentionally zero: asset depreciation lives in an external collaborator.
type FixedAssets struct {
	Equipment        decimal.Decimal `json:"equipment"`
	TotalFixedAssets decimal.Decimal `json:"totalFixedAssets"`
}

// BalanceSheetAssets groups the asset side of the balance sheet.
type BalanceSheetAssets struct {
	CurrentAssets CurrentAssets   `json:"currentAssets"`
	FixedAssets   FixedAssets     `json:"fixedAssets"`
	TotalAssets   decimal.Decimal `json:"totalAssets"`
}

// BalanceSheetLiabilities is all zeros: no payables sub-ledger is wired in.
type BalanceSheetLiabilities struct {
	AccountsPayable  decimal.Decimal `json:"accountsPayable"`
	Loans            decimal.Decimal `json:"loans"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
}

// BalanceSheetEquity forces capital to equal total assets; a placeholder, not
// real equity tracking.
type BalanceSheetEquity struct {
	Capital          decimal.Decimal `json:"capital"`
	RetainedEarnings decimal.Decimal `json:"retainedEarnings"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
}

// BalanceSheet is the asset/receivable snapshot as of a date.
type BalanceSheet struct {
	AsOfDate    time.Time               `json:"asOfDate"`
	Assets      BalanceSheetAssets      `json:"assets"`
	Liabilities BalanceSheetLiabilities `json:"liabilities"`
	Equity      BalanceSheetEquity      `json:"equity"`
}

// DashboardOverview is the combined top-of-dashboard snapshot.
type DashboardOverview struct {
	TotalRevenue      decimal.Decimal  `json:"totalRevenue"`
	TotalExpenses     decimal.Decimal  `json:"totalExpenses"`
	NetProfit         decimal.Decimal  `json:"netProfit"`
	ProfitMargin      decimal.Decimal  `json:"profitMargin"` // percent, 2dp
	TotalCash         decimal.Decimal  `json:"totalCash"`
	RevenueByBank     []BankAmount     `json:"revenueByBank"`
	ExpenseByCategory []CategoryAmount `json:"expenseByCategory"`
	ExpenseByAccount  []AccountAmount  `json:"expenseByAccount"`
	CashAccounts      []CashAccount    `json:"cashAccounts"`
}
