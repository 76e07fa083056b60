package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// NormalBalance defines whether an account's natural increase is a debit or a credit.
type NormalBalance string

const (
	DebitNormal  NormalBalance = "DEBIT"
	CreditNormal NormalBalance = "CREDIT"
)

// MaxAccountLevel is the deepest level the chart of accounts supports.
// Level 1 accounts are roots; level 4 accounts are detail leaves.
const MaxAccountLevel = 4

// SubTypeCashAndBank marks cash and bank detail accounts, the source of
// dashboard cash balances.
const SubTypeCashAndBank = "CASH_AND_BANK"

// Account is a node in the chart of accounts tree. The tree is stored flat:
// ParentAccountID is a foreign key, never a live object reference, and
// hierarchy views are derived indexes built on demand.
type Account struct {
	AccountID            string          `json:"accountID"` // COA-<sequence>
	Code                 string          `json:"code"`      // dotted numeric, unique among active accounts
	Name                 string          `json:"name"`
	AccountType          AccountType     `json:"accountType"`
	SubType              string          `json:"subType"` // free-form classification, e.g. CASH_AND_BANK
	NormalBalance        NormalBalance   `json:"normalBalance"`
	Level                int             `json:"level"`           // 1..4, parent.Level+1
	ParentAccountID      string          `json:"parentAccountID"` // empty for roots
	IsActive             bool            `json:"isActive"`
	IsControlAccount     bool            `json:"isControlAccount"`
	ConstructionSpecific bool            `json:"constructionSpecific"`
	ProjectCostCenter    bool            `json:"projectCostCenter"`
	CurrentBalance       decimal.Decimal `json:"currentBalance"` // cached display balance
	SubsidiaryID         string          `json:"subsidiaryID"`   // optional multi-entity partition
	Description          string          `json:"description"`
	AuditFields
}

// AccountNode is an account with its active children populated, as returned
// by the hierarchy view.
type AccountNode struct {
	Account
	Children []*AccountNode `json:"children"`
}

// AccountTypeCount is one row of the accounts-by-type summary.
type AccountTypeCount struct {
	AccountType AccountType `json:"accountType"`
	Count       int         `json:"count"`
}

// DefaultNormalBalance returns the conventional normal balance for an account type.
func DefaultNormalBalance(t AccountType) NormalBalance {
	switch t {
	case Asset, Expense:
		return DebitNormal
	default:
		return CreditNormal
	}
}
