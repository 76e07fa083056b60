package models

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

// Account is a chart_of_accounts row.
// Note: ParentAccountID uses string for nullable foreign key; empty means root.
type Account struct {
	AccountID            string          `db:"id"`
	Code                 string          `db:"account_code"`
	Name                 string          `db:"account_name"`
	AccountType          AccountType     `db:"account_type"`
	SubType              string          `db:"account_sub_type"`
	NormalBalance        string          `db:"normal_balance"`
	Level                int             `db:"level"`
	ParentAccountID      string          `db:"parent_account_id"` // Nullable
	IsActive             bool            `db:"is_active"`
	IsControlAccount     bool            `db:"is_control_account"`
	ConstructionSpecific bool            `db:"construction_specific"`
	ProjectCostCenter    bool            `db:"project_cost_center"`
	CurrentBalance       decimal.Decimal `db:"current_balance"`
	SubsidiaryID         string          `db:"subsidiary_id"` // Nullable
	Description          string          `db:"description"`   // Nullable
	AuditFields
}
