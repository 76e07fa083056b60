package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nusantara-construction/ledger-backend/internal/core/domain"
)

// CreateAccountRequest is the payload for registering a chart-of-accounts entry.
// account_code is required: all lookups and orderings key off it.
type CreateAccountRequest struct {
	Code                 string  `json:"account_code" binding:"required"`
	Name                 string  `json:"account_name" binding:"required"`
	AccountType          string  `json:"account_type" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	SubType              string  `json:"account_sub_type"`
	NormalBalance        string  `json:"normal_balance" binding:"omitempty,oneof=DEBIT CREDIT"`
	ParentAccountID      *string `json:"parent_account_id"`
	ConstructionSpecific bool    `json:"construction_specific"`
	ProjectCostCenter    bool    `json:"project_cost_center"`
	SubsidiaryID         string  `json:"subsidiary_id"`
	Description          string  `json:"description"`
	CreatedBy            string  `json:"created_by"`
}

// UpdateAccountRequest carries a partial account patch. The account code is
// never updatable; level is not recomputed when parent_account_id changes.
type UpdateAccountRequest struct {
	Name                 *string `json:"account_name"`
	SubType              *string `json:"account_sub_type"`
	NormalBalance        *string `json:"normal_balance" binding:"omitempty,oneof=DEBIT CREDIT"`
	ParentAccountID      *string `json:"parent_account_id"`
	ConstructionSpecific *bool   `json:"construction_specific"`
	ProjectCostCenter    *bool   `json:"project_cost_center"`
	SubsidiaryID         *string `json:"subsidiary_id"`
	Description          *string `json:"description"`
	UpdatedBy            string  `json:"updated_by"`
}

// ListAccountsParams are the query filters for flat account listings.
type ListAccountsParams struct {
	AccountType          string `form:"account_type"`
	Level                *int   `form:"level"`
	IsActive             *bool  `form:"is_active"`
	ParentAccountID      string `form:"parent_id"`
	ConstructionSpecific *bool  `form:"construction_specific"`
	Search               string `form:"search"`
}

// HierarchyParams are the query filters for the hierarchy view.
type HierarchyParams struct {
	Level                *int   `form:"level"`
	AccountType          string `form:"account_type"`
	ConstructionSpecific *bool  `form:"construction_specific"`
}

// AccountResponse is the wire representation of an account.
type AccountResponse struct {
	ID                   string          `json:"id"`
	Code                 string          `json:"account_code"`
	Name                 string          `json:"account_name"`
	AccountType          string          `json:"account_type"`
	SubType              string          `json:"account_sub_type"`
	NormalBalance        string          `json:"normal_balance"`
	Level                int             `json:"level"`
	ParentAccountID      *string         `json:"parent_account_id"`
	IsActive             bool            `json:"is_active"`
	IsControlAccount     bool            `json:"is_control_account"`
	ConstructionSpecific bool            `json:"construction_specific"`
	ProjectCostCenter    bool            `json:"project_cost_center"`
	CurrentBalance       decimal.Decimal `json:"current_balance"`
	SubsidiaryID         string          `json:"subsidiary_id,omitempty"`
	Description          string          `json:"description,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// AccountNodeResponse is an account with its active children, for the hierarchy view.
type AccountNodeResponse struct {
	AccountResponse
	Children []AccountNodeResponse `json:"children"`
}

// AccountTypeCountResponse is one row of the accounts-by-type summary.
type AccountTypeCountResponse struct {
	AccountType string `json:"account_type"`
	Count       int    `json:"count"`
}

// CashAccountResponse is one active cash/bank detail account with its balance.
type CashAccountResponse struct {
	ID      string          `json:"id"`
	Code    string          `json:"code"`
	Name    string          `json:"name"`
	Type    string          `json:"type"`
	Balance decimal.Decimal `json:"balance"`
}

// ToAccountResponse converts a domain.Account to its wire representation.
func ToAccountResponse(a *domain.Account) AccountResponse {
	resp := AccountResponse{
		ID:                   a.AccountID,
		Code:                 a.Code,
		Name:                 a.Name,
		AccountType:          string(a.AccountType),
		SubType:              a.SubType,
		NormalBalance:        string(a.NormalBalance),
		Level:                a.Level,
		IsActive:             a.IsActive,
		IsControlAccount:     a.IsControlAccount,
		ConstructionSpecific: a.ConstructionSpecific,
		ProjectCostCenter:    a.ProjectCostCenter,
		CurrentBalance:       a.CurrentBalance,
		SubsidiaryID:         a.SubsidiaryID,
		Description:          a.Description,
		CreatedAt:            a.CreatedAt,
		UpdatedAt:            a.LastUpdatedAt,
	}
	if a.ParentAccountID != "" {
		parentID := a.ParentAccountID
		resp.ParentAccountID = &parentID
	}
	return resp
}

// ToAccountResponses converts a slice of domain accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}

// ToAccountNodeResponse converts a hierarchy node recursively.
func ToAccountNodeResponse(node *domain.AccountNode) AccountNodeResponse {
	resp := AccountNodeResponse{
		AccountResponse: ToAccountResponse(&node.Account),
		Children:        make([]AccountNodeResponse, len(node.Children)),
	}
	for i, child := range node.Children {
		resp.Children[i] = ToAccountNodeResponse(child)
	}
	return resp
}

// ToCashAccountResponses converts cash-account rows for the dashboard.
func ToCashAccountResponses(accounts []domain.CashAccount) []CashAccountResponse {
	responses := make([]CashAccountResponse, len(accounts))
	for i, acc := range accounts {
		responses[i] = CashAccountResponse{
			ID:      acc.AccountID,
			Code:    acc.Code,
			Name:    acc.Name,
			Type:    acc.SubType,
			Balance: acc.Balance,
		}
	}
	return responses
}
