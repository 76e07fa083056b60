package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nusantara-construction/ledger-backend/internal/core/domain"
)

// DateLayout is the wire format for entry and report dates.
const DateLayout = "2006-01-02"

// CreateEntryLineRequest is one line of a new journal entry. Exactly one of
// debit_amount / credit_amount must be positive.
type CreateEntryLineRequest struct {
	AccountID    string          `json:"account_id" binding:"required"`
	DebitAmount  decimal.Decimal `json:"debit_amount"`
	CreditAmount decimal.Decimal `json:"credit_amount"`
	Description  string          `json:"description"`
	ProjectID    string          `json:"project_id"`
	CostCenter   string          `json:"cost_center"`
	Department   string          `json:"department"`
	TaxAmount    decimal.Decimal `json:"tax_amount"`
	TaxType      string          `json:"tax_type"`
}

// CreateJournalEntryRequest is the payload for creating a draft entry with
// its lines in one atomic operation.
type CreateJournalEntryRequest struct {
	EntryDate       string                   `json:"entry_date" binding:"required"`
	EntryType       string                   `json:"entry_type"`
	Description     string                   `json:"description" binding:"required"`
	ReferenceType   string                   `json:"reference_type"`
	ReferenceNumber string                   `json:"reference_number"`
	ProjectID       string                   `json:"project_id"`
	SubsidiaryID    string                   `json:"subsidiary_id"`
	Lines           []CreateEntryLineRequest `json:"lines" binding:"required"`
	CreatedBy       string                   `json:"created_by"`
}

// PostEntryRequest identifies who finalizes a draft entry.
type PostEntryRequest struct {
	PostedBy string `json:"posted_by"`
}

// ListJournalEntriesParams are the query filters for entry listings.
type ListJournalEntriesParams struct {
	Page      int    `form:"page,default=1"`
	Limit     int    `form:"limit,default=20"`
	Status    string `form:"status"`
	EntryType string `form:"entry_type"`
	ProjectID string `form:"project_id"`
	FromDate  string `form:"from_date"`
	ToDate    string `form:"to_date"`
	Search    string `form:"search"`
}

// EntryLineResponse is the wire representation of a journal entry line.
type EntryLineResponse struct {
	ID           string              `json:"id"`
	AccountID    string              `json:"account_id"`
	LineNumber   int                 `json:"line_number"`
	Description  string              `json:"description"`
	DebitAmount  decimal.Decimal     `json:"debit_amount"`
	CreditAmount decimal.Decimal     `json:"credit_amount"`
	ProjectID    string              `json:"project_id,omitempty"`
	CostCenter   string              `json:"cost_center,omitempty"`
	Department   string              `json:"department,omitempty"`
	TaxAmount    decimal.Decimal     `json:"tax_amount"`
	TaxType      string              `json:"tax_type,omitempty"`
	Account      *LineAccountSummary `json:"account,omitempty"`
}

// LineAccountSummary is the account slice resolved onto a returned line.
type LineAccountSummary struct {
	ID            string `json:"id"`
	Code          string `json:"account_code"`
	Name          string `json:"account_name"`
	AccountType   string `json:"account_type"`
	NormalBalance string `json:"normal_balance"`
}

// JournalEntryResponse is the wire representation of a journal entry.
type JournalEntryResponse struct {
	ID              string              `json:"id"`
	EntryNumber     string              `json:"entry_number"`
	EntryDate       string              `json:"entry_date"`
	EntryType       string              `json:"entry_type"`
	Description     string              `json:"description"`
	ReferenceType   string              `json:"reference_type,omitempty"`
	ReferenceNumber string              `json:"reference_number,omitempty"`
	ProjectID       string              `json:"project_id,omitempty"`
	SubsidiaryID    string              `json:"subsidiary_id,omitempty"`
	TotalDebit      decimal.Decimal     `json:"total_debit"`
	TotalCredit     decimal.Decimal     `json:"total_credit"`
	IsBalanced      bool                `json:"is_balanced"`
	Status          string              `json:"status"`
	CreatedBy       string              `json:"created_by,omitempty"`
	PostedBy        string              `json:"posted_by,omitempty"`
	PostedAt        *time.Time          `json:"posted_at,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	Lines           []EntryLineResponse `json:"lines,omitempty"`
}

// Pagination is the offset/limit pagination block of list responses.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// ListJournalEntriesResponse pairs a page of entries with its pagination block.
type ListJournalEntriesResponse struct {
	Entries    []JournalEntryResponse `json:"data"`
	Pagination Pagination             `json:"pagination"`
}

// ToEntryLineResponse converts a domain line to its wire representation.
func ToEntryLineResponse(line *domain.JournalEntryLine) EntryLineResponse {
	resp := EntryLineResponse{
		ID:           line.LineID,
		AccountID:    line.AccountID,
		LineNumber:   line.LineNumber,
		Description:  line.Description,
		DebitAmount:  line.DebitAmount,
		CreditAmount: line.CreditAmount,
		ProjectID:    line.ProjectID,
		CostCenter:   line.CostCenter,
		Department:   line.Department,
		TaxAmount:    line.TaxAmount,
		TaxType:      line.TaxType,
	}
	if line.Account != nil {
		resp.Account = &LineAccountSummary{
			ID:            line.Account.AccountID,
			Code:          line.Account.Code,
			Name:          line.Account.Name,
			AccountType:   string(line.Account.AccountType),
			NormalBalance: string(line.Account.NormalBalance),
		}
	}
	return resp
}

// ToJournalEntryResponse converts a domain entry (with any loaded lines).
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		ID:              e.EntryID,
		EntryNumber:     e.EntryNumber,
		EntryDate:       e.EntryDate.Format(DateLayout),
		EntryType:       e.EntryType,
		Description:     e.Description,
		ReferenceType:   e.ReferenceType,
		ReferenceNumber: e.ReferenceNumber,
		ProjectID:       e.ProjectID,
		SubsidiaryID:    e.SubsidiaryID,
		TotalDebit:      e.TotalDebit,
		TotalCredit:     e.TotalCredit,
		IsBalanced:      e.IsBalanced,
		Status:          string(e.Status),
		CreatedBy:       e.CreatedBy,
		PostedBy:        e.PostedBy,
		PostedAt:        e.PostedAt,
		CreatedAt:       e.CreatedAt,
	}
	if len(e.Lines) > 0 {
		resp.Lines = make([]EntryLineResponse, len(e.Lines))
		for i := range e.Lines {
			resp.Lines[i] = ToEntryLineResponse(&e.Lines[i])
		}
	}
	return resp
}

// ToJournalEntryResponses converts a slice of domain entries.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	responses := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToJournalEntryResponse(&entries[i])
	}
	return responses
}
