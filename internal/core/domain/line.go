package domain

import "github.com/shopspring/decimal"

// AccountRef is the slice of account data resolved onto a line when an entry
// is read back, enough for display without a second lookup.
type AccountRef struct {
	AccountID     string        `json:"accountID"`
	Code          string        `json:"code"`
	Name          string        `json:"name"`
	AccountType   AccountType   `json:"accountType"`
	NormalBalance NormalBalance `json:"normalBalance"`
}

// JournalEntryLine is a single line within a journal entry, affecting one
// account. Lines are owned exclusively by their entry: they are created with
// it and cascade-deleted with it.
type JournalEntryLine struct {
	LineID       string          `json:"lineID"` // Primary key (UUID)
	EntryID      string          `json:"entryID"`
	AccountID    string          `json:"accountID"`
	LineNumber   int             `json:"lineNumber"` // 1-based position within the entry
	Description  string          `json:"description"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	ProjectID    string          `json:"projectID"`
	CostCenter   string          `json:"costCenter"`
	Department   string          `json:"department"`
	TaxAmount    decimal.Decimal `json:"taxAmount"`
	TaxType      string          `json:"taxType"`
	Account      *AccountRef     `json:"account,omitempty"` // populated on read
}
