package models

import (
	"github.com/shopspring/decimal"
)

// JournalEntryLine is a journal_entry_lines row. Exactly one of DebitAmount /
// CreditAmount is positive on any persisted line.
type JournalEntryLine struct {
	LineID       string          `db:"id"`
	EntryID      string          `db:"journal_entry_id"`
	AccountID    string          `db:"account_id"`
	LineNumber   int             `db:"line_number"`
	Description  string          `db:"description"`
	DebitAmount  decimal.Decimal `db:"debit_amount"`
	CreditAmount decimal.Decimal `db:"credit_amount"`
	ProjectID    string          `db:"project_id"`  // Nullable
	CostCenter   string          `db:"cost_center"` // Nullable
	Department   string          `db:"department"`  // Nullable
	TaxAmount    decimal.Decimal `db:"tax_amount"`
	TaxType      string          `db:"tax_type"` // Nullable
	AuditFields
}
