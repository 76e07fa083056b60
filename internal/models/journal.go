package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry.
type EntryStatus string

const (
	Draft  EntryStatus = "DRAFT"
	Posted EntryStatus = "POSTED"
)

// JournalEntry is a journal_entries row.
type JournalEntry struct {
	EntryID         string          `db:"id"`
	EntryNumber     string          `db:"entry_number"`
	EntryDate       time.Time       `db:"entry_date"`
	EntryType       string          `db:"entry_type"`
	Description     string          `db:"description"`
	ReferenceType   string          `db:"reference_type"`   // Nullable
	ReferenceNumber string          `db:"reference_number"` // Nullable
	ProjectID       string          `db:"project_id"`       // Nullable
	SubsidiaryID    string          `db:"subsidiary_id"`    // Nullable
	TotalDebit      decimal.Decimal `db:"total_debit"`
	TotalCredit     decimal.Decimal `db:"total_credit"`
	IsBalanced      bool            `db:"is_balanced"`
	Status          EntryStatus     `db:"status"`
	PostedBy        string          `db:"posted_by"` // Nullable
	PostedAt        *time.Time      `db:"posted_at"` // Nullable
	AuditFields
}
