package domain

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

// EntryTypeGeneral is the default entry type when the caller does not supply one.
const EntryTypeGeneral = "GENERAL"

// BalanceTolerance is the maximum allowed difference between total debits and
// total credits for an entry (or the whole ledger) to count as balanced.
var BalanceTolerance = decimal.NewFromFloat(0.01)

// JournalEntry is a single double-entry transaction composed of two or more
// lines. Entries are created DRAFT and become immutable once POSTED.
type JournalEntry struct {
	EntryID         string          `json:"entryID"`     // Primary key (UUID)
	EntryNumber     string          `json:"entryNumber"` // JE<YYYYMM><4-digit seq>, unique
	EntryDate       time.Time       `json:"entryDate"`
	EntryType       string          `json:"entryType"`
	Description     string          `json:"description"`
	ReferenceType   string          `json:"referenceType"`
	ReferenceNumber string          `json:"referenceNumber"`
	ProjectID       string          `json:"projectID"`
	SubsidiaryID    string          `json:"subsidiaryID"`
	TotalDebit      decimal.Decimal `json:"totalDebit"`
	TotalCredit     decimal.Decimal `json:"totalCredit"`
	IsBalanced      bool            `json:"isBalanced"`
	Status          EntryStatus     `json:"status"`
	PostedBy        string          `json:"postedBy"`
	PostedAt        *time.Time      `json:"postedAt"`
	AuditFields
	Lines []JournalEntryLine `json:"lines"` // often loaded separately
}

// Balanced reports whether debit and credit totals match within tolerance.
func (e *JournalEntry) Balanced() bool {
	return e.TotalDebit.Sub(e.TotalCredit).Abs().LessThan(BalanceTolerance)
}
