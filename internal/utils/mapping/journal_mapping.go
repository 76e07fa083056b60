package mapping

import (
	"github.com/nusantara-construction/ledger-backend/internal/core/domain"
	"github.com/nusantara-construction/ledger-backend/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:         d.EntryID,
		EntryNumber:     d.EntryNumber,
		EntryDate:       d.EntryDate,
		EntryType:       d.EntryType,
		Description:     d.Description,
		ReferenceType:   d.ReferenceType,
		ReferenceNumber: d.ReferenceNumber,
		ProjectID:       d.ProjectID,
		SubsidiaryID:    d.SubsidiaryID,
		TotalDebit:      d.TotalDebit,
		TotalCredit:     d.TotalCredit,
		IsBalanced:      d.IsBalanced,
		Status:          models.EntryStatus(d.Status),
		PostedBy:        d.PostedBy,
		PostedAt:        d.PostedAt,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:         m.EntryID,
		EntryNumber:     m.EntryNumber,
		EntryDate:       m.EntryDate,
		EntryType:       m.EntryType,
		Description:     m.Description,
		ReferenceType:   m.ReferenceType,
		ReferenceNumber: m.ReferenceNumber,
		ProjectID:       m.ProjectID,
		SubsidiaryID:    m.SubsidiaryID,
		TotalDebit:      m.TotalDebit,
		TotalCredit:     m.TotalCredit,
		IsBalanced:      m.IsBalanced,
		Status:          domain.EntryStatus(m.Status),
		PostedBy:        m.PostedBy,
		PostedAt:        m.PostedAt,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalEntrySlice converts a slice of model entries to domain entries
func ToDomainJournalEntrySlice(ms []models.JournalEntry) []domain.JournalEntry {
	ds := make([]domain.JournalEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalEntry(m)
	}
	return ds
}

// ToModelJournalEntryLine converts a domain line to a model line
func ToModelJournalEntryLine(d domain.JournalEntryLine) models.JournalEntryLine {
	return models.JournalEntryLine{
		LineID:       d.LineID,
		EntryID:      d.EntryID,
		AccountID:    d.AccountID,
		LineNumber:   d.LineNumber,
		Description:  d.Description,
		DebitAmount:  d.DebitAmount,
		CreditAmount: d.CreditAmount,
		ProjectID:    d.ProjectID,
		CostCenter:   d.CostCenter,
		Department:   d.Department,
		TaxAmount:    d.TaxAmount,
		TaxType:      d.TaxType,
	}
}

// ToDomainJournalEntryLine converts a model line to a domain line
func ToDomainJournalEntryLine(m models.JournalEntryLine) domain.JournalEntryLine {
	return domain.JournalEntryLine{
		LineID:       m.LineID,
		EntryID:      m.EntryID,
		AccountID:    m.AccountID,
		LineNumber:   m.LineNumber,
		Description:  m.Description,
		DebitAmount:  m.DebitAmount,
		CreditAmount: m.CreditAmount,
		ProjectID:    m.ProjectID,
		CostCenter:   m.CostCenter,
		Department:   m.Department,
		TaxAmount:    m.TaxAmount,
		TaxType:      m.TaxType,
	}
}
