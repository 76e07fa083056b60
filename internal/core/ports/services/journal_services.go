package services

import (
	"context"

	"github.com/nusantara-construction/ledger-backend/internal/core/domain"
	"github.com/nusantara-construction/ledger-backend/internal/dto"
)

// JournalReaderSvc defines read operations for journal entry data
type JournalReaderSvc interface {
	// GetEntryByID retrieves an entry with its lines, each line carrying its
	// resolved account reference.
	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a paginated list of entries, newest first.
	ListEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error)
}

// JournalWriterSvc defines write operations for journal entry data
type JournalWriterSvc interface {
	// CreateEntry validates balance and account state, assigns the next entry
	// number and persists the draft entry with its lines atomically.
	CreateEntry(ctx context.Context, req dto.CreateJournalEntryRequest) (*domain.JournalEntry, error)

	// PostEntry finalizes a draft entry. Posted entries are immutable.
	PostEntry(ctx context.Context, entryID string, postedBy string) (*domain.JournalEntry, error)

	// DeleteEntry removes a draft entry and its lines. Posted entries cannot
	// be deleted.
	DeleteEntry(ctx context.Context, entryID string) error
}

// JournalSvcFacade combines all journal-related service interfaces
// This is a facade for clients that need access to all operations
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
