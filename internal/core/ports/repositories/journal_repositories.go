package repositories

import (
	"context"
	"time"

	"github.com/nusantara-construction/ledger-backend/internal/core/domain"
)

// EntryFilter narrows journal entry listings. Zero values mean "no filter".
type EntryFilter struct {
	Status    *domain.EntryStatus
	EntryType string
	ProjectID string
	FromDate  *time.Time // inclusive
	ToDate    *time.Time // inclusive
	Search    string     // case-insensitive substring over entry number and description
}

// EntryReader defines read operations for journal entries and their lines.
type EntryReader interface {
	// FindEntryByID retrieves a journal entry header by id.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves an entry's lines ordered by line number,
	// with each line's account reference resolved.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryLine, error)

	// ListEntries retrieves entries matching the filter ordered by entry date
	// descending then entry number descending, plus the unpaginated total.
	ListEntries(ctx context.Context, filter EntryFilter, limit, offset int) ([]domain.JournalEntry, int, error)
}

// EntryWriter defines write operations for journal entries.
type EntryWriter interface {
	// SaveEntry assigns the next entry number for the entry date's month and
	// persists the entry with all its lines in a single transaction. The
	// returned entry carries the assigned number. A concurrent insert taking
	// the same number surfaces as apperrors.ErrDuplicate; callers retry.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalEntryLine) (*domain.JournalEntry, error)

	// MarkEntryPosted flips an entry from DRAFT to POSTED. The update is
	// conditional on the current status so concurrent posts produce exactly
	// one winner; the loser sees apperrors.ErrInvalidState.
	MarkEntryPosted(ctx context.Context, entryID string, postedBy string, postedAt time.Time) error

	// DeleteEntry removes an entry and its lines in a single transaction.
	DeleteEntry(ctx context.Context, entryID string) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces.
type JournalRepositoryFacade interface {
	EntryReader
	EntryWriter
}
