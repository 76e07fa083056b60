package pgsql

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nusantara-construction/ledger-backend/internal/apperrors"
	"github.com/nusantara-construction/ledger-backend/internal/core/domain"
	portsrepo "github.com/nusantara-construction/ledger-backend/internal/core/ports/repositories"
	"github.com/nusantara-construction/ledger-backend/internal/models"
)

var entryRowColumns = []string{
	"id", "entry_number", "entry_date", "entry_type", "description",
	"reference_type", "reference_number", "project_id", "subsidiary_id",
	"total_debit", "total_credit", "is_balanced", "status", "posted_by",
	"posted_at", "created_at", "created_by", "updated_at", "updated_by",
}

func entryRow(status models.EntryStatus, now time.Time) *pgxmock.Rows {
	return pgxmock.NewRows(entryRowColumns).AddRow(
		"3f1d9a7c-1111-4222-8333-444455556666", "JE2025070001", now, "GENERAL", "Office rent for July",
		nil, nil, nil, nil,
		decimal.NewFromInt(500), decimal.NewFromInt(500), true, status, nil,
		nil, now, "user-1", now, "user-1",
	)
}

func TestSaveEntry_NumberCollision(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := newPgxJournalRepository(mock)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM journal_entries WHERE entry_number LIKE \$1`).
		WithArgs("JE202507%").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectExec(`INSERT INTO journal_entries`).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	entry := domain.JournalEntry{
		EntryID:   "3f1d9a7c-1111-4222-8333-444455556666",
		EntryDate: time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC),
		Status:    domain.Draft,
	}

	saved, err := repo.SaveEntry(context.Background(), entry, nil)
	require.Error(t, err)
	assert.Nil(t, saved)
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
	// Count of 3 puts the next number at 0004 for the month.
	assert.Contains(t, err.Error(), "JE2025070004")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindEntryByID(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := newPgxJournalRepository(mock)

		mock.ExpectQuery(`FROM journal_entries WHERE id = \$1`).
			WithArgs("3f1d9a7c-1111-4222-8333-444455556666").
			WillReturnRows(entryRow(models.Draft, now))

		entry, err := repo.FindEntryByID(ctx, "3f1d9a7c-1111-4222-8333-444455556666")
		require.NoError(t, err)
		assert.Equal(t, "JE2025070001", entry.EntryNumber)
		assert.Equal(t, domain.Draft, entry.Status)
		assert.Nil(t, entry.PostedAt)
		assert.True(t, entry.TotalDebit.Equal(decimal.NewFromInt(500)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := newPgxJournalRepository(mock)

		mock.ExpectQuery(`FROM journal_entries WHERE id = \$1`).
			WithArgs("missing").
			WillReturnError(pgx.ErrNoRows)

		entry, err := repo.FindEntryByID(ctx, "missing")
		require.Error(t, err)
		assert.Nil(t, entry)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestListEntries(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := newPgxJournalRepository(mock)
	now := time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM journal_entries`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(45))
	mock.ExpectQuery(`FROM journal_entries ORDER BY entry_date DESC, entry_number DESC LIMIT \$1 OFFSET \$2`).
		WithArgs(20, 0).
		WillReturnRows(entryRow(models.Draft, now))

	entries, total, err := repo.ListEntries(context.Background(), portsrepo.EntryFilter{}, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 45, total)
	require.Len(t, entries, 1)
	assert.Equal(t, "JE2025070001", entries[0].EntryNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListEntries_StatusFilter(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := newPgxJournalRepository(mock)
	status := domain.Posted

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM journal_entries WHERE status = \$1`).
		WithArgs(status).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`FROM journal_entries WHERE status = \$1 ORDER BY entry_date DESC, entry_number DESC LIMIT \$2 OFFSET \$3`).
		WithArgs(status, 20, 0).
		WillReturnRows(pgxmock.NewRows(entryRowColumns))

	entries, total, err := repo.ListEntries(context.Background(), portsrepo.EntryFilter{Status: &status}, 20, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, entries)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkEntryPosted(t *testing.T) {
	ctx := context.Background()
	postedAt := time.Date(2025, 7, 20, 10, 0, 0, 0, time.UTC)
	entryID := "3f1d9a7c-1111-4222-8333-444455556666"

	t.Run("winner", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := newPgxJournalRepository(mock)

		mock.ExpectExec(`UPDATE journal_entries\s+SET status = \$2`).
			WithArgs(entryID, models.Posted, "approver-1", postedAt, models.Draft).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err = repo.MarkEntryPosted(ctx, entryID, "approver-1", postedAt)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already posted", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := newPgxJournalRepository(mock)

		mock.ExpectExec(`UPDATE journal_entries\s+SET status = \$2`).
			WithArgs(entryID, models.Posted, "approver-1", postedAt, models.Draft).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		mock.ExpectQuery(`FROM journal_entries WHERE id = \$1`).
			WithArgs(entryID).
			WillReturnRows(entryRow(models.Posted, postedAt))

		err = repo.MarkEntryPosted(ctx, entryID, "approver-1", postedAt)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrInvalidState)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := newPgxJournalRepository(mock)

		mock.ExpectExec(`UPDATE journal_entries\s+SET status = \$2`).
			WithArgs("missing", models.Posted, "approver-1", postedAt, models.Draft).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		mock.ExpectQuery(`FROM journal_entries WHERE id = \$1`).
			WithArgs("missing").
			WillReturnError(pgx.ErrNoRows)

		err = repo.MarkEntryPosted(ctx, "missing", "approver-1", postedAt)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDeleteEntry(t *testing.T) {
	ctx := context.Background()
	entryID := "3f1d9a7c-1111-4222-8333-444455556666"

	t.Run("success", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := newPgxJournalRepository(mock)

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM journal_entry_lines WHERE journal_entry_id = \$1`).
			WithArgs(entryID).
			WillReturnResult(pgxmock.NewResult("DELETE", 2))
		mock.ExpectExec(`DELETE FROM journal_entries WHERE id = \$1`).
			WithArgs(entryID).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		mock.ExpectCommit()

		err = repo.DeleteEntry(ctx, entryID)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := newPgxJournalRepository(mock)

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM journal_entry_lines WHERE journal_entry_id = \$1`).
			WithArgs("missing").
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
		mock.ExpectExec(`DELETE FROM journal_entries WHERE id = \$1`).
			WithArgs("missing").
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
		mock.ExpectRollback()

		err = repo.DeleteEntry(ctx, "missing")
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
