package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/nusantara-construction/ledger-backend/internal/apperrors"
	"github.com/nusantara-construction/ledger-backend/internal/core/domain"
	portsrepo "github.com/nusantara-construction/ledger-backend/internal/core/ports/repositories"
	"github.com/nusantara-construction/ledger-backend/internal/models"
	"github.com/nusantara-construction/ledger-backend/internal/utils/mapping"
)

const entryColumns = `id, entry_number, entry_date, entry_type, description, reference_type, reference_number, project_id, subsidiary_id, total_debit, total_credit, is_balanced, status, posted_by, posted_at, created_at, created_by, updated_at, updated_by`

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entry data.
func newPgxJournalRepository(pool PgxPool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

// scanEntry scans one journal entry header row, normalising nullable columns.
func scanEntry(row pgx.Row) (*domain.JournalEntry, error) {
	var m models.JournalEntry
	var refType, refNumber, projectID, subsidiaryID, postedBy, updatedBy sql.NullString
	var postedAt sql.NullTime

	err := row.Scan(
		&m.EntryID,
		&m.EntryNumber,
		&m.EntryDate,
		&m.EntryType,
		&m.Description,
		&refType,
		&refNumber,
		&projectID,
		&subsidiaryID,
		&m.TotalDebit,
		&m.TotalCredit,
		&m.IsBalanced,
		&m.Status,
		&postedBy,
		&postedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&updatedBy,
	)
	if err != nil {
		return nil, err
	}

	m.ReferenceType = refType.String
	m.ReferenceNumber = refNumber.String
	m.ProjectID = projectID.String
	m.SubsidiaryID = subsidiaryID.String
	m.PostedBy = postedBy.String
	m.LastUpdatedBy = updatedBy.String
	if postedAt.Valid {
		t := postedAt.Time
		m.PostedAt = &t
	}

	entry := mapping.ToDomainJournalEntry(m)
	return &entry, nil
}

// SaveEntry assigns the next entry number for the entry date's month and
// persists the entry with all its lines in one transaction. The count and the
// insert run in the same transaction; the UNIQUE constraint on entry_number
// turns a concurrent collision into ErrDuplicate for the caller to retry.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalEntryLine) (*domain.JournalEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	prefix := "JE" + entry.EntryDate.Format("200601")

	var monthCount int
	countQuery := `SELECT COUNT(*) FROM journal_entries WHERE entry_number LIKE $1;`
	if err := tx.QueryRow(ctx, countQuery, prefix+"%").Scan(&monthCount); err != nil {
		return nil, fmt.Errorf("failed to count entries for prefix %s: %w", prefix, err)
	}
	entry.EntryNumber = fmt.Sprintf("%s%04d", prefix, monthCount+1)

	m := mapping.ToModelJournalEntry(entry)
	entryQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err = tx.Exec(ctx, entryQuery,
		m.EntryID,
		m.EntryNumber,
		m.EntryDate,
		m.EntryType,
		m.Description,
		nullString(m.ReferenceType),
		nullString(m.ReferenceNumber),
		nullString(m.ProjectID),
		nullString(m.SubsidiaryID),
		m.TotalDebit,
		m.TotalCredit,
		m.IsBalanced,
		m.Status,
		nullString(m.PostedBy),
		m.PostedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("%w: entry number %s already taken", apperrors.ErrDuplicate, m.EntryNumber)
		}
		return nil, fmt.Errorf("failed to insert journal entry %s: %w", m.EntryID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_entry_lines (id, journal_entry_id, account_id, line_number, description, debit_amount, credit_amount, project_id, cost_center, department, tax_amount, tax_type, created_at, created_by, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	for _, line := range lines {
		ml := mapping.ToModelJournalEntryLine(line)
		batch.Queue(lineQuery,
			ml.LineID,
			m.EntryID,
			ml.AccountID,
			ml.LineNumber,
			ml.Description,
			ml.DebitAmount,
			ml.CreditAmount,
			nullString(ml.ProjectID),
			nullString(ml.CostCenter),
			nullString(ml.Department),
			ml.TaxAmount,
			nullString(ml.TaxType),
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return nil, fmt.Errorf("failed to execute line batch for entry %s: %w", m.EntryID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	return &entry, nil
}

// FindEntryByID retrieves a journal entry header by its ID.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE id = $1;`

	entry, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry by ID %s: %w", entryID, err)
	}
	return entry, nil
}

// FindLinesByEntryID retrieves an entry's lines ordered by line number, with
// each line's account reference resolved.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryLine, error) {
	query := `
		SELECT l.id, l.journal_entry_id, l.account_id, l.line_number, l.description,
		       l.debit_amount, l.credit_amount, l.project_id, l.cost_center, l.department,
		       l.tax_amount, l.tax_type,
		       a.account_code, a.account_name, a.account_type, a.normal_balance
		FROM journal_entry_lines l
		JOIN chart_of_accounts a ON l.account_id = a.id
		WHERE l.journal_entry_id = $1
		ORDER BY l.line_number;
	`

	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	lines := []domain.JournalEntryLine{}
	for rows.Next() {
		var ml models.JournalEntryLine
		var description, projectID, costCenter, department, taxType sql.NullString
		var ref domain.AccountRef

		err := rows.Scan(
			&ml.LineID,
			&ml.EntryID,
			&ml.AccountID,
			&ml.LineNumber,
			&description,
			&ml.DebitAmount,
			&ml.CreditAmount,
			&projectID,
			&costCenter,
			&department,
			&ml.TaxAmount,
			&taxType,
			&ref.Code,
			&ref.Name,
			&ref.AccountType,
			&ref.NormalBalance,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line row for entry %s: %w", entryID, err)
		}

		ml.Description = description.String
		ml.ProjectID = projectID.String
		ml.CostCenter = costCenter.String
		ml.Department = department.String
		ml.TaxType = taxType.String

		line := mapping.ToDomainJournalEntryLine(ml)
		ref.AccountID = ml.AccountID
		line.Account = &ref
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line rows for entry %s: %w", entryID, err)
	}

	return lines, nil
}

// ListEntries retrieves entries matching the filter, newest first, plus the
// unpaginated total for the pagination block.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, filter portsrepo.EntryFilter, limit, offset int) ([]domain.JournalEntry, int, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	conditions := []string{}
	args := []any{}
	argN := 1

	addCondition := func(clause string, value any) {
		conditions = append(conditions, fmt.Sprintf(clause, argN))
		args = append(args, value)
		argN++
	}

	if filter.Status != nil {
		addCondition("status = $%d", *filter.Status)
	}
	if filter.EntryType != "" {
		addCondition("entry_type = $%d", filter.EntryType)
	}
	if filter.ProjectID != "" {
		addCondition("project_id = $%d", filter.ProjectID)
	}
	if filter.FromDate != nil {
		addCondition("entry_date >= $%d", *filter.FromDate)
	}
	if filter.ToDate != nil {
		addCondition("entry_date <= $%d", *filter.ToDate)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(entry_number ILIKE $%d OR description ILIKE $%d)", argN, argN))
		args = append(args, "%"+filter.Search+"%")
		argN++
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM journal_entries` + where + `;`
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count journal entries: %w", err)
	}

	query := `SELECT ` + entryColumns + ` FROM journal_entries` + where +
		fmt.Sprintf(" ORDER BY entry_date DESC, entry_number DESC LIMIT $%d OFFSET $%d;", argN, argN+1)
	args = append(args, limit, offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query journal entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan journal entry row: %w", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating journal entry rows: %w", err)
	}

	return entries, total, nil
}

// MarkEntryPosted flips an entry from DRAFT to POSTED. The update is
// conditional on the current status so concurrent posts have exactly one
// winner.
func (r *PgxJournalRepository) MarkEntryPosted(ctx context.Context, entryID string, postedBy string, postedAt time.Time) error {
	query := `
		UPDATE journal_entries
		SET status = $2, posted_by = $3, posted_at = $4, updated_at = $4, updated_by = $3
		WHERE id = $1 AND status = $5;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, entryID, models.Posted, postedBy, postedAt, models.Draft)
	if err != nil {
		return fmt.Errorf("failed to execute post for entry %s: %w", entryID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		// Either the entry does not exist or it is no longer a draft.
		_, findErr := r.FindEntryByID(ctx, entryID)
		if errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		} else if findErr != nil {
			return fmt.Errorf("failed to check entry status after post attempt for %s: %w", entryID, findErr)
		}
		return apperrors.ErrInvalidState
	}
	return nil
}

// DeleteEntry removes an entry and its lines in one transaction.
func (r *PgxJournalRepository) DeleteEntry(ctx context.Context, entryID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM journal_entry_lines WHERE journal_entry_id = $1;`, entryID); err != nil {
		return fmt.Errorf("failed to delete lines for entry %s: %w", entryID, err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM journal_entries WHERE id = $1;`, entryID)
	if err != nil {
		return fmt.Errorf("failed to delete journal entry %s: %w", entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}
