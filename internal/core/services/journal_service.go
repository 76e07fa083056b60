package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nusantara-construction/ledger-backend/internal/apperrors"
	"github.com/nusantara-construction/ledger-backend/internal/core/domain"
	portsrepo "github.com/nusantara-construction/ledger-backend/internal/core/ports/repositories"
	portssvc "github.com/nusantara-construction/ledger-backend/internal/core/ports/services"
	"github.com/nusantara-construction/ledger-backend/internal/dto"
	"github.com/nusantara-construction/ledger-backend/internal/utils/accounting"
)

// defaultEntryNumberRetries bounds the save loop when concurrent creates race
// for the same monthly entry number.
const defaultEntryNumberRetries = 3

// journalService implements the JournalSvcFacade interface
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountReader
	maxRetries  int
	now         func() time.Time
}

// JournalServiceOption is a functional option for configuring the journal service
type JournalServiceOption func(*journalService)

// WithEntryNumberRetries overrides the bounded retry count for entry number
// collisions.
func WithEntryNumberRetries(n int) JournalServiceOption {
	return func(s *journalService) {
		if n > 0 {
			s.maxRetries = n
		}
	}
}

// WithJournalClock overrides the service clock, used by tests.
func WithJournalClock(now func() time.Time) JournalServiceOption {
	return func(s *journalService) {
		s.now = now
	}
}

// NewJournalService creates a new journal service with the provided options
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountRepo portsrepo.AccountReader, options ...JournalServiceOption) portssvc.JournalSvcFacade {
	svc := &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		maxRetries:  defaultEntryNumberRetries,
		now:         time.Now,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure journalService implements the JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// CreateEntry validates a draft entry and persists it with its lines. The
// entry number is assigned inside the repository transaction; on a concurrent
// collision the save is retried up to maxRetries times.
func (s *journalService) CreateEntry(ctx context.Context, req dto.CreateJournalEntryRequest) (*domain.JournalEntry, error) {
	entryDate, err := time.Parse(dto.DateLayout, req.EntryDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid entry_date %q, expected YYYY-MM-DD", apperrors.ErrValidation, req.EntryDate)
	}

	if len(req.Lines) < 2 {
		return nil, fmt.Errorf("%w: journal entry must have at least two lines", apperrors.ErrValidation)
	}

	lines := make([]domain.JournalEntryLine, len(req.Lines))
	accountIDs := make([]string, 0, len(req.Lines))
	for i, lr := range req.Lines {
		description := lr.Description
		if description == "" {
			description = req.Description
		}
		projectID := lr.ProjectID
		if projectID == "" {
			projectID = req.ProjectID
		}
		lines[i] = domain.JournalEntryLine{
			LineID:       uuid.NewString(),
			AccountID:    lr.AccountID,
			LineNumber:   i + 1,
			Description:  description,
			DebitAmount:  lr.DebitAmount,
			CreditAmount: lr.CreditAmount,
			ProjectID:    projectID,
			CostCenter:   lr.CostCenter,
			Department:   lr.Department,
			TaxAmount:    lr.TaxAmount,
			TaxType:      lr.TaxType,
		}
		accountIDs = append(accountIDs, lr.AccountID)
	}

	if err := accounting.ValidateLineAmounts(lines); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	totalDebit, totalCredit := accounting.SumLines(lines)
	if totalDebit.Sub(totalCredit).Abs().GreaterThanOrEqual(domain.BalanceTolerance) {
		return nil, fmt.Errorf("%w: Journal entry is not balanced. Total Debit: %s, Total Credit: %s",
			apperrors.ErrUnbalanced, totalDebit.String(), totalCredit.String())
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch accounts for entry lines")
		return nil, err
	}
	for _, id := range accountIDs {
		account, ok := accounts[id]
		if !ok {
			return nil, fmt.Errorf("%w: account %s not found", apperrors.ErrValidation, id)
		}
		if !account.IsActive {
			return nil, fmt.Errorf("%w: account %s (%s) is inactive", apperrors.ErrValidation, account.Code, id)
		}
	}

	entryType := req.EntryType
	if entryType == "" {
		entryType = domain.EntryTypeGeneral
	}

	now := s.now()
	entry := domain.JournalEntry{
		EntryID:         uuid.NewString(),
		EntryDate:       entryDate,
		EntryType:       entryType,
		Description:     req.Description,
		ReferenceType:   req.ReferenceType,
		ReferenceNumber: req.ReferenceNumber,
		ProjectID:       req.ProjectID,
		SubsidiaryID:    req.SubsidiaryID,
		TotalDebit:      totalDebit,
		TotalCredit:     totalCredit,
		IsBalanced:      true,
		Status:          domain.Draft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     req.CreatedBy,
			LastUpdatedAt: now,
			LastUpdatedBy: req.CreatedBy,
		},
	}
	for i := range lines {
		lines[i].EntryID = entry.EntryID
	}

	var saved *domain.JournalEntry
	for attempt := 1; ; attempt++ {
		saved, err = s.journalRepo.SaveEntry(ctx, entry, lines)
		if err == nil {
			break
		}
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save journal entry",
				slog.String("entry_id", entry.EntryID))
			return nil, err
		}
		if attempt >= s.maxRetries {
			s.LogError(ctx, err, "Entry number contention not resolved within retry budget",
				slog.String("entry_id", entry.EntryID),
				slog.Int("attempts", attempt))
			return nil, fmt.Errorf("%w: could not assign a unique entry number after %d attempts", apperrors.ErrConflict, attempt)
		}
		s.LogDebug(ctx, "Entry number collision, retrying",
			slog.String("entry_id", entry.EntryID),
			slog.Int("attempt", attempt))
	}

	saved.Lines = lines
	s.LogInfo(ctx, "Journal entry created successfully",
		slog.String("entry_id", saved.EntryID),
		slog.String("entry_number", saved.EntryNumber),
		slog.Int("line_count", len(lines)))
	return saved, nil
}

// GetEntryByID retrieves an entry with its lines, each carrying its resolved
// account reference.
func (s *journalService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal entry",
				slog.String("entry_id", entryID))
		}
		return nil, err
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load lines for journal entry",
			slog.String("entry_id", entryID))
		return nil, err
	}
	entry.Lines = lines

	return entry, nil
}

// ListEntries retrieves a paginated list of entries, newest first.
func (s *journalService) ListEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit < 1 {
		limit = 20
	}

	filter := portsrepo.EntryFilter{
		EntryType: params.EntryType,
		ProjectID: params.ProjectID,
		Search:    params.Search,
	}
	if params.Status != "" {
		status := domain.EntryStatus(params.Status)
		if status != domain.Draft && status != domain.Posted {
			return nil, fmt.Errorf("%w: invalid status %q", apperrors.ErrValidation, params.Status)
		}
		filter.Status = &status
	}
	if params.FromDate != "" {
		from, err := time.Parse(dto.DateLayout, params.FromDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid from_date %q, expected YYYY-MM-DD", apperrors.ErrValidation, params.FromDate)
		}
		filter.FromDate = &from
	}
	if params.ToDate != "" {
		to, err := time.Parse(dto.DateLayout, params.ToDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid to_date %q, expected YYYY-MM-DD", apperrors.ErrValidation, params.ToDate)
		}
		filter.ToDate = &to
	}

	entries, total, err := s.journalRepo.ListEntries(ctx, filter, limit, (page-1)*limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries")
		return nil, err
	}

	pages := 0
	if total > 0 {
		pages = (total + limit - 1) / limit
	}

	return &dto.ListJournalEntriesResponse{
		Entries: dto.ToJournalEntryResponses(entries),
		Pagination: dto.Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: pages,
		},
	}, nil
}

// PostEntry finalizes a draft entry. The repository update is conditional on
// DRAFT status, so two concurrent posts of the same entry produce exactly one
// winner.
func (s *journalService) PostEntry(ctx context.Context, entryID string, postedBy string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal entry for posting",
				slog.String("entry_id", entryID))
		}
		return nil, err
	}

	if entry.Status != domain.Draft {
		return nil, fmt.Errorf("%w: journal entry %s is already posted", apperrors.ErrInvalidState, entry.EntryNumber)
	}
	if entry.TotalDebit.Sub(entry.TotalCredit).Abs().GreaterThanOrEqual(domain.BalanceTolerance) {
		return nil, fmt.Errorf("%w: Journal entry is not balanced. Total Debit: %s, Total Credit: %s",
			apperrors.ErrUnbalanced, entry.TotalDebit.String(), entry.TotalCredit.String())
	}

	now := s.now()
	if err := s.journalRepo.MarkEntryPosted(ctx, entryID, postedBy, now); err != nil {
		if errors.Is(err, apperrors.ErrInvalidState) {
			return nil, fmt.Errorf("%w: journal entry %s is already posted", apperrors.ErrInvalidState, entry.EntryNumber)
		}
		s.LogError(ctx, err, "Failed to post journal entry",
			slog.String("entry_id", entryID))
		return nil, err
	}

	entry.Status = domain.Posted
	entry.PostedBy = postedBy
	entry.PostedAt = &now
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = postedBy

	s.LogInfo(ctx, "Journal entry posted successfully",
		slog.String("entry_id", entryID),
		slog.String("entry_number", entry.EntryNumber))
	return entry, nil
}

// DeleteEntry removes a draft entry with its lines. Posted entries are part of
// the permanent ledger record and cannot be deleted.
func (s *journalService) DeleteEntry(ctx context.Context, entryID string) error {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal entry for deletion",
				slog.String("entry_id", entryID))
		}
		return err
	}

	if entry.Status == domain.Posted {
		return fmt.Errorf("%w: posted journal entry %s cannot be deleted", apperrors.ErrInvalidState, entry.EntryNumber)
	}

	if err := s.journalRepo.DeleteEntry(ctx, entryID); err != nil {
		s.LogError(ctx, err, "Failed to delete journal entry",
			slog.String("entry_id", entryID))
		return err
	}

	s.LogInfo(ctx, "Journal entry deleted successfully",
		slog.String("entry_id", entryID),
		slog.String("entry_number", entry.EntryNumber))
	return nil
}
