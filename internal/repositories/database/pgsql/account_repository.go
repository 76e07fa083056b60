package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
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

const accountColumns = `id, account_code, account_name, account_type, account_sub_type, normal_balance, level, parent_account_id, is_active, is_control_account, construction_specific, project_cost_center, current_balance, subsidiary_id, description, created_at, created_by, updated_at, updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for chart-of-accounts data.
func newPgxAccountRepository(pool PgxPool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// scanAccount scans one account row, normalising nullable columns.
func scanAccount(row pgx.Row) (*domain.Account, error) {
	var m models.Account
	var parentID, subsidiaryID, description, subType, updatedBy sql.NullString

	err := row.Scan(
		&m.AccountID,
		&m.Code,
		&m.Name,
		&m.AccountType,
		&subType,
		&m.NormalBalance,
		&m.Level,
		&parentID,
		&m.IsActive,
		&m.IsControlAccount,
		&m.ConstructionSpecific,
		&m.ProjectCostCenter,
		&m.CurrentBalance,
		&subsidiaryID,
		&description,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&updatedBy,
	)
	if err != nil {
		return nil, err
	}

	m.SubType = subType.String
	m.ParentAccountID = parentID.String
	m.SubsidiaryID = subsidiaryID.String
	m.Description = description.String
	m.LastUpdatedBy = updatedBy.String

	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// NextAccountID reserves the next COA identifier from the account sequence.
func (r *PgxAccountRepository) NextAccountID(ctx context.Context) (string, error) {
	var seq int64
	if err := r.Pool.QueryRow(ctx, `SELECT nextval('account_id_seq');`).Scan(&seq); err != nil {
		return "", fmt.Errorf("failed to reserve next account id: %w", err)
	}
	return "COA-" + strconv.FormatInt(seq, 10), nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		INSERT INTO chart_of_accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.Code,
		m.Name,
		m.AccountType,
		nullString(m.SubType),
		m.NormalBalance,
		m.Level,
		nullString(m.ParentAccountID),
		m.IsActive,
		m.IsControlAccount,
		m.ConstructionSpecific,
		m.ProjectCostCenter,
		m.CurrentBalance,
		nullString(m.SubsidiaryID),
		nullString(m.Description),
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: account with code %s already exists", apperrors.ErrDuplicate, m.Code)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM chart_of_accounts WHERE id = $1;`

	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	return acc, nil
}

// FindAccountByCode retrieves an account by its dotted account code.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM chart_of_accounts WHERE account_code = $1;`

	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by code %s: %w", code, err)
	}
	return acc, nil
}

// FindAccountsByIDs retrieves multiple accounts by their IDs.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM chart_of_accounts WHERE id = ANY($1);`

	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs: %w", err)
	}
	defer rows.Close()

	accountsMap := make(map[string]domain.Account)
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row during batch fetch: %w", err)
		}
		accountsMap[acc.AccountID] = *acc
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows during batch fetch: %w", err)
	}

	// Not all requested IDs are necessarily present; callers check the map.
	return accountsMap, nil
}

// ListAccounts retrieves accounts matching the filter, ordered by account code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, filter portsrepo.AccountFilter) ([]domain.Account, error) {
	conditions := []string{}
	args := []any{}
	argN := 1

	addCondition := func(clause string, value any) {
		conditions = append(conditions, fmt.Sprintf(clause, argN))
		args = append(args, value)
		argN++
	}

	if filter.AccountType != nil {
		addCondition("account_type = $%d", *filter.AccountType)
	}
	if filter.Level != nil {
		addCondition("level = $%d", *filter.Level)
	}
	if filter.IsActive != nil {
		addCondition("is_active = $%d", *filter.IsActive)
	}
	if filter.ParentAccountID != nil {
		addCondition("parent_account_id = $%d", *filter.ParentAccountID)
	}
	if filter.ConstructionSpecific != nil {
		addCondition("construction_specific = $%d", *filter.ConstructionSpecific)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(account_code ILIKE $%d OR account_name ILIKE $%d)", argN, argN))
		args = append(args, "%"+filter.Search+"%")
		argN++
	}

	query := `SELECT ` + accountColumns + ` FROM chart_of_accounts`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY account_code;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, *acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}

	return accounts, nil
}

// ListCashAccounts retrieves active cash/bank detail accounts ordered by code.
func (r *PgxAccountRepository) ListCashAccounts(ctx context.Context) ([]domain.CashAccount, error) {
	query := `
		SELECT id, account_code, account_name, account_sub_type, current_balance
		FROM chart_of_accounts
		WHERE account_sub_type = $1 AND is_active = TRUE AND level >= 3
		ORDER BY account_code;
	`

	rows, err := r.Pool.Query(ctx, query, domain.SubTypeCashAndBank)
	if err != nil {
		return nil, fmt.Errorf("failed to query cash accounts: %w", err)
	}
	defer rows.Close()

	accounts := []domain.CashAccount{}
	for rows.Next() {
		var acc domain.CashAccount
		if err := rows.Scan(&acc.AccountID, &acc.Code, &acc.Name, &acc.SubType, &acc.Balance); err != nil {
			return nil, fmt.Errorf("failed to scan cash account row: %w", err)
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cash account rows: %w", err)
	}

	return accounts, nil
}

// CountActiveChildren counts active accounts whose parent is accountID.
func (r *PgxAccountRepository) CountActiveChildren(ctx context.Context, accountID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM chart_of_accounts WHERE parent_account_id = $1 AND is_active = TRUE;`
	if err := r.Pool.QueryRow(ctx, query, accountID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active children of %s: %w", accountID, err)
	}
	return count, nil
}

// CountActiveByCode counts active accounts carrying the given code, excluding
// excludeID when non-empty.
func (r *PgxAccountRepository) CountActiveByCode(ctx context.Context, code string, excludeID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM chart_of_accounts WHERE account_code = $1 AND is_active = TRUE AND ($2 = '' OR id <> $2);`
	if err := r.Pool.QueryRow(ctx, query, code, excludeID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count accounts by code %s: %w", code, err)
	}
	return count, nil
}

// TypeSummary counts active accounts grouped by account type.
func (r *PgxAccountRepository) TypeSummary(ctx context.Context) ([]domain.AccountTypeCount, error) {
	query := `
		SELECT account_type, COUNT(*)
		FROM chart_of_accounts
		WHERE is_active = TRUE
		GROUP BY account_type
		ORDER BY account_type;
	`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query account type summary: %w", err)
	}
	defer rows.Close()

	summary := []domain.AccountTypeCount{}
	for rows.Next() {
		var row domain.AccountTypeCount
		if err := rows.Scan(&row.AccountType, &row.Count); err != nil {
			return nil, fmt.Errorf("failed to scan account type summary row: %w", err)
		}
		summary = append(summary, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account type summary rows: %w", err)
	}

	return summary, nil
}

// UpdateAccount updates an existing account in the database. The account code
// and lineage columns are never touched here.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		UPDATE chart_of_accounts
		SET account_name = $2, account_sub_type = $3, normal_balance = $4, parent_account_id = $5,
		    construction_specific = $6, project_cost_center = $7, subsidiary_id = $8, description = $9,
		    updated_at = $10, updated_by = $11
		WHERE id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.Name,
		nullString(m.SubType),
		m.NormalBalance,
		nullString(m.ParentAccountID),
		m.ConstructionSpecific,
		m.ProjectCostCenter,
		nullString(m.SubsidiaryID),
		nullString(m.Description),
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update account %s: %w", m.AccountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateAccount marks an account as inactive.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	query := `
		UPDATE chart_of_accounts
		SET is_active = FALSE, updated_at = $2, updated_by = $3
		WHERE id = $1 AND is_active = TRUE;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, accountID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to execute deactivate account %s: %w", accountID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		// Either the account does not exist or it was already inactive.
		_, findErr := r.FindAccountByID(ctx, accountID)
		if errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		} else if findErr != nil {
			return fmt.Errorf("failed to check account status after deactivation attempt for %s: %w", accountID, findErr)
		}
		return apperrors.ErrValidation
	}
	return nil
}

// nullString maps empty strings to SQL NULL.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
