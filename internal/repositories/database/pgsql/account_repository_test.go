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
	"github.com/nusantara-construction/ledger-backend/internal/models"
)

var accountRowColumns = []string{
	"id", "account_code", "account_name", "account_type", "account_sub_type",
	"normal_balance", "level", "parent_account_id", "is_active", "is_control_account",
	"construction_specific", "project_cost_center", "current_balance", "subsidiary_id",
	"description", "created_at", "created_by", "updated_at", "updated_by",
}

func accountRow(now time.Time) *pgxmock.Rows {
	return pgxmock.NewRows(accountRowColumns).AddRow(
		"COA-5", "1101.01", "Bank BCA", models.AccountType("ASSET"), "CASH_AND_BANK",
		"DEBIT", 4, "COA-3", true, false,
		false, false, decimal.NewFromInt(1500), nil,
		nil, now, "user-1", now, "user-1",
	)
}

func TestNextAccountID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := newPgxAccountRepository(mock)

	mock.ExpectQuery(`SELECT nextval\('account_id_seq'\)`).
		WillReturnRows(pgxmock.NewRows([]string{"nextval"}).AddRow(int64(42)))

	id, err := repo.NextAccountID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "COA-42", id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveAccount_DuplicateCode(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := newPgxAccountRepository(mock)

	mock.ExpectExec(`INSERT INTO chart_of_accounts`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err = repo.SaveAccount(context.Background(), domain.Account{AccountID: "COA-1", Code: "1000"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
	assert.Contains(t, err.Error(), "1000")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindAccountByID(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := newPgxAccountRepository(mock)

		mock.ExpectQuery(`FROM chart_of_accounts WHERE id = \$1`).
			WithArgs("COA-5").
			WillReturnRows(accountRow(now))

		acc, err := repo.FindAccountByID(ctx, "COA-5")
		require.NoError(t, err)
		assert.Equal(t, "COA-5", acc.AccountID)
		assert.Equal(t, "1101.01", acc.Code)
		assert.Equal(t, domain.Asset, acc.AccountType)
		assert.Equal(t, "COA-3", acc.ParentAccountID)
		assert.True(t, acc.CurrentBalance.Equal(decimal.NewFromInt(1500)))
		assert.Empty(t, acc.SubsidiaryID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := newPgxAccountRepository(mock)

		mock.ExpectQuery(`FROM chart_of_accounts WHERE id = \$1`).
			WithArgs("COA-404").
			WillReturnError(pgx.ErrNoRows)

		acc, err := repo.FindAccountByID(ctx, "COA-404")
		require.Error(t, err)
		assert.Nil(t, acc)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestFindAccountByCode(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := newPgxAccountRepository(mock)
	now := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM chart_of_accounts WHERE account_code = \$1`).
		WithArgs("1101.01").
		WillReturnRows(accountRow(now))

	acc, err := repo.FindAccountByCode(context.Background(), "1101.01")
	require.NoError(t, err)
	assert.Equal(t, "COA-5", acc.AccountID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindAccountsByIDs_EmptyInputSkipsQuery(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := newPgxAccountRepository(mock)

	accounts, err := repo.FindAccountsByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, accounts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListCashAccounts(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := newPgxAccountRepository(mock)

	rows := pgxmock.NewRows([]string{"id", "account_code", "account_name", "account_sub_type", "current_balance"}).
		AddRow("COA-5", "1101.01", "Bank BCA", "CASH_AND_BANK", decimal.NewFromInt(1500)).
		AddRow("COA-6", "1101.02", "Bank Mandiri", "CASH_AND_BANK", decimal.NewFromInt(500))

	mock.ExpectQuery(`WHERE account_sub_type = \$1 AND is_active = TRUE AND level >= 3`).
		WithArgs(domain.SubTypeCashAndBank).
		WillReturnRows(rows)

	accounts, err := repo.ListCashAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "Bank BCA", accounts[0].Name)
	assert.True(t, accounts[1].Balance.Equal(decimal.NewFromInt(500)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountActiveByCode(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := newPgxAccountRepository(mock)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM chart_of_accounts WHERE account_code = \$1`).
		WithArgs("1101", "").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))

	count, err := repo.CountActiveByCode(context.Background(), "1101", "")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeactivateAccount(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := newPgxAccountRepository(mock)

		mock.ExpectExec(`UPDATE chart_of_accounts\s+SET is_active = FALSE`).
			WithArgs("COA-5", now, "user-1").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err = repo.DeactivateAccount(ctx, "COA-5", "user-1", now)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already inactive", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := newPgxAccountRepository(mock)

		mock.ExpectExec(`UPDATE chart_of_accounts\s+SET is_active = FALSE`).
			WithArgs("COA-5", now, "user-1").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		// Existence check distinguishes missing from already-inactive.
		mock.ExpectQuery(`FROM chart_of_accounts WHERE id = \$1`).
			WithArgs("COA-5").
			WillReturnRows(accountRow(now))

		err = repo.DeactivateAccount(ctx, "COA-5", "user-1", now)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := newPgxAccountRepository(mock)

		mock.ExpectExec(`UPDATE chart_of_accounts\s+SET is_active = FALSE`).
			WithArgs("COA-404", now, "user-1").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		mock.ExpectQuery(`FROM chart_of_accounts WHERE id = \$1`).
			WithArgs("COA-404").
			WillReturnError(pgx.ErrNoRows)

		err = repo.DeactivateAccount(ctx, "COA-404", "user-1", now)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
