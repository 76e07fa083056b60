package repositories

import (
	"context"
	"time"

	"github.com/nusantara-construction/ledger-backend/internal/core/domain"
)

// AccountFilter narrows flat account listings.
type AccountFilter struct {
	AccountType          *domain.AccountType
	Level                *int
	IsActive             *bool
	ParentAccountID      *string
	ConstructionSpecific *bool
	Search               string // case-insensitive substring over code and name
}

// AccountReader defines read operations for chart-of-accounts data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its COA id.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its account code.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts keyed by id.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves accounts matching the filter, ordered by code.
	ListAccounts(ctx context.Context, filter AccountFilter) ([]domain.Account, error)

	// ListCashAccounts retrieves active CASH_AND_BANK accounts at level >= 3,
	// ordered by code.
	ListCashAccounts(ctx context.Context) ([]domain.CashAccount, error)

	// CountActiveChildren counts active accounts whose parent is accountID.
	CountActiveChildren(ctx context.Context, accountID string) (int, error)

	// CountActiveByCode counts active accounts carrying the given code,
	// excluding the account with excludeID when non-empty.
	CountActiveByCode(ctx context.Context, code string, excludeID string) (int, error)

	// TypeSummary counts active accounts grouped by account type, ordered by type.
	TypeSummary(ctx context.Context) ([]domain.AccountTypeCount, error)
}

// AccountWriter defines write operations for chart-of-accounts data.
type AccountWriter interface {
	// NextAccountID reserves the next COA-<sequence> identifier.
	NextAccountID(ctx context.Context) (string, error)

	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive. It never cascades.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
