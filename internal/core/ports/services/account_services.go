package services

import (
	"context"

	"github.com/nusantara-construction/ledger-backend/internal/core/domain"
	"github.com/nusantara-construction/ledger-backend/internal/core/ports/repositories"
	"github.com/nusantara-construction/ledger-backend/internal/dto"
)

// AccountReaderSvc defines read operations for chart-of-accounts data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// GetAccountByCode retrieves an account by its dotted account code.
	GetAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// ListAccounts retrieves accounts matching the filter, ordered by code.
	ListAccounts(ctx context.Context, filter repositories.AccountFilter) ([]domain.Account, error)

	// GetHierarchy builds the active account tree, parents before children.
	GetHierarchy(ctx context.Context, filter repositories.AccountFilter) ([]*domain.AccountNode, error)

	// ListCashAccounts retrieves active cash/bank detail accounts with balances.
	ListCashAccounts(ctx context.Context) (*domain.CashBalances, error)

	// GetTypeSummary counts active accounts per account type.
	GetTypeSummary(ctx context.Context) ([]domain.AccountTypeCount, error)
}

// AccountWriterSvc defines write operations for chart-of-accounts data
type AccountWriterSvc interface {
	// CreateAccount persists a new account, deriving level and normal balance.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)

	// UpdateAccount applies a partial update; the account code never changes.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)

	// DeactivateAccount marks an account inactive; accounts with active
	// children cannot be deactivated.
	DeactivateAccount(ctx context.Context, accountID string, userID string) error
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
