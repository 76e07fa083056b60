package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nusantara-construction/ledger-backend/internal/apperrors"
	"github.com/nusantara-construction/ledger-backend/internal/core/domain"
	portsrepo "github.com/nusantara-construction/ledger-backend/internal/core/ports/repositories"
	portssvc "github.com/nusantara-construction/ledger-backend/internal/core/ports/services"
	"github.com/nusantara-construction/ledger-backend/internal/dto"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	now         func() time.Time
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithAccountClock overrides the service clock, used by tests.
func WithAccountClock(now func() time.Time) AccountServiceOption {
	return func(s *accountService) {
		s.now = now
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo: repo,
		now:         time.Now,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	// The code must be unique among active accounts. The UNIQUE constraint
	// backs this up for concurrent creates.
	count, err := s.accountRepo.CountActiveByCode(ctx, req.Code, "")
	if err != nil {
		s.LogError(ctx, err, "Failed to check account code uniqueness",
			slog.String("account_code", req.Code))
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: account code %s is already in use", apperrors.ErrDuplicate, req.Code)
	}

	level := 1
	parentID := ""
	if req.ParentAccountID != nil && *req.ParentAccountID != "" {
		parentID = *req.ParentAccountID
		parent, err := s.accountRepo.FindAccountByID(ctx, parentID)
		if err != nil {
			s.LogError(ctx, err, "Failed to find parent account",
				slog.String("parent_id", parentID))
			return nil, fmt.Errorf("invalid parent account: %w", err)
		}
		if !parent.IsActive {
			return nil, fmt.Errorf("%w: parent account %s is inactive", apperrors.ErrValidation, parentID)
		}
		if parent.Level >= domain.MaxAccountLevel {
			return nil, fmt.Errorf("%w: parent account %s is already at the maximum level", apperrors.ErrValidation, parentID)
		}
		level = parent.Level + 1
	}

	normalBalance := domain.NormalBalance(req.NormalBalance)
	if normalBalance == "" {
		normalBalance = domain.DefaultNormalBalance(domain.AccountType(req.AccountType))
	}

	accountID, err := s.accountRepo.NextAccountID(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to reserve account id")
		return nil, err
	}

	now := s.now()
	account := domain.Account{
		AccountID:            accountID,
		Code:                 req.Code,
		Name:                 req.Name,
		AccountType:          domain.AccountType(req.AccountType),
		SubType:              req.SubType,
		NormalBalance:        normalBalance,
		Level:                level,
		ParentAccountID:      parentID,
		IsActive:             true,
		// A new account has no children yet, so it cannot be a control account.
		IsControlAccount:     false,
		ConstructionSpecific: req.ConstructionSpecific,
		ProjectCostCenter:    req.ProjectCostCenter,
		CurrentBalance:       decimal.Zero,
		SubsidiaryID:         req.SubsidiaryID,
		Description:          req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     req.CreatedBy,
			LastUpdatedAt: now,
			LastUpdatedBy: req.CreatedBy,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account",
			slog.String("account_id", account.AccountID),
			slog.String("account_code", account.Code))
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("account_code", account.Code),
		slog.Int("level", account.Level))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID",
				slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by code",
				slog.String("account_code", code))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, filter portsrepo.AccountFilter) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, err
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

// GetHierarchy builds the active account tree. The flat list arrives ordered
// by code, so children attach in code order; accounts whose parent falls
// outside the filtered set surface as roots.
func (s *accountService) GetHierarchy(ctx context.Context, filter portsrepo.AccountFilter) ([]*domain.AccountNode, error) {
	active := true
	filter.IsActive = &active

	accounts, err := s.accountRepo.ListAccounts(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts for hierarchy")
		return nil, err
	}

	nodes := make(map[string]*domain.AccountNode, len(accounts))
	for i := range accounts {
		nodes[accounts[i].AccountID] = &domain.AccountNode{
			Account:  accounts[i],
			Children: []*domain.AccountNode{},
		}
	}

	roots := []*domain.AccountNode{}
	for i := range accounts {
		node := nodes[accounts[i].AccountID]
		if parent, ok := nodes[accounts[i].ParentAccountID]; ok {
			parent.Children = append(parent.Children, node)
		} else {
			roots = append(roots, node)
		}
	}

	return roots, nil
}

func (s *accountService) ListCashAccounts(ctx context.Context) (*domain.CashBalances, error) {
	accounts, err := s.accountRepo.ListCashAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list cash accounts")
		return nil, err
	}

	total := decimal.Zero
	for _, acc := range accounts {
		total = total.Add(acc.Balance)
	}

	return &domain.CashBalances{
		TotalBalance: total,
		AccountCount: len(accounts),
		Accounts:     accounts,
	}, nil
}

func (s *accountService) GetTypeSummary(ctx context.Context) ([]domain.AccountTypeCount, error) {
	summary, err := s.accountRepo.TypeSummary(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to summarize accounts by type")
		return nil, err
	}
	return summary, nil
}

// UpdateAccount applies a partial update. The account code is immutable and
// level is not recomputed when the parent changes.
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	account, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		account.Name = *req.Name
		updated = true
	}
	if req.SubType != nil {
		account.SubType = *req.SubType
		updated = true
	}
	if req.NormalBalance != nil {
		account.NormalBalance = domain.NormalBalance(*req.NormalBalance)
		updated = true
	}
	if req.ParentAccountID != nil {
		if *req.ParentAccountID != "" {
			if _, err := s.accountRepo.FindAccountByID(ctx, *req.ParentAccountID); err != nil {
				s.LogError(ctx, err, "Failed to find new parent account",
					slog.String("parent_id", *req.ParentAccountID))
				return nil, fmt.Errorf("invalid parent account: %w", err)
			}
		}
		account.ParentAccountID = *req.ParentAccountID
		updated = true
	}
	if req.ConstructionSpecific != nil {
		account.ConstructionSpecific = *req.ConstructionSpecific
		updated = true
	}
	if req.ProjectCostCenter != nil {
		account.ProjectCostCenter = *req.ProjectCostCenter
		updated = true
	}
	if req.SubsidiaryID != nil {
		account.SubsidiaryID = *req.SubsidiaryID
		updated = true
	}
	if req.Description != nil {
		account.Description = *req.Description
		updated = true
	}
	if !updated {
		s.LogDebug(ctx, "No fields provided for account update",
			slog.String("account_id", accountID))
		return account, nil
	}

	account.LastUpdatedAt = s.now()
	account.LastUpdatedBy = req.UpdatedBy

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account",
			slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated successfully",
		slog.String("account_id", account.AccountID))
	return account, nil
}

// DeactivateAccount soft-deletes an account. Deactivation never cascades, so
// an account with active children is rejected.
func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	if _, err := s.GetAccountByID(ctx, accountID); err != nil {
		return err
	}

	children, err := s.accountRepo.CountActiveChildren(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count active children",
			slog.String("account_id", accountID))
		return err
	}
	if children > 0 {
		// The guard is a client error (400) on the wire, so it rides on
		// ErrValidation rather than the 409 conflict sentinels.
		return fmt.Errorf("%w: account %s has %d active child accounts", apperrors.ErrValidation, accountID, children)
	}

	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, s.now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account",
			slog.String("account_id", accountID))
		return err
	}

	s.LogInfo(ctx, "Account deactivated successfully",
		slog.String("account_id", accountID))
	return nil
}
