package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tribopay/pix_admin_backend/internal/core/domain"
	portsrepo "github.com/tribopay/pix_admin_backend/internal/core/ports/repositories"
	portssvc "github.com/tribopay/pix_admin_backend/internal/core/ports/services"
	"github.com/tribopay/pix_admin_backend/internal/dto"
)

// bankAccountService implements CRUD over registered bank accounts. Every
// mutation records an audit entry attributed to the acting user.
type bankAccountService struct {
	BaseService
	accountRepo portsrepo.BankAccountRepositoryFacade
	audit       portssvc.AuditSvc
}

func NewBankAccountService(accountRepo portsrepo.BankAccountRepositoryFacade, audit portssvc.AuditSvc) portssvc.BankAccountSvcFacade {
	return &bankAccountService{accountRepo: accountRepo, audit: audit}
}

var _ portssvc.BankAccountSvcFacade = (*bankAccountService)(nil)

// GetAccountByID retrieves a specific account with full (unmasked) data.
func (s *bankAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.BankAccount, error) {
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

// ListAccounts retrieves all active accounts ordered by type.
func (s *bankAccountService) ListAccounts(ctx context.Context) ([]domain.BankAccount, error) {
	return s.accountRepo.ListAccounts(ctx)
}

// CreateAccount persists a new account.
func (s *bankAccountService) CreateAccount(ctx context.Context, req dto.CreateBankAccountRequest, actor domain.Actor) (*domain.BankAccount, error) {
	now := time.Now()
	account := domain.BankAccount{
		AccountID:   uuid.NewString(),
		Label:       req.Label,
		Type:        req.Type,
		Bank:        req.Bank,
		Branch:      req.Branch,
		Account:     req.Account,
		Digit:       req.Digit,
		AccountKind: req.AccountKind,
		HolderName:  req.HolderName,
		TaxNumber:   req.TaxNumber,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}
	if account.AccountKind == "" {
		account.AccountKind = "0" // checking
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to create bank account", slog.String("label", req.Label))
		return nil, fmt.Errorf("failed to create bank account: %w", err)
	}

	s.LogInfo(ctx, "Bank account created", slog.String("account_id", account.AccountID), slog.String("type", string(account.Type)))
	s.audit.Record(ctx, actor, domain.AuditAccountCreated, "bank_account", account.AccountID, map[string]any{
		"label": account.Label,
		"type":  string(account.Type),
	})
	return &account, nil
}

// UpdateAccount replaces the editable fields of an existing active account.
func (s *bankAccountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateBankAccountRequest, actor domain.Actor) (*domain.BankAccount, error) {
	existing, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	existing.Label = req.Label
	existing.Type = req.Type
	existing.Bank = req.Bank
	existing.Branch = req.Branch
	existing.Account = req.Account
	existing.Digit = req.Digit
	existing.HolderName = req.HolderName
	existing.TaxNumber = req.TaxNumber
	if req.AccountKind != "" {
		existing.AccountKind = req.AccountKind
	}
	existing.LastUpdatedAt = time.Now()
	existing.LastUpdatedBy = actor.UserID

	if err := s.accountRepo.UpdateAccount(ctx, *existing); err != nil {
		s.LogError(ctx, err, "Failed to update bank account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update bank account: %w", err)
	}

	s.audit.Record(ctx, actor, domain.AuditAccountUpdated, "bank_account", accountID, map[string]any{
		"label": existing.Label,
	})
	return existing, nil
}

// DeactivateAccount soft-deletes an account. History referencing it survives.
func (s *bankAccountService) DeactivateAccount(ctx context.Context, accountID string, actor domain.Actor) error {
	if err := s.accountRepo.DeactivateAccount(ctx, accountID, actor.UserID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate bank account", slog.String("account_id", accountID))
		return err
	}

	s.LogInfo(ctx, "Bank account deactivated", slog.String("account_id", accountID))
	s.audit.Record(ctx, actor, domain.AuditAccountDeleted, "bank_account", accountID, nil)
	return nil
}
