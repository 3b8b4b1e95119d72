package services

import (
	"context"

	"github.com/tribopay/pix_admin_backend/internal/core/domain"
	"github.com/tribopay/pix_admin_backend/internal/dto"
)

// BankAccountReaderSvc defines read operations for bank account data.
type BankAccountReaderSvc interface {
	// GetAccountByID retrieves a specific account with full (unmasked) data.
	GetAccountByID(ctx context.Context, accountID string) (*domain.BankAccount, error)

	// ListAccounts retrieves all active accounts ordered by type.
	ListAccounts(ctx context.Context) ([]domain.BankAccount, error)
}

// BankAccountWriterSvc defines write operations for bank account data. Every
// mutation records an audit entry attributed to the actor.
type BankAccountWriterSvc interface {
	// CreateAccount persists a new account.
	CreateAccount(ctx context.Context, req dto.CreateBankAccountRequest, actor domain.Actor) (*domain.BankAccount, error)

	// UpdateAccount updates an existing active account's details.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateBankAccountRequest, actor domain.Actor) (*domain.BankAccount, error)

	// DeactivateAccount soft-deletes an account.
	DeactivateAccount(ctx context.Context, accountID string, actor domain.Actor) error
}

// BankAccountSvcFacade combines all bank-account service interfaces.
type BankAccountSvcFacade interface {
	BankAccountReaderSvc
	BankAccountWriterSvc
}
