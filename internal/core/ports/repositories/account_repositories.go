package repositories

import (
	"context"
	"time"

	"github.com/tribopay/pix_admin_backend/internal/core/domain"
)

// BankAccountReader defines read operations for bank account data.
type BankAccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.BankAccount, error)

	// ListAccounts retrieves all active accounts ordered by type.
	ListAccounts(ctx context.Context) ([]domain.BankAccount, error)

	// ListEligibleAccounts retrieves the accounts subject to balance
	// synchronization: active accounts of type transactional or fee.
	ListEligibleAccounts(ctx context.Context) ([]domain.BankAccount, error)
}

// BankAccountWriter defines write operations for bank account data.
type BankAccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.BankAccount) error

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, account domain.BankAccount) error

	// DeactivateAccount marks an account as inactive. Accounts are never
	// hard-deleted.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// BankAccountRepositoryFacade combines all bank-account repository interfaces.
type BankAccountRepositoryFacade interface {
	BankAccountReader
	BankAccountWriter
}
