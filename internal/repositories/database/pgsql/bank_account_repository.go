package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tribopay/pix_admin_backend/internal/apperrors"
	"github.com/tribopay/pix_admin_backend/internal/core/domain"
	portsrepo "github.com/tribopay/pix_admin_backend/internal/core/ports/repositories"
	"github.com/tribopay/pix_admin_backend/internal/models"
)

type PgxBankAccountRepository struct {
	pool *pgxpool.Pool
}

// newPgxBankAccountRepository creates a new repository for bank account data.
func newPgxBankAccountRepository(pool *pgxpool.Pool) portsrepo.BankAccountRepositoryFacade {
	return &PgxBankAccountRepository{pool: pool}
}

var _ portsrepo.BankAccountRepositoryFacade = (*PgxBankAccountRepository)(nil)

// Helper to convert domain.BankAccount to models.BankAccount for DB storage
func toModelBankAccount(d domain.BankAccount) models.BankAccount {
	return models.BankAccount{
		AccountID:   d.AccountID,
		Label:       d.Label,
		Type:        models.AccountType(d.Type),
		Bank:        d.Bank,
		Branch:      d.Branch,
		Account:     d.Account,
		Digit:       d.Digit,
		AccountKind: d.AccountKind,
		HolderName:  d.HolderName,
		TaxNumber:   d.TaxNumber,
		IsActive:    d.IsActive,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

// Helper to convert models.BankAccount from DB to domain.BankAccount
func toDomainBankAccount(m models.BankAccount) domain.BankAccount {
	return domain.BankAccount{
		AccountID:   m.AccountID,
		Label:       m.Label,
		Type:        domain.AccountType(m.Type),
		Bank:        m.Bank,
		Branch:      m.Branch,
		Account:     m.Account,
		Digit:       m.Digit,
		AccountKind: m.AccountKind,
		HolderName:  m.HolderName,
		TaxNumber:   m.TaxNumber,
		IsActive:    m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const bankAccountColumns = `account_id, label, type, bank, branch, account, digit, account_kind, holder_name, tax_number, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanBankAccount(row pgx.Row) (models.BankAccount, error) {
	var m models.BankAccount
	var taxNumber sql.NullString
	err := row.Scan(
		&m.AccountID,
		&m.Label,
		&m.Type,
		&m.Bank,
		&m.Branch,
		&m.Account,
		&m.Digit,
		&m.AccountKind,
		&m.HolderName,
		&taxNumber,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return m, err
	}
	if taxNumber.Valid {
		m.TaxNumber = taxNumber.String
	}
	return m, nil
}

// SaveAccount inserts a new bank account.
func (r *PgxBankAccountRepository) SaveAccount(ctx context.Context, account domain.BankAccount) error {
	m := toModelBankAccount(account)

	query := `
		INSERT INTO bank_accounts (` + bankAccountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	var taxNumber sql.NullString
	if m.TaxNumber != "" {
		taxNumber = sql.NullString{String: m.TaxNumber, Valid: true}
	}

	_, err := r.pool.Exec(ctx, query,
		m.AccountID,
		m.Label,
		m.Type,
		m.Bank,
		m.Branch,
		m.Account,
		m.Digit,
		m.AccountKind,
		m.HolderName,
		taxNumber,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: account with ID %s already exists", apperrors.ErrDuplicate, m.AccountID)
		}
		return fmt.Errorf("failed to save bank account %s: %w", m.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID. Deactivated accounts are
// not returned.
func (r *PgxBankAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.BankAccount, error) {
	query := `
		SELECT ` + bankAccountColumns + `
		FROM bank_accounts
		WHERE account_id = $1 AND is_active = TRUE;
	`
	m, err := scanBankAccount(r.pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find bank account by ID %s: %w", accountID, err)
	}
	acc := toDomainBankAccount(m)
	return &acc, nil
}

// ListAccounts retrieves all active accounts ordered by type.
func (r *PgxBankAccountRepository) ListAccounts(ctx context.Context) ([]domain.BankAccount, error) {
	query := `
		SELECT ` + bankAccountColumns + `
		FROM bank_accounts
		WHERE is_active = TRUE
		ORDER BY type ASC, label ASC;
	`
	return r.queryAccounts(ctx, query)
}

// ListEligibleAccounts retrieves the accounts subject to balance
// synchronization: active accounts of type transactional or fee.
func (r *PgxBankAccountRepository) ListEligibleAccounts(ctx context.Context) ([]domain.BankAccount, error) {
	query := `
		SELECT ` + bankAccountColumns + `
		FROM bank_accounts
		WHERE type IN ('transactional', 'fee') AND is_active = TRUE;
	`
	return r.queryAccounts(ctx, query)
}

func (r *PgxBankAccountRepository) queryAccounts(ctx context.Context, query string) ([]domain.BankAccount, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list bank accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]domain.BankAccount, 0)
	for rows.Next() {
		m, err := scanBankAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bank account row: %w", err)
		}
		accounts = append(accounts, toDomainBankAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bank account rows: %w", err)
	}
	return accounts, nil
}

// UpdateAccount updates an existing active account's details.
func (r *PgxBankAccountRepository) UpdateAccount(ctx context.Context, account domain.BankAccount) error {
	m := toModelBankAccount(account)

	query := `
		UPDATE bank_accounts
		SET label = $2, type = $3, bank = $4, branch = $5, account = $6, digit = $7,
		    account_kind = $8, holder_name = $9, tax_number = $10,
		    last_updated_at = $11, last_updated_by = $12
		WHERE account_id = $1 AND is_active = TRUE;
	`
	var taxNumber sql.NullString
	if m.TaxNumber != "" {
		taxNumber = sql.NullString{String: m.TaxNumber, Valid: true}
	}

	tag, err := r.pool.Exec(ctx, query,
		m.AccountID,
		m.Label,
		m.Type,
		m.Bank,
		m.Branch,
		m.Account,
		m.Digit,
		m.AccountKind,
		m.HolderName,
		taxNumber,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update bank account %s: %w", m.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateAccount marks an account as inactive. Accounts are never
// hard-deleted.
func (r *PgxBankAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	query := `
		UPDATE bank_accounts
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $1 AND is_active = TRUE;
	`
	tag, err := r.pool.Exec(ctx, query, accountID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate bank account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
