package pgsql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/tribopay/pix_admin_backend/internal/core/domain"
	portsrepo "github.com/tribopay/pix_admin_backend/internal/core/ports/repositories"
	"github.com/tribopay/pix_admin_backend/internal/models"
)

type PgxBalanceRepository struct {
	pool *pgxpool.Pool
}

// newPgxBalanceRepository creates a new repository for cached balances.
func newPgxBalanceRepository(pool *pgxpool.Pool) portsrepo.BalanceRepository {
	return &PgxBalanceRepository{pool: pool}
}

var _ portsrepo.BalanceRepository = (*PgxBalanceRepository)(nil)

// UpsertBalance atomically inserts or replaces the balance row for an
// account. The ON CONFLICT clause makes concurrent writers last-writer-wins
// at row granularity; a row is never half old, half new.
func (r *PgxBalanceRepository) UpsertBalance(ctx context.Context, bankAccountID string, balance, blockedBalance decimal.Decimal, rawEntry json.RawMessage, updatedAt time.Time) error {
	query := `
		INSERT INTO account_balances (bank_account_id, balance, blocked_balance, raw_entry_json, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (bank_account_id) DO UPDATE
		SET balance = EXCLUDED.balance,
		    blocked_balance = EXCLUDED.blocked_balance,
		    raw_entry_json = EXCLUDED.raw_entry_json,
		    updated_at = EXCLUDED.updated_at;
	`
	_, err := r.pool.Exec(ctx, query, bankAccountID, balance, blockedBalance, rawEntry, updatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert balance for account %s: %w", bankAccountID, err)
	}
	return nil
}

// ListBalances retrieves all cached balances joined with their account's
// label, type and holder, newest first.
func (r *PgxBalanceRepository) ListBalances(ctx context.Context) ([]domain.AccountBalance, error) {
	query := `
		SELECT ab.bank_account_id, ab.balance, ab.blocked_balance, ab.raw_entry_json, ab.updated_at,
		       ba.label, ba.type, ba.holder_name
		FROM account_balances ab
		JOIN bank_accounts ba ON ba.account_id = ab.bank_account_id
		ORDER BY ab.updated_at DESC;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list balances: %w", err)
	}
	defer rows.Close()

	balances := make([]domain.AccountBalance, 0)
	for rows.Next() {
		var m models.AccountBalance
		var label, holder string
		var accType models.AccountType
		if err := rows.Scan(&m.BankAccountID, &m.Balance, &m.BlockedBalance, &m.RawEntryJSON, &m.UpdatedAt, &label, &accType, &holder); err != nil {
			return nil, fmt.Errorf("failed to scan balance row: %w", err)
		}
		balances = append(balances, domain.AccountBalance{
			BankAccountID:  m.BankAccountID,
			Balance:        m.Balance,
			BlockedBalance: m.BlockedBalance,
			RawEntryJSON:   m.RawEntryJSON,
			UpdatedAt:      m.UpdatedAt,
			AccountLabel:   label,
			AccountType:    domain.AccountType(accType),
			HolderName:     holder,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating balance rows: %w", err)
	}
	return balances, nil
}
