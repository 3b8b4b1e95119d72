package repositories

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tribopay/pix_admin_backend/internal/core/domain"
)

// BalanceRepository defines persistence for cached account balances.
type BalanceRepository interface {
	// UpsertBalance atomically inserts or replaces the balance row keyed by
	// bankAccountID. Last writer wins; there is never more than one row per
	// account.
	UpsertBalance(ctx context.Context, bankAccountID string, balance, blockedBalance decimal.Decimal, rawEntry json.RawMessage, updatedAt time.Time) error

	// ListBalances retrieves all cached balances joined with their account's
	// label, type and holder, newest first.
	ListBalances(ctx context.Context) ([]domain.AccountBalance, error)
}
