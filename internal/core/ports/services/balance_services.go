package services

import (
	"context"

	"github.com/tribopay/pix_admin_backend/internal/core/domain"
)

// BalanceReaderSvc exposes the cached balances.
type BalanceReaderSvc interface {
	// ListBalances retrieves all cached balances, newest first.
	ListBalances(ctx context.Context) ([]domain.AccountBalance, error)
}

// BalanceSyncSvc runs balance reconciliation against the banking gateway.
// At most one pass executes at a time; a trigger arriving while a pass is
// running is dropped, not queued.
type BalanceSyncSvc interface {
	// SyncAll runs one reconciliation pass over all eligible accounts.
	// Per-account failures are counted and do not abort the pass. The
	// returned error is non-nil only for whole-run setup failures (eligible
	// account fetch); Skipped is true when the pass never started.
	SyncAll(ctx context.Context) (domain.SyncSummary, error)

	// RefreshBalances is the manual trigger: it runs SyncAll synchronously,
	// records one audit entry summarizing all per-account results, and
	// returns them.
	RefreshBalances(ctx context.Context, actor domain.Actor) (domain.SyncSummary, error)
}

// BalanceSvcFacade combines balance read and sync operations.
type BalanceSvcFacade interface {
	BalanceReaderSvc
	BalanceSyncSvc
}
