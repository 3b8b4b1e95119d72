package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/tribopay/pix_admin_backend/internal/core/domain"
	portsrepo "github.com/tribopay/pix_admin_backend/internal/core/ports/repositories"
	portssvc "github.com/tribopay/pix_admin_backend/internal/core/ports/services"
)

const (
	// syncWindow is the account-activity window queried for each account.
	// The gateway needs a date range to answer; the balance in the response
	// is current regardless of the window.
	syncWindow = 7 * 24 * time.Hour

	syncPageSize  = 50
	syncPageIndex = 0
)

// balanceService caches gateway balances and runs the reconciliation passes
// that refresh them. The running flag guarantees at most one pass at a time
// across the periodic schedule and manual triggers; a trigger that loses the
// race is dropped, not queued.
type balanceService struct {
	BaseService
	accountRepo portsrepo.BankAccountReader
	balanceRepo portsrepo.BalanceRepository
	gateway     portssvc.BankingGateway
	audit       portssvc.AuditSvc

	// pause is the delay between consecutive account queries within a pass,
	// to stay clear of gateway rate limits.
	pause time.Duration

	running atomic.Bool
}

func NewBalanceService(
	accountRepo portsrepo.BankAccountReader,
	balanceRepo portsrepo.BalanceRepository,
	gateway portssvc.BankingGateway,
	audit portssvc.AuditSvc,
	pause time.Duration,
) portssvc.BalanceSvcFacade {
	return &balanceService{
		accountRepo: accountRepo,
		balanceRepo: balanceRepo,
		gateway:     gateway,
		audit:       audit,
		pause:       pause,
	}
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

// ListBalances retrieves all cached balances, newest first.
func (s *balanceService) ListBalances(ctx context.Context) ([]domain.AccountBalance, error) {
	return s.balanceRepo.ListBalances(ctx)
}

// SyncAll runs one reconciliation pass over all eligible accounts. Accounts
// are processed sequentially; a per-account failure is recorded and the pass
// moves on. The pass is skipped entirely when another one is in flight or the
// gateway has no credentials.
func (s *balanceService) SyncAll(ctx context.Context) (domain.SyncSummary, error) {
	if !s.gateway.Configured() {
		s.LogWarn(ctx, "Balance sync skipped: gateway not configured")
		return domain.SyncSummary{Results: []domain.RefreshResult{}, Skipped: true}, nil
	}

	if !s.running.CompareAndSwap(false, true) {
		s.LogInfo(ctx, "Balance sync skipped: another pass is already running")
		return domain.SyncSummary{Results: []domain.RefreshResult{}, Skipped: true}, nil
	}
	defer s.running.Store(false)

	listed, err := s.accountRepo.ListEligibleAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Balance sync aborted: failed to list eligible accounts")
		return domain.SyncSummary{Results: []domain.RefreshResult{}}, fmt.Errorf("failed to list accounts for balance sync: %w", err)
	}

	// The repository already filters, but only active transactional and fee
	// accounts may ever be queried. Anything else is dropped here.
	accounts := make([]domain.BankAccount, 0, len(listed))
	for _, account := range listed {
		if !account.EligibleForSync() {
			s.LogWarn(ctx, "Dropping account not eligible for balance sync",
				slog.String("account_id", account.AccountID),
				slog.String("type", string(account.Type)))
			continue
		}
		accounts = append(accounts, account)
	}

	s.LogInfo(ctx, "Balance sync started", slog.Int("accounts", len(accounts)))

	summary := domain.SyncSummary{Results: make([]domain.RefreshResult, 0, len(accounts))}
	for i, account := range accounts {
		result := s.syncAccount(ctx, account)
		if result.Success {
			summary.SuccessCount++
		} else {
			summary.ErrorCount++
		}
		summary.Results = append(summary.Results, result)

		if i < len(accounts)-1 {
			select {
			case <-ctx.Done():
				s.LogWarn(ctx, "Balance sync interrupted", slog.Int("processed", i+1), slog.Int("total", len(accounts)))
				return summary, nil
			case <-time.After(s.pause):
			}
		}
	}

	s.LogInfo(ctx, "Balance sync finished",
		slog.Int("success_count", summary.SuccessCount),
		slog.Int("error_count", summary.ErrorCount))
	return summary, nil
}

// syncAccount queries the gateway for one account and overwrites its cached
// balance. Errors never propagate; they become a failed RefreshResult.
func (s *balanceService) syncAccount(ctx context.Context, account domain.BankAccount) domain.RefreshResult {
	result := domain.RefreshResult{AccountID: account.AccountID, Label: account.Label}

	end := time.Now()
	entry, err := s.gateway.GetAccountEntryPaged(ctx, portssvc.AccountEntryParams{
		Routing: portssvc.AccountRouting{
			Bank:    account.Bank,
			Branch:  account.Branch,
			Account: account.Account,
			Digit:   account.Digit,
		},
		StartDate: end.Add(-syncWindow),
		EndDate:   end,
		PageSize:  syncPageSize,
		PageIndex: syncPageIndex,
	})
	if err != nil {
		s.LogError(ctx, err, "Balance query failed", slog.String("account_id", account.AccountID), slog.String("label", account.Label))
		result.Error = err.Error()
		return result
	}

	if !entry.Success {
		msg := entry.ErrorDescription
		if msg == "" {
			msg = "gateway reported failure"
		}
		if entry.ErrorCode != "" {
			msg = entry.ErrorCode + ": " + msg
		}
		s.LogWarn(ctx, "Balance query rejected by gateway",
			slog.String("account_id", account.AccountID),
			slog.String("error_code", entry.ErrorCode))
		result.Error = msg
		return result
	}

	if err := s.balanceRepo.UpsertBalance(ctx, account.AccountID, entry.Balance, entry.BlockedBalance, entry.Raw, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to store balance", slog.String("account_id", account.AccountID))
		result.Error = err.Error()
		return result
	}

	balance := entry.Balance
	result.Balance = &balance
	result.Success = true
	return result
}

// RefreshBalances is the manual trigger. It runs a pass synchronously and
// records one audit entry summarizing the outcome.
func (s *balanceService) RefreshBalances(ctx context.Context, actor domain.Actor) (domain.SyncSummary, error) {
	summary, err := s.SyncAll(ctx)
	if err != nil {
		return summary, err
	}

	s.audit.Record(ctx, actor, domain.AuditBalanceRefresh, "account_balances", "", map[string]any{
		"success_count": summary.SuccessCount,
		"error_count":   summary.ErrorCount,
		"skipped":       summary.Skipped,
		"results":       summary.Results,
	})
	return summary, nil
}
