package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	portssvc "github.com/tribopay/pix_admin_backend/internal/core/ports/services"
	"github.com/tribopay/pix_admin_backend/internal/middleware"
)

// BalanceUpdater drives the balance synchronizer on a fixed schedule: one
// warm-up pass shortly after startup, then a pass every interval. The warm-up
// and periodic timers are independent; if they ever coincide the service's
// own guard drops the extra pass.
type BalanceUpdater struct {
	sync     portssvc.BalanceSyncSvc
	logger   *slog.Logger
	warmup   time.Duration
	interval time.Duration

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

func NewBalanceUpdater(syncSvc portssvc.BalanceSyncSvc, logger *slog.Logger, warmup, interval time.Duration) *BalanceUpdater {
	return &BalanceUpdater{
		sync:     syncSvc,
		logger:   logger,
		warmup:   warmup,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the scheduler goroutine. The context bounds each pass; Stop
// or context cancellation shuts the scheduler down.
func (u *BalanceUpdater) Start(ctx context.Context) {
	go u.run(ctx)
}

func (u *BalanceUpdater) run(ctx context.Context) {
	defer close(u.done)

	warmupTimer := time.NewTimer(u.warmup)
	defer warmupTimer.Stop()
	ticker := time.NewTicker(u.interval)
	defer ticker.Stop()

	u.logger.Info("Balance updater started",
		slog.Duration("warmup", u.warmup),
		slog.Duration("interval", u.interval))

	for {
		select {
		case <-warmupTimer.C:
			u.runPass(ctx, "warmup")
		case <-ticker.C:
			u.runPass(ctx, "periodic")
		case <-ctx.Done():
			u.logger.Info("Balance updater stopped", slog.String("reason", "context canceled"))
			return
		case <-u.stop:
			u.logger.Info("Balance updater stopped", slog.String("reason", "shutdown"))
			return
		}
	}
}

func (u *BalanceUpdater) runPass(ctx context.Context, trigger string) {
	runLogger := u.logger.With(
		slog.String("job", "balance_sync"),
		slog.String("run_id", uuid.NewString()),
		slog.String("trigger", trigger),
	)
	runCtx := middleware.ContextWithLogger(ctx, runLogger)

	summary, err := u.sync.SyncAll(runCtx)
	if err != nil {
		runLogger.Error("Scheduled balance sync failed", slog.String("error", err.Error()))
		return
	}
	if summary.Skipped {
		return
	}
	runLogger.Info("Scheduled balance sync completed",
		slog.Int("success_count", summary.SuccessCount),
		slog.Int("error_count", summary.ErrorCount))
}

// Stop shuts the scheduler down and waits for the goroutine to exit. A pass
// already in flight runs to completion.
func (u *BalanceUpdater) Stop() {
	u.stopOnce.Do(func() { close(u.stop) })
	<-u.done
}
