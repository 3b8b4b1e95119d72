package jobs_test

import (
	"context"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tribopay/pix_admin_backend/internal/core/domain"
	"github.com/tribopay/pix_admin_backend/internal/jobs"
)

// fakeSyncSvc counts passes and signals each one on a channel.
type fakeSyncSvc struct {
	calls  atomic.Int32
	passed chan struct{}
}

func newFakeSyncSvc() *fakeSyncSvc {
	return &fakeSyncSvc{passed: make(chan struct{}, 16)}
}

func (f *fakeSyncSvc) SyncAll(ctx context.Context) (domain.SyncSummary, error) {
	f.calls.Add(1)
	f.passed <- struct{}{}
	return domain.SyncSummary{Results: []domain.RefreshResult{}}, nil
}

func (f *fakeSyncSvc) RefreshBalances(ctx context.Context, actor domain.Actor) (domain.SyncSummary, error) {
	return f.SyncAll(ctx)
}

func waitForPass(t *testing.T, svc *fakeSyncSvc) {
	t.Helper()
	select {
	case <-svc.passed:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a sync pass")
	}
}

func TestBalanceUpdater_WarmupAndPeriodicPasses(t *testing.T) {
	svc := newFakeSyncSvc()
	updater := jobs.NewBalanceUpdater(svc, slog.Default(), 5*time.Millisecond, 30*time.Millisecond)

	updater.Start(context.Background())
	defer updater.Stop()

	waitForPass(t, svc) // warm-up
	waitForPass(t, svc) // first periodic tick

	require.GreaterOrEqual(t, svc.calls.Load(), int32(2))
}

func TestBalanceUpdater_StopHaltsScheduling(t *testing.T) {
	svc := newFakeSyncSvc()
	updater := jobs.NewBalanceUpdater(svc, slog.Default(), time.Millisecond, 10*time.Millisecond)

	updater.Start(context.Background())
	waitForPass(t, svc)
	updater.Stop()

	before := svc.calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, before, svc.calls.Load(), "no passes should run after Stop")
}

func TestBalanceUpdater_ContextCancelStops(t *testing.T) {
	svc := newFakeSyncSvc()
	ctx, cancel := context.WithCancel(context.Background())
	updater := jobs.NewBalanceUpdater(svc, slog.Default(), time.Millisecond, 10*time.Millisecond)

	updater.Start(ctx)
	waitForPass(t, svc)
	cancel()
	time.Sleep(20 * time.Millisecond)

	before := svc.calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, before, svc.calls.Load(), "no passes should run after cancel")
}
