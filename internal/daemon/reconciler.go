package daemon

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/wrensk/windrag/internal/x11"
)

// ReconcilerConfig holds configuration for the reconciler.
type ReconcilerConfig struct {
	Interval time.Duration
	Logger   *slog.Logger
}

// Reconciler periodically re-reads the monitor layout and drops tracked
// windows that vanished without a destroy event. Both corrections run
// under the plugin's lock so they never race a drag in progress.
type Reconciler struct {
	interval time.Duration
	screen   *x11.Screen
	locker   sync.Locker
	logger   *slog.Logger
}

// NewReconciler creates a new reconciler with the given configuration.
// The locker must be the same lock that serializes the event loop.
func NewReconciler(cfg ReconcilerConfig, screen *x11.Screen, locker sync.Locker) *Reconciler {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 10 * time.Second
	}

	return &Reconciler{
		interval: interval,
		screen:   screen,
		locker:   locker,
		logger:   cfg.Logger,
	}
}

// Run starts the reconciliation loop. Blocks until context is cancelled.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("reconciler started", "interval", r.interval)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("reconciler stopped")
			return
		case <-ticker.C:
			r.reconcile()
		}
	}
}

// reconcile performs a single reconciliation pass.
func (r *Reconciler) reconcile() {
	// Recover from panics to prevent crashing the daemon
	defer func() {
		if err := recover(); err != nil {
			r.logger.Error("reconciler panic recovered", "error", err)
		}
	}()

	r.locker.Lock()
	defer r.locker.Unlock()

	if err := r.screen.RefreshOutputs(); err != nil {
		r.logger.Error("reconciler: failed to refresh outputs", "error", err)
		return
	}

	if pruned := r.screen.PruneViews(); pruned > 0 {
		r.logger.Info("reconciler: dropped vanished windows", "count", pruned)
	}
}

// ReconcileNow triggers an immediate reconciliation pass.
func (r *Reconciler) ReconcileNow() {
	r.reconcile()
}
