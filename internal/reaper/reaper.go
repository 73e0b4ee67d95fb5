// Package reaper periodically force-closes ongoing sessions abandoned by
// crashed or silent clients.
package reaper

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Ledger is the subset of the ledger the reaper drives.
type Ledger interface {
	CleanupStale(ctx context.Context, maxAge time.Duration) (int64, error)
}

// Reaper sweeps stale ongoing sessions on a fixed interval. A failed sweep
// is logged and retried on the next tick; it never escalates, since a
// missed sweep only delays cleanup.
type Reaper struct {
	ledger   Ledger
	interval time.Duration
	maxAge   time.Duration
	logger   *slog.Logger

	mu        sync.Mutex
	lastSweep time.Time
}

// New creates a reaper that removes sessions older than maxAge every
// interval.
func New(ledger Ledger, interval, maxAge time.Duration, logger *slog.Logger) *Reaper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reaper{
		ledger:   ledger,
		interval: interval,
		maxAge:   maxAge,
		logger:   logger,
	}
}

// Run sweeps until ctx is canceled.
func (r *Reaper) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("reaper started", "interval", r.interval, "max_age", r.maxAge)
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("reaper stopped")
			return
		case <-ticker.C:
			r.Sweep(ctx)
		}
	}
}

// Sweep runs one cleanup pass. Each pass gets its own id so a failure can
// be correlated across log lines.
func (r *Reaper) Sweep(ctx context.Context) {
	sweepID := uuid.NewString()
	removed, err := r.ledger.CleanupStale(ctx, r.maxAge)
	if err != nil {
		r.logger.Error("stale session sweep failed", "sweep_id", sweepID, "error", err)
		return
	}

	r.mu.Lock()
	r.lastSweep = time.Now()
	r.mu.Unlock()

	if removed > 0 {
		r.logger.Info("stale session sweep finished", "sweep_id", sweepID, "removed", removed)
	}
}

// LastSweep returns when the last successful sweep finished, zero if none
// has yet.
func (r *Reaper) LastSweep() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastSweep
}
