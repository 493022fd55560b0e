// Package maintenance runs periodic background tasks as Go tickers. All
// scheduled work is driven from Go since the API is already a persistent,
// long-running service (required for LISTEN/NOTIFY).
package maintenance

import (
	"context"
	"log/slog"
	"time"
)

// RecordPruner is the slice of the record store that supports pruning.
// Implemented by the SQLite store; the in-memory store opts out.
type RecordPruner interface {
	PruneStale(maxAge time.Duration) (int64, error)
}

// RecommendationPruner removes old AI training recommendations from the
// database. Implemented by the remote client.
type RecommendationPruner interface {
	PruneRecommendations(ctx context.Context, maxAge time.Duration) (int64, error)
}

// Config controls maintenance task intervals. Zero duration disables a task.
type Config struct {
	CacheCleanupInterval time.Duration // stale record-store rows
	CacheStaleAge        time.Duration
	PlanCleanupInterval  time.Duration // old training recommendations
	PlanRetention        time.Duration
}

// DefaultConfig returns sensible production defaults.
func DefaultConfig() Config {
	return Config{
		CacheCleanupInterval: 1 * time.Hour,
		CacheStaleAge:        30 * 24 * time.Hour,
		PlanCleanupInterval:  24 * time.Hour,
		PlanRetention:        90 * 24 * time.Hour,
	}
}

// Start launches all configured maintenance tickers. Either pruner may be
// nil. Blocks until ctx is cancelled. Intended to be called with `go`.
func Start(ctx context.Context, records RecordPruner, plans RecommendationPruner, cfg Config, logger *slog.Logger) {
	logger.Info("Maintenance tickers started",
		"cache_cleanup", cfg.CacheCleanupInterval,
		"plan_cleanup", cfg.PlanCleanupInterval)

	tickers := make([]*time.Ticker, 0, 2)
	defer func() {
		for _, t := range tickers {
			t.Stop()
		}
	}()

	if records != nil && cfg.CacheCleanupInterval > 0 {
		t := time.NewTicker(cfg.CacheCleanupInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, func() { pruneRecords(records, cfg.CacheStaleAge, logger) })
	}

	if plans != nil && cfg.PlanCleanupInterval > 0 {
		t := time.NewTicker(cfg.PlanCleanupInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, func() { prunePlans(ctx, plans, cfg.PlanRetention, logger) })
	}

	<-ctx.Done()
	logger.Info("Maintenance tickers stopped")
}

func runLoop(ctx context.Context, ch <-chan time.Time, fn func()) {
	for {
		select {
		case <-ch:
			fn()
		case <-ctx.Done():
			return
		}
	}
}

// --------------------------------------------------------------------------
// Task implementations
// --------------------------------------------------------------------------

// pruneRecords drops record-store rows that have not been written for longer
// than the stale age. A team whose cache is pruned simply re-resolves its
// sources on the next request.
func pruneRecords(records RecordPruner, maxAge time.Duration, logger *slog.Logger) {
	n, err := records.PruneStale(maxAge)
	if err != nil {
		logger.Warn("Cache cleanup failed", "error", err)
		return
	}
	if n > 0 {
		logger.Info("Cache cleanup: pruned stale record-store rows", "count", n)
	}
}

// prunePlans removes training recommendations past their retention window.
func prunePlans(ctx context.Context, plans RecommendationPruner, retention time.Duration, logger *slog.Logger) {
	n, err := plans.PruneRecommendations(ctx, retention)
	if err != nil {
		logger.Warn("Plan cleanup failed", "error", err)
		return
	}
	if n > 0 {
		logger.Info("Plan cleanup: removed old recommendations", "count", n)
	}
}
