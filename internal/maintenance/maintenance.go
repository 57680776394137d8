// Package maintenance runs periodic background tasks as Go tickers: sampling
// the store's connection pool into Prometheus gauges and pinging the database
// so outages show up in the logs before a request hits them.
package maintenance

import (
	"context"
	"log/slog"
	"time"

	"github.com/matchday/matchday-api/internal/db"
	"github.com/matchday/matchday-api/internal/metrics"
)

// Store is what the maintenance tasks read from.
type Store interface {
	Ping(ctx context.Context) error
	Stats() db.PoolStats
}

// Config controls maintenance task intervals. Zero duration disables a task.
type Config struct {
	PoolStatsInterval time.Duration // Connection pool gauges
	PingInterval      time.Duration // Database liveness probe
}

// DefaultConfig returns sensible production defaults.
func DefaultConfig() Config {
	return Config{
		PoolStatsInterval: 30 * time.Second,
		PingInterval:      time.Minute,
	}
}

// Start launches all configured maintenance tickers. Blocks until ctx is
// cancelled. Intended to be called with `go`.
func Start(ctx context.Context, store Store, cfg Config, logger *slog.Logger) {
	logger.Info("Maintenance tickers started",
		"pool_stats", cfg.PoolStatsInterval,
		"ping", cfg.PingInterval)

	tickers := make([]*time.Ticker, 0, 2)
	defer func() {
		for _, t := range tickers {
			t.Stop()
		}
	}()

	if cfg.PoolStatsInterval > 0 {
		SamplePoolStats(store)
		t := time.NewTicker(cfg.PoolStatsInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, func() { SamplePoolStats(store) })
	}

	if cfg.PingInterval > 0 {
		t := time.NewTicker(cfg.PingInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, func() { pingDatabase(ctx, store, logger) })
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

// SamplePoolStats copies the store's pool snapshot into the DB gauges.
func SamplePoolStats(store Store) {
	s := store.Stats()
	metrics.DBConnectionsTotal.Set(float64(s.Total))
	metrics.DBConnectionsActive.Set(float64(s.InUse))
	metrics.DBConnectionsIdle.Set(float64(s.Idle))
}

// pingDatabase logs when the database stops answering. It never exits the
// process; /health/db reports the same condition to load balancers.
func pingDatabase(ctx context.Context, store Store, logger *slog.Logger) {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	start := time.Now()
	if err := store.Ping(pingCtx); err != nil {
		logger.Warn("Database ping failed", "error", err,
			"duration", time.Since(start).Round(time.Millisecond))
	}
}
