package cache

import (
	"context"

	"github.com/chainkit/slices/logger"
)

// StatsTask logs the cache's hit/miss/eviction counters on a schedule. It
// implements scheduler.PeriodicTaskInterface, the same shape
// tokenized-pkg uses for its periodic housekeeping jobs.
type StatsTask struct {
	Cache *TxCache
}

// Run logs a single stats line. It is invoked by scheduler.PeriodicTask at
// whatever frequency cmd/sliceinspect configures.
func (t *StatsTask) Run(ctx context.Context) {
	stats := t.Cache.Stats()
	logger.InfoWithFields(ctx, []logger.Field{
		logger.Uint64("hits", stats.Hits),
		logger.Uint64("misses", stats.Misses),
		logger.Uint64("evictions", stats.Evictions),
		logger.Int("size", stats.Size),
	}, "Tx cache stats")
}
