// Package watch keeps the current sun elevation at a set of places exported
// as prometheus gauges.
package watch

import (
	"context"
	"time"

	"github.com/spencer-p/sunelevation/pkg/cache"
	"github.com/spencer-p/sunelevation/pkg/config"
	"github.com/spencer-p/sunelevation/pkg/logger"
	"github.com/spencer-p/sunelevation/pkg/metrics"
	"github.com/spencer-p/sunelevation/pkg/solar"
)

const defaultInterval = time.Minute

// Watcher refreshes the elevation gauges every Interval.
type Watcher struct {
	Places []config.Place
	// Interval defaults to one minute.
	Interval time.Duration

	// Cache, if set, is swept of expired entries on every tick.
	Cache *cache.Timed

	// Now defaults to time.Now.
	Now func() time.Time
}

// Run ticks until ctx is done. The first tick happens immediately.
func (w *Watcher) Run(ctx context.Context) {
	interval := w.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	ctx = logger.WithName(ctx, "watch")
	logger.InfoKV(ctx, "starting", "places", len(w.Places), "interval", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		w.Tick(ctx)
		select {
		case <-ctx.Done():
			logger.Infof(ctx, "stopping: %v", ctx.Err())
			return
		case <-ticker.C:
		}
	}
}

// Tick updates every gauge once and sweeps the cache.
func (w *Watcher) Tick(ctx context.Context) {
	now := w.now()
	for _, p := range w.Places {
		e := solar.Elevation(p.Observer, now)
		metrics.SetPlaceElevation(p.Name, e)
		logger.DebugKV(ctx, "elevation", "place", p.Name, "degrees", e)
	}
	if w.Cache != nil {
		if n := w.Cache.Sweep(); n > 0 {
			logger.DebugKV(ctx, "swept cache", "expired", n)
		}
	}
}

func (w *Watcher) now() time.Time {
	if w.Now != nil {
		return w.Now()
	}
	return time.Now()
}
