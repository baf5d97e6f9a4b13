package scheduler

import (
	"context"
	"time"

	"traseu_backend/internal/stats"
	"traseu_backend/platform/config"
	"traseu_backend/platform/logger"
)

// WarmupDispatcher periodically enqueues warmup tasks for the most viewed
// endpoint pairs so their cached routes survive TTL expiry.
type WarmupDispatcher struct {
	stats    *stats.Service
	client   *Client
	interval time.Duration
	topN     int
	log      *logger.Logger
}

func NewWarmupDispatcher(cfg config.SchedulerConfig, statsSvc *stats.Service, client *Client, log *logger.Logger) *WarmupDispatcher {
	interval := cfg.GetWarmupInterval()
	if interval <= 0 {
		interval = 6 * time.Hour
	}
	topN := cfg.GetWarmupTopN()
	if topN < 1 {
		topN = 5
	}

	return &WarmupDispatcher{
		stats:    statsSvc,
		client:   client,
		interval: interval,
		topN:     topN,
		log:      log,
	}
}

// Run dispatches one warmup round immediately, then once per interval until
// the context is cancelled.
func (d *WarmupDispatcher) Run(ctx context.Context) {
	d.dispatch(ctx)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.dispatch(ctx)
		}
	}
}

func (d *WarmupDispatcher) dispatch(ctx context.Context) {
	pairs, err := d.stats.TopRoutes(ctx, d.topN)
	if err != nil {
		d.log.Error("failed to load top routes for warmup", "error", err)
		return
	}

	for _, pair := range pairs {
		payload := RouteWarmupPayload{FromName: pair.FromName, ToName: pair.ToName}
		if err := d.client.EnqueueRouteWarmup(ctx, payload); err != nil {
			d.log.Error("failed to enqueue route warmup", "from", pair.FromName, "to", pair.ToName, "error", err)
			continue
		}
	}

	d.log.Info("route warmup round dispatched", "pairs", len(pairs))
}
