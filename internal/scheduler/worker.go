package scheduler

import (
	"context"
	"fmt"

	"traseu_backend/internal/geocode"
	"traseu_backend/internal/routing"
	"traseu_backend/platform/config"
	"traseu_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// Worker consumes warmup tasks and recomputes routes so that popular
// endpoint pairs stay warm in the cache across the TTL.
type Worker struct {
	server   *asynq.Server
	mux      *asynq.ServeMux
	resolver *geocode.Service
	engine   *routing.Service
	log      *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, resolver *geocode.Service, engine *routing.Service, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:   server,
		mux:      mux,
		resolver: resolver,
		engine:   engine,
		log:      log,
	}

	mux.HandleFunc(TaskRouteWarmup, w.handleRouteWarmup)

	return w, nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

func (w *Worker) handleRouteWarmup(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseRouteWarmupPayload(task)
	if err != nil {
		return err
	}

	from, ok := w.resolveEndpoint(ctx, payload.FromName)
	if !ok {
		w.log.Warn("warmup endpoint no longer resolves", "name", payload.FromName)
		return nil
	}
	to, ok := w.resolveEndpoint(ctx, payload.ToName)
	if !ok {
		w.log.Warn("warmup endpoint no longer resolves", "name", payload.ToName)
		return nil
	}

	// WarmRoute restarts the entry's TTL without recording a view.
	// Unroutable pairs are not worth a retry.
	if err := w.engine.WarmRoute(ctx, from, to); err != nil {
		w.log.Warn("route warmup failed", "from", payload.FromName, "to", payload.ToName, "error", err)
	}
	return nil
}

func (w *Worker) resolveEndpoint(ctx context.Context, name string) (routing.PlanEndpoint, bool) {
	candidates := w.resolver.Resolve(ctx, name)
	if len(candidates) == 0 {
		return routing.PlanEndpoint{}, false
	}

	best := candidates[0]
	return routing.PlanEndpoint{
		Name:      best.Name,
		Latitude:  best.Latitude,
		Longitude: best.Longitude,
	}, true
}
