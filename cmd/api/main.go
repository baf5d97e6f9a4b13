package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"traseu_backend/internal/advisory"
	"traseu_backend/internal/borders"
	"traseu_backend/internal/events"
	"traseu_backend/internal/geocode"
	apphttp "traseu_backend/internal/http"
	"traseu_backend/internal/http/router"
	"traseu_backend/internal/poi"
	"traseu_backend/internal/routecache"
	"traseu_backend/internal/routing"
	"traseu_backend/internal/scheduler"
	"traseu_backend/internal/stats"
	"traseu_backend/migrations"
	"traseu_backend/platform/config"
	"traseu_backend/platform/db"
	"traseu_backend/platform/logger"
	"traseu_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, migrations.FS, ".")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Process-wide route and search cache
	cache := routecache.New(cfg)

	// Search results can optionally live in Redis so multiple instances
	// share them; routes always stay in process memory.
	var searchStore geocode.SearchCache = cache
	if cfg.GetRedisURL() != "" {
		redisStore, err := routecache.NewRedisSearchStore(cfg, log)
		if err != nil {
			log.Error("failed to initialize redis search cache", "error", err)
			panic("failed to initialize redis search cache: " + err.Error())
		}
		defer func() {
			_ = redisStore.Close()
		}()
		searchStore = redisStore
		log.Info("redis search cache enabled")
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Shared validator instance for dependency injection
	val := validator.New()

	geocodeModule := geocode.NewModule(pool, searchStore, cfg, log)
	routingModule := routing.NewModule(cache, eventBus, cfg, val, log)
	bordersModule := borders.NewModule(cfg, log)

	advisoryModule, err := advisory.NewModule()
	if err != nil {
		log.Error("failed to initialize advisory module", "error", err)
		panic("failed to initialize advisory module: " + err.Error())
	}

	poiModule := poi.NewModule(cfg, log)

	// Stats subscribes to RouteComputed events (not only HTTP-facing)
	statsModule := stats.NewModule(pool, eventBus, log)

	// Wire enrichment stages into the route summary fan-out
	routingModule.Service().SetEnrichers(bordersModule.Detector(), advisoryModule.Service(), poiModule.Service())

	// Cache warmup runs inside the API process so recomputed routes land in
	// the live route cache users hit. asynq spreads the tasks across
	// instances when several share the queue.
	if cfg.GetRedisURL() != "" {
		warmupClient, err := scheduler.NewClient(cfg)
		if err != nil {
			log.Error("failed to initialize warmup client", "error", err)
			panic("failed to initialize warmup client: " + err.Error())
		}
		defer func() {
			_ = warmupClient.Close()
		}()

		warmupWorker, err := scheduler.NewWorker(cfg, geocodeModule.Service(), routingModule.Service(), log)
		if err != nil {
			log.Error("failed to initialize warmup worker", "error", err)
			panic("failed to initialize warmup worker: " + err.Error())
		}

		dispatcher := scheduler.NewWarmupDispatcher(cfg, statsModule.Service(), warmupClient, log)
		go dispatcher.Run(ctx)
		go warmupWorker.Run(ctx)
		log.Info("route cache warmup enabled")
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			geocodeModule,
			routingModule,
			bordersModule,
			advisoryModule,
			poiModule,
			statsModule,
		},
	}

	engine := router.New(app)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown failed", "error", err)
		}
	case err := <-srvErr:
		if err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
