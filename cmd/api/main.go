package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"callcrm_backend/internal/calllogs"
	calllogsservice "callcrm_backend/internal/calllogs/service"
	"callcrm_backend/internal/campaigns"
	"callcrm_backend/internal/events"
	apphttp "callcrm_backend/internal/http"
	"callcrm_backend/internal/http/router"
	"callcrm_backend/internal/leads"
	"callcrm_backend/internal/leads/scoring"
	"callcrm_backend/internal/places"
	"callcrm_backend/internal/realtime"
	"callcrm_backend/internal/scheduler"
	"callcrm_backend/migrations"
	"callcrm_backend/platform/config"
	"callcrm_backend/platform/db"
	"callcrm_backend/platform/logger"
	"callcrm_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, migrations.FS)
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

	reminderScheduler, closeScheduler := initReminderScheduler(cfg, log)
	if closeScheduler != nil {
		defer closeScheduler()
	}

	// Scoring engine, optionally tuned via a YAML weights file
	scoringCfg, err := scoring.LoadConfig(cfg.GetScoringConfigPath())
	if err != nil {
		log.Error("failed to load scoring config", "error", err)
		panic("failed to load scoring config: " + err.Error())
	}
	engine := scoring.NewEngine(scoringCfg)

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Realtime module subscribes to domain events and relays them to
	// WebSocket clients.
	realtimeModule := realtime.NewModule(eventBus, log)

	leadsModule := leads.NewModule(pool, eventBus, engine, val, log)
	campaignsModule := campaigns.NewModule(pool, eventBus, val)
	callLogsModule := calllogs.NewModule(pool, leadsModule.Repository(), reminderScheduler, eventBus, val, log)
	placesModule := places.NewModule(cfg, leadsModule.Repository(), eventBus, val, log)

	// Embedded reminder worker: callback.due events published here reach
	// the WebSocket clients of this process. Run cmd/worker instead when
	// reminder processing should live in its own process.
	if cfg.GetRedisURL() != "" {
		worker, err := scheduler.NewWorker(cfg, pool, eventBus, log)
		if err != nil {
			log.Error("failed to initialize reminder worker", "error", err)
			panic("failed to initialize reminder worker: " + err.Error())
		}
		go worker.Run(ctx)
		log.Info("reminder worker started")
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
			leadsModule,
			campaignsModule,
			callLogsModule,
			placesModule,
			realtimeModule,
		},
	}

	engineHTTP := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engineHTTP.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		realtimeModule.Hub().Shutdown(shutdownCtx)
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func initReminderScheduler(cfg config.SchedulerConfig, log *logger.Logger) (calllogsservice.ReminderScheduler, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; callback reminders disabled")
		return nil, nil
	}

	reminderClient, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize reminder scheduler client", "error", err)
		return nil, nil
	}

	return reminderClient, func() {
		_ = reminderClient.Close()
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
