package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"garage_portal_backend/internal/catalog"
	"garage_portal_backend/internal/estimate"
	apphttp "garage_portal_backend/internal/http"
	"garage_portal_backend/internal/http/router"
	"garage_portal_backend/internal/notification"
	"garage_portal_backend/internal/session"
	"garage_portal_backend/internal/vehicle"
	"garage_portal_backend/internal/wizard"
	"garage_portal_backend/platform/config"
	"garage_portal_backend/platform/events"
	"garage_portal_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr, "profile", cfg.PricingProfile)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	store := initSessionStore(ctx, cfg, log)
	if closer, ok := store.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	taskCatalog, err := catalog.Load()
	if err != nil {
		log.Error("failed to load task catalog", "error", err)
		panic("failed to load task catalog: " + err.Error())
	}
	log.Info("task catalog loaded", "tasks", taskCatalog.Len())

	profile, err := estimate.ProfileByName(cfg.GetPricingProfile())
	if err != nil {
		log.Error("failed to resolve pricing profile", "error", err)
		panic("failed to resolve pricing profile: " + err.Error())
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Notification module subscribes to domain events (not HTTP-facing)
	if cfg.GetEmailEnabled() {
		notificationModule := notification.NewModule(notification.NewSMTPSender(cfg), log)
		notificationModule.Subscribe(eventBus)
		log.Info("confirmation emails enabled", "smtpHost", cfg.GetSMTPHost())
	}

	vehicleModule := vehicle.NewModule(cfg, profile.AllowedBrands, log)
	calculator := estimate.NewCalculator(profile, taskCatalog)
	wizardModule := wizard.NewModule(store, vehicleModule.Service(), calculator, taskCatalog, eventBus, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:  cfg,
		Logger:  log,
		Cookies: session.NewCookieManager(cfg, log),
		Modules: []apphttp.Module{
			wizardModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// initSessionStore connects to Redis when configured and falls back to the
// in-memory store otherwise. Without Redis, estimates do not survive a
// restart; fine for development, logged so nobody is surprised in production.
func initSessionStore(ctx context.Context, cfg *config.Config, log *logger.Logger) session.Store {
	if !cfg.IsRedisEnabled() {
		log.Warn("REDIS_ADDR not configured; using in-memory session store")
		return session.NewMemoryStore()
	}

	redisStore := session.NewRedisStore(cfg)
	if err := withRetry(ctx, log, "redis connection", 5, 2*time.Second, func() error {
		return redisStore.Ping(ctx)
	}); err != nil {
		log.Error("failed to connect to redis", "error", err)
		panic("failed to connect to redis: " + err.Error())
	}
	log.Info("redis connection established", "addr", cfg.GetRedisAddr())

	return redisStore
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
