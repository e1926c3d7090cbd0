package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/waheedridwan/geopoints/internal/adapters/http"
	natsadapter "github.com/waheedridwan/geopoints/internal/adapters/nats"
	"github.com/waheedridwan/geopoints/internal/adapters/postgres"
	"github.com/waheedridwan/geopoints/internal/adapters/valkey"
	"github.com/waheedridwan/geopoints/internal/core/ports"
	"github.com/waheedridwan/geopoints/internal/core/usecases"
	"github.com/waheedridwan/geopoints/internal/pkg/auth"
	"github.com/waheedridwan/geopoints/internal/pkg/config"
	"github.com/waheedridwan/geopoints/internal/pkg/logging"
	"github.com/waheedridwan/geopoints/internal/pkg/metrics"
	"github.com/waheedridwan/geopoints/internal/pkg/ratelimit"
	"github.com/waheedridwan/geopoints/internal/pkg/telemetry"
)

const dbMaxConns = 10

func main() {
	cfg, err := config.Load("geopoints-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Structured logging
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logging.Setup(logLevel, "json")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.OTLPAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Database
	db, err := postgres.New(ctx, cfg.Database.DSN(), dbMaxConns)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Cache. The API degrades to uncached queries when Valkey is down, so a
	// failure here is a warning, not fatal.
	var cache *valkey.Cache
	var cacheSvc ports.CacheService
	if cfg.Valkey.Enabled {
		cache, err = valkey.New(cfg.Valkey.Addr)
		if err != nil {
			slog.Warn("valkey unavailable", "error", err)
			cache = nil
		} else {
			defer cache.Close()
			cacheSvc = cache
		}
	}

	// Token blacklist: shared across instances when Valkey is up, otherwise
	// local to this process.
	var blacklist auth.Blacklist = auth.NewMemoryBlacklist()
	if cache != nil {
		blacklist = valkey.NewBlacklist(cache)
	}

	// Events
	var events *natsadapter.Publisher
	var eventSvc ports.EventPublisher
	if cfg.NATS.Enabled {
		events, err = natsadapter.NewPublisher(cfg.NATS.URL)
		if err != nil {
			slog.Warn("nats unavailable", "error", err)
			events = nil
		} else {
			defer events.Close()
			eventSvc = events
		}
	}

	// Repos
	pointRepo := postgres.NewPointRepo(db)
	categoryRepo := postgres.NewCategoryRepo(db)
	userRepo := postgres.NewUserRepo(db)

	// Auth
	hasher := auth.NewHasher(cfg.Auth.BcryptCost)
	tokens := auth.NewTokenManager(
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenExpiryMinutes)*time.Minute,
		blacklist,
	)

	// Use cases
	pointSvc := usecases.NewPointService(pointRepo, categoryRepo, cacheSvc, eventSvc)
	categorySvc := usecases.NewCategoryService(categoryRepo, db, eventSvc)
	userSvc := usecases.NewUserService(userRepo, hasher, tokens)

	deps := &http.Dependencies{
		Points:           pointSvc,
		Categories:       categorySvc,
		Users:            userSvc,
		Limiter:          ratelimit.New(),
		Policy:           ratelimit.DefaultPolicy(),
		RateLimitEnabled: cfg.RateLimit.Enabled,
		RequestTimeout:   time.Duration(cfg.Server.RequestTimeout) * time.Second,
		DB:               db,
		Cache:            cache,
		Events:           events,
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    1024 * 1024, // 1 MB max request body
		AppName:      "GeoPoints API",
	})
	app.Use(recover.New())

	http.SetupRoutes(app, deps)

	// Feed the pool gauges while the server runs
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				metrics.UpdateDBPoolMetrics(db.Pool.Stat())
			}
		}
	}()

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
