// Package main is the entrypoint for the Sentilytics API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kiranshivaraju/sentilytics/internal/api"
	"github.com/kiranshivaraju/sentilytics/internal/api/handler"
	mw "github.com/kiranshivaraju/sentilytics/internal/api/middleware"
	"github.com/kiranshivaraju/sentilytics/internal/cache"
	"github.com/kiranshivaraju/sentilytics/internal/config"
	"github.com/kiranshivaraju/sentilytics/internal/logging"
	"github.com/kiranshivaraju/sentilytics/internal/sentiment"
	"github.com/kiranshivaraju/sentilytics/internal/service"
	"github.com/kiranshivaraju/sentilytics/internal/store"
)

const shutdownTimeout = 30 * time.Second

func main() {
	logging.Init("development", "info")

	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config, failing fast when invalid
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logging.Init(cfg.Server.Env, cfg.Server.LogLevel)
	slog.Info("config loaded", "sentiment_backend", cfg.Sentiment.Backend, "env", cfg.Server.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pingers := make(map[string]handler.Pinger)

	// 2. Optional run log
	var runStore store.Store
	if cfg.Database.URL != "" {
		pool, err := store.Connect(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer pool.Close()
		slog.Info("database connected")

		if err := store.RunMigrations(cfg.Database.URL); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		slog.Info("database migrations applied")

		pgStore := store.NewPostgresStore(pool)
		runStore = pgStore
		pingers[handler.ServiceDatabase] = pgStore
	} else {
		slog.Info("DATABASE_URL not set, run log disabled")
	}

	// 3. Optional report cache and rate limiting
	var reportCache cache.Cache
	var rateLimit *mw.RateLimit
	if cfg.Redis.URL != "" {
		redisCache, err := cache.NewRedisCache(cfg.Redis.URL)
		if err != nil {
			return fmt.Errorf("create redis cache: %w", err)
		}
		defer redisCache.Close()

		if err := redisCache.Ping(ctx); err != nil {
			return fmt.Errorf("ping redis: %w", err)
		}
		slog.Info("redis connected")

		reportCache = redisCache
		rateLimit = mw.NewRateLimit(redisCache, cfg.Server.RateLimitPerMinute)
		pingers[handler.ServiceCache] = redisCache
	} else {
		slog.Info("REDIS_URL not set, report cache and rate limiting disabled")
	}

	// 4. Sentiment model, loaded in the background so startup never blocks on a download
	factory, err := sentiment.NewFactory(cfg.Sentiment)
	if err != nil {
		return fmt.Errorf("create sentiment factory: %w", err)
	}
	loader := sentiment.NewLoader(factory)
	go func() {
		if _, err := loader.Get(ctx); err != nil {
			slog.Warn("sentiment model warmup failed, will retry on first request", "error", err)
		}
	}()

	svc := service.NewAnalysisService(loader, runStore, reportCache, cfg.Redis.ReportCacheTTL)

	// 5. Build router with dependencies
	router := api.NewRouter(dependencies(cfg.Server, svc, rateLimit, pingers))

	// 6. Start HTTP server
	addr := cfg.Server.Addr()
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for shutdown signal or server error
	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		slog.Info("shutdown signal received, draining connections...")
	}

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

// dependencies wires every route to its handler. rateLimit may be nil.
func dependencies(cfg config.ServerConfig, svc *service.AnalysisService, rateLimit *mw.RateLimit, pingers map[string]handler.Pinger) api.Dependencies {
	maxBytes := cfg.MaxUploadBytes
	return api.Dependencies{
		RateLimit:      rateLimit,
		AllowedOrigins: cfg.AllowedOrigins,

		HealthHandler:         handler.NewHealthHandler(svc, pingers),
		AnalyzeTextHandler:    handler.NewAnalyzeTextHandler(svc, maxBytes),
		AnalyzeDatasetHandler: handler.NewAnalyzeDatasetHandler(svc, maxBytes),
		AnalyzeHandler:        handler.NewAnalyzeRecordsHandler(svc, maxBytes),
		StagesHandler:         handler.NewStagesHandler(svc, maxBytes),
		ListRunsHandler:       handler.NewListRunsHandler(svc),
		GetRunHandler:         handler.NewGetRunHandler(svc),
	}
}
