// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the EachDay HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables (and .env).
//  3. Connect to PostgreSQL (pgxpool), retrying while it comes up.
//  4. Connect to Redis, retrying likewise.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// # Maintenance Flags
//
//	-migrate-down   roll back every migration and exit
//	-purge-revoked  delete revocation rows of already expired tokens and exit
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sethvargo/go-retry"

	"github.com/taibuivan/eachday/internal/api"
	"github.com/taibuivan/eachday/internal/journal/entry"
	"github.com/taibuivan/eachday/internal/platform/config"
	"github.com/taibuivan/eachday/internal/platform/constants"
	"github.com/taibuivan/eachday/internal/platform/middleware"
	"github.com/taibuivan/eachday/internal/platform/migration"
	pgstore "github.com/taibuivan/eachday/internal/platform/postgres"
	redisstore "github.com/taibuivan/eachday/internal/platform/redis"
	"github.com/taibuivan/eachday/internal/platform/sec"
	"github.com/taibuivan/eachday/internal/users/account"
	"github.com/taibuivan/eachday/internal/users/auth"
)

// connectAttempts bounds the startup retries of each backing service.
const connectAttempts = 5

func main() {
	migrateDown := flag.Bool("migrate-down", false, "roll back all migrations and exit")
	purgeRevoked := flag.Bool("purge-revoked", false, "delete revocations of expired tokens and exit")
	flag.Parse()

	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	log.Info("[EachDay] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	if *migrateDown {
		must(log, migration.RunDown(cfg.DatabaseURL, cfg.MigrationPath, log), "roll back migrations")
		return
	}

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := connect(startupCtx, log, "postgres", func(ctx context.Context) (*pgxpool.Pool, error) {
		return pgstore.NewPool(ctx, cfg.DatabaseURL, log)
	})
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := connect(startupCtx, log, "redis", func(ctx context.Context) (*redis.Client, error) {
		return redisstore.NewClient(ctx, cfg.RedisURL, log)
	})
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Security ───────────────────────────────────────────────────────
	if cfg.TokenTTL != sec.DefaultTokenTTL {
		log.Warn("token_ttl_overridden", slog.Duration("ttl", cfg.TokenTTL), slog.Duration("default", sec.DefaultTokenTTL))
	}
	tokens, err := sec.NewTokenService(cfg.SecretKey, sec.WithTTL(cfg.TokenTTL))
	must(log, err, "initialize token service")
	hasher := sec.NewPasswordHasher(cfg.BcryptCost)

	revocations := auth.NewCachedRevocationRepository(auth.NewRevocationRepository(pool), rdb, cfg.TokenTTL)

	if *purgeRevoked {
		removed, err := revocations.PurgeExpired(startupCtx, time.Now())
		must(log, err, "purge expired revocations")
		log.Info("revocations_purged", slog.Int64("removed", removed))
		return
	}

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		},
		CheckCache: func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	userRepository := auth.NewUserRepository(pool)
	authService := auth.NewService(userRepository, revocations, tokens, hasher)
	accountService := account.NewService(userRepository, tokens, hasher)
	entryService := entry.NewService(entry.NewRepository(pool))

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService),
		Account:   account.NewHandler(accountService),
		Entry:     entry.NewHandler(entryService),
	}

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	server := api.NewServer(cfg, log, middleware.Authenticate(tokens, revocations), handlers)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// newLogger builds the process-wide JSON logger and installs it as the default.
func newLogger(level slog.Level) *slog.Logger {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", "eachday"))
	slog.SetDefault(log)
	return log
}

// connect retries open with exponential backoff until it succeeds, the
// attempts run out, or ctx expires.
func connect[T any](ctx context.Context, log *slog.Logger, name string, open func(context.Context) (T, error)) (T, error) {
	backoff := retry.WithMaxRetries(connectAttempts-1, retry.NewExponential(500*time.Millisecond))

	var client T
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		opened, err := open(ctx)
		if err != nil {
			log.Warn("dependency_connect_retry", slog.String("dependency", name), slog.Any("error", err))
			return retry.RetryableError(err)
		}
		client = opened
		return nil
	})

	return client, err
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
