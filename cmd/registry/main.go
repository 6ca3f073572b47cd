// Command registry is the interactive student registration console.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/alem-hub/student-registry/config"
	"github.com/alem-hub/student-registry/internal/domain/roster"
	"github.com/alem-hub/student-registry/internal/infrastructure/persistence/boltdb"
	"github.com/alem-hub/student-registry/internal/infrastructure/persistence/flatfile"
	"github.com/alem-hub/student-registry/internal/infrastructure/persistence/guarded"
	"github.com/alem-hub/student-registry/internal/infrastructure/persistence/postgres"
	"github.com/alem-hub/student-registry/internal/infrastructure/persistence/redis"
	"github.com/alem-hub/student-registry/internal/interface/cli"
	"github.com/alem-hub/student-registry/pkg/retry"
)

// ══════════════════════════════════════════════════════════════════════════════
// MAIN
// ══════════════════════════════════════════════════════════════════════════════

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// ─────────────────────────────────────────────────────────────────────────
	// 1. Configuration
	// ─────────────────────────────────────────────────────────────────────────
	cfg, err := config.Load(os.Getenv)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 2. Logging
	// ─────────────────────────────────────────────────────────────────────────
	log := setupLogger(cfg).With("session_id", uuid.NewString())
	log.Info("starting student registry",
		"env", cfg.App.Environment,
		"capacity", cfg.Registry.Capacity,
		"store", cfg.Registry.Store,
	)

	// ─────────────────────────────────────────────────────────────────────────
	// 3. Persistence
	// ─────────────────────────────────────────────────────────────────────────
	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.Registry.Store, err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Warn("failed to close store", "error", err)
		}
	}()

	// ─────────────────────────────────────────────────────────────────────────
	// 4. Console
	// ─────────────────────────────────────────────────────────────────────────
	prompter, closePrompter, err := cli.NewPrompter(os.Stdin, os.Stdout, cfg.Registry.HistoryFile)
	if err != nil {
		return fmt.Errorf("failed to set up console: %w", err)
	}
	defer func() {
		if err := closePrompter(); err != nil {
			log.Warn("failed to close console", "error", err)
		}
	}()

	r := roster.New(cfg.Registry.Capacity)
	shell := cli.NewShell(cli.NewHandlers(r, store, log), cli.ShellConfig{
		Prompter: prompter,
		Out:      os.Stdout,
		Err:      os.Stderr,
		Logger:   log,
	})

	err = shell.Run(ctx)
	if errors.Is(err, context.Canceled) {
		log.Info("interrupted")
		return nil
	}
	if err != nil {
		return err
	}

	log.Info("session finished", "students", r.Count())
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// HELPERS
// ══════════════════════════════════════════════════════════════════════════════

// openStore connects the configured backend. Remote backends are guarded by a
// circuit breaker. The returned function releases the backend.
func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (roster.Store, func() error, error) {
	noop := func() error { return nil }

	onRetry := retry.WithOnRetry(func(attempt int, err error, delay time.Duration) {
		log.Warn("store connection failed, retrying",
			"store", cfg.Registry.Store,
			"attempt", attempt,
			"delay", delay,
			"error", err,
		)
	})

	switch cfg.Registry.Store {
	case config.BackendFile:
		return flatfile.NewStore(cfg.Registry.DataFile), noop, nil

	case config.BackendBolt:
		store, err := boltdb.Open(cfg.Registry.BoltPath)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil

	case config.BackendPostgres:
		settings := postgres.DefaultPoolSettings()
		if _, err := postgres.ParsePoolConfig(cfg.Database.URL, settings); err != nil {
			return nil, nil, err
		}

		conn, err := retry.DoWithData(ctx, func(ctx context.Context) (*postgres.Connection, error) {
			return postgres.NewConnectionFromURL(ctx, cfg.Database.URL, settings)
		}, onRetry)
		if err != nil {
			return nil, nil, err
		}

		if err := postgres.NewMigrator(conn).Migrate(ctx); err != nil {
			conn.Close()
			return nil, nil, err
		}
		log.Info("database ready")

		return guarded.New(postgres.NewRosterStore(conn), log), func() error {
			conn.Close()
			return nil
		}, nil

	case config.BackendRedis:
		redisCfg := redis.DefaultConfig()
		redisCfg.Addr = cfg.Redis.Addr
		redisCfg.Password = cfg.Redis.Password
		redisCfg.DB = cfg.Redis.DB
		if cfg.Redis.KeyPrefix != "" {
			redisCfg.KeyPrefix = cfg.Redis.KeyPrefix
		}

		client, err := retry.DoWithData(ctx, func(ctx context.Context) (*goredis.Client, error) {
			return redis.NewClient(ctx, redisCfg)
		}, onRetry)
		if err != nil {
			return nil, nil, err
		}
		log.Info("redis ready", "addr", redisCfg.Addr)

		return guarded.New(redis.NewRosterStore(client, redisCfg.KeyPrefix), log), client.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store %q", cfg.Registry.Store)
	}
}

// setupLogger configures structured logging on stderr; stdout belongs to the menu.
func setupLogger(cfg *config.Config) *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLevel(cfg.Observability.LogLevel),
	}

	if cfg.IsProduction() || cfg.Observability.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	log := slog.New(handler)
	slog.SetDefault(log)

	return log
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
