package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/crucial707/hci-ledger/internal/config"
	"github.com/crucial707/hci-ledger/internal/db"
	"github.com/crucial707/hci-ledger/internal/ledger"
	"github.com/crucial707/hci-ledger/internal/persist"
	"github.com/crucial707/hci-ledger/internal/repo"
	"github.com/crucial707/hci-ledger/internal/scheduler"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Storage first: the ledger is restored before the server accepts requests.
	store, auditRepo, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("open snapshot store", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	l := ledger.New(ledger.WithDefaultBuffer(time.Duration(cfg.ReservationBufferMinutes) * time.Minute))

	// a nil *AuditRepo must not become a non-nil interface
	var mirror persist.AuditAppender
	if auditRepo != nil {
		mirror = auditRepo
	}
	persister := persist.New(store, mirror)
	if err := persister.Restore(ctx, l); err != nil {
		slog.Error("restore ledger", "error", err)
		os.Exit(1)
	}
	state := l.State()
	slog.Info("ledger restored",
		"driver", cfg.StoreDriver,
		"assets", len(state.Assets),
		"audit_entries", len(state.AuditLog))

	flush := func() { persister.Sync(context.Background(), l) }
	sweeper, err := scheduler.Start(cfg.OverdueSweepCron, &scheduler.OverdueSweep{Source: l}, flush)
	if err != nil {
		slog.Error("start overdue sweep", "cron", cfg.OverdueSweepCron, "error", err)
		os.Exit(1)
	}
	defer sweeper.Stop()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(l, persister, auditRepo, cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "port", cfg.Port, "tls", cfg.TLSCertFile != "")
		if cfg.TLSCertFile != "" {
			errCh <- srv.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
			return
		}
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server stopped", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown", "error", err)
		}
	}
}

func setupLogger(format string) {
	var h slog.Handler
	if format == "json" {
		h = slog.NewJSONHandler(os.Stdout, nil)
	} else {
		h = slog.NewTextHandler(os.Stdout, nil)
	}
	slog.SetDefault(slog.New(h))
}

// openStore returns the snapshot store for cfg.StoreDriver. The audit repo is
// only available with Postgres.
func openStore(ctx context.Context, cfg config.Config) (repo.SnapshotStore, *repo.AuditRepo, func(), error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		database, err := db.Connect(cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBUser, cfg.DBPass,
			cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := db.Migrate(cfg.PostgresURL()); err != nil {
			database.Close()
			return nil, nil, nil, err
		}
		slog.Info("connected to postgres", "host", cfg.DBHost, "db", cfg.DBName)
		return repo.NewPostgresSnapshotRepo(database, cfg.SnapshotKey), repo.NewAuditRepo(database),
			closer(database), nil

	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, nil, err
		}
		slog.Info("connected to redis", "addr", cfg.RedisAddr)
		return repo.NewRedisSnapshotRepo(client, cfg.SnapshotKey), nil, func() { client.Close() }, nil

	default:
		slog.Warn("using in-memory snapshot store; state is lost on restart")
		return repo.NewMemorySnapshotStore(), nil, func() {}, nil
	}
}

func closer(database *sql.DB) func() {
	return func() {
		if err := database.Close(); err != nil {
			slog.Error("close database", "error", err)
		}
	}
}
