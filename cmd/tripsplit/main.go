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

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/tripsplit/internal/config"
	"github.com/mmynk/tripsplit/internal/metrics"
	"github.com/mmynk/tripsplit/internal/middleware"
	"github.com/mmynk/tripsplit/internal/repository"
	"github.com/mmynk/tripsplit/internal/storage"
	"github.com/mmynk/tripsplit/internal/storage/jsonfile"
	"github.com/mmynk/tripsplit/internal/storage/memory"
	"github.com/mmynk/tripsplit/internal/storage/sqlite"
	"github.com/mmynk/tripsplit/pkg/logging"
)

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg := config.Load()
	logging.SetupWithLevel(logging.ParseLevel(cfg.LogLevel))

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("tripsplit failed", "error", err)
		os.Exit(1)
	}
}

// lastSaver is implemented by stores that track when they were last written.
type lastSaver interface {
	UpdatedAt(ctx context.Context) (int64, bool, error)
}

func run(ctx context.Context, cfg *config.Config) error {
	store, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()

	if saved, ok := store.(lastSaver); ok {
		if ts, found, err := saved.UpdatedAt(ctx); err == nil && found {
			slog.Info("Last snapshot", "saved_at", time.UnixMilli(ts).Format(time.RFC3339))
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	repo, err := repository.New(ctx, store,
		repository.WithStrictWrites(cfg.StrictWrites),
		repository.WithMetrics(metrics.New(reg)),
	)
	if err != nil {
		return err
	}

	writeReport(slog.Default(), repo.ListTrips(), cfg.SettledEpsilon)

	if cfg.MetricsAddr == "" {
		return nil
	}
	return serveMetrics(ctx, cfg.MetricsAddr, reg)
}

func openStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.StoreBackend {
	case config.BackendSQLite:
		slog.Info("Storage initialized", "backend", cfg.StoreBackend, "database", cfg.DBPath, "key", cfg.StorageKey)
		return sqlite.New(cfg.DBPath, cfg.StorageKey)
	case config.BackendMemory:
		slog.Warn("Storage initialized in memory; nothing will survive a restart")
		return memory.New(), nil
	default:
		slog.Info("Storage initialized", "backend", cfg.StoreBackend, "path", cfg.DataPath)
		return jsonfile.New(cfg.DataPath)
	}
}

// serveMetrics exposes reg on addr until ctx is cancelled.
func serveMetrics(ctx context.Context, addr string, reg *prometheus.Registry) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           middleware.Logging(slog.Default())(mux),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Metrics server starting", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		slog.Info("Metrics server stopping")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
