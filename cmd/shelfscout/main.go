package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shelfscout/shelfscout/api"
	"github.com/shelfscout/shelfscout/cache"
	"github.com/shelfscout/shelfscout/config"
	"github.com/shelfscout/shelfscout/extractor"
	"github.com/shelfscout/shelfscout/fetcher"
	"github.com/shelfscout/shelfscout/metrics"
	"github.com/shelfscout/shelfscout/orchestrator"
	"github.com/shelfscout/shelfscout/scheduler"
	"github.com/shelfscout/shelfscout/store"
)

func main() {
	// ── 1. Load configuration ───────────────────────────────────────
	cfg := config.Load()

	// ── 2. Initialise structured logging ────────────────────────────
	initLogger(cfg.Log)
	slog.Info("shelfscout starting",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
	)

	// ── 3. Initialise fetcher (launches browser) ────────────────────
	f, err := fetcher.New(cfg.Browser, cfg.Fetcher)
	if err != nil {
		slog.Error("failed to initialise fetcher", "error", err)
		os.Exit(1)
	}
	defer f.Close()

	// ── 4. Stores, extractor, metrics ───────────────────────────────
	records := store.NewExtractionStore()
	catalog := store.NewCatalog()
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// ── 5. Orchestrator ─────────────────────────────────────────────
	o := orchestrator.New(f, extractor.New(nil), records, catalog)
	o.SetMetrics(collector)
	o.SetScheduledTarget(cfg.Scheduler.TargetURL)
	if cfg.Cache.MaxAge > 0 {
		o.SetSnapshotCache(cache.New(cfg.Cache.MaxEntries), cfg.Cache.MaxAge)
		slog.Info("snapshot cache enabled", "maxAge", cfg.Cache.MaxAge)
	}

	// ── 6. Background scheduler ─────────────────────────────────────
	schedCtx, schedCancel := context.WithCancel(context.Background())
	defer schedCancel()
	if cfg.Scheduler.Enabled && cfg.Scheduler.TargetURL != "" {
		go scheduler.New(o, cfg.Scheduler.Interval).Start(schedCtx)
	}

	// ── 7. HTTP server ──────────────────────────────────────────────
	startTime := time.Now()
	router := api.NewRouter(o, records, catalog, registry, cfg, startTime)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// ── 8. Graceful shutdown ────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig.String())

	schedCancel()

	// Give in-flight requests 5 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP server forced shutdown", "error", err)
	} else {
		slog.Info("HTTP server drained gracefully")
	}

	// f.Close() runs via defer — kills Chrome.
	slog.Info("shelfscout stopped")
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
