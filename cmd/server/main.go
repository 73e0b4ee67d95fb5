package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/kcwei/breaktrack/internal/config"
	"github.com/kcwei/breaktrack/internal/domain/catalog"
	"github.com/kcwei/breaktrack/internal/domain/ledger"
	"github.com/kcwei/breaktrack/internal/domain/overtime"
	"github.com/kcwei/breaktrack/internal/domain/stats"
	"github.com/kcwei/breaktrack/internal/reaper"
	"github.com/kcwei/breaktrack/internal/sqlite"
	"github.com/kcwei/breaktrack/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		logger.Error("failed to prepare database path", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	loc, err := time.LoadLocation(cfg.Stats.Timezone)
	if err != nil {
		logger.Warn("unknown timezone, falling back to UTC", "timezone", cfg.Stats.Timezone)
		loc = time.UTC
	}

	ledgerRepo := sqlite.NewLedgerRepository(db)
	statsRepo := sqlite.NewStatsRepository(db)

	cat := catalog.Default()
	classifier := overtime.NewClassifier(cat)
	ledgerSvc := ledger.NewService(ledgerRepo, cat, classifier, nil, logger)
	statsSvc := stats.NewService(statsRepo, loc, nil, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sweeper := reaper.New(
		ledgerSvc,
		time.Duration(cfg.Reaper.IntervalSeconds)*time.Second,
		time.Duration(cfg.Reaper.MaxAgeSeconds)*time.Second,
		logger,
	)
	go sweeper.Run(ctx)

	handler := web.NewHandler(ledgerSvc, statsSvc, cat, classifier, logger)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler.Routes(),
	}

	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer, cancel)
}

func waitForShutdown(logger *slog.Logger, server *http.Server, cancel context.CancelFunc) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	cancel()

	ctx, cancelTimeout := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelTimeout()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
