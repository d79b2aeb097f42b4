package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/orgdrive/orgdrive/internal/app"
	"github.com/orgdrive/orgdrive/internal/config"
	"github.com/orgdrive/orgdrive/internal/logger"
)

// The sweeper runs as its own process so purge backlogs never compete with
// request handling. It scans files marked for deletion and purges them page
// by page until stopped.
func main() {
	cfg := config.Load()

	logger.Init(cfg.IsDevelopment(), cfg.SentryDSN)

	app, err := app.New(cfg)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		panic(err)
	}
	defer func() {
		closeErr := app.Close()
		if closeErr != nil {
			slog.Error("failed to close app", "error", closeErr)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("sweeper starting", "interval", cfg.SweepInterval, "page_size", cfg.SweepPageSize)

	err = app.Sweeper.Run(ctx)
	if err != nil {
		slog.Error("sweeper stopped", "error", err)
		panic(err)
	}
}
