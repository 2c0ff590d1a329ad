package main

// Publish the strategy resource digest:
//   go run ./cmd/refresh          # now, then daily at RESOURCES_REFRESH_AT
//   go run ./cmd/refresh -once    # now only

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"readiness-backend/internal/bootstrap"
	"readiness-backend/internal/shared/config"
	"readiness-backend/internal/shared/telemetry"
)

func main() {
	once := flag.Bool("once", false, "refresh once and exit")
	at := flag.String("at", "", "daily refresh time HH:MM (defaults to RESOURCES_REFRESH_AT)")
	flag.Parse()

	cfg := config.Load()
	if *at == "" {
		*at = cfg.ResourcesRefreshAt
	}

	app, err := bootstrap.BuildFor(cfg, bootstrap.RoleRefresher)
	if err != nil {
		telemetry.Error("refresh.bootstrap_failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *once {
		if _, err := app.Refresher.Refresh(ctx); err != nil {
			telemetry.Error("refresh.failed", map[string]any{"error": err.Error()})
			stop()
			os.Exit(1)
		}
		return
	}

	if err := app.Refresher.RunDaily(ctx, *at); err != nil && ctx.Err() == nil {
		telemetry.Error("refresh.schedule_failed", map[string]any{"error": err.Error(), "at": *at})
		stop()
		os.Exit(1)
	}
	telemetry.Info("refresh.stopped", nil)
}
