package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/quake-impact-service/internal/adapter/http"
	"github.com/couchcryptid/quake-impact-service/internal/adapter/usgs"
	"github.com/couchcryptid/quake-impact-service/internal/config"
	"github.com/couchcryptid/quake-impact-service/internal/domain"
	"github.com/couchcryptid/quake-impact-service/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	feed := usgs.NewClient(cfg.FeedURL, cfg.FeedTimeout, metrics, logger)

	opts := domain.Options{
		MinMagnitude:  cfg.MinMagnitude,
		MaxDistanceKm: cfg.MaxDistanceKm,
		DrillEvent:    cfg.DrillEvent,
	}
	if cfg.DrillEvent {
		logger.Warn("drill event fallback enabled; responses may contain synthetic events")
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, feed, feed, opts, metrics, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
