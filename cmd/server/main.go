package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kotche/notes/infrastructure/metrics"
	"github.com/kotche/notes/infrastructure/tracing"
	"github.com/kotche/notes/internal/app"
	"github.com/kotche/notes/internal/app/api"
	"github.com/kotche/notes/internal/auth"
	"github.com/kotche/notes/internal/config"
	domain_metrics "github.com/kotche/notes/internal/metrics"
	"github.com/kotche/notes/pkg/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logging.Setup()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	metrics.Init(prometheus.DefaultRegisterer)
	domain_metrics.Init(prometheus.DefaultRegisterer)
	metrics.StartMetricsServer(cfg.HTTPConfig.MetricsAddr)

	cleanup, err := tracing.InitTracing(cfg.TracingConfig.Endpoint, "notes-server")
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := app.NewBackend(ctx, cfg, slog.Default())
	if err != nil {
		log.Fatalf("failed to initialize backend: %v", err)
	}
	defer backend.Close()

	handler := api.New(backend.Service, auth.NewTokenManager(cfg.AuthConfig.JWTSecret, cfg.AuthConfig.TokenTTL), slog.Default())

	srv := &http.Server{
		Addr:              cfg.HTTPConfig.Addr,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("api server running", "addr", cfg.HTTPConfig.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("api server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shutdown api server", "error", err)
	}
}
