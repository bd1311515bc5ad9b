package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"gopkg.in/telebot.v3"

	"github.com/kotche/notes/infrastructure/metrics"
	"github.com/kotche/notes/infrastructure/tracing"
	"github.com/kotche/notes/internal/app"
	"github.com/kotche/notes/internal/app/bot"
	"github.com/kotche/notes/internal/config"
	domain_metrics "github.com/kotche/notes/internal/metrics"
	"github.com/kotche/notes/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.TelegramConfig.TokenBot == "" {
		log.Fatalln("TOKEN_NOTES_BOT is not set")
	}

	metrics.Init(prometheus.DefaultRegisterer)
	domain_metrics.Init(prometheus.DefaultRegisterer)
	metrics.StartMetricsServer(cfg.HTTPConfig.MetricsAddr)

	cleanup, err := tracing.InitTracing(cfg.TracingConfig.Endpoint, "notes-bot")
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

	tb, err := telebot.NewBot(telebot.Settings{
		Token:  cfg.TelegramConfig.TokenBot,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		log.Fatal(err)
	}

	notesBot := bot.New(tb, backend.Service, slog.Default())
	go func() {
		<-ctx.Done()
		notesBot.Stop()
	}()

	notesBot.Start()
}
