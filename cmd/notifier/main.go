package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"gopkg.in/telebot.v3"

	"github.com/kotche/notes/infrastructure/metrics"
	"github.com/kotche/notes/internal/app/notifier"
	"github.com/kotche/notes/internal/config"
	domain_metrics "github.com/kotche/notes/internal/metrics"
	"github.com/kotche/notes/internal/service/kafka"
	"github.com/kotche/notes/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if len(cfg.KafkaConfig.Brokers) == 0 {
		log.Fatalln("KAFKA_BROKERS is not set")
	}

	metrics.Init(prometheus.DefaultRegisterer)
	domain_metrics.Init(prometheus.DefaultRegisterer)
	metrics.StartMetricsServer(cfg.HTTPConfig.MetricsAddr)

	var sender notifier.Sender
	if cfg.TelegramConfig.TokenBot != "" {
		tb, err := telebot.NewBot(telebot.Settings{
			Token:  cfg.TelegramConfig.TokenBot,
			Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
		})
		if err != nil {
			log.Fatal(err)
		}
		sender = tb
	}

	kafkaServ, err := kafka.New(kafka.Config{
		Brokers:           cfg.KafkaConfig.Brokers,
		Topic:             cfg.KafkaConfig.Topic,
		GroupID:           cfg.KafkaConfig.GroupID,
		NumPartitions:     1,
		ReplicationFactor: 1,
	})
	if err != nil {
		log.Fatalf("failed to initialize kafka: %v", err)
	}
	defer kafkaServ.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	notifierImpl := notifier.New(sender, cfg.TelegramConfig.AdminChatID, kafkaServ, slog.Default())
	if err = notifierImpl.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("notifier stopped", "error", err)
	}
}
