// Package app wires the notes service shared by the binaries.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kotche/notes/internal/auth"
	"github.com/kotche/notes/internal/config"
	notes_repo "github.com/kotche/notes/internal/repository/notes"
	"github.com/kotche/notes/internal/service/events"
	"github.com/kotche/notes/internal/service/kafka"
	notes_serv "github.com/kotche/notes/internal/service/notes"
)

// Backend is the notes service together with the resources it owns.
type Backend struct {
	Service *notes_serv.DefaultService

	db     *sql.DB
	broker *kafka.Service
}

// NewBackend opens the configured store, applies migrations and connects the
// event producer when Kafka brokers are configured.
func NewBackend(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Backend, error) {
	db, err := notes_repo.OpenDB(ctx, cfg.DBConfig.Driver, cfg.DSN())
	if err != nil {
		return nil, err
	}

	b := &Backend{db: db}

	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.KafkaConfig.Brokers) > 0 {
		b.broker, err = kafka.New(kafka.Config{
			Brokers:           cfg.KafkaConfig.Brokers,
			Topic:             cfg.KafkaConfig.Topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		})
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize kafka: %w", err)
		}
		publisher = events.NewBrokerPublisher(b.broker)
	} else {
		logger.Info("kafka disabled, domain events are dropped")
	}

	b.Service = notes_serv.NewDefaultService(
		notes_repo.NewDefaultRepository(db, cfg.DBConfig.Driver),
		auth.NewBcryptHasher(cfg.AuthConfig.BcryptCost),
		publisher,
		logger,
	)

	return b, nil
}

func (b *Backend) Close() error {
	var errs []error
	if b.broker != nil {
		errs = append(errs, b.broker.Close())
	}
	errs = append(errs, b.db.Close())
	return errors.Join(errs...)
}
