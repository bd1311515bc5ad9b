package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

type Config struct {
	Brokers           []string
	Topic             string
	GroupID           string
	NumPartitions     int
	ReplicationFactor int
}

type Service struct {
	producer *kafka.Writer
	consumer *kafka.Reader
}

// New connects a producer for cfg.Topic and, when cfg.GroupID is set, a
// consumer in that group. The topic is created if missing.
func New(cfg Config) (*Service, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("no kafka brokers configured")
	}

	if err := createTopic(cfg); err != nil {
		return nil, err
	}

	s := &Service{
		producer: &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Brokers...),
			Topic:                  cfg.Topic,
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: false,
		},
	}

	if cfg.GroupID != "" {
		s.consumer = kafka.NewReader(kafka.ReaderConfig{
			Brokers:        cfg.Brokers,
			Topic:          cfg.Topic,
			GroupID:        cfg.GroupID,
			CommitInterval: time.Second,
		})
	}

	return s, nil
}

func (s *Service) SendMessage(ctx context.Context, key, value []byte) error {
	err := s.producer.WriteMessages(ctx, kafka.Message{
		Key:   key,
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("failed to send message to kafka: %w", err)
	}
	return nil
}

func (s *Service) ReadMessage(ctx context.Context) (key, value []byte, err error) {
	if s.consumer == nil {
		return nil, nil, errors.New("kafka consumer is not configured")
	}
	msg, err := s.consumer.ReadMessage(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read message from kafka: %w", err)
	}
	return msg.Key, msg.Value, nil
}

func (s *Service) Close() error {
	if err := s.producer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka producer: %w", err)
	}
	if s.consumer != nil {
		if err := s.consumer.Close(); err != nil {
			return fmt.Errorf("failed to close kafka consumer: %w", err)
		}
	}
	return nil
}

func createTopic(cfg Config) error {
	numPartitions, replicationFactor := cfg.NumPartitions, cfg.ReplicationFactor
	if numPartitions < 1 {
		numPartitions = 1
	}
	if replicationFactor < 1 {
		replicationFactor = 1
	}

	var lastErr error
	for _, broker := range cfg.Brokers {
		conn, err := kafka.Dial("tcp", broker)
		if err != nil {
			lastErr = fmt.Errorf("failed to connect to kafka broker '%s': %w", broker, err)
			continue
		}

		err = conn.CreateTopics(kafka.TopicConfig{
			Topic:             cfg.Topic,
			NumPartitions:     numPartitions,
			ReplicationFactor: replicationFactor,
		})
		conn.Close()

		if err != nil && !errors.Is(err, kafka.TopicAlreadyExists) {
			return fmt.Errorf("failed to create kafka topic '%s': %w", cfg.Topic, err)
		}
		slog.Info("kafka topic ready", "topic", cfg.Topic, "broker", broker)
		return nil
	}

	return lastErr
}
