// Package notifier consumes notes domain events and reports them to an admin chat.
package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gopkg.in/telebot.v3"

	"github.com/kotche/notes/internal/metrics"
	"github.com/kotche/notes/internal/service/events"
	"github.com/kotche/notes/internal/service/kafka"
)

const readRetryDelay = time.Second

// Sender delivers a message to a Telegram chat. *telebot.Bot implements it.
type Sender interface {
	Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error)
}

type Notifier struct {
	sender    Sender
	adminChat int64
	broker    kafka.MessageBroker
	logger    *slog.Logger
}

// New creates a notifier. A nil sender or a zero adminChat only logs events.
func New(sender Sender, adminChat int64, broker kafka.MessageBroker, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		sender:    sender,
		adminChat: adminChat,
		broker:    broker,
		logger:    logger,
	}
}

// Run reads events until ctx is done.
func (n *Notifier) Run(ctx context.Context) error {
	n.logger.Info("notifier started")

	for {
		_, value, err := n.broker.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			n.logger.Error("error reading message from kafka", "error", err)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(readRetryDelay):
			}
			continue
		}

		if err = n.handle(ctx, value); err != nil {
			n.logger.Warn("failed to handle event", "error", err)
		}
	}
}

func (n *Notifier) handle(ctx context.Context, value []byte) error {
	event, err := events.Decode(value)
	if err != nil {
		return err
	}

	metrics.EventConsumed(string(event.Type))
	n.logger.Info("event consumed", "type", event.Type, "user_id", event.UserID, "note_id", event.NoteID)

	if n.sender == nil || n.adminChat == 0 {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	if _, err = n.sender.Send(&telebot.Chat{ID: n.adminChat}, Describe(event)); err != nil {
		return fmt.Errorf("failed to send notification to chat %d: %w", n.adminChat, err)
	}
	return nil
}

// Describe renders an event as a one-line message.
func Describe(event events.Event) string {
	at := event.At.Format("2006-01-02 15:04:05")
	switch event.Type {
	case events.UserRegistered:
		return fmt.Sprintf("%s: user %s registered", at, event.UserID)
	case events.UserUpdated:
		return fmt.Sprintf("%s: user %s updated the profile", at, event.UserID)
	case events.UserUnregistered:
		return fmt.Sprintf("%s: user %s unregistered", at, event.UserID)
	case events.NoteAdded:
		return fmt.Sprintf("%s: user %s added note %s", at, event.UserID, event.NoteID)
	case events.NoteUpdated:
		return fmt.Sprintf("%s: user %s updated note %s", at, event.UserID, event.NoteID)
	case events.NoteRemoved:
		return fmt.Sprintf("%s: user %s removed note %s", at, event.UserID, event.NoteID)
	default:
		return fmt.Sprintf("%s: %s for user %s", at, event.Type, event.UserID)
	}
}
