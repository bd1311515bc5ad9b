// Package events defines the domain events emitted after successful writes
// and publishes them through a message broker.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kotche/notes/internal/model"
	"github.com/kotche/notes/internal/service/kafka"
)

type Type string

const (
	UserRegistered   Type = "user.registered"
	UserUpdated      Type = "user.updated"
	UserUnregistered Type = "user.unregistered"
	NoteAdded        Type = "note.added"
	NoteUpdated      Type = "note.updated"
	NoteRemoved      Type = "note.removed"
)

type Event struct {
	Type   Type         `json:"type"`
	UserID model.UserID `json:"user_id"`
	NoteID model.NoteID `json:"note_id,omitempty"`
	At     time.Time    `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// BrokerPublisher writes JSON events keyed by user id, so events of one user
// keep their order within a partition.
type BrokerPublisher struct {
	broker kafka.MessageBroker
}

func NewBrokerPublisher(broker kafka.MessageBroker) *BrokerPublisher {
	return &BrokerPublisher{broker: broker}
}

func (p *BrokerPublisher) Publish(ctx context.Context, event Event) error {
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event '%s': %w", event.Type, err)
	}

	return p.broker.SendMessage(ctx, []byte(event.UserID), value)
}

// Decode parses a message produced by BrokerPublisher.
func Decode(value []byte) (Event, error) {
	var event Event
	if err := json.Unmarshal(value, &event); err != nil {
		return Event{}, fmt.Errorf("failed to decode event: %w", err)
	}
	if event.Type == "" {
		return Event{}, fmt.Errorf("failed to decode event: missing type")
	}
	return event, nil
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
