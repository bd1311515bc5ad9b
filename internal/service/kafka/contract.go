package kafka

import "context"

// MessageBroker carries domain events between the notes service and its
// consumers. Keys select the partition, so messages sharing a key stay ordered.
type MessageBroker interface {
	SendMessage(ctx context.Context, key, value []byte) error
	// ReadMessage blocks until a message arrives or ctx is done.
	ReadMessage(ctx context.Context) (key, value []byte, err error)
	Close() error
}
