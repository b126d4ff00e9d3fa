package messaging

import (
	"context"

	"github.com/feral-file/ff-nft-registry/internal/store"
)

// Publisher defines the interface for publishing relayed messages to the message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// Publish delivers one outbox message. Delivery of the same message ID
	// twice must be tolerated by the broker.
	Publish(ctx context.Context, msg *store.OutboxMessage) error
	// Close closes the connection
	Close()
}
