package repository

import (
	"context"

	"github.com/festival-trip-planner/internal/domain"
)

// StreamRepository carries plan lifecycle events over Redis Streams.
type StreamRepository interface {
	// PublishToStream appends data (JSON-encoded) to the stream.
	PublishToStream(ctx context.Context, stream string, data interface{}) error

	// CreateConsumerGroup creates the group if it does not exist yet.
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// ConsumeStream reads messages for a consumer group; the channel closes
	// when ctx is cancelled.
	ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error)

	// AckMessage acknowledges a processed message.
	AckMessage(ctx context.Context, stream, group, messageID string) error
}
