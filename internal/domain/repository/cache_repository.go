package repository

import (
	"context"
	"time"
)

// CacheRepository fronts the single-attempt external providers and holds
// export documents for the formatting collaborator.
type CacheRepository interface {
	// Get returns nil on cache miss.
	Get(ctx context.Context, key string) ([]byte, error)

	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	Delete(ctx context.Context, key string) error

	Exists(ctx context.Context, key string) (bool, error)
}
