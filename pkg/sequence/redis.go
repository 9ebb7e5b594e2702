package sequence

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// defaultKeyPrefix matches the counter keys used by the rest of the system;
// changing it orphans previously allocated counters.
const defaultKeyPrefix = "seq:"

// Redis is an Allocator backed by a shared atomic counter (INCR per
// recipient). It is safe across any number of concurrent application
// instances because Redis serializes increments per key.
type Redis struct {
	client    redis.UniversalClient
	keyPrefix string
}

// RedisOption configures a Redis allocator.
type RedisOption func(*Redis)

// WithKeyPrefix overrides the default "seq:" counter key prefix.
func WithKeyPrefix(prefix string) RedisOption {
	return func(r *Redis) {
		r.keyPrefix = prefix
	}
}

// NewRedis creates a shared-counter allocator on top of an existing client.
func NewRedis(client redis.UniversalClient, opts ...RedisOption) *Redis {
	r := &Redis{
		client:    client,
		keyPrefix: defaultKeyPrefix,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

func (r *Redis) Next(ctx context.Context, recipientID string) (int64, error) {
	if recipientID == "" {
		return 0, ErrEmptyRecipient
	}

	seq, err := r.client.Incr(ctx, r.keyPrefix+recipientID).Result()
	if err != nil {
		return 0, errors.Join(ErrAllocatorUnavailable, err)
	}

	return seq, nil
}
