package notify

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// defaultPendingKeyPrefix matches the list keys used by the rest of the
// system; changing it orphans previously indexed entries.
const defaultPendingKeyPrefix = "pending:"

// RedisPendingIndex keeps the per-user pending list in a shared Redis list
// (RPUSH/LREM/LRANGE on "pending:<user>"), so any instance can serve the
// fast lookup. It stays best-effort: callers are expected to swallow its
// errors and fall back to the durable store.
type RedisPendingIndex struct {
	client    redis.UniversalClient
	keyPrefix string
}

// RedisPendingOption configures a RedisPendingIndex.
type RedisPendingOption func(*RedisPendingIndex)

// WithPendingKeyPrefix overrides the default "pending:" list key prefix.
func WithPendingKeyPrefix(prefix string) RedisPendingOption {
	return func(i *RedisPendingIndex) {
		i.keyPrefix = prefix
	}
}

// NewRedisPendingIndex creates a pending index on top of an existing client.
func NewRedisPendingIndex(client redis.UniversalClient, opts ...RedisPendingOption) *RedisPendingIndex {
	i := &RedisPendingIndex{
		client:    client,
		keyPrefix: defaultPendingKeyPrefix,
	}

	for _, opt := range opts {
		opt(i)
	}

	return i
}

func (i *RedisPendingIndex) Append(ctx context.Context, userID, notificationID string) error {
	if err := i.client.RPush(ctx, i.keyPrefix+userID, notificationID).Err(); err != nil {
		return errors.Join(ErrPendingIndexUnavailable, err)
	}
	return nil
}

func (i *RedisPendingIndex) Remove(ctx context.Context, userID, notificationID string) error {
	// Count 0 removes every occurrence, tolerating duplicate appends.
	if err := i.client.LRem(ctx, i.keyPrefix+userID, 0, notificationID).Err(); err != nil {
		return errors.Join(ErrPendingIndexUnavailable, err)
	}
	return nil
}

func (i *RedisPendingIndex) List(ctx context.Context, userID string) ([]string, error) {
	ids, err := i.client.LRange(ctx, i.keyPrefix+userID, 0, -1).Result()
	if err != nil {
		return nil, errors.Join(ErrPendingIndexUnavailable, err)
	}
	return ids, nil
}
