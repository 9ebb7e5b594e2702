// Package redis provides connection helpers for the Redis server backing the
// shared sequence counter and the pending index.
//
// It wraps the go-redis client with a retrying Connect and a health-check
// closure. Configuration comes from environment variables via the Config
// struct:
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    // run degraded: local sequence allocator, no pending index
//	}
//	defer client.Close()
//
//	alloc := sequence.NewFailover(sequence.NewRedis(client), sequence.NewLocal())
//	idx := notify.NewRedisPendingIndex(client)
//
// Sentinel errors (ErrRedisNotReady etc.) wrap the underlying go-redis errors
// with errors.Join for easy comparison and unwrapping.
package redis
