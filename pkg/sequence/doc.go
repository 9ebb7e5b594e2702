// Package sequence provides per-recipient strictly increasing sequence
// numbers for notification ordering and gap detection.
//
// An Allocator hands out integers that are unique and strictly increasing for
// a given recipient within the allocator's scope. Sequence numbers start at 1;
// 0 is reserved as the "unsequenced" sentinel used by notifications without a
// recipient.
//
// Two implementations are provided plus a failover wrapper:
//
//   - Redis: a shared atomic counter (INCR on "seq:<recipient>") that is safe
//     across any number of concurrent application instances.
//   - Local: a per-key in-process atomic counter. Ordering is guaranteed only
//     within a single running instance.
//   - Failover: delegates to a primary allocator and silently falls back to a
//     secondary when the primary is unreachable.
//
// # Usage
//
//	client, _ := redis.Connect(ctx, cfg)
//	alloc := sequence.NewFailover(
//	    sequence.NewRedis(client),
//	    sequence.NewLocal(),
//	)
//
//	seq, err := alloc.Next(ctx, "user-123") // 1, 2, 3, ...
//
// # Degradation warning
//
// When multiple instances run concurrently and the shared counter is
// unavailable, the Local fallback cannot provide cross-instance ordering:
// two instances may hand out overlapping sequence numbers for the same
// recipient. The Failover wrapper logs every fallback so the degradation is
// observable rather than silent. Deployments that require global ordering
// must keep the shared counter reachable.
package sequence
