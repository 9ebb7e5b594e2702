// Package notify implements per-user sequenced notification delivery with
// at-least-once semantics over a pluggable real-time push channel.
//
// An online recipient receives a notification immediately; an offline
// recipient catches up later through replay. Each addressed notification
// carries a strictly increasing per-user sequence number so clients can
// detect gaps and request exactly what they missed.
//
// # Architecture
//
// The package follows a layered architecture with the durable store as the
// single source of truth:
//
//   - Storage: authoritative persistence, queryable by recipient and sequence
//   - PendingIndex: best-effort cache of likely-undelivered ids (never authoritative)
//   - Presence: reports whether a recipient is currently reachable
//   - Channel: addressed real-time push transport
//   - Service: orchestrates creation, dispatch, replay and acknowledgment
//
// Sequence numbers come from the sequence package (shared Redis counter with
// in-process fallback).
//
// # Delivery semantics
//
// A push over the Channel is an attempt, not a confirmation: the Delivered
// flag flips only when the client acknowledges receipt. A push lost in flight
// therefore leaves the notification undelivered and a later replay resends
// it. Conversely, acknowledging twice is a harmless no-op.
//
// Failures split into two classes. The transactional path (sequence
// allocation, durable save, delivered-flag flip) propagates errors to the
// caller. The accelerator path (pending index append/remove, push sends)
// only logs; correctness never depends on it.
//
// # Basic Usage
//
//	hub := broadcast.NewHub[notify.Notification](16)
//	svc := notify.NewService(
//	    notify.NewMemoryStorage(),
//	    sequence.NewLocal(),
//	    notify.NewHubChannel(hub),
//	    notify.NewHubPresence(hub),
//	    notify.WithPendingIndex(notify.NewMemoryPendingIndex()),
//	)
//
//	// Create and push if the recipient is online.
//	n, err := svc.Send(ctx, notify.To("user-123"), payload)
//
//	// Client reconnects and reports the last sequence it processed.
//	err = svc.ReplayMissed(ctx, "user-123", lastSeenSeq)
//
//	// Client confirms receipt.
//	err = svc.Acknowledge(ctx, n.ID)
//
// # Production wiring
//
// Use PostgresStorage or MongoStorage instead of the memory store,
// RedisPendingIndex for the fast path, and sequence.NewFailover with a Redis
// primary so sequence ordering holds across instances. The Channel and
// Presence interfaces are intentionally small so a WebSocket/STOMP gateway or
// an external presence tracker can slot in without touching the core.
package notify
