package notify

import "context"

// PendingIndex is a best-effort, low-latency list of likely-undelivered
// notification ids per user. It may contain stale entries and may be empty
// even when undelivered notifications exist (e.g. after a cache outage), so
// it must never be consulted for delivery truth. Failures of any operation
// must not abort the surrounding create/ack flow.
type PendingIndex interface {
	// Append records a notification id as pending for the user.
	Append(ctx context.Context, userID, notificationID string) error

	// Remove retires a notification id from the user's pending list.
	Remove(ctx context.Context, userID, notificationID string) error

	// List returns the raw pending ids for the user, oldest first.
	List(ctx context.Context, userID string) ([]string, error)
}
