package notify

import "context"

// Storage is the durable, authoritative record of every notification and its
// delivery state. Replay correctness depends on this store alone; the
// PendingIndex is only an accelerator.
type Storage interface {
	// Save persists the notification. An empty ID means insert: the store
	// assigns an identity and returns the stored record. A non-empty ID means
	// update of the existing record (Delivered is the only mutable field).
	// The sequence must already be allocated before Save is called.
	Save(ctx context.Context, n Notification) (Notification, error)

	// Find retrieves a notification by id. Returns ErrNotificationNotFound
	// when no such record exists.
	Find(ctx context.Context, id string) (*Notification, error)

	// ListAfterSeq returns the user's notifications with Seq greater than
	// seq, ordered by Seq ascending.
	ListAfterSeq(ctx context.Context, userID string, seq int64) ([]Notification, error)

	// ListUndelivered returns the user's notifications with Delivered false,
	// ordered by Seq ascending.
	ListUndelivered(ctx context.Context, userID string) ([]Notification, error)
}
