package notify

import "errors"

var (
	// ErrNotificationNotFound is returned when a notification is not found in storage.
	ErrNotificationNotFound = errors.New("notify: notification not found")

	// ErrMissingID is returned when updating a stored notification without an ID.
	ErrMissingID = errors.New("notify: notification id is required")

	// ErrPendingIndexUnavailable wraps failures of the best-effort pending index.
	ErrPendingIndexUnavailable = errors.New("notify: pending index unavailable")
)
