package sequence

import "errors"

var (
	// ErrEmptyRecipient is returned when Next is called with an empty recipient ID.
	ErrEmptyRecipient = errors.New("sequence: empty recipient id")

	// ErrAllocatorUnavailable wraps failures of the shared counter backend.
	ErrAllocatorUnavailable = errors.New("sequence: allocator unavailable")
)
