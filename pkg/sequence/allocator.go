package sequence

import "context"

// Allocator produces per-recipient strictly increasing sequence numbers.
// Implementations must never return the same value twice for the same
// recipient within their scope, and must be safe for concurrent use.
type Allocator interface {
	// Next returns the next sequence number for the recipient, starting at 1.
	Next(ctx context.Context, recipientID string) (int64, error)
}
