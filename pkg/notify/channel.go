package notify

import "context"

// Channel is the addressed real-time push transport. A successful SendToUser
// means the push was attempted, not that the client received it; receipt is
// confirmed separately through Service.Acknowledge.
type Channel interface {
	SendToUser(ctx context.Context, userID, destination string, n Notification) error
}

// NoopChannel is a Channel that does nothing. Useful for testing or when
// real-time delivery is not wired, leaving replay as the only delivery path.
type NoopChannel struct{}

func (NoopChannel) SendToUser(ctx context.Context, userID, destination string, n Notification) error {
	return nil
}
