package notify

import (
	"context"

	"github.com/dmitrymomot/notifyq/pkg/broadcast"
)

// HubChannel adapts an in-process broadcast hub to the Channel interface.
// A transport adapter (SSE, WebSocket) subscribes users on the hub and
// streams the received messages to clients.
type HubChannel struct {
	hub *broadcast.Hub[Notification]
}

// NewHubChannel creates a Channel over the given hub.
func NewHubChannel(hub *broadcast.Hub[Notification]) *HubChannel {
	return &HubChannel{hub: hub}
}

func (c *HubChannel) SendToUser(ctx context.Context, userID, destination string, n Notification) error {
	return c.hub.Send(ctx, userID, broadcast.Message[Notification]{
		Destination: destination,
		Data:        n,
	})
}

// HubPresence derives presence from active hub subscriptions: a user is
// online while at least one subscriber is attached. Only valid when the hub
// is the sole transport and the deployment is single-instance; multi-node
// setups need an external presence tracker behind the Presence interface.
type HubPresence struct {
	hub *broadcast.Hub[Notification]
}

// NewHubPresence creates a Presence view over the given hub.
func NewHubPresence(hub *broadcast.Hub[Notification]) *HubPresence {
	return &HubPresence{hub: hub}
}

func (p *HubPresence) IsOnline(ctx context.Context, userID string) (bool, error) {
	return p.hub.Subscribers(userID) > 0, nil
}
