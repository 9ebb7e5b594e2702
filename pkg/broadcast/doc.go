// Package broadcast provides a type-safe, user-addressed in-process hub for
// real-time push delivery.
//
// Unlike a plain fan-out broadcaster, the Hub routes each message to the
// subscribers of a single user, which is the shape a per-user notification
// channel needs: one user may hold several subscriptions (multiple tabs or
// devices), and a message addressed to a user reaches all of them.
//
// Sends are non-blocking. When a subscriber's buffer is full the message is
// dropped for that subscriber and the subscriber is removed; durable replay,
// not the hub, is responsible for redelivery.
//
// Basic usage:
//
//	hub := broadcast.NewHub[string](16)
//	defer hub.Close()
//
//	sub := hub.Subscribe(ctx, "user-123")
//	defer sub.Close()
//
//	hub.Send(ctx, "user-123", broadcast.Message[string]{
//	    Destination: "/queue/notifications",
//	    Data:        "hello",
//	})
//
//	for msg := range sub.Receive(ctx) {
//	    fmt.Println(msg.Data)
//	}
//
// Subscriptions are cleaned up when their context is cancelled, when the
// subscriber is closed, or when the hub shuts down.
package broadcast
