package broadcast_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notifyq/pkg/broadcast"
)

func receiveOne[T any](t *testing.T, sub broadcast.Subscriber[T]) broadcast.Message[T] {
	t.Helper()

	select {
	case msg, ok := <-sub.Receive(context.Background()):
		require.True(t, ok, "subscriber channel closed unexpectedly")
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
		return broadcast.Message[T]{}
	}
}

func TestHub_Send(t *testing.T) {
	t.Parallel()

	t.Run("delivers to the addressed user only", func(t *testing.T) {
		t.Parallel()

		hub := broadcast.NewHub[string](4)
		defer hub.Close()
		ctx := context.Background()

		alice := hub.Subscribe(ctx, "alice")
		bob := hub.Subscribe(ctx, "bob")
		defer alice.Close()
		defer bob.Close()

		require.NoError(t, hub.Send(ctx, "alice", broadcast.Message[string]{
			Destination: "/queue/notifications",
			Data:        "hello",
		}))

		msg := receiveOne(t, alice)
		assert.Equal(t, "hello", msg.Data)
		assert.Equal(t, "/queue/notifications", msg.Destination)

		select {
		case <-bob.Receive(ctx):
			t.Fatal("bob should not receive alice's message")
		case <-time.After(50 * time.Millisecond):
		}
	})

	t.Run("all subscriptions of a user receive", func(t *testing.T) {
		t.Parallel()

		hub := broadcast.NewHub[string](4)
		defer hub.Close()
		ctx := context.Background()

		tab1 := hub.Subscribe(ctx, "alice")
		tab2 := hub.Subscribe(ctx, "alice")
		defer tab1.Close()
		defer tab2.Close()

		require.NoError(t, hub.Send(ctx, "alice", broadcast.Message[string]{Data: "ping"}))

		assert.Equal(t, "ping", receiveOne(t, tab1).Data)
		assert.Equal(t, "ping", receiveOne(t, tab2).Data)
	})

	t.Run("no subscribers is a no-op", func(t *testing.T) {
		t.Parallel()

		hub := broadcast.NewHub[string](4)
		defer hub.Close()

		assert.NoError(t, hub.Send(context.Background(), "nobody", broadcast.Message[string]{Data: "x"}))
	})

	t.Run("full buffer does not block the sender", func(t *testing.T) {
		t.Parallel()

		hub := broadcast.NewHub[string](1)
		defer hub.Close()
		ctx := context.Background()

		sub := hub.Subscribe(ctx, "alice")
		defer sub.Close()

		done := make(chan struct{})
		go func() {
			defer close(done)
			for i := range 10 {
				_ = hub.Send(ctx, "alice", broadcast.Message[string]{Data: string(rune('a' + i))})
			}
		}()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("send blocked on a slow subscriber")
		}
	})
}

func TestHub_Subscribers(t *testing.T) {
	t.Parallel()

	hub := broadcast.NewHub[string](4)
	defer hub.Close()
	ctx := context.Background()

	assert.Equal(t, 0, hub.Subscribers("alice"))

	sub := hub.Subscribe(ctx, "alice")
	assert.Equal(t, 1, hub.Subscribers("alice"))
	assert.Equal(t, 0, hub.Subscribers("bob"))

	_ = sub.Close()
}

func TestHub_ContextCancellationCleansUp(t *testing.T) {
	t.Parallel()

	hub := broadcast.NewHub[string](4)
	defer hub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	hub.Subscribe(ctx, "alice")
	require.Equal(t, 1, hub.Subscribers("alice"))

	cancel()

	assert.Eventually(t, func() bool {
		return hub.Subscribers("alice") == 0
	}, time.Second, 10*time.Millisecond)
}

func TestHub_Close(t *testing.T) {
	t.Parallel()

	hub := broadcast.NewHub[string](4)
	ctx := context.Background()

	sub := hub.Subscribe(ctx, "alice")
	require.NoError(t, hub.Close())

	// Subscriber channel is closed.
	_, ok := <-sub.Receive(ctx)
	assert.False(t, ok)

	// Send reports the hub closed.
	assert.ErrorIs(t, hub.Send(ctx, "alice", broadcast.Message[string]{Data: "x"}), broadcast.ErrHubClosed)

	// New subscriptions come back already closed.
	late := hub.Subscribe(ctx, "bob")
	_, ok = <-late.Receive(ctx)
	assert.False(t, ok)

	// Close is idempotent.
	assert.NoError(t, hub.Close())
}
