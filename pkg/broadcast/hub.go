package broadcast

import (
	"context"
	"sync"
)

// Hub routes messages to the subscribers of individual users. Messages are
// dropped for slow consumers rather than blocking the sender. All methods are
// safe for concurrent use.
type Hub[T any] struct {
	users      map[string]map[*subscriber[T]]struct{}
	bufferSize int
	closed     bool
	done       chan struct{} // closed by Close; releases cleanup goroutines
	mu         sync.RWMutex
	cleanupWg  sync.WaitGroup // tracks context-cancellation cleanup goroutines
}

// NewHub creates a new in-process user-addressed hub. The bufferSize
// parameter determines the channel buffer size for each subscriber; a minimum
// of 1 is enforced because zero-buffer channels would make every send
// blocking and defeat the non-blocking design.
func NewHub[T any](bufferSize int) *Hub[T] {
	return &Hub[T]{
		users:      make(map[string]map[*subscriber[T]]struct{}),
		bufferSize: max(bufferSize, 1),
		done:       make(chan struct{}),
	}
}

// Subscribe registers a new subscriber for the given user. The subscription
// is cleaned up automatically when the provided context is cancelled. If the
// hub is already closed, a closed subscriber is returned.
func (h *Hub[T]) Subscribe(ctx context.Context, userID string) Subscriber[T] {
	h.mu.Lock()
	defer h.mu.Unlock()

	sub := newSubscriber[T](userID, h.bufferSize)

	if h.closed {
		sub.closeChan()
		return sub
	}

	sub.detach = func() { h.unsubscribe(sub) }

	subs, ok := h.users[userID]
	if !ok {
		subs = make(map[*subscriber[T]]struct{})
		h.users[userID] = subs
	}
	subs[sub] = struct{}{}

	if ctx.Done() != nil {
		h.cleanupWg.Add(1)
		go func() {
			defer h.cleanupWg.Done()
			select {
			case <-ctx.Done():
				h.unsubscribe(sub)
			case <-h.done:
			}
		}()
	}

	return sub
}

// Send delivers a message to every active subscriber of the user. Sends are
// non-blocking: a subscriber whose buffer is full misses the message and is
// removed from the hub. Sending to a user with no subscribers is a no-op.
func (h *Hub[T]) Send(ctx context.Context, userID string, msg Message[T]) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return ErrHubClosed
	}

	for sub := range h.users[userID] {
		if !sub.send(msg) {
			// Remove slow/closed subscribers asynchronously so a single
			// stuck consumer cannot hold up the send path.
			go h.unsubscribe(sub)
		}
	}

	return nil
}

// Subscribers reports how many active subscriptions the user currently has.
// Useful as a crude in-process presence signal.
func (h *Hub[T]) Subscribers(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.users[userID])
}

// Close shuts down the hub and closes all subscribers. It is safe to call
// multiple times. After Close, Subscribe returns closed subscribers and Send
// returns ErrHubClosed.
func (h *Hub[T]) Close() error {
	h.mu.Lock()

	if h.closed {
		h.mu.Unlock()
		return nil
	}

	h.closed = true

	for _, subs := range h.users {
		for sub := range subs {
			sub.closeChan()
		}
	}

	clear(h.users)
	close(h.done)
	h.mu.Unlock()

	// Wait for cleanup goroutines to avoid races between Close and async
	// unsubscribe calls triggered by Send.
	h.cleanupWg.Wait()

	return nil
}

func (h *Hub[T]) unsubscribe(sub *subscriber[T]) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if subs, ok := h.users[sub.userID]; ok {
		delete(subs, sub)
		if len(subs) == 0 {
			delete(h.users, sub.userID)
		}
	}
	sub.closeChan()
}
