package broadcast

import (
	"context"
	"sync"
)

// Message wraps data of type T addressed to a logical destination, e.g. a
// client-side queue name.
type Message[T any] struct {
	Destination string
	Data        T
}

// Subscriber receives messages addressed to the user it subscribed as.
// Implementations must be safe for concurrent use.
type Subscriber[T any] interface {
	// Receive returns a channel for receiving messages. The channel is closed
	// when the subscriber closes or the hub shuts down. The context parameter
	// is kept for interface consistency with remote adapters; the in-memory
	// implementation does not use it.
	Receive(ctx context.Context) <-chan Message[T]

	// Close closes the subscriber and releases its slot in the hub.
	// Close is idempotent and safe to call multiple times.
	Close() error
}

type subscriber[T any] struct {
	userID string
	ch     chan Message[T]
	detach func() // set by the hub; removes the subscriber from routing
	closed bool
	mu     sync.RWMutex
}

func newSubscriber[T any](userID string, bufferSize int) *subscriber[T] {
	return &subscriber[T]{
		userID: userID,
		ch:     make(chan Message[T], bufferSize),
	}
}

func (s *subscriber[T]) Receive(ctx context.Context) <-chan Message[T] {
	return s.ch
}

func (s *subscriber[T]) Close() error {
	// Detach first so presence derived from subscriber counts drops
	// immediately; detach ends up calling closeChan.
	if s.detach != nil {
		s.detach()
		return nil
	}
	s.closeChan()
	return nil
}

func (s *subscriber[T]) closeChan() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		close(s.ch)
		s.closed = true
	}
}

func (s *subscriber[T]) send(msg Message[T]) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false
	}

	select {
	case s.ch <- msg:
		return true
	default:
		return false
	}
}
