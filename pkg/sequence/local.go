package sequence

import (
	"context"
	"sync"
	"sync/atomic"
)

// Local is an in-process Allocator backed by a per-recipient atomic counter.
//
// Ordering is strict only within a single running instance: if several
// instances allocate for the same recipient without a shared counter, they
// will hand out overlapping values. Use it for development, tests, or as the
// fallback behind Failover.
type Local struct {
	counters sync.Map // recipientID -> *atomic.Int64
}

// NewLocal creates a new in-process allocator. Counters start at 0 on first
// use, so the first allocated value for each recipient is 1.
func NewLocal() *Local {
	return &Local{}
}

func (l *Local) Next(ctx context.Context, recipientID string) (int64, error) {
	if recipientID == "" {
		return 0, ErrEmptyRecipient
	}

	counter, ok := l.counters.Load(recipientID)
	if !ok {
		// LoadOrStore keeps exactly one counter per recipient even when two
		// goroutines race on first use.
		counter, _ = l.counters.LoadOrStore(recipientID, new(atomic.Int64))
	}

	return counter.(*atomic.Int64).Add(1), nil
}
