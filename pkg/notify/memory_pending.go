package notify

import (
	"context"
	"slices"
	"sync"
)

// MemoryPendingIndex is an in-memory implementation of the PendingIndex
// interface. Suitable for development and testing.
type MemoryPendingIndex struct {
	pending map[string][]string // userID -> notification ids, append order
	mu      sync.RWMutex
}

// NewMemoryPendingIndex creates a new in-memory pending index.
func NewMemoryPendingIndex() *MemoryPendingIndex {
	return &MemoryPendingIndex{pending: make(map[string][]string)}
}

func (i *MemoryPendingIndex) Append(ctx context.Context, userID, notificationID string) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.pending[userID] = append(i.pending[userID], notificationID)
	return nil
}

func (i *MemoryPendingIndex) Remove(ctx context.Context, userID, notificationID string) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.pending[userID] = slices.DeleteFunc(i.pending[userID], func(id string) bool {
		return id == notificationID
	})
	return nil
}

func (i *MemoryPendingIndex) List(ctx context.Context, userID string) ([]string, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	return slices.Clone(i.pending[userID]), nil
}
