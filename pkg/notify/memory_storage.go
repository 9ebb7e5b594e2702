package notify

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStorage is an in-memory implementation of the Storage interface.
// Suitable for development and testing.
type MemoryStorage struct {
	byID   map[string]Notification
	byUser map[string][]string // userID -> notification ids, insertion order
	mu     sync.RWMutex
}

// NewMemoryStorage creates a new in-memory notification storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		byID:   make(map[string]Notification),
		byUser: make(map[string][]string),
	}
}

func (s *MemoryStorage) Save(ctx context.Context, n Notification) (Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n.ID == "" {
		n.ID = uuid.New().String()
		if n.CreatedAt.IsZero() {
			n.CreatedAt = time.Now()
		}
		s.byID[n.ID] = n
		if n.Recipient.Valid {
			s.byUser[n.Recipient.UserID] = append(s.byUser[n.Recipient.UserID], n.ID)
		}
		return n, nil
	}

	if _, ok := s.byID[n.ID]; !ok {
		return Notification{}, ErrNotificationNotFound
	}
	s.byID[n.ID] = n
	return n, nil
}

func (s *MemoryStorage) Find(ctx context.Context, id string) (*Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.byID[id]
	if !ok {
		return nil, ErrNotificationNotFound
	}

	// Return a copy to prevent external mutation of stored data.
	found := n
	return &found, nil
}

func (s *MemoryStorage) ListAfterSeq(ctx context.Context, userID string, seq int64) ([]Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.listLocked(userID, func(n Notification) bool {
		return n.Seq > seq
	}), nil
}

func (s *MemoryStorage) ListUndelivered(ctx context.Context, userID string) ([]Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.listLocked(userID, func(n Notification) bool {
		return !n.Delivered
	}), nil
}

func (s *MemoryStorage) listLocked(userID string, keep func(Notification) bool) []Notification {
	matched := []Notification{}
	for _, id := range s.byUser[userID] {
		if n, ok := s.byID[id]; ok && keep(n) {
			matched = append(matched, n)
		}
	}

	slices.SortFunc(matched, func(a, b Notification) int {
		switch {
		case a.Seq < b.Seq:
			return -1
		case a.Seq > b.Seq:
			return 1
		default:
			return 0
		}
	})

	return matched
}
