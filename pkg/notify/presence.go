package notify

import (
	"context"
	"sync"
)

// Presence reports whether a recipient is currently reachable over the
// real-time channel. It is consumed at dispatch time only; replay never asks.
type Presence interface {
	IsOnline(ctx context.Context, userID string) (bool, error)
}

// MemoryPresence is an in-process Presence implementation driven by explicit
// connect/disconnect calls. Suitable for development, tests, and single-node
// deployments where the transport layer tracks its own connections.
type MemoryPresence struct {
	online map[string]struct{}
	mu     sync.RWMutex
}

// NewMemoryPresence creates an empty presence tracker; every user starts offline.
func NewMemoryPresence() *MemoryPresence {
	return &MemoryPresence{online: make(map[string]struct{})}
}

// SetOnline marks the user as reachable.
func (p *MemoryPresence) SetOnline(userID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.online[userID] = struct{}{}
}

// SetOffline marks the user as unreachable.
func (p *MemoryPresence) SetOffline(userID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.online, userID)
}

func (p *MemoryPresence) IsOnline(ctx context.Context, userID string) (bool, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.online[userID]
	return ok, nil
}
