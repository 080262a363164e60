package inflight

import (
	"context"
	"sync"
	"time"

	"github.com/yanqian/coordinate-advisor/internal/domain/coordinate"
)

type lease struct {
	token     uint64
	expiresAt time.Time
}

// MemoryGuard tracks in-flight keys in process memory. Suitable for a single
// replica or local development.
type MemoryGuard struct {
	mu     sync.Mutex
	leases map[string]lease
	next   uint64
	now    func() time.Time
}

// NewMemoryGuard constructs an empty guard.
func NewMemoryGuard() *MemoryGuard {
	return &MemoryGuard{
		leases: make(map[string]lease),
		now:    time.Now,
	}
}

// Acquire implements coordinate.InflightGuard.
func (g *MemoryGuard) Acquire(_ context.Context, key string, ttl time.Duration) (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if current, ok := g.leases[key]; ok && now.Before(current.expiresAt) {
		return nil, coordinate.ErrInFlight
	}
	g.sweep(now)

	g.next++
	token := g.next
	g.leases[key] = lease{token: token, expiresAt: now.Add(ttl)}

	return func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		// An expired lease may already belong to a newer request.
		if current, ok := g.leases[key]; ok && current.token == token {
			delete(g.leases, key)
		}
	}, nil
}

// sweep drops expired leases; callers hold g.mu.
func (g *MemoryGuard) sweep(now time.Time) {
	for key, l := range g.leases {
		if !now.Before(l.expiresAt) {
			delete(g.leases, key)
		}
	}
}

var _ coordinate.InflightGuard = (*MemoryGuard)(nil)
