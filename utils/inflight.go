package utils

import (
	"fmt"
	"sync"
)

// InflightGuard prevents two mutating requests for the same entity from
// overlapping. Once a transition request is in flight for an entity, a
// second one is refused until the first resolves (success or failure). This
// mirrors disabling the triggering action while a request is pending; it is
// not a distributed lock.
type InflightGuard struct {
	mu      sync.Mutex
	pending map[string]bool
}

// NewInflightGuard creates a new InflightGuard
func NewInflightGuard() *InflightGuard {
	return &InflightGuard{pending: make(map[string]bool)}
}

// Acquire marks (entity, id) as having a request in flight. Returns an
// error when one is already pending.
func (g *InflightGuard) Acquire(entity string, id int64) error {
	key := fmt.Sprintf("%s:%d", entity, id)
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.pending[key] {
		return fmt.Errorf("a request for %s %d is already in flight", entity, id)
	}
	g.pending[key] = true
	return nil
}

// Release clears the in-flight mark. Must be called when the request
// resolves, whether it succeeded or failed.
func (g *InflightGuard) Release(entity string, id int64) {
	key := fmt.Sprintf("%s:%d", entity, id)
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.pending, key)
}
