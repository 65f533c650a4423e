package memory

import (
	"context"
	"sync"
	"time"

	"github.com/oksasatya/go-ddd-credentials/internal/domain/entity"
	"github.com/oksasatya/go-ddd-credentials/internal/domain/repository"
)

type attemptWindow struct {
	count     entity.FailedAttemptCount
	expiresAt time.Time
}

// AttemptCounter keeps failed attempt counts in a map. Like the Redis counter,
// a count disappears once window has elapsed since the first failure.
type AttemptCounter struct {
	mu     sync.Mutex
	window time.Duration
	counts map[string]attemptWindow
	now    func() time.Time
}

func NewAttemptCounter(window time.Duration) *AttemptCounter {
	return &AttemptCounter{window: window, counts: make(map[string]attemptWindow), now: time.Now}
}

// live returns the unexpired entry for key, dropping an expired one. Callers hold mu.
func (c *AttemptCounter) live(key string) (attemptWindow, bool) {
	w, ok := c.counts[key]
	if !ok {
		return attemptWindow{}, false
	}
	if !c.now().Before(w.expiresAt) {
		delete(c.counts, key)
		return attemptWindow{}, false
	}
	return w, true
}

func (c *AttemptCounter) Current(_ context.Context, identifier entity.Identifier) (entity.FailedAttemptCount, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	w, _ := c.live(identifier.String())
	return w.count, nil
}

func (c *AttemptCounter) Increment(_ context.Context, identifier entity.Identifier) (entity.FailedAttemptCount, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := identifier.String()
	w, ok := c.live(key)
	if !ok {
		w = attemptWindow{expiresAt: c.now().Add(c.window)}
	}
	w.count = w.count.Increment()
	c.counts[key] = w
	return w.count, nil
}

func (c *AttemptCounter) Reset(_ context.Context, identifier entity.Identifier) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.counts, identifier.String())
	return nil
}

var _ repository.AttemptCounter = (*AttemptCounter)(nil)
