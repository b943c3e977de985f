package memory

import (
	"context"
	"sync"
	"time"
)

// IdempotencyGuard keeps claimed keys until they expire.
type IdempotencyGuard struct {
	mu     sync.Mutex
	claims map[string]time.Time
	now    func() time.Time
}

func NewIdempotencyGuard() *IdempotencyGuard {
	return &IdempotencyGuard{claims: make(map[string]time.Time), now: time.Now}
}

func (g *IdempotencyGuard) Claim(_ context.Context, key string, ttl time.Duration) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if exp, ok := g.claims[key]; ok && now.Before(exp) {
		return false, nil
	}
	g.claims[key] = now.Add(ttl)
	return true, nil
}

func (g *IdempotencyGuard) Release(_ context.Context, key string) error {
	g.mu.Lock()
	delete(g.claims, key)
	g.mu.Unlock()
	return nil
}

type attemptWindow struct {
	count   int
	expires time.Time
}

// AttemptLimiter is a fixed-window failure counter.
type AttemptLimiter struct {
	max    int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	entries map[string]attemptWindow
}

func NewAttemptLimiter(max int, window time.Duration) *AttemptLimiter {
	if max <= 0 {
		max = 5
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &AttemptLimiter{max: max, window: window, now: time.Now, entries: make(map[string]attemptWindow)}
}

func (l *AttemptLimiter) Blocked(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	w, ok := l.entries[key]
	if !ok || !l.now().Before(w.expires) {
		return false, nil
	}
	return w.count >= l.max, nil
}

func (l *AttemptLimiter) RecordFailure(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	w, ok := l.entries[key]
	if !ok || !now.Before(w.expires) {
		w = attemptWindow{expires: now.Add(l.window)}
	}
	w.count++
	l.entries[key] = w
	return nil
}

func (l *AttemptLimiter) Reset(_ context.Context, key string) error {
	l.mu.Lock()
	delete(l.entries, key)
	l.mu.Unlock()
	return nil
}
