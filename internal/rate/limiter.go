// Package rate implements fixed-window request limits keyed by caller.
package rate

import (
	"sync"
	"time"
)

type Limiter interface {
	Allow(key string, limit int, window time.Duration) (bool, time.Duration)
}

// Rule is a limit per window. A non-positive Limit disables the rule.
type Rule struct {
	Limit  int
	Window time.Duration
}

func PerMinute(n int) Rule { return Rule{Limit: n, Window: time.Minute} }

func (r Rule) Enabled() bool { return r.Limit > 0 && r.Window > 0 }

type MemoryLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	now       func() time.Time
	lastSweep time.Time
}

type bucket struct {
	count   int
	resetAt time.Time
	window  time.Duration
}

const sweepInterval = time.Minute

func NewMemory() *MemoryLimiter {
	return &MemoryLimiter{buckets: make(map[string]*bucket), now: time.Now}
}

// Allow counts one hit against key and reports whether it fits in the
// current window, along with the time left until the window resets.
func (m *MemoryLimiter) Allow(key string, limit int, window time.Duration) (bool, time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.sweep(now)

	b, ok := m.buckets[key]
	if !ok || !now.Before(b.resetAt) || b.window != window {
		b = &bucket{resetAt: now.Add(window), window: window}
		m.buckets[key] = b
	}

	if b.count >= limit {
		return false, b.resetAt.Sub(now)
	}

	b.count++
	return true, b.resetAt.Sub(now)
}

func (m *MemoryLimiter) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.buckets)
}

// sweep drops expired buckets so one-off callers do not accumulate.
func (m *MemoryLimiter) sweep(now time.Time) {
	if now.Sub(m.lastSweep) < sweepInterval {
		return
	}
	m.lastSweep = now
	for k, b := range m.buckets {
		if !now.Before(b.resetAt) {
			delete(m.buckets, k)
		}
	}
}
