package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter is a fixed-window request counter shared across concurrent requests.
//
// Allow reports whether the request identified by key is within limit for the
// current window. The counter advances even when the request is rejected, so
// sustained abuse stays rejected instead of resetting the window.
//
// Fixed-window semantics: two bursts straddling a window boundary can admit up
// to 2x limit in a short span. That behavior is documented and intentional;
// do not silently tighten it to a token bucket.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

type bucket struct {
	windowStart time.Time
	count       int
}

// MemoryLimiter keeps per-key buckets in process memory.
//
// Keys derive from attacker-influenced headers, so the map is bounded:
// when maxKeys is reached, buckets idle for at least two windows are swept,
// and if the sweep frees nothing the oldest-window bucket is evicted.
type MemoryLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	maxKeys int
	now     func() time.Time
}

const defaultMaxKeys = 10000

func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{
		buckets: make(map[string]*bucket),
		maxKeys: defaultMaxKeys,
		now:     time.Now,
	}
}

// Allow is safe for concurrent use: the whole read-modify-write of a bucket
// runs under the limiter lock so two simultaneous requests can never both
// observe a stale count.
func (l *MemoryLimiter) Allow(_ context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		if len(l.buckets) >= l.maxKeys {
			l.evictLocked(now, window)
		}
		b = &bucket{windowStart: now}
		l.buckets[key] = b
	}

	if now.Sub(b.windowStart) >= window {
		b.windowStart = now
		b.count = 0
	}

	b.count++
	return b.count <= limit, nil
}

// evictLocked drops buckets whose window has been stale for at least two
// windows; if none qualify it evicts the single oldest bucket so a new key
// can always be admitted.
func (l *MemoryLimiter) evictLocked(now time.Time, window time.Duration) {
	var oldestKey string
	var oldestStart time.Time
	swept := false

	for k, b := range l.buckets {
		if now.Sub(b.windowStart) >= 2*window {
			delete(l.buckets, k)
			swept = true
			continue
		}
		if oldestKey == "" || b.windowStart.Before(oldestStart) {
			oldestKey = k
			oldestStart = b.windowStart
		}
	}

	if !swept && oldestKey != "" {
		delete(l.buckets, oldestKey)
	}
}

// Len reports the current bucket count. Intended for tests and gauges.
func (l *MemoryLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}
