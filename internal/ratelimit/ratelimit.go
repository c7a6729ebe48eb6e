// Package ratelimit provides a keyed token-bucket rate limiter with
// idle-entry eviction. The server throttles passage lookups per client
// address; keys come and go, so stale buckets are swept out instead of
// accumulating forever.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// Entries idle this long are evicted.
	idleTTL = 10 * time.Minute
	// How often the janitor sweeps.
	sweepInterval = time.Minute
)

// entry pairs a limiter with its last access time so idle keys can be
// evicted.
type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedLimiter manages per-key rate limiting. Each unique key gets its
// own independent token bucket.
type KeyedLimiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	limit   rate.Limit
	burst   int

	done     chan struct{}
	stopOnce sync.Once
}

// New creates a keyed limiter allowing rps requests per second with the
// given burst per key, and starts the eviction janitor.
func New(rps float64, burst int) *KeyedLimiter {
	kl := &KeyedLimiter{
		entries: make(map[string]*entry),
		limit:   rate.Limit(rps),
		burst:   burst,
		done:    make(chan struct{}),
	}

	go kl.janitor()

	return kl
}

// Allow reports whether a request for the key may proceed right now.
// Use for inbound request protection.
func (kl *KeyedLimiter) Allow(key string) bool {
	return kl.get(key).Allow()
}

// Wait blocks until a request for the key is allowed or the context is
// canceled.
func (kl *KeyedLimiter) Wait(ctx context.Context, key string) error {
	return kl.get(key).Wait(ctx)
}

// get returns the limiter for a key, creating one if needed. Every
// access refreshes the eviction clock.
func (kl *KeyedLimiter) get(key string) *rate.Limiter {
	kl.mu.Lock()
	defer kl.mu.Unlock()

	e, ok := kl.entries[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(kl.limit, kl.burst)}
		kl.entries[key] = e
	}
	e.lastSeen = time.Now()
	return e.limiter
}

// Len reports the number of live buckets.
func (kl *KeyedLimiter) Len() int {
	kl.mu.Lock()
	defer kl.mu.Unlock()
	return len(kl.entries)
}

// Stop shuts down the janitor.
func (kl *KeyedLimiter) Stop() {
	kl.stopOnce.Do(func() {
		close(kl.done)
	})
}

func (kl *KeyedLimiter) janitor() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-kl.done:
			return
		case <-ticker.C:
			kl.sweep(time.Now().Add(-idleTTL))
		}
	}
}

// sweep drops entries not seen since the cutoff.
func (kl *KeyedLimiter) sweep(cutoff time.Time) {
	kl.mu.Lock()
	defer kl.mu.Unlock()

	for key, e := range kl.entries {
		if e.lastSeen.Before(cutoff) {
			delete(kl.entries, key)
		}
	}
}
