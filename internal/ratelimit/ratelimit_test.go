package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestKeyedLimiter_Allow(t *testing.T) {
	tests := []struct {
		name     string
		rps      float64
		burst    int
		key      string
		calls    int
		wantPass int
	}{
		{
			name:     "burst allows initial requests",
			rps:      1,
			burst:    3,
			key:      "10.0.0.1",
			calls:    3,
			wantPass: 3,
		},
		{
			name:     "exceeding burst blocks",
			rps:      1,
			burst:    2,
			key:      "10.0.0.1",
			calls:    5,
			wantPass: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kl := New(tt.rps, tt.burst)
			defer kl.Stop()

			passed := 0
			for i := 0; i < tt.calls; i++ {
				if kl.Allow(tt.key) {
					passed++
				}
			}

			if passed != tt.wantPass {
				t.Errorf("Allow() passed %d, want %d", passed, tt.wantPass)
			}
		})
	}
}

func TestKeyedLimiter_IndependentKeys(t *testing.T) {
	kl := New(1, 1)
	defer kl.Stop()

	kl.Allow("10.0.0.1")
	if kl.Allow("10.0.0.1") {
		t.Error("first key should be exhausted")
	}

	if !kl.Allow("10.0.0.2") {
		t.Error("second key should be independent and allowed")
	}
}

func TestKeyedLimiter_Wait(t *testing.T) {
	kl := New(10, 1)
	defer kl.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	start := time.Now()
	if err := kl.Wait(ctx, "10.0.0.1"); err != nil {
		t.Errorf("first Wait() failed: %v", err)
	}
	if time.Since(start) > 50*time.Millisecond {
		t.Error("first Wait() should be immediate")
	}

	// Second call refills at 10 rps, so roughly 100ms.
	start = time.Now()
	if err := kl.Wait(ctx, "10.0.0.1"); err != nil {
		t.Errorf("second Wait() failed: %v", err)
	}
	elapsed := time.Since(start)
	if elapsed < 80*time.Millisecond || elapsed > 200*time.Millisecond {
		t.Errorf("second Wait() took %v, want ~100ms", elapsed)
	}
}

func TestKeyedLimiter_WaitContextCanceled(t *testing.T) {
	kl := New(0.1, 1)
	defer kl.Stop()

	kl.Allow("10.0.0.1")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := kl.Wait(ctx, "10.0.0.1"); err == nil {
		t.Error("Wait() should fail when context canceled")
	}
}

func TestKeyedLimiter_SweepEvictsIdleKeys(t *testing.T) {
	kl := New(1, 1)
	defer kl.Stop()

	kl.Allow("10.0.0.1")
	kl.Allow("10.0.0.2")
	if kl.Len() != 2 {
		t.Fatalf("expected 2 buckets, got %d", kl.Len())
	}

	// Backdate one entry past the cutoff.
	kl.mu.Lock()
	kl.entries["10.0.0.1"].lastSeen = time.Now().Add(-time.Hour)
	kl.mu.Unlock()

	kl.sweep(time.Now().Add(-idleTTL))

	if kl.Len() != 1 {
		t.Fatalf("expected 1 bucket after sweep, got %d", kl.Len())
	}
	if !kl.Allow("10.0.0.1") {
		t.Error("evicted key should start over with a fresh bucket")
	}
}
