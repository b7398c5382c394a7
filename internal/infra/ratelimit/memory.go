package ratelimit

import (
	"context"
	"sync"
	"time"
)

const sweepEvery = 256

// MemoryCounter keeps a sliding window of hit timestamps per key in process memory.
type MemoryCounter struct {
	mu    sync.Mutex
	hits  map[string][]time.Time
	calls int
}

func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{hits: make(map[string][]time.Time)}
}

func (m *MemoryCounter) Record(_ context.Context, key string, now time.Time, window time.Duration) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := now.Add(-window)
	kept := prune(m.hits[key], cutoff)
	kept = append(kept, now)
	m.hits[key] = kept

	m.calls++
	if m.calls%sweepEvery == 0 {
		m.sweep(cutoff)
	}
	return len(kept), nil
}

// Keys reports how many keys are currently tracked.
func (m *MemoryCounter) Keys() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.hits)
}

func (m *MemoryCounter) sweep(cutoff time.Time) {
	for key, stamps := range m.hits {
		kept := prune(stamps, cutoff)
		if len(kept) == 0 {
			delete(m.hits, key)
			continue
		}
		m.hits[key] = kept
	}
}

// prune drops timestamps at or before cutoff. stamps are in insertion order.
func prune(stamps []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(stamps) && !stamps[i].After(cutoff) {
		i++
	}
	return stamps[i:]
}
