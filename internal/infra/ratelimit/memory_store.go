package ratelimit

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// windowState is immutable once published; updates swap in a new value.
// hits holds the admitted request times still inside the window.
type windowState struct {
	hits []time.Time
	last time.Time
}

type memoryEntry struct {
	state atomic.Pointer[windowState]
}

// MemoryStore keeps each client's recent request times in process memory.
// Entries are updated with compare-and-swap so concurrent requests never lose
// a hit and never contend on a store-wide lock.
type MemoryStore struct {
	limit  int
	window time.Duration

	entries   sync.Map // string -> *memoryEntry
	lastSweep atomic.Int64
}

// NewMemoryStore creates an in-process store admitting limit requests per window.
func NewMemoryStore(limit int, window time.Duration) *MemoryStore {
	return &MemoryStore{limit: limit, window: window}
}

// Allow implements Store.
func (s *MemoryStore) Allow(_ context.Context, key string, now time.Time) (Result, error) {
	s.sweep(now)

	for {
		entry := s.entry(key)

		result := s.hit(entry, now)
		if !result.Allowed {
			return result, nil
		}
		// The entry may have been evicted between load and swap, in which
		// case the increment landed on an orphan and must be redone.
		if s.holds(key, entry) {
			return result, nil
		}
	}
}

func (s *MemoryStore) entry(key string) *memoryEntry {
	if v, ok := s.entries.Load(key); ok {
		return v.(*memoryEntry)
	}
	v, _ := s.entries.LoadOrStore(key, &memoryEntry{})

	return v.(*memoryEntry)
}

func (s *MemoryStore) holds(key string, entry *memoryEntry) bool {
	v, ok := s.entries.Load(key)

	return ok && v.(*memoryEntry) == entry
}

// hit runs the CAS loop on one entry.
func (s *MemoryStore) hit(entry *memoryEntry, now time.Time) Result {
	for {
		cur := entry.state.Load()

		var live []time.Time
		if cur != nil {
			live = s.inWindow(cur.hits, now)
		}
		if len(live) >= s.limit {
			if len(live) == 0 {
				return rejected(s.limit, now.Add(s.window))
			}

			return rejected(s.limit, oldest(live).Add(s.window))
		}

		next := &windowState{hits: append(live, now), last: now}
		if entry.state.CompareAndSwap(cur, next) {
			return allowed(s.limit, len(next.hits), oldest(next.hits).Add(s.window))
		}
	}
}

// inWindow copies the hits younger than one window at now.
func (s *MemoryStore) inWindow(hits []time.Time, now time.Time) []time.Time {
	live := make([]time.Time, 0, len(hits)+1)
	for _, at := range hits {
		if now.Sub(at) < s.window {
			live = append(live, at)
		}
	}

	return live
}

func oldest(hits []time.Time) time.Time {
	first := hits[0]
	for _, at := range hits[1:] {
		if at.Before(first) {
			first = at
		}
	}

	return first
}

// sweep evicts clients idle for longer than a window. It runs at most once
// per window and only one caller performs it.
func (s *MemoryStore) sweep(now time.Time) {
	prev := s.lastSweep.Load()
	if now.UnixNano()-prev < int64(s.window) {
		return
	}
	if !s.lastSweep.CompareAndSwap(prev, now.UnixNano()) {
		return
	}

	s.entries.Range(func(key, value any) bool {
		entry := value.(*memoryEntry)
		if state := entry.state.Load(); state != nil && now.Sub(state.last) > s.window {
			s.entries.CompareAndDelete(key, entry)
		}

		return true
	})
}

// Len reports the number of tracked clients.
func (s *MemoryStore) Len() int {
	n := 0
	s.entries.Range(func(_, _ any) bool {
		n++

		return true
	})

	return n
}
