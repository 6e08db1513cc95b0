package ratelimit

import (
	"context"
	"hash/fnv"
	"sync"
	"time"
)

const memoryShards = 32

type memoryEntry struct {
	count   int64
	resetAt time.Time
}

type memoryShard struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
}

// MemoryStore keeps counters in process memory, spread over sharded locks.
// Counts are advisory: every instance has its own view.
type MemoryStore struct {
	shards          [memoryShards]memoryShard
	now             func() time.Time
	janitorInterval time.Duration
}

type MemoryOption func(*MemoryStore)

func WithMemoryClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) { s.now = now }
}

func WithJanitorInterval(d time.Duration) MemoryOption {
	return func(s *MemoryStore) { s.janitorInterval = d }
}

func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		now:             time.Now,
		janitorInterval: 5 * time.Minute,
	}
	for i := range s.shards {
		s.shards[i].entries = make(map[string]*memoryEntry)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Increment implements CounterStore. It never fails.
func (s *MemoryStore) Increment(ctx context.Context, key string, window time.Duration) (Window, error) {
	if err := ctx.Err(); err != nil {
		return Window{}, err
	}
	return s.Hit(key, window), nil
}

// Hit is the synchronous form of Increment.
func (s *MemoryStore) Hit(key string, window time.Duration) Window {
	now := s.now()
	shard := s.shardFor(key)

	shard.mu.Lock()
	defer shard.mu.Unlock()

	entry, ok := shard.entries[key]
	if !ok || !now.Before(entry.resetAt) {
		entry = &memoryEntry{resetAt: now.Add(window)}
		shard.entries[key] = entry
	}
	entry.count++

	return Window{Count: entry.count, ResetAt: entry.resetAt}
}

// Sweep deletes windows that have already elapsed and reports how many were removed.
func (s *MemoryStore) Sweep() int {
	now := s.now()
	removed := 0
	for i := range s.shards {
		shard := &s.shards[i]
		shard.mu.Lock()
		for key, entry := range shard.entries {
			if !now.Before(entry.resetAt) {
				delete(shard.entries, key)
				removed++
			}
		}
		shard.mu.Unlock()
	}
	return removed
}

// Len returns the number of tracked keys.
func (s *MemoryStore) Len() int {
	n := 0
	for i := range s.shards {
		s.shards[i].mu.Lock()
		n += len(s.shards[i].entries)
		s.shards[i].mu.Unlock()
	}
	return n
}

// StartJanitor sweeps dead windows periodically until ctx is cancelled.
func (s *MemoryStore) StartJanitor(ctx context.Context) {
	if s.janitorInterval <= 0 {
		return
	}

	t := time.NewTicker(s.janitorInterval)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				s.Sweep()
			}
		}
	}()
}

func (s *MemoryStore) shardFor(key string) *memoryShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return &s.shards[h.Sum32()%memoryShards]
}
