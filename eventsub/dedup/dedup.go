// Package dedup remembers EventSub message ids so that a notification
// Twitch redelivers is handled once. Both stores satisfy eventsub.Deduper.
package dedup

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/arvarik/twitch-go/eventsub"
)

// DefaultTTL is how long a message id is remembered. Twitch stops retrying
// well within this window.
const DefaultTTL = 10 * time.Minute

var (
	_ eventsub.Deduper = (*Memory)(nil)
	_ eventsub.Deduper = (*Redis)(nil)
)

// Memory is an in-process store. It only de-duplicates within one process.
// Expired ids are swept at most once per ttl; an expired id that has not
// been swept yet already counts as unseen.
type Memory struct {
	mu         sync.Mutex
	ttl        time.Duration
	sweepEvery time.Duration
	lastSweep  time.Time
	now        func() time.Time
	seen       map[string]time.Time
}

// NewMemory returns an in-memory store remembering ids for ttl. A
// non-positive ttl means DefaultTTL.
func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Memory{ttl: ttl, sweepEvery: ttl, now: time.Now, seen: make(map[string]time.Time)}
}

// Seen implements eventsub.Deduper.
func (m *Memory) Seen(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if now.Sub(m.lastSweep) >= m.sweepEvery {
		m.sweep(now)
	}

	if exp, ok := m.seen[id]; ok && now.Before(exp) {
		return true, nil
	}
	m.seen[id] = now.Add(m.ttl)
	return false, nil
}

func (m *Memory) sweep(now time.Time) {
	for k, exp := range m.seen {
		if !now.Before(exp) {
			delete(m.seen, k)
		}
	}
	m.lastSweep = now
}

// Forget implements eventsub.Deduper.
func (m *Memory) Forget(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.seen, id)
	return nil
}

// Len returns the number of ids currently held, including expired ids not
// yet swept.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.seen)
}

// Redis shares seen ids between receivers through Redis.
type Redis struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

// NewRedis returns a store keeping ids under prefix for ttl. A
// non-positive ttl means DefaultTTL.
func NewRedis(client redis.Cmdable, prefix string, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if prefix == "" {
		prefix = "twitch:eventsub:seen:"
	}
	return &Redis{client: client, prefix: prefix, ttl: ttl}
}

// Seen implements eventsub.Deduper. The id is recorded atomically with
// SETNX, so concurrent receivers agree on which one handles a message.
func (r *Redis) Seen(ctx context.Context, id string) (bool, error) {
	created, err := r.client.SetNX(ctx, r.prefix+id, 1, r.ttl).Result()
	if err != nil {
		return false, err
	}
	return !created, nil
}

// Forget implements eventsub.Deduper.
func (r *Redis) Forget(ctx context.Context, id string) error {
	return r.client.Del(ctx, r.prefix+id).Err()
}
