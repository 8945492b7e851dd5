package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

type memoryEntry struct {
	draft     Draft
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// memorySweepInterval bounds how often Save scans for expired drafts.
const memorySweepInterval = time.Minute

// MemoryDraftStore keeps drafts in process. Suitable for a single instance.
// Expired drafts are dropped on read and swept periodically on Save, so
// abandoned drafts do not accumulate.
type MemoryDraftStore struct {
	mu        sync.Mutex
	drafts    map[string]memoryEntry
	now       func() time.Time
	lastSweep time.Time
}

func NewMemoryDraftStore() *MemoryDraftStore {
	return &MemoryDraftStore{drafts: make(map[string]memoryEntry), now: time.Now}
}

func (s *MemoryDraftStore) Get(_ context.Context, id string) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.drafts[id]
	if !ok {
		return Draft{}, ErrDraftNotFound
	}
	if e.expired(s.now()) {
		delete(s.drafts, id)
		return Draft{}, ErrDraftNotFound
	}
	return e.draft, nil
}

func (s *MemoryDraftStore) Save(_ context.Context, d Draft, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= memorySweepInterval {
		s.sweepLocked(now)
	}

	var exp time.Time
	if ttl > 0 {
		exp = now.Add(ttl)
	}
	s.drafts[d.ID] = memoryEntry{draft: d, expiresAt: exp}
	return nil
}

func (s *MemoryDraftStore) sweepLocked(now time.Time) {
	for id, e := range s.drafts {
		if e.expired(now) {
			delete(s.drafts, id)
		}
	}
	s.lastSweep = now
}

// RedisDraftStore shares drafts between API instances.
type RedisDraftStore struct {
	client *redis.Client
	prefix string
}

func NewRedisDraftStore(client *redis.Client) *RedisDraftStore {
	return &RedisDraftStore{client: client, prefix: "booking:draft:"}
}

func (s *RedisDraftStore) key(id string) string { return s.prefix + id }

func (s *RedisDraftStore) Get(ctx context.Context, id string) (Draft, error) {
	raw, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Draft{}, ErrDraftNotFound
	}
	if err != nil {
		return Draft{}, fmt.Errorf("draft store: get %s: %w", id, err)
	}

	var d Draft
	if err := json.Unmarshal(raw, &d); err != nil {
		return Draft{}, fmt.Errorf("draft store: decode %s: %w", id, err)
	}
	return d, nil
}

func (s *RedisDraftStore) Save(ctx context.Context, d Draft, ttl time.Duration) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("draft store: encode %s: %w", d.ID, err)
	}
	if err := s.client.Set(ctx, s.key(d.ID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("draft store: set %s: %w", d.ID, err)
	}
	return nil
}
