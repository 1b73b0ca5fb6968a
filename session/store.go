package session

import (
	"context"
	"sync"
	"time"
)

// Store keeps one Context per session id. Get creates a context with
// defaults when the id is unknown; Update applies a last-write-wins patch.
// Implementations enforce a TTL so abandoned sessions age out.
type Store interface {
	Get(ctx context.Context, sessionID string) (*Context, error)
	Update(ctx context.Context, sessionID string, patch Patch) error
	Delete(ctx context.Context, sessionID string) error
}

type memoryEntry struct {
	sctx     *Context
	deadline time.Time
}

// MemoryStore is the process-local Store used for single-process
// deployments and tests. Sessions must be sticky to one process; swap in
// the Redis store otherwise.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: map[string]*memoryEntry{},
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (*Context, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.live(sessionID)
	return copyContext(e.sctx), nil
}

func (s *MemoryStore) Update(_ context.Context, sessionID string, patch Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.live(sessionID)
	e.sctx.apply(patch)
	e.deadline = s.now().Add(s.ttl)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionID)
	return nil
}

// live returns the entry for sessionID, resurrecting expired or missing ones
// with defaults. Every other expired entry is swept at the same time so
// abandoned sessions do not accumulate. Callers hold the mutex.
func (s *MemoryStore) live(sessionID string) *memoryEntry {
	now := s.now()
	for id, e := range s.entries {
		if now.After(e.deadline) {
			delete(s.entries, id)
		}
	}

	e, ok := s.entries[sessionID]
	if !ok {
		e = &memoryEntry{sctx: NewContext(), deadline: now.Add(s.ttl)}
		s.entries[sessionID] = e
	}
	return e
}

// copyContext hands callers their own copy so concurrent requests cannot
// race on the stored maps.
func copyContext(c *Context) *Context {
	out := &Context{
		Language:        c.Language,
		LastToolResults: make(map[string]map[string]any, len(c.LastToolResults)),
	}
	for name, payload := range c.LastToolResults {
		out.LastToolResults[name] = payload
	}
	if c.LastMentioned != nil {
		m := *c.LastMentioned
		out.LastMentioned = &m
	}
	return out
}
