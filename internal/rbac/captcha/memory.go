package captcha

import (
	"context"
	"sync"
	"time"
)

type memEntry struct {
	answer  string
	expires time.Time
}

// MemoryStore is the single-process fallback used when no redis address is
// configured.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memEntry), now: time.Now}
}

func (s *MemoryStore) Put(_ context.Context, id, answer string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, e := range s.entries {
		if !now.Before(e.expires) {
			delete(s.entries, k)
		}
	}
	s.entries[id] = memEntry{answer: answer, expires: now.Add(ttl)}
	return nil
}

func (s *MemoryStore) Take(_ context.Context, id string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return "", false, nil
	}
	delete(s.entries, id)
	if !s.now().Before(e.expires) {
		return "", false, nil
	}
	return e.answer, true, nil
}
