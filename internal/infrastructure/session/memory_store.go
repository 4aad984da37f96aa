package session

import (
	"context"
	"sync"
	"time"

	domain "github.com/mohammadpnp/roster-import/internal/domain/employee"
)

type memoryEntry struct {
	upload    domain.PendingUpload
	expiresAt time.Time
}

// MemoryStore is the single-process fallback when Redis is not configured.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

func (s *MemoryStore) Save(ctx context.Context, upload domain.PendingUpload) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evictExpired()
	s.entries[upload.ID] = memoryEntry{upload: upload, expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Take(ctx context.Context, uploadID string) (domain.PendingUpload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[uploadID]
	delete(s.entries, uploadID)
	if !ok || (s.ttl > 0 && s.now().After(entry.expiresAt)) {
		return domain.PendingUpload{}, domain.ErrUploadNotFound
	}
	return entry.upload, nil
}

func (s *MemoryStore) Delete(ctx context.Context, uploadID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, uploadID)
	return nil
}

func (s *MemoryStore) evictExpired() {
	if s.ttl <= 0 {
		return
	}
	now := s.now()
	for id, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, id)
		}
	}
}
