// Package history stores finished recognitions for the history/favorites
// views. It is a write-only collaborator of the delivery layer; the
// recognition core never reads from it.
package history

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vinolens/backend/internal/domain"
)

// MemoryStore is a thread-safe in-memory history store.
type MemoryStore struct {
	entries map[string]*domain.HistoryEntry
	mutex   sync.RWMutex
}

// NewMemoryStore creates an empty history store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*domain.HistoryEntry),
	}
}

// Save records a finished recognition. Assigns the entry an id and timestamp
// when missing.
func (s *MemoryStore) Save(ctx context.Context, entry *domain.HistoryEntry) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	stored := *entry
	s.entries[entry.ID] = &stored
	return nil
}

// List returns all history entries, newest first.
func (s *MemoryStore) List(ctx context.Context) ([]*domain.HistoryEntry, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	entries := make([]*domain.HistoryEntry, 0, len(s.entries))
	for _, e := range s.entries {
		copied := *e
		entries = append(entries, &copied)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}

// SetFavorite toggles the favorite flag on a stored entry.
func (s *MemoryStore) SetFavorite(ctx context.Context, id string, favorite bool) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	entry, ok := s.entries[id]
	if !ok {
		return domain.ErrHistoryNotFound
	}
	entry.Favorite = favorite
	return nil
}
