// Package catalog holds the curated wine catalog: a read-only, in-memory set
// of known wines loaded once at process start.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/vinolens/backend/internal/domain"
)

//go:embed wines.json
var seedData []byte

// Store is the immutable in-memory wine catalog.
type Store struct {
	wines []domain.Wine
	byID  map[string]int
}

// NewStore loads the embedded catalog seed. Returns an error only when the
// seed itself is malformed, which is a build defect rather than a runtime
// condition.
func NewStore() (*Store, error) {
	return NewStoreFromJSON(seedData)
}

// NewStoreFromJSON builds a catalog from raw JSON, mainly for tests that
// need a controlled catalog.
func NewStoreFromJSON(data []byte) (*Store, error) {
	var wines []domain.Wine
	if err := json.Unmarshal(data, &wines); err != nil {
		return nil, fmt.Errorf("failed to decode catalog seed: %w", err)
	}

	byID := make(map[string]int, len(wines))
	for i := range wines {
		wines[i].Origin = domain.WineOriginCatalog
		byID[wines[i].ID] = i
	}

	return &Store{wines: wines, byID: byID}, nil
}

// Wines returns the catalog entries in load order. Callers must not mutate
// the returned slice.
func (s *Store) Wines() []domain.Wine {
	return s.wines
}

// Get returns the catalog entry with the given id, or nil.
func (s *Store) Get(id string) *domain.Wine {
	if i, ok := s.byID[id]; ok {
		return &s.wines[i]
	}
	return nil
}

// Size returns the number of catalog entries.
func (s *Store) Size() int {
	return len(s.wines)
}
