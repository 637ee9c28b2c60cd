package domain

import (
	"context"
	"time"
)

// LabelProvider defines the contract every analysis backend adapter fulfills.
// Implementations submit exactly one outbound request per call; retries and
// fallback are the analysis service's concern.
type LabelProvider interface {
	// Name returns the provider identifier (e.g. "openai", "ocrspace", "mock").
	Name() string

	// AnalyzeImage turns image bytes into a normalized label analysis.
	// Fails with ErrProviderUnavailable, ErrProviderResponseInvalid, or
	// ErrProviderConfigInvalid.
	AnalyzeImage(ctx context.Context, image []byte, mimeType string) (*WineLabelAnalysis, error)
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// HistoryRepository is the write-mostly sink for finished recognitions.
// The recognition core never depends on it; only the delivery layer does.
type HistoryRepository interface {
	Save(ctx context.Context, entry *HistoryEntry) error
	List(ctx context.Context) ([]*HistoryEntry, error)
	SetFavorite(ctx context.Context, id string, favorite bool) error
}
