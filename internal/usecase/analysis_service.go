package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/vinolens/backend/internal/domain"
)

// AnalysisService decides which label provider serves a call and what
// happens when it fails. Per call it is in exactly one of four states:
// Configured (delegate to the adapter), Development (no adapter configured,
// serve stub data), Degraded (adapter failed and fallback is enabled), or
// Failed (adapter failed and fallback is disabled).
type AnalysisService struct {
	provider           domain.LabelProvider // nil means development mode
	stub               domain.LabelProvider
	scorer             *ConfidenceScorer
	fallbackEnabled    bool
	enableDebugLogging bool
}

// NewAnalysisService creates the fallback controller. provider may be nil
// for development mode; stub must not be.
func NewAnalysisService(
	provider domain.LabelProvider,
	stub domain.LabelProvider,
	scorer *ConfidenceScorer,
	fallbackEnabled bool,
	enableDebugLogging bool,
) *AnalysisService {
	return &AnalysisService{
		provider:           provider,
		stub:               stub,
		scorer:             scorer,
		fallbackEnabled:    fallbackEnabled,
		enableDebugLogging: enableDebugLogging,
	}
}

// Analyze obtains a label analysis, degrading to stub data when the
// configured provider fails and fallback is enabled. The returned analysis
// always carries a stamped confidence. Caller cancellation is propagated,
// never absorbed into fallback data.
func (s *AnalysisService) Analyze(ctx context.Context, image []byte, mimeType string) (*domain.WineLabelAnalysis, error) {
	analysis, err := s.obtain(ctx, image, mimeType)
	if err != nil {
		return nil, err
	}

	analysis.Confidence = s.scorer.AnalysisScore(analysis)
	return analysis, nil
}

func (s *AnalysisService) obtain(ctx context.Context, image []byte, mimeType string) (*domain.WineLabelAnalysis, error) {
	if s.provider == nil {
		if s.enableDebugLogging {
			log.Printf("[PROVIDER] no provider configured, serving development data")
		}
		return s.stub.AnalyzeImage(ctx, image, mimeType)
	}

	analysis, err := s.provider.AnalyzeImage(ctx, image, mimeType)
	if err == nil {
		return analysis, nil
	}

	// Cancellation is caller intent, not backend failure.
	if errors.Is(err, context.Canceled) {
		return nil, err
	}

	if !s.fallbackEnabled {
		return nil, fmt.Errorf("provider %s: %w", s.provider.Name(), err)
	}

	log.Printf("[PROVIDER] %s failed (%v), falling back to development data", s.provider.Name(), err)
	return s.stub.AnalyzeImage(ctx, image, mimeType)
}
