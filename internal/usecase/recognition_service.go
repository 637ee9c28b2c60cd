package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/vinolens/backend/internal/domain"
)

// allowedMediaTypes is the image precondition allow-list. Bare subtypes are
// stored; validateImage strips any "image/" prefix before lookup.
var allowedMediaTypes = map[string]bool{
	"jpeg": true,
	"jpg":  true,
	"png":  true,
	"webp": true,
}

// DefaultMaxImageBytes is the image size ceiling (10 MiB).
const DefaultMaxImageBytes = 10 * 1024 * 1024

// RecognitionConfig holds configuration for the recognition service
type RecognitionConfig struct {
	MaxImageBytes      int64
	AnalyzeTimeout     time.Duration
	CacheTTL           time.Duration
	EnableDebugLogging bool
}

// RecognitionService is the single entry point of the recognition pipeline:
// validate the image, obtain an analysis through the fallback controller,
// match it against the catalog, score, and assemble the result. Exactly one
// pass per call, no retries.
type RecognitionService struct {
	analyzer           *AnalysisService
	matcher            *MatchingService
	scorer             *ConfidenceScorer
	cache              domain.CacheRepository // optional; nil disables caching
	maxImageBytes      int64
	analyzeTimeout     time.Duration
	cacheTTL           time.Duration
	enableDebugLogging bool
}

// NewRecognitionService creates a recognition service with dependencies.
// cache may be nil.
func NewRecognitionService(
	analyzer *AnalysisService,
	matcher *MatchingService,
	scorer *ConfidenceScorer,
	cache domain.CacheRepository,
	config RecognitionConfig,
) *RecognitionService {
	maxBytes := config.MaxImageBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxImageBytes
	}

	timeout := config.AnalyzeTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}

	return &RecognitionService{
		analyzer:           analyzer,
		matcher:            matcher,
		scorer:             scorer,
		cache:              cache,
		maxImageBytes:      maxBytes,
		analyzeTimeout:     timeout,
		cacheTTL:           cacheTTL,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// AnalyzeLabel runs the full pipeline for one label image.
// Flow: validate -> check cache -> analyze -> match catalog -> score ->
// synthesize if unmatched -> cache -> return.
func (s *RecognitionService) AnalyzeLabel(ctx context.Context, image []byte, mimeType string) (*domain.MatchResult, error) {
	if err := validateImage(image, mimeType, s.maxImageBytes); err != nil {
		return nil, err
	}

	cacheKey := recognitionCacheKey(image)
	if cached := s.getFromCache(ctx, cacheKey); cached != nil {
		if s.enableDebugLogging {
			log.Printf("[RECOGNIZE] cache hit for %s", cacheKey)
		}
		return cached, nil
	}

	// The one suspension point of the pipeline, under a bounded timeout.
	analyzeCtx, cancel := context.WithTimeout(ctx, s.analyzeTimeout)
	defer cancel()

	analysis, err := s.analyzer.Analyze(analyzeCtx, image, mimeType)
	if err != nil {
		return nil, err
	}

	result := s.assembleResult(analysis)

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, result, s.cacheTTL); err != nil && s.enableDebugLogging {
			log.Printf("[RECOGNIZE] failed to cache result: %v", err)
		}
	}
	return result, nil
}

// assembleResult matches the analysis against the catalog and builds the
// final MatchResult. Pure and synchronous.
func (s *RecognitionService) assembleResult(analysis *domain.WineLabelAnalysis) *domain.MatchResult {
	result := &domain.MatchResult{
		ExtractedText: analysis.ExtractedText,
		Analysis:      analysis,
	}

	if best := s.matcher.BestMatch(catalogQuery(analysis)); best != nil {
		result.Wine = best
		result.Confidence = s.scorer.MatchScore(analysis, true)
		if s.enableDebugLogging {
			log.Printf("[RECOGNIZE] catalog match: %s (%s), confidence %d",
				best.Name, best.Producer, result.Confidence)
		}
		return result
	}

	// No catalog anchor: synthesize a record purely from the analysis.
	result.Wine = SynthesizeWine(analysis)
	result.Confidence = analysis.Confidence
	if s.enableDebugLogging {
		if result.Wine != nil {
			log.Printf("[RECOGNIZE] no catalog match, synthesized %q, confidence %d",
				result.Wine.Name, result.Confidence)
		} else {
			log.Printf("[RECOGNIZE] analysis yielded nothing usable")
		}
	}
	return result
}

// catalogQuery builds the catalog search text: name signals plus extracted
// text when present, raw extracted text otherwise.
func catalogQuery(analysis *domain.WineLabelAnalysis) string {
	if analysis.HasNameSignal() {
		return strings.TrimSpace(analysis.WineName + " " + analysis.Producer + " " + analysis.ExtractedText)
	}
	return strings.TrimSpace(analysis.ExtractedText)
}

// validateImage is the pure precondition check: allowed media type and size
// ceiling, no I/O.
func validateImage(image []byte, mimeType string, maxBytes int64) error {
	subtype := strings.ToLower(strings.TrimSpace(mimeType))
	subtype = strings.TrimPrefix(subtype, "image/")
	if !allowedMediaTypes[subtype] {
		return fmt.Errorf("%w: unsupported media type %q", domain.ErrInvalidImage, mimeType)
	}
	if len(image) == 0 {
		return fmt.Errorf("%w: empty image", domain.ErrInvalidImage)
	}
	if int64(len(image)) > maxBytes {
		return fmt.Errorf("%w: image size %d exceeds limit %d", domain.ErrInvalidImage, len(image), maxBytes)
	}
	return nil
}

// recognitionCacheKey derives the cache key from the image content.
func recognitionCacheKey(image []byte) string {
	sum := sha256.Sum256(image)
	return "recognition:" + hex.EncodeToString(sum[:])
}

// getFromCache retrieves a cached MatchResult. The cache hands back plain
// maps (Redis-shaped), so values round-trip through JSON.
func (s *RecognitionService) getFromCache(ctx context.Context, key string) *domain.MatchResult {
	if s.cache == nil {
		return nil
	}

	value, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil
	}

	jsonData, err := json.Marshal(value)
	if err != nil {
		return nil
	}
	var result domain.MatchResult
	if err := json.Unmarshal(jsonData, &result); err != nil {
		return nil
	}
	return &result
}
