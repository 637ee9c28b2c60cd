package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/vinolens/backend/config"
	httpDelivery "github.com/vinolens/backend/internal/delivery/http"
	"github.com/vinolens/backend/internal/domain"
	"github.com/vinolens/backend/internal/infrastructure/cache"
	"github.com/vinolens/backend/internal/infrastructure/catalog"
	"github.com/vinolens/backend/internal/infrastructure/history"
	"github.com/vinolens/backend/internal/infrastructure/provider"
	"github.com/vinolens/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting VinoLens Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Load the wine catalog
	catalogStore, err := catalog.NewStore()
	if err != nil {
		log.Fatalf("Failed to load wine catalog: %v", err)
	}
	log.Printf("Catalog loaded: %d wines", catalogStore.Size())

	debug := cfg.Recognition.Debug || cfg.Server.Environment == "development"

	// Resolve the configured label provider. nil means development mode.
	labelProvider := resolveProvider(cfg, debug)
	if labelProvider != nil {
		log.Printf("Provider: %s (model: %s, fallback: %v)",
			labelProvider.Name(), cfg.Provider.Model, cfg.Provider.EnableFallback)
		if cfg.Provider.APIKey == "" {
			log.Printf("WARNING: provider %s has no API key - calls will fail!", labelProvider.Name())
		}
	} else {
		log.Printf("Provider: none configured, serving development data")
	}
	stub := provider.NewMockProvider(rand.New(rand.NewSource(time.Now().UnixNano())))

	// Initialize usecase layer
	scorer := &usecase.ConfidenceScorer{}
	analyzer := usecase.NewAnalysisService(labelProvider, stub, scorer, cfg.Provider.EnableFallback, debug)
	matcher := usecase.NewMatchingService(catalogStore.Wines(), debug)

	var resultCache domain.CacheRepository
	if cfg.Cache.Enabled {
		resultCache = cache.NewMemoryCache()
		log.Printf("Result cache enabled (TTL: %s)", cfg.Cache.TTL)
	}

	recognition := usecase.NewRecognitionService(analyzer, matcher, scorer, resultCache, usecase.RecognitionConfig{
		MaxImageBytes:      cfg.Recognition.MaxImageBytes,
		AnalyzeTimeout:     cfg.Recognition.AnalyzeTimeout,
		CacheTTL:           cfg.Cache.TTL,
		EnableDebugLogging: debug,
	})

	historyStore := history.NewMemoryStore()

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(recognition, matcher, historyStore)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// resolveProvider maps the configuration tag to an adapter instance, once at
// startup. Unknown names are rejected by config validation before this runs.
func resolveProvider(cfg *config.Config, debug bool) domain.LabelProvider {
	switch cfg.Provider.Name {
	case "openai":
		opts := []provider.OpenAIOption{
			provider.WithTimeout(cfg.Recognition.AnalyzeTimeout),
			provider.WithDebug(debug),
		}
		if cfg.Provider.Endpoint != "" {
			opts = append(opts, provider.WithBaseURL(cfg.Provider.Endpoint))
		}
		return provider.NewOpenAIProvider(cfg.Provider.APIKey, cfg.Provider.Model, opts...)
	case "ocrspace":
		p := provider.NewOCRSpaceProvider(cfg.Provider.APIKey, cfg.Provider.Endpoint)
		p.SetDebug(debug)
		return p
	default:
		// "" or "mock": development mode
		return nil
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
