package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/shelfcheck/backend/config"
	httpDelivery "github.com/shelfcheck/backend/internal/delivery/http"
	"github.com/shelfcheck/backend/internal/infrastructure/cache"
	"github.com/shelfcheck/backend/internal/infrastructure/catalog"
	"github.com/shelfcheck/backend/internal/infrastructure/store"
	"github.com/shelfcheck/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting ShelfCheck Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Load the reference catalog and build the similarity index
	records, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	if len(records) == 0 {
		log.Printf("WARNING: catalog %s is empty - all validations will fail open", cfg.Catalog.Path)
	}

	index := usecase.BuildIndex(records, cfg.Validation.TopK)
	provider := catalog.NewProvider(index)
	log.Printf("Catalog: %d records, %d categories (%s)", index.Size(), len(index.Categories()), cfg.Catalog.Path)

	// Response cache, flushed whenever the catalog index is swapped
	memoryCache := cache.NewMemoryCache()
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	// Watch the catalog file and swap the index atomically on change
	if cfg.Catalog.Watch {
		watcher := catalog.NewWatcher(cfg.Catalog.Path, provider, cfg.Validation.TopK, memoryCache.Clear)
		go func() {
			if err := watcher.Run(context.Background()); err != nil && err != context.Canceled {
				log.Printf("Catalog watcher stopped: %v", err)
			}
		}()
		log.Printf("Catalog watcher enabled")
	}

	// Submission store for the head-office review workflow
	submissionStore, err := store.NewFileStore(cfg.Store.Path)
	if err != nil {
		log.Fatalf("Failed to open submission store: %v", err)
	}

	// Initialize usecase layer
	policy := usecase.NewPolicy(cfg.Policy.RestrictedCategories, cfg.Policy.RestrictedKeywords)
	validationService := usecase.NewValidationService(provider, policy, usecase.ValidationConfig{
		TopK:                cfg.Validation.TopK,
		PriceWarningPct:     cfg.Validation.PriceWarningPct,
		PriceHardStopPct:    cfg.Validation.PriceHardStopPct,
		AssertiveConfidence: cfg.Validation.AssertiveConfidence,
	})

	log.Printf("Validation: top_k=%d, price bands=±%.0f%%/±%.0f%%, assertive confidence=%.0f%%",
		cfg.Validation.TopK,
		cfg.Validation.PriceWarningPct*100,
		cfg.Validation.PriceHardStopPct*100,
		cfg.Validation.AssertiveConfidence*100)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(validationService, provider, submissionStore, memoryCache, cfg.Cache.TTL)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
