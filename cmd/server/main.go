package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/precocerto/backend/config"
	httpDelivery "github.com/precocerto/backend/internal/delivery/http"
	"github.com/precocerto/backend/internal/domain"
	"github.com/precocerto/backend/internal/infrastructure/ai"
	"github.com/precocerto/backend/internal/infrastructure/cache"
	"github.com/precocerto/backend/internal/infrastructure/catalog"
	"github.com/precocerto/backend/internal/infrastructure/history"
	"github.com/precocerto/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting PrecoCerto Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Cache Type: %s", cfg.Cache.Type)

	debug := cfg.Server.Environment == "development" || cfg.Matching.EnableDebugLogging

	// Initialize infrastructure dependencies
	var cacheRepo domain.CacheRepository
	if cfg.Cache.Type == "redis" {
		redisCache, err := cache.NewRedisCache(context.Background(), cfg.Cache.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		cacheRepo = redisCache
	} else {
		cacheRepo = cache.NewMemoryCache()
	}
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	atacadaoClient := catalog.NewAtacadaoClient(cfg.Atacadao.BaseURL)
	tendaClient := catalog.NewTendaClient(cfg.Tenda.BaseURL, cfg.Tenda.Token)

	// The judgment credential is the one dependency the pipeline cannot
	// degrade around; a missing key fails startup, not requests.
	judge, err := ai.NewGeminiJudge(context.Background(), cfg.Judge.APIKey, cfg.Judge.Model)
	if err != nil {
		log.Fatalf("Failed to create judgment client: %v", err)
	}

	if debug {
		atacadaoClient.SetDebug(true)
		tendaClient.SetDebug(true)
		judge.SetDebug(true)
		log.Printf("Debug logging enabled")
	}

	// Initialize usecase layer
	comparisonService := usecase.NewComparisonService(
		atacadaoClient,
		tendaClient,
		judge,
		cacheRepo,
		history.NewLogRepository(),
		usecase.ComparisonServiceConfig{
			CacheTTL:           cfg.Cache.TTL,
			MinConfidence:      cfg.Matching.MinConfidence,
			MinRelevance:       cfg.Matching.MinRelevance,
			ItemConcurrency:    cfg.Matching.ItemConcurrency,
			EnableDebugLogging: debug,
		},
	)

	log.Printf("Matching: confidence>=%.2f, relevance>=%.2f, item concurrency=%d",
		cfg.Matching.MinConfidence,
		cfg.Matching.MinRelevance,
		cfg.Matching.ItemConcurrency)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(comparisonService, cfg.Comparison.RequestTimeout)

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
