package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/precocerto/backend/internal/domain"
)

// Package-level compiled regex patterns for cache-key normalization
var (
	nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9\s]`)
	multipleSpacesRegex  = regexp.MustCompile(`\s+`)
)

// ComparisonServiceConfig holds configuration for the comparison service
type ComparisonServiceConfig struct {
	CacheTTL           time.Duration
	MinConfidence      float64
	MinRelevance       float64
	ItemConcurrency    int
	EnableDebugLogging bool
}

// ComparisonService drives the per-item pipeline across a shopping list:
// analyze -> fetch both catalogs concurrently -> filter each -> match ->
// resolve. Items are isolated: one item's failures degrade only that item.
type ComparisonService struct {
	atacadao domain.CatalogClient
	tenda    domain.CatalogClient
	intents  *IntentService
	filter   *RelevanceFilter
	matcher  *Matcher
	cache    domain.CacheRepository
	history  domain.HistoryRepository

	cacheTTL           time.Duration
	itemConcurrency    int
	enableDebugLogging bool

	judge domain.Judge
}

// NewComparisonService creates a new comparison service with dependencies
func NewComparisonService(
	atacadao domain.CatalogClient,
	tenda domain.CatalogClient,
	judge domain.Judge,
	cache domain.CacheRepository,
	history domain.HistoryRepository,
	config ComparisonServiceConfig,
) *ComparisonService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = time.Hour
	}

	itemConcurrency := config.ItemConcurrency
	if itemConcurrency < 1 {
		itemConcurrency = 4
	}

	return &ComparisonService{
		atacadao: atacadao,
		tenda:    tenda,
		intents:  NewIntentService(judge, config.EnableDebugLogging),
		filter: NewRelevanceFilter(judge, FilterConfig{
			MinRelevance:       config.MinRelevance,
			EnableDebugLogging: config.EnableDebugLogging,
		}),
		matcher: NewMatcher(judge, MatchConfig{
			MinConfidence:      config.MinConfidence,
			EnableDebugLogging: config.EnableDebugLogging,
		}),
		cache:              cache,
		history:            history,
		cacheTTL:           cacheTTL,
		itemConcurrency:    itemConcurrency,
		enableDebugLogging: config.EnableDebugLogging,
		judge:              judge,
	}
}

// CompareItems resolves every usable item of the list and aggregates savings.
// The only caller-visible errors are input errors; everything upstream of an
// item degrades inside that item per the fallback policy.
func (s *ComparisonService) CompareItems(
	ctx context.Context,
	items []domain.ShoppingItem,
	userID string,
) (*domain.ComparisonBatch, error) {
	usable := normalizeItems(items)
	if len(usable) == 0 {
		return nil, fmt.Errorf("%w: shopping list has no usable items", domain.ErrInvalidRequest)
	}

	results := make([]domain.ItemComparison, len(usable))

	// Bounded fan-out across items. compareItem never returns an error, so
	// a degraded item can never cancel its siblings through the group.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.itemConcurrency)
	for i, item := range usable {
		g.Go(func() error {
			results[i] = s.compareItem(gctx, item)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var totalSavings float64
	for _, r := range results {
		totalSavings += r.Savings
	}

	batch := &domain.ComparisonBatch{
		BatchID:      uuid.NewString(),
		Items:        results,
		TotalSavings: totalSavings,
	}

	if userID != "" && s.history != nil {
		if err := s.history.SaveBatch(ctx, userID, batch); err != nil {
			// Recording history never affects the comparison result
			log.Printf("[COMPARE] failed to save batch %s for user %s: %v", batch.BatchID, userID, err)
		}
	}

	return batch, nil
}

// compareItem runs the full pipeline for one item. Every stage degrades
// rather than fails: no intent -> raw term, adapter down -> empty candidates,
// judge down -> unfiltered lists and no match.
func (s *ComparisonService) compareItem(ctx context.Context, item domain.ShoppingItem) domain.ItemComparison {
	term := item.SearchText

	profile := s.intents.Analyze(ctx, term)

	terms := []string{term}
	if profile != nil {
		terms = profile.Variants.Ordered()
	}

	// The two catalog searches are the one required point of concurrency:
	// issued together, both awaited, neither blocking on the other.
	var atacadaoRecords, tendaRecords []domain.ProductRecord
	var fetch errgroup.Group
	fetch.Go(func() error {
		atacadaoRecords = s.searchCatalog(ctx, s.atacadao, terms)
		return nil
	})
	fetch.Go(func() error {
		tendaRecords = s.searchCatalog(ctx, s.tenda, terms)
		return nil
	})
	_ = fetch.Wait()

	atacadaoCandidates := s.filter.Apply(ctx, term, profile, atacadaoRecords)
	tendaCandidates := s.filter.Apply(ctx, term, profile, tendaRecords)

	var match *domain.ProductMatch
	if len(atacadaoCandidates) > 0 && len(tendaCandidates) > 0 {
		match = s.matcher.Match(ctx, records(atacadaoCandidates), records(tendaCandidates))
	}

	return resolveItem(item, atacadaoCandidates, tendaCandidates, match)
}

// searchCatalog tries each search variant in order until one yields results.
// Adapter failures degrade to an empty candidate list for that retailer only.
func (s *ComparisonService) searchCatalog(
	ctx context.Context,
	client domain.CatalogClient,
	terms []string,
) []domain.ProductRecord {
	for _, term := range terms {
		if found, ok := s.cachedSearch(ctx, client.Retailer(), term); ok {
			if len(found) > 0 {
				return found
			}
			continue
		}

		found, err := client.Search(ctx, term)
		if err != nil {
			log.Printf("[COMPARE] %s search failed for %q: %v", client.Retailer(), term, err)
			continue
		}

		s.storeSearch(ctx, client.Retailer(), term, found)
		if len(found) > 0 {
			return found
		}
	}
	return nil
}

// cachedSearch returns cached catalog results and whether the key was present
func (s *ComparisonService) cachedSearch(ctx context.Context, retailer domain.Retailer, term string) ([]domain.ProductRecord, bool) {
	if s.cache == nil {
		return nil, false
	}

	data, err := s.cache.Get(ctx, catalogCacheKey(retailer, term))
	if err != nil {
		return nil, false
	}

	var found []domain.ProductRecord
	if err := json.Unmarshal(data, &found); err != nil {
		return nil, false
	}

	if s.enableDebugLogging {
		log.Printf("[COMPARE] cache hit for %s %q (%d records)", retailer, term, len(found))
	}
	return found, true
}

// storeSearch caches catalog results; cache failures are not load-bearing
func (s *ComparisonService) storeSearch(ctx context.Context, retailer domain.Retailer, term string, found []domain.ProductRecord) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(found)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, catalogCacheKey(retailer, term), data, s.cacheTTL); err != nil {
		log.Printf("[COMPARE] failed to cache %s results for %q: %v", retailer, term, err)
	}
}

// ParseList extracts structured items from a free-text shopping list. Unlike
// the per-item stages this surfaces judge failures: there is nothing to
// degrade to when the list itself cannot be read.
func (s *ComparisonService) ParseList(ctx context.Context, text string) ([]domain.ShoppingItem, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: shopping list text is required", domain.ErrInvalidRequest)
	}

	parsed, err := s.judge.ParseShoppingList(ctx, text)
	if err != nil {
		return nil, err
	}

	items := normalizeItems(parsed)
	if s.enableDebugLogging {
		log.Printf("[COMPARE] parsed %d items from list text", len(items))
	}
	return items, nil
}

// normalizeItems drops blank entries and defaults quantities to 1
func normalizeItems(items []domain.ShoppingItem) []domain.ShoppingItem {
	usable := make([]domain.ShoppingItem, 0, len(items))
	for _, item := range items {
		item.SearchText = strings.TrimSpace(item.SearchText)
		if item.SearchText == "" {
			continue
		}
		if item.Quantity < 1 {
			item.Quantity = 1
		}
		usable = append(usable, item)
	}
	return usable
}

// catalogCacheKey builds a normalized cache key for one retailer search.
// Format: "catalog:{retailer}:{normalized term}"
func catalogCacheKey(retailer domain.Retailer, term string) string {
	normalized := strings.ToLower(term)
	normalized = nonAlphanumericRegex.ReplaceAllString(normalized, "")
	normalized = multipleSpacesRegex.ReplaceAllString(normalized, " ")
	return fmt.Sprintf("catalog:%s:%s", retailer, strings.TrimSpace(normalized))
}
