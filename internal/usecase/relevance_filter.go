package usecase

import (
	"context"
	"log"
	"sort"
	"strings"

	"github.com/precocerto/backend/internal/domain"
)

// Default minimum relevance score a candidate must reach to survive filtering
const defaultMinRelevance = 0.6

// FilterConfig holds configuration for the relevance filter
type FilterConfig struct {
	MinRelevance       float64
	EnableDebugLogging bool
}

// RelevanceFilter drops candidates that are keyword-matched but semantically
// wrong for the analyzed intent. Without an IntentProfile there is nothing to
// judge relevance against, so filtering is skipped entirely.
type RelevanceFilter struct {
	judge              domain.Judge
	minRelevance       float64
	enableDebugLogging bool
}

// NewRelevanceFilter creates a new relevance filter with the given configuration
func NewRelevanceFilter(judge domain.Judge, config FilterConfig) *RelevanceFilter {
	minRelevance := config.MinRelevance
	if minRelevance <= 0 {
		minRelevance = defaultMinRelevance
	}

	return &RelevanceFilter{
		judge:              judge,
		minRelevance:       minRelevance,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// Apply scores one retailer's candidates against the intent and keeps those
// with score >= the configured minimum, sorted by descending score.
//
// Degradation rules:
//   - empty input: empty output, no judge call
//   - nil profile: pass-through unchanged (no classification to judge against)
//   - judge failure: fail open, return the original list unfiltered;
//     losing every candidate is worse than an unfiltered list
func (f *RelevanceFilter) Apply(
	ctx context.Context,
	term string,
	profile *domain.IntentProfile,
	products []domain.ProductRecord,
) []domain.ScoredProduct {
	if len(products) == 0 {
		return nil
	}
	if profile == nil {
		return passthrough(products)
	}

	// Lexical pre-screen: exclusion words mark definitely-wrong products
	// (e.g. "caldo" when the intent is fresh picanha), so they are dropped
	// before any judge call.
	screened := excludeByWords(products, profile.ExcludeWords)
	if len(screened) == 0 {
		if f.enableDebugLogging {
			log.Printf("[FILTER] %q: all %d candidates carried exclusion words", term, len(products))
		}
		return nil
	}

	verdicts, err := f.judge.ScoreRelevance(ctx, &domain.RelevanceRequest{
		Products:       screened,
		OriginalTerm:   term,
		ProductType:    profile.ProductType,
		ProductSubtype: profile.ProductSubtype,
		Attributes:     profile.Attributes,
		ExcludeWords:   profile.ExcludeWords,
	})
	if err != nil {
		log.Printf("[FILTER] judge failed for %q, failing open with %d unfiltered candidates: %v",
			term, len(products), err)
		return passthrough(products)
	}

	var kept []domain.ScoredProduct
	for _, v := range verdicts {
		if v.Index < 0 || v.Index >= len(screened) {
			log.Printf("[FILTER] judge returned out-of-range index %d for %q", v.Index, term)
			continue
		}
		if v.Score < f.minRelevance {
			continue
		}
		kept = append(kept, domain.ScoredProduct{
			ProductRecord:   screened[v.Index],
			RelevanceScore:  v.Score,
			RelevanceReason: v.Reason,
		})
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].RelevanceScore > kept[j].RelevanceScore
	})

	if f.enableDebugLogging {
		log.Printf("[FILTER] %q: %d candidates -> %d relevant", term, len(products), len(kept))
		if len(kept) > 0 {
			log.Printf("[FILTER] top candidate: %q (score %.2f)", kept[0].Name, kept[0].RelevanceScore)
		}
	}

	return kept
}

// excludeByWords removes records whose name contains any exclusion word
func excludeByWords(products []domain.ProductRecord, words []string) []domain.ProductRecord {
	if len(words) == 0 {
		return products
	}

	kept := make([]domain.ProductRecord, 0, len(products))
	for _, p := range products {
		nameLower := strings.ToLower(p.Name)
		excluded := false
		for _, w := range words {
			w = strings.ToLower(strings.TrimSpace(w))
			if w != "" && strings.Contains(nameLower, w) {
				excluded = true
				break
			}
		}
		if !excluded {
			kept = append(kept, p)
		}
	}
	return kept
}

// passthrough wraps records unscored, preserving their order
func passthrough(products []domain.ProductRecord) []domain.ScoredProduct {
	wrapped := make([]domain.ScoredProduct, len(products))
	for i, p := range products {
		wrapped[i] = domain.ScoredProduct{ProductRecord: p}
	}
	return wrapped
}

// records strips relevance annotations, recovering the plain product list
func records(scored []domain.ScoredProduct) []domain.ProductRecord {
	plain := make([]domain.ProductRecord, len(scored))
	for i, s := range scored {
		plain[i] = s.ProductRecord
	}
	return plain
}
