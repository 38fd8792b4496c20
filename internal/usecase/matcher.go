package usecase

import (
	"context"
	"log"

	"github.com/precocerto/backend/internal/domain"
)

// Default minimum self-reported confidence for a cross-catalog match.
// This is the single consolidated threshold; filtering always precedes
// matching in this pipeline.
const defaultMinConfidence = 0.6

// MatchConfig holds configuration for the cross-catalog matcher
type MatchConfig struct {
	MinConfidence      float64
	EnableDebugLogging bool
}

// Matcher selects the single pair of products, one per retailer, most likely
// to be the same underlying product. The judge self-reports indices and a
// confidence; both are re-validated here and any violation is treated as
// "no match", never as an error.
type Matcher struct {
	judge              domain.Judge
	minConfidence      float64
	enableDebugLogging bool
}

// NewMatcher creates a new cross-catalog matcher with the given configuration
func NewMatcher(judge domain.Judge, config MatchConfig) *Matcher {
	minConfidence := config.MinConfidence
	if minConfidence <= 0 {
		minConfidence = defaultMinConfidence
	}

	return &Matcher{
		judge:              judge,
		minConfidence:      minConfidence,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// Match returns a validated pair or nil. Both lists must be non-empty;
// zero-candidate sets have no possible match and short-circuit to nil.
func (m *Matcher) Match(ctx context.Context, atacadao, tenda []domain.ProductRecord) *domain.ProductMatch {
	if len(atacadao) == 0 || len(tenda) == 0 {
		return nil
	}

	match, err := m.judge.MatchProducts(ctx, atacadao, tenda)
	if err != nil {
		log.Printf("[MATCH] judge failed, treating as no match: %v", err)
		return nil
	}
	if match == nil {
		if m.enableDebugLogging {
			log.Printf("[MATCH] judge found no equivalent pair (%d x %d candidates)",
				len(atacadao), len(tenda))
		}
		return nil
	}

	// Re-validate the judge's self-report: out-of-range indices or an
	// implausible confidence are data-quality signals, not match results.
	if match.AtacadaoIndex < 0 || match.AtacadaoIndex >= len(atacadao) ||
		match.TendaIndex < 0 || match.TendaIndex >= len(tenda) {
		log.Printf("[MATCH] judge returned out-of-range indices (%d, %d) for lists of %d and %d",
			match.AtacadaoIndex, match.TendaIndex, len(atacadao), len(tenda))
		return nil
	}
	if match.Confidence < m.minConfidence || match.Confidence > 1 {
		if m.enableDebugLogging {
			log.Printf("[MATCH] confidence %.2f below minimum %.2f, treating as no match",
				match.Confidence, m.minConfidence)
		}
		return nil
	}

	if m.enableDebugLogging {
		log.Printf("[MATCH] paired %q with %q (confidence %.2f)",
			atacadao[match.AtacadaoIndex].Name, tenda[match.TendaIndex].Name, match.Confidence)
	}

	return match
}
