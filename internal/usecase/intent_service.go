package usecase

import (
	"context"
	"log"
	"strings"

	"github.com/precocerto/backend/internal/domain"
)

// IntentService turns a raw search term into an IntentProfile, degrading to
// "no profile" when the judgment service is unavailable. A missing profile is
// never an error: downstream stages run on the raw term with no exclusions.
type IntentService struct {
	judge              domain.Judge
	enableDebugLogging bool
}

// NewIntentService creates a new intent analysis service
func NewIntentService(judge domain.Judge, enableDebugLogging bool) *IntentService {
	return &IntentService{
		judge:              judge,
		enableDebugLogging: enableDebugLogging,
	}
}

// Analyze classifies the term. Returns nil when the term is blank or the
// judge failed; callers must then use the raw term as the only variant.
func (s *IntentService) Analyze(ctx context.Context, term string) *domain.IntentProfile {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}

	profile, err := s.judge.AnalyzeTerm(ctx, term)
	if err != nil {
		log.Printf("[INTENT] analysis failed for %q, falling back to raw term: %v", term, err)
		return nil
	}
	if profile == nil {
		return nil
	}

	// The primary variant must always be populated; a profile without one
	// still has the raw term to search with.
	if strings.TrimSpace(profile.Variants.Primary) == "" {
		profile.Variants.Primary = term
	}

	if s.enableDebugLogging {
		log.Printf("[INTENT] %q -> type=%q subtype=%q exclude=%v confidence=%.2f",
			term, profile.ProductType, profile.ProductSubtype, profile.ExcludeWords, profile.Confidence)
	}

	return profile
}
