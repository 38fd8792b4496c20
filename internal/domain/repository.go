package domain

import (
	"context"
	"time"
)

// CatalogClient is the contract every retailer adapter fulfils: normalize a
// raw catalog response into ProductRecords for a search term. An empty slice
// is a successful "no results"; records without a usable price never appear.
type CatalogClient interface {
	Retailer() Retailer
	Search(ctx context.Context, term string) ([]ProductRecord, error)
}

// RelevanceRequest carries one retailer's candidates plus the intent context
// the judge needs to score them.
type RelevanceRequest struct {
	Products       []ProductRecord
	OriginalTerm   string
	ProductType    string
	ProductSubtype string
	Attributes     []string
	ExcludeWords   []string
}

// RelevanceVerdict is the judge's score for one candidate, by index into
// the request's product list.
type RelevanceVerdict struct {
	Index  int
	Score  float64
	Reason string
}

// Judge is the single judgment-service capability behind the intent
// analyzer, the relevance filter, the cross-catalog matcher and the list
// parser. Every method may fail; callers own the fallback policy.
type Judge interface {
	// AnalyzeTerm classifies a raw search term into an IntentProfile.
	AnalyzeTerm(ctx context.Context, term string) (*IntentProfile, error)

	// ScoreRelevance scores each candidate against the intent context.
	// Verdicts may cover fewer candidates than were sent.
	ScoreRelevance(ctx context.Context, req *RelevanceRequest) ([]RelevanceVerdict, error)

	// MatchProducts selects the best equivalent pair across both retailers,
	// or nil when no pair qualifies. Indices and confidence are the judge's
	// self-report and must be re-validated by the caller.
	MatchProducts(ctx context.Context, atacadao, tenda []ProductRecord) (*ProductMatch, error)

	// ParseShoppingList extracts structured items from free-text input.
	ParseShoppingList(ctx context.Context, text string) ([]ShoppingItem, error)
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// HistoryRepository durably records finished comparisons for a user.
// Persistence is delegated to an external collaborator; the pipeline must
// produce a correct batch even when nothing is recorded.
type HistoryRepository interface {
	SaveBatch(ctx context.Context, userID string, batch *ComparisonBatch) error
}
