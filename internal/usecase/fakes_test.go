package usecase

import (
	"context"

	"github.com/precocerto/backend/internal/domain"
)

// fakeJudge implements domain.Judge with pluggable behavior per judgment
type fakeJudge struct {
	analyzeFn func(ctx context.Context, term string) (*domain.IntentProfile, error)
	scoreFn   func(ctx context.Context, req *domain.RelevanceRequest) ([]domain.RelevanceVerdict, error)
	matchFn   func(ctx context.Context, atacadao, tenda []domain.ProductRecord) (*domain.ProductMatch, error)
	parseFn   func(ctx context.Context, text string) ([]domain.ShoppingItem, error)
}

func (f *fakeJudge) AnalyzeTerm(ctx context.Context, term string) (*domain.IntentProfile, error) {
	if f.analyzeFn == nil {
		return nil, domain.ErrJudgeUnavailable
	}
	return f.analyzeFn(ctx, term)
}

func (f *fakeJudge) ScoreRelevance(ctx context.Context, req *domain.RelevanceRequest) ([]domain.RelevanceVerdict, error) {
	if f.scoreFn == nil {
		return nil, domain.ErrJudgeUnavailable
	}
	return f.scoreFn(ctx, req)
}

func (f *fakeJudge) MatchProducts(ctx context.Context, atacadao, tenda []domain.ProductRecord) (*domain.ProductMatch, error) {
	if f.matchFn == nil {
		return nil, domain.ErrJudgeUnavailable
	}
	return f.matchFn(ctx, atacadao, tenda)
}

func (f *fakeJudge) ParseShoppingList(ctx context.Context, text string) ([]domain.ShoppingItem, error) {
	if f.parseFn == nil {
		return nil, domain.ErrJudgeUnavailable
	}
	return f.parseFn(ctx, text)
}

// fakeCatalog implements domain.CatalogClient with canned results per term
type fakeCatalog struct {
	retailer domain.Retailer
	results  map[string][]domain.ProductRecord
	err      error
	calls    []string
}

func (f *fakeCatalog) Retailer() domain.Retailer {
	return f.retailer
}

func (f *fakeCatalog) Search(ctx context.Context, term string) ([]domain.ProductRecord, error) {
	f.calls = append(f.calls, term)
	if f.err != nil {
		return nil, f.err
	}
	return f.results[term], nil
}

// scoreAll returns a verdict of 1.0 for every candidate, in input order
func scoreAll(ctx context.Context, req *domain.RelevanceRequest) ([]domain.RelevanceVerdict, error) {
	verdicts := make([]domain.RelevanceVerdict, len(req.Products))
	for i := range req.Products {
		verdicts[i] = domain.RelevanceVerdict{Index: i, Score: 1.0, Reason: "exact category"}
	}
	return verdicts, nil
}
