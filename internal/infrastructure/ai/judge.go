/*
Package ai implements the judgment service behind intent analysis, relevance
filtering, cross-catalog matching and shopping-list parsing, backed by the
Gemini API with structured JSON responses.
*/
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"google.golang.org/genai"

	"github.com/precocerto/backend/internal/domain"
)

// GeminiJudge implements domain.Judge on top of the Gemini API
type GeminiJudge struct {
	client *genai.Client
	model  string
	debug  bool
}

// NewGeminiJudge creates a judge client. The API key is the one credential
// the pipeline cannot run without.
func NewGeminiJudge(ctx context.Context, apiKey, model string) (*GeminiJudge, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiJudge{
		client: client,
		model:  model,
	}, nil
}

// SetDebug enables or disables debug logging
func (j *GeminiJudge) SetDebug(debug bool) {
	j.debug = debug
}

// generate issues one structured-JSON judgment call and unmarshals the
// response into out. Any transport or decoding failure is reported as
// ErrJudgeUnavailable so callers can apply their documented fallback.
func (j *GeminiJudge) generate(ctx context.Context, system, prompt string, schema *genai.Schema, out any) error {
	contents := []*genai.Content{
		{Role: "system", Parts: []*genai.Part{{Text: system}}},
		{Role: "user", Parts: []*genai.Part{{Text: prompt}}},
	}

	resp, err := j.client.Models.GenerateContent(ctx, j.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
		Temperature:      genai.Ptr[float32](0.2),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrJudgeUnavailable, err)
	}

	respText := resp.Text()
	if err := json.Unmarshal([]byte(respText), out); err != nil {
		return fmt.Errorf("%w: malformed judge response: %v", domain.ErrJudgeUnavailable, err)
	}
	return nil
}

type intentResult struct {
	ProductType    string   `json:"product_type"`
	ProductSubtype string   `json:"product_subtype"`
	Attributes     []string `json:"attributes"`
	DesiredBrand   string   `json:"desired_brand"`
	QuantityInfo   string   `json:"quantity_info"`
	UnitWeight     string   `json:"unit_weight"`
	SearchTerms    struct {
		Primary     string `json:"primary"`
		Alternative string `json:"alternative"`
		Generic     string `json:"generic"`
	} `json:"search_terms"`
	ExcludeWords []string `json:"exclude_words"`
	Confidence   float64  `json:"confidence"`
}

// AnalyzeTerm classifies a raw search term into an IntentProfile
func (j *GeminiJudge) AnalyzeTerm(ctx context.Context, term string) (*domain.IntentProfile, error) {
	var result intentResult
	if err := j.generate(ctx, intentSystemPrompt, buildIntentPrompt(term), intentSchema(), &result); err != nil {
		return nil, err
	}

	if j.debug {
		log.Printf("[JUDGE] analyzed %q: type=%q exclude=%v", term, result.ProductType, result.ExcludeWords)
	}

	return &domain.IntentProfile{
		ProductType:    result.ProductType,
		ProductSubtype: result.ProductSubtype,
		Attributes:     result.Attributes,
		DesiredBrand:   result.DesiredBrand,
		QuantityInfo:   result.QuantityInfo,
		UnitWeight:     result.UnitWeight,
		Variants: domain.SearchVariants{
			Primary:     result.SearchTerms.Primary,
			Alternative: result.SearchTerms.Alternative,
			Generic:     result.SearchTerms.Generic,
		},
		ExcludeWords: result.ExcludeWords,
		Confidence:   result.Confidence,
	}, nil
}

type relevanceResult struct {
	Verdicts []struct {
		Index  int     `json:"index"`
		Score  float64 `json:"score"`
		Reason string  `json:"reason"`
	} `json:"verdicts"`
}

// ScoreRelevance scores each candidate against the analyzed intent
func (j *GeminiJudge) ScoreRelevance(ctx context.Context, req *domain.RelevanceRequest) ([]domain.RelevanceVerdict, error) {
	var result relevanceResult
	if err := j.generate(ctx, relevanceSystemPrompt, buildRelevancePrompt(req), relevanceSchema(), &result); err != nil {
		return nil, err
	}

	verdicts := make([]domain.RelevanceVerdict, 0, len(result.Verdicts))
	for _, v := range result.Verdicts {
		verdicts = append(verdicts, domain.RelevanceVerdict{
			Index:  v.Index,
			Score:  v.Score,
			Reason: v.Reason,
		})
	}

	if j.debug {
		log.Printf("[JUDGE] scored %d of %d candidates for %q",
			len(verdicts), len(req.Products), req.OriginalTerm)
	}
	return verdicts, nil
}

type matchResult struct {
	Matched       bool    `json:"matched"`
	AtacadaoIndex int     `json:"atacadao_index"`
	TendaIndex    int     `json:"tenda_index"`
	Confidence    float64 `json:"confidence"`
}

// MatchProducts selects the best equivalent pair across both retailers, or
// nil when the judge reports no equivalent pair exists
func (j *GeminiJudge) MatchProducts(ctx context.Context, atacadao, tenda []domain.ProductRecord) (*domain.ProductMatch, error) {
	var result matchResult
	if err := j.generate(ctx, matchSystemPrompt, buildMatchPrompt(atacadao, tenda), matchSchema(), &result); err != nil {
		return nil, err
	}

	if !result.Matched {
		return nil, nil
	}

	return &domain.ProductMatch{
		AtacadaoIndex: result.AtacadaoIndex,
		TendaIndex:    result.TendaIndex,
		Confidence:    result.Confidence,
	}, nil
}

type listResult struct {
	Items []struct {
		SearchText string `json:"search_text"`
		Quantity   int    `json:"quantity"`
		Brand      string `json:"brand"`
		Note       string `json:"note"`
	} `json:"items"`
}

// ParseShoppingList extracts structured items from a free-text shopping list
func (j *GeminiJudge) ParseShoppingList(ctx context.Context, text string) ([]domain.ShoppingItem, error) {
	var result listResult
	if err := j.generate(ctx, listSystemPrompt, buildListPrompt(text), listSchema(), &result); err != nil {
		return nil, err
	}

	items := make([]domain.ShoppingItem, 0, len(result.Items))
	for _, item := range result.Items {
		items = append(items, domain.ShoppingItem{
			SearchText: item.SearchText,
			Quantity:   item.Quantity,
			Brand:      item.Brand,
			Note:       item.Note,
		})
	}

	if j.debug {
		log.Printf("[JUDGE] parsed %d items from list text", len(items))
	}
	return items, nil
}
