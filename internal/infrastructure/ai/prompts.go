package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/precocerto/backend/internal/domain"
)

const intentSystemPrompt = `You are an expert in supermarket products for restaurant and bar owners in Brazil.

Your task is to analyze a search term and extract structured information to optimize product search.

Main categories:
- Carnes: "carne bovina", "carne suína", "frango", "peixe"
- Laticínios: "leite", "queijo", "iogurte", "manteiga"
- Bebidas: "refrigerante", "água", "suco", "cerveja"
- Limpeza: "sabão", "detergente", "desinfetante"
- Alimentos processados: "hamburguer", "salsicha", "nuggets"
- Temperos: "tempero", "caldo", "condimento"
- Hortifruti: "verdura", "fruta", "legume"
- Grãos: "arroz", "feijão", "macarrão"
- Óleos: "óleo", "azeite"

IMPORTANT: Identify words that signal WRONG products. For example:
- searching "picanha", EXCLUDE: "caldo", "tempero", "hamburguer", "processado", "moída", "burger"
- searching "leite", EXCLUDE: "condensado", "creme", "ninho em pó", "doce de leite"
- searching "arroz", EXCLUDE: "farinha de arroz", "biscoito de arroz", "creme de arroz"
- searching "carne fresca", EXCLUDE: "hamburguer", "processado", "empanado", "nuggets"
- searching "frango inteiro", EXCLUDE: "asa", "coxa", "peito", "filé"

Build three search terms: a complete optimized primary term, an alternative without the brand, and a very generic fallback.`

const relevanceSystemPrompt = `You are an expert in filtering supermarket products.

Your task is to analyze a list of products and identify which ones are RELEVANT to what the user is searching for.

EXCLUSION criteria (IRRELEVANT products):
1. Products from a completely different category
2. Products containing words from the exclusion list
3. Heavily processed products when a fresh product is wanted (e.g. hamburger when searching picanha)
4. Seasonings/broths when the real ingredient is wanted (e.g. picanha broth when searching picanha)
5. Miniature/sample products when a normal product is wanted
6. Derived products when the base product is wanted (e.g. table cream when searching milk)

INCLUSION criteria (RELEVANT products):
1. Same category as the searched product
2. Compatible characteristics
3. Compatible brand (or any brand when none was specified)
4. Compatible processing level (fresh vs processed)
5. Reasonable weight/quantity for the product type

For each product, return a relevance score (0.0 to 1.0) and a brief reason. Only return products with score >= 0.6.`

const matchSystemPrompt = `You are an expert in identifying equivalent products across supermarkets.

Your task is to compare products from two different markets (Atacadão and Tenda) and find the best pair of equivalent products.

MANDATORY criteria for equivalent products:
1. SAME CATEGORY - products must be exactly the same kind
   NO match: fresh picanha with hamburger
   NO match: whole milk with condensed milk
   NO match: rice with rice flour
   NO match: fresh meat with broth/seasoning
   OK: picanha angus with picanha angus

2. SAME PROCESSING LEVEL
   NO match: fresh meat with processed meat
   NO match: natural product with seasoning/broth
   OK: both fresh, or both similarly processed

3. SIMILAR WEIGHT/QUANTITY (±30%% tolerance)
   OK: 400g with 500g
   NO match: 1kg with 100g

4. BRAND (preferably the same brand, or equivalent tiers)
   OK: same brand
   OK: different brands at the same tier (both premium or both budget)

CONFIDENCE SCORE:
- 0.9-1.0: identical or near-identical product (same brand, similar weight)
- 0.7-0.89: equivalent products with small differences (different brands, same category)
- 0.6-0.69: similar products with notable differences
- below 0.6: too different, report no match

Be strict about the category. Reporting no match is better than pairing incompatible products.`

const listSystemPrompt = `You are an assistant that extracts items from shopping lists and structures them.

Your task is to:
1. Identify each item in the list
2. Extract structured information: search term, quantity, brand, notes
3. Normalize the search term for use with supermarket search APIs

Rules:
- search_text: clean, normalized text to search for the product (e.g. "leite integral 1l")
- quantity: number of units when mentioned
- brand: brand name when specified
- note: any additional relevant detail`

// buildIntentPrompt builds the user prompt for term analysis
func buildIntentPrompt(term string) string {
	return fmt.Sprintf("Analyze this search term and return structured information:\n\n%q", term)
}

// simplifiedProduct is what the judge sees per candidate: index, name, brand
// and price only. Relevance scores are never shown to the judge.
type simplifiedProduct struct {
	Index int     `json:"index"`
	Name  string  `json:"name"`
	Brand string  `json:"brand,omitempty"`
	Price float64 `json:"price"`
}

func simplify(products []domain.ProductRecord) []simplifiedProduct {
	simplified := make([]simplifiedProduct, len(products))
	for i, p := range products {
		simplified[i] = simplifiedProduct{
			Index: i,
			Name:  p.Name,
			Brand: p.Brand,
			Price: p.Price,
		}
	}
	return simplified
}

func mustJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "[]"
	}
	return string(data)
}

// buildRelevancePrompt builds the user prompt for candidate scoring
func buildRelevancePrompt(req *domain.RelevanceRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Original search: %q\n", req.OriginalTerm)
	fmt.Fprintf(&b, "Product type: %s\n", req.ProductType)
	if req.ProductSubtype != "" {
		fmt.Fprintf(&b, "Subtype: %s\n", req.ProductSubtype)
	}
	fmt.Fprintf(&b, "Desired characteristics: %s\n", joinOrNone(req.Attributes))
	fmt.Fprintf(&b, "Words to EXCLUDE: %s\n", joinOrNone(req.ExcludeWords))
	fmt.Fprintf(&b, "\nProducts found:\n%s\n", mustJSON(simplify(req.Products)))
	return b.String()
}

// buildMatchPrompt builds the user prompt for cross-catalog matching
func buildMatchPrompt(atacadao, tenda []domain.ProductRecord) string {
	return fmt.Sprintf("Find the best pair of equivalent products:\n\nATACADÃO:\n%s\n\nTENDA:\n%s",
		mustJSON(simplify(atacadao)), mustJSON(simplify(tenda)))
}

// buildListPrompt builds the user prompt for shopping-list parsing
func buildListPrompt(text string) string {
	return fmt.Sprintf("Extract the items from this shopping list:\n\n%s", text)
}

func joinOrNone(words []string) string {
	if len(words) == 0 {
		return "none"
	}
	return strings.Join(words, ", ")
}
