package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/precocerto/backend/internal/domain"
)

// AtacadaoClient searches the Atacadão storefront GraphQL API
type AtacadaoClient struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewAtacadaoClient creates a new Atacadão catalog client
func NewAtacadaoClient(baseURL string) *AtacadaoClient {
	// Storefront API, keep the request rate polite
	limiter := rate.NewLimiter(rate.Limit(2), 5)

	return &AtacadaoClient{
		httpClient:  newHTTPClient(),
		baseURL:     baseURL,
		rateLimiter: limiter,
	}
}

// SetDebug enables or disables debug logging
func (c *AtacadaoClient) SetDebug(debug bool) {
	c.debug = debug
}

// Retailer identifies this adapter's market
func (c *AtacadaoClient) Retailer() domain.Retailer {
	return domain.RetailerAtacadao
}

// atacadaoVariables is the ProductsQuery variables payload
type atacadaoVariables struct {
	First          int             `json:"first"`
	After          string          `json:"after"`
	Sort           string          `json:"sort"`
	Term           string          `json:"term"`
	SelectedFacets []atacadaoFacet `json:"selectedFacets"`
}

type atacadaoFacet struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// atacadaoResponse mirrors the slice of the GraphQL response we consume
type atacadaoResponse struct {
	Data struct {
		Search struct {
			Products struct {
				Edges []struct {
					Node atacadaoProduct `json:"node"`
				} `json:"edges"`
			} `json:"products"`
		} `json:"search"`
	} `json:"data"`
}

type atacadaoProduct struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Brand struct {
		BrandName string `json:"brandName"`
		Name      string `json:"name"`
	} `json:"brand"`
	Offers struct {
		LowPrice float64 `json:"lowPrice"`
		Offers   []struct {
			Price float64 `json:"price"`
		} `json:"offers"`
	} `json:"offers"`
}

// Search queries the catalog for a term and normalizes the listings.
// An empty result set is success, not an error.
func (c *AtacadaoClient) Search(ctx context.Context, term string) ([]domain.ProductRecord, error) {
	variables, err := json.Marshal(atacadaoVariables{
		First: 20,
		After: "0",
		Sort:  "score_desc",
		Term:  term,
		SelectedFacets: []atacadaoFacet{
			{Key: "channel", Value: `{"salesChannel":"1","seller":"atacadaobr340","regionId":"U1cjYXRhY2FkYW9icjM0MA=="}`},
			{Key: "locale", Value: "pt-BR"},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode query variables: %w", err)
	}

	params := url.Values{}
	params.Add("operationName", "ProductsQuery")
	params.Add("variables", string(variables))
	reqURL := fmt.Sprintf("%s/api/graphql?%s", c.baseURL, params.Encode())

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Origin", "https://www.atacadao.com.br")
		req.Header.Set("Referer", "https://www.atacadao.com.br/")
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Cookie", `regionalization={"salesChannel":"1","postalCode":"03157-201","seller":"atacadaobr340"}`)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: %v", domain.ErrRetailerUnavailable, err)
			log.Printf("[ATACADAO] request error (attempt %d): %v", attempt, err)
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("%w: status %d", domain.ErrRetailerUnavailable, resp.StatusCode)
			log.Printf("[ATACADAO] API error (attempt %d) - status: %d", attempt, resp.StatusCode)
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		var searchResp atacadaoResponse
		if err := json.Unmarshal(body, &searchResp); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}

		products := c.normalize(&searchResp)
		if c.debug {
			log.Printf("[ATACADAO] %d usable products for %q", len(products), term)
		}
		return products, nil
	}

	return nil, lastErr
}

// normalize maps the GraphQL edges into ProductRecords, dropping anything
// without a positive price
func (c *AtacadaoClient) normalize(resp *atacadaoResponse) []domain.ProductRecord {
	var products []domain.ProductRecord

	for _, edge := range resp.Data.Search.Products.Edges {
		node := edge.Node

		price := node.Offers.LowPrice
		if price <= 0 && len(node.Offers.Offers) > 0 {
			price = node.Offers.Offers[0].Price
		}
		if price <= 0 {
			continue
		}

		name := node.Name
		if name == "" {
			name = "produto sem nome"
		}

		brand := node.Brand.BrandName
		if brand == "" {
			brand = node.Brand.Name
		}

		var link string
		if node.Slug != "" {
			link = fmt.Sprintf("https://www.atacadao.com.br/%s/p", node.Slug)
		}

		products = append(products, domain.ProductRecord{
			Name:  name,
			Price: price,
			Brand: brand,
			Link:  link,
		})
	}

	return products
}
