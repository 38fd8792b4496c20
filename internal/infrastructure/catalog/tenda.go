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

// The public store API requires a cart identifier on search requests
const tendaCartID = "12345678"

// TendaClient searches the Tenda Atacado public store API
type TendaClient struct {
	httpClient  *http.Client
	baseURL     string
	token       string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewTendaClient creates a new Tenda catalog client
func NewTendaClient(baseURL, token string) *TendaClient {
	limiter := rate.NewLimiter(rate.Limit(2), 5)

	return &TendaClient{
		httpClient:  newHTTPClient(),
		baseURL:     baseURL,
		token:       token,
		rateLimiter: limiter,
	}
}

// SetDebug enables or disables debug logging
func (c *TendaClient) SetDebug(debug bool) {
	c.debug = debug
}

// Retailer identifies this adapter's market
func (c *TendaClient) Retailer() domain.Retailer {
	return domain.RetailerTenda
}

// tendaResponse mirrors the slice of the store API response we consume
type tendaResponse struct {
	Products []tendaProduct `json:"products"`
}

type tendaProduct struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Brand string  `json:"brand"`
	URL   string  `json:"url"`
}

// Search queries the catalog for a term and normalizes the listings.
// An empty result set is success, not an error.
func (c *TendaClient) Search(ctx context.Context, term string) ([]domain.ProductRecord, error) {
	params := url.Values{}
	params.Add("query", term)
	params.Add("page", "1")
	params.Add("order", "relevance")
	params.Add("cartId", tendaCartID)

	reqURL := fmt.Sprintf("%s/api/public/store/search?%s", c.baseURL, params.Encode())

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json, text/plain, */*")
		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("Origin", "https://www.tendaatacado.com.br")
		req.Header.Set("Referer", "https://www.tendaatacado.com.br/")
		req.Header.Set("User-Agent", userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: %v", domain.ErrRetailerUnavailable, err)
			log.Printf("[TENDA] request error (attempt %d): %v", attempt, err)
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("%w: status %d", domain.ErrRetailerUnavailable, resp.StatusCode)
			log.Printf("[TENDA] API error (attempt %d) - status: %d", attempt, resp.StatusCode)
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		var searchResp tendaResponse
		if err := json.Unmarshal(body, &searchResp); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}

		products := c.normalize(&searchResp)
		if c.debug {
			log.Printf("[TENDA] %d usable products for %q", len(products), term)
		}
		return products, nil
	}

	return nil, lastErr
}

// normalize keeps only listings with a positive price
func (c *TendaClient) normalize(resp *tendaResponse) []domain.ProductRecord {
	var products []domain.ProductRecord

	for _, p := range resp.Products {
		if p.Price <= 0 {
			continue
		}

		name := p.Name
		if name == "" {
			name = "produto sem nome"
		}

		products = append(products, domain.ProductRecord{
			Name:  name,
			Price: p.Price,
			Brand: p.Brand,
			Link:  p.URL,
		})
	}

	return products
}
