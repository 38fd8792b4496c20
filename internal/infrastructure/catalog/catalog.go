// Package catalog contains the retailer catalog adapters. Each adapter turns
// one retailer's search API response into normalized ProductRecords; records
// without a usable price are dropped because every downstream comparison
// stands on the price.
package catalog

import (
	"net/http"
	"time"
)

const (
	requestTimeout = 30 * time.Second
	maxAttempts    = 3

	// The retailer storefront APIs expect browser-looking requests
	userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"
)

// newHTTPClient builds the http.Client shared by both adapters
func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: requestTimeout,
	}
}

// exponentialBackoff returns the wait before retrying a failed attempt:
// 500ms, 1s, 2s
func exponentialBackoff(attempt int) time.Duration {
	return 500 * time.Millisecond << (attempt - 1)
}
