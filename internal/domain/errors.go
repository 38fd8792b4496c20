package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrRetailerUnavailable is returned when a retailer catalog API request fails
	ErrRetailerUnavailable = errors.New("retailer catalog unavailable")

	// ErrJudgeUnavailable is returned when the judgment service fails or
	// returns an unusable response
	ErrJudgeUnavailable = errors.New("judgment service unavailable")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable is returned when the cache backend is unreachable
	ErrCacheUnavailable = errors.New("cache service unavailable")
)
