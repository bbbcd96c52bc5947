package cache

import "errors"

// Sentinel errors for caching operations.
var (
	// ErrCacheMiss is returned by callers that need a miss as an error
	// value rather than the boolean [Cache.Get] reports.
	ErrCacheMiss = errors.New("cache miss")
)
