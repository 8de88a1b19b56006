package engine

import "time"

// Program is a compiled expression ready to run against a set of variables
type Program interface {
	Run(vars map[string]any) (any, error)
}

// ProgramCache provides an abstraction for caching compiled expressions
// This allows swapping between in-memory or shared caching implementations
type ProgramCache interface {
	// Get retrieves a cached program, returns false on a miss or when expired
	Get(key string) (Program, bool)

	// Set stores a program in the cache
	Set(key string, program Program)

	// Invalidate clears the cache, forcing recompilation on next use
	Invalidate()

	// Len returns the number of cached programs, expired ones included
	Len() int
}

// CacheConfig holds configuration for cache behavior
type CacheConfig struct {
	// TTL is the time-to-live for cached entries
	// Set to 0 for no expiration (manual invalidation only)
	TTL time.Duration

	// MaxEntries bounds the number of cached programs, 0 means unbounded.
	// The cache is cleared when a new entry would exceed the bound.
	MaxEntries int
}

// DefaultCacheConfig returns sensible defaults for program caching
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		TTL:        0, // No TTL - programs never go stale
		MaxEntries: 1024,
	}
}
