package engine

import (
	"sync"
	"time"
)

type cachedProgram struct {
	program  Program
	cachedAt time.Time
}

// InMemoryProgramCache is a simple in-memory implementation of ProgramCache
// Thread-safe for concurrent access
type InMemoryProgramCache struct {
	programs map[string]cachedProgram
	config   CacheConfig
	now      func() time.Time
	mu       sync.RWMutex
}

// NewInMemoryProgramCache creates a new in-memory program cache
func NewInMemoryProgramCache(config CacheConfig) *InMemoryProgramCache {
	return &InMemoryProgramCache{
		programs: make(map[string]cachedProgram),
		config:   config,
		now:      time.Now,
	}
}

// Get retrieves a cached program
// Returns false if the program is missing or expired
func (c *InMemoryProgramCache) Get(key string) (Program, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.programs[key]
	if !ok {
		return nil, false
	}

	// Check TTL if configured
	if c.config.TTL > 0 && c.now().Sub(entry.cachedAt) > c.config.TTL {
		return nil, false
	}

	return entry.program, true
}

// Set stores a program in the cache
func (c *InMemoryProgramCache) Set(key string, program Program) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.programs[key]; !exists && c.config.MaxEntries > 0 && len(c.programs) >= c.config.MaxEntries {
		c.programs = make(map[string]cachedProgram)
	}

	c.programs[key] = cachedProgram{program: program, cachedAt: c.now()}
}

// Invalidate clears the cache
func (c *InMemoryProgramCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.programs = make(map[string]cachedProgram)
}

// Len returns the number of cached programs
func (c *InMemoryProgramCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.programs)
}
