package chat

import "sync"

// resultCache holds the most recent search outcome per token. One entry per
// token, overwritten on every new successful search, never persisted.
type resultCache struct {
	mu      sync.RWMutex
	entries map[string]searchOutcome
}

func newResultCache() *resultCache {
	return &resultCache{entries: make(map[string]searchOutcome)}
}

func (c *resultCache) put(token string, outcome searchOutcome) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[token] = outcome
}

func (c *resultCache) get(token string) (searchOutcome, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	outcome, ok := c.entries[token]
	return outcome, ok
}

func (c *resultCache) forget(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, token)
}
