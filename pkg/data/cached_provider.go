package data

import (
	"fmt"
	"sync"
	"time"
)

// CachedProvider wraps another Provider with an in-memory cache keyed by
// symbol and date range, so repeated analyses over the same window reuse
// the first load.
type CachedProvider struct {
	inner Provider

	mu    sync.RWMutex
	cache map[string]*PriceHistory
}

// NewCachedProvider wraps inner with caching.
func NewCachedProvider(inner Provider) *CachedProvider {
	return &CachedProvider{
		inner: inner,
		cache: make(map[string]*PriceHistory),
	}
}

// GetName returns the name of the data provider
func (p *CachedProvider) GetName() string {
	return p.inner.GetName() + " (cached)"
}

// LoadPrices returns the cached series when available and delegates to the
// wrapped provider otherwise.
func (p *CachedProvider) LoadPrices(symbol string, start, end time.Time) (*PriceHistory, error) {
	key := cacheKey(symbol, start, end)

	p.mu.RLock()
	cached, ok := p.cache[key]
	p.mu.RUnlock()
	if ok {
		return cached, nil
	}

	history, err := p.inner.LoadPrices(symbol, start, end)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.cache[key] = history
	p.mu.Unlock()
	return history, nil
}

// Size returns the number of cached entries.
func (p *CachedProvider) Size() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.cache)
}

// Clear removes all cached data.
func (p *CachedProvider) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cache = make(map[string]*PriceHistory)
}

func cacheKey(symbol string, start, end time.Time) string {
	return fmt.Sprintf("%s|%s|%s", symbol, start.Format("2006-01-02"), end.Format("2006-01-02"))
}
