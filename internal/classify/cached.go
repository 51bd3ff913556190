package classify

import (
	"context"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the number of cached verdicts.
const DefaultCacheSize = 1000

// Cached wraps a Classifier with an LRU cache keyed on the normalized query.
// Classification is a pure function of the text, so caching is always safe.
type Cached struct {
	inner Classifier
	cache *lru.Cache[string, Verdict]
}

// NewCached wraps the provided classifier. A non-positive size falls back to
// DefaultCacheSize.
func NewCached(inner Classifier, size int) *Cached {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, _ := lru.New[string, Verdict](size)
	return &Cached{inner: inner, cache: cache}
}

// Classify returns the cached verdict when present, delegating otherwise.
func (c *Cached) Classify(ctx context.Context, query string) (Verdict, error) {
	key := normalizeQuery(query)
	if verdict, ok := c.cache.Get(key); ok {
		return verdict, nil
	}

	verdict, err := c.inner.Classify(ctx, query)
	if err != nil {
		return Verdict{}, err
	}

	c.cache.Add(key, verdict)
	return verdict, nil
}

func normalizeQuery(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}
