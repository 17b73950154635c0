package extract

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/bunchesapp/bunches-go/internal/logger"
)

// cachedService memoizes successful extractions by URL. Failures are never
// cached.
type cachedService struct {
	inner Service
	lru   *expirable.LRU[string, Extraction]
}

// Cached wraps a Service with an expirable LRU keyed by URL.
func Cached(inner Service, size int, ttl time.Duration) Service {
	return &cachedService{
		inner: inner,
		lru:   expirable.NewLRU[string, Extraction](size, nil, ttl),
	}
}

func (c *cachedService) Extract(ctx context.Context, url string) (Extraction, error) {
	if extraction, ok := c.lru.Get(url); ok {
		logger.FromContext(ctx).Debug(LogMsgExtractionCacheHit, "url", url)
		return extraction, nil
	}

	extraction, err := c.inner.Extract(ctx, url)
	if err != nil {
		return Extraction{}, err
	}

	c.lru.Add(url, extraction)
	return extraction, nil
}
