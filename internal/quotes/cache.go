package quotes

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"nivesh/internal/logger"
)

// CachedProvider is a read-through Redis cache in front of another
// provider. Cache failures degrade to a direct fetch; they never fail a
// quote lookup.
type CachedProvider struct {
	next Provider
	rdb  *redis.Client
	ttl  time.Duration
}

// NewCachedProvider wraps a provider with a Redis cache.
func NewCachedProvider(next Provider, rdb *redis.Client, ttl time.Duration) *CachedProvider {
	return &CachedProvider{next: next, rdb: rdb, ttl: ttl}
}

func cacheKey(symbol string) string {
	return "quote:" + symbol
}

// Quote returns the cached quote for a symbol if present, fetching and
// caching it otherwise. ErrUnavailable results are not cached.
func (p *CachedProvider) Quote(ctx context.Context, symbol string) (*Quote, error) {
	if cached, err := p.rdb.Get(ctx, cacheKey(symbol)).Result(); err == nil {
		var q Quote
		if err := json.Unmarshal([]byte(cached), &q); err == nil {
			return &q, nil
		}
		logger.Get().Warnw("discarding malformed cached quote", "symbol", symbol)
	}

	q, err := p.next.Quote(ctx, symbol)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(q); err == nil {
		if err := p.rdb.Set(ctx, cacheKey(symbol), data, p.ttl).Err(); err != nil {
			logger.Get().Warnw("failed to cache quote", "symbol", symbol, "error", err)
		}
	}

	return q, nil
}
