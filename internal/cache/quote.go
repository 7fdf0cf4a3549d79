// Package cache provides a Redis-backed cache for raw quote payloads.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/smarttrade/smarttrade/internal/marketdata"
)

// quoteKey is the Redis key pattern for cached quotes.
const quoteKey = "quote:%s"

// QuoteCache stores quote payloads in Redis with a TTL. It is fail-open:
// Redis errors are logged at debug level and otherwise behave like a
// cache miss, so a cache outage never degrades the stock view beyond a
// fresh provider fetch.
type QuoteCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewQuoteCache creates a QuoteCache against the given Redis address.
func NewQuoteCache(addr string, ttl time.Duration, logger *slog.Logger) *QuoteCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &QuoteCache{
		rdb: redis.NewClient(&redis.Options{
			Addr: addr,
		}),
		ttl:    ttl,
		logger: logger,
	}
}

// Get returns the cached quote payload for a symbol, or false on a miss
// or any Redis/decode failure.
func (c *QuoteCache) Get(ctx context.Context, symbol string) (marketdata.Payload, bool) {
	raw, err := c.rdb.Get(ctx, fmt.Sprintf(quoteKey, symbol)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Debug("quote cache get failed",
				slog.String("symbol", symbol),
				slog.String("error", err.Error()),
			)
		}
		return nil, false
	}

	var quote marketdata.Payload
	if err := json.Unmarshal(raw, &quote); err != nil {
		c.logger.Debug("quote cache entry corrupt",
			slog.String("symbol", symbol),
			slog.String("error", err.Error()),
		)
		return nil, false
	}
	return quote, true
}

// Set stores the quote payload for a symbol with the configured TTL.
func (c *QuoteCache) Set(ctx context.Context, symbol string, quote marketdata.Payload) {
	raw, err := json.Marshal(quote)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, fmt.Sprintf(quoteKey, symbol), raw, c.ttl).Err(); err != nil {
		c.logger.Debug("quote cache set failed",
			slog.String("symbol", symbol),
			slog.String("error", err.Error()),
		)
	}
}

// Close releases the Redis client.
func (c *QuoteCache) Close() error {
	return c.rdb.Close()
}
