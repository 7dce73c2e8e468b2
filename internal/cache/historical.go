// Package cache provides a Redis-backed decorator for the market data service.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/guttosm/growwgate/internal/domain/models"
	"github.com/guttosm/growwgate/internal/logger"
	"github.com/guttosm/growwgate/internal/service"
)

// DefaultTTL is used when no positive TTL is configured.
const DefaultTTL = 5 * time.Minute

// CachingMarketData decorates a MarketDataService with Redis caching of
// historical candles. Live quotes (LTP, OHLC) always go upstream.
type CachingMarketData struct {
	service.MarketDataService

	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ service.MarketDataService = (*CachingMarketData)(nil)

// NewCachingMarketData wraps inner. A nil rdb disables caching.
// If ttl <= 0 it defaults to DefaultTTL; an empty namespace becomes "candles".
func NewCachingMarketData(rdb *redis.Client, ttl time.Duration, inner service.MarketDataService, namespace string) *CachingMarketData {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if namespace == "" {
		namespace = "candles"
	}
	return &CachingMarketData{
		MarketDataService: inner,
		rdb:               rdb,
		ttl:               ttl,
		namespace:         namespace,
	}
}

// FetchHistorical checks Redis first and falls back to the wrapped service.
// Cache failures never fail the request.
func (c *CachingMarketData) FetchHistorical(ctx context.Context, q models.HistoricalQuery) (*models.HistoricalResult, error) {
	if c.rdb == nil {
		return c.MarketDataService.FetchHistorical(ctx, q)
	}

	key := c.cacheKey(q)

	// 1) cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out cachedResult
		if err := json.Unmarshal(b, &out); err == nil {
			return out.toModel(), nil
		}
		// corrupted entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) upstream
	res, err := c.MarketDataService.FetchHistorical(ctx, q)
	if err != nil {
		return nil, err
	}

	// 3) store, best effort
	if b, err := json.Marshal(fromModel(res)); err == nil {
		if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
			logger.Component("cache").Warn().Err(err).Str("key", key).Msg("failed to cache candles")
		}
	}
	return res, nil
}

// cacheKey identifies a historical query after the same defaults the service applies.
func (c *CachingMarketData) cacheKey(q models.HistoricalQuery) string {
	interval := q.IntervalMinutes
	if interval <= 0 {
		interval = models.DefaultIntervalMinutes
	}
	return fmt.Sprintf("%s:%s:%s:%s:%s:%d",
		c.namespace,
		service.ResolveExchange(q.Exchange),
		safe(service.TradingSymbol(q.Symbol)),
		safe(strings.TrimSpace(q.StartTime)),
		safe(strings.TrimSpace(q.EndTime)),
		interval,
	)
}

type cachedResult struct {
	Candles         []models.Candle `json:"candles"`
	StartTime       string          `json:"start_time"`
	EndTime         string          `json:"end_time"`
	IntervalMinutes int             `json:"interval_in_minutes"`
}

func fromModel(r *models.HistoricalResult) cachedResult {
	return cachedResult{
		Candles:         r.Candles,
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
		IntervalMinutes: r.IntervalMinutes,
	}
}

func (c cachedResult) toModel() *models.HistoricalResult {
	candles := c.Candles
	if candles == nil {
		candles = []models.Candle{}
	}
	return &models.HistoricalResult{
		Candles:         candles,
		StartTime:       c.StartTime,
		EndTime:         c.EndTime,
		IntervalMinutes: c.IntervalMinutes,
	}
}

// safe escapes characters that are problematic in Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
