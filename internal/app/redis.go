package app

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/guttosm/growwgate/config"
	"github.com/guttosm/growwgate/internal/logger"
)

// InitRedis builds a Redis client for the candle cache and pings it once.
//
// An unreachable Redis is only logged; cache errors fall back to the upstream API.
func InitRedis(ctx context.Context, cfg config.Config) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	pingRedis(ctx, rdb, cfg.Redis.Addr)
	return rdb
}

func pingRedis(ctx context.Context, rdb *redis.Client, addr string) {
	pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pctx).Err(); err != nil {
		logger.Component("cache").Warn().Err(err).Str("addr", addr).Msg("redis unreachable; historical cache degraded")
		return
	}
	logger.Component("cache").Info().Str("addr", addr).Msg("redis connected")
}

// redisOpener is an indirection used by InitializeApp; overridden in tests.
var redisOpener = InitRedis
