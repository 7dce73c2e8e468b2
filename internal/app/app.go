package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/guttosm/growwgate/config"
	"github.com/guttosm/growwgate/internal/api"
	"github.com/guttosm/growwgate/internal/broker/groww"
	"github.com/guttosm/growwgate/internal/cache"
	"github.com/guttosm/growwgate/internal/credential"
	"github.com/guttosm/growwgate/internal/logger"
	"github.com/guttosm/growwgate/internal/service"
	"github.com/guttosm/growwgate/internal/storage"
	"github.com/guttosm/growwgate/internal/token"
)

const cacheNamespace = "growwgate:candles"

// migrate is an indirection for unit testing; defaults to storage.Migrate
var migrate = storage.Migrate

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Builds the Groww client and the token manager over an in-memory credential store.
//   - Connects to PostgreSQL (optional) and attaches the refresh audit log.
//   - Connects to Redis (optional) and wraps the market data service with the candle cache.
//   - Performs the eager start-up token generation when credentials are present.
//   - Starts the daily refresh scheduler in the background.
//   - Configures the Gin router and registers health and readiness probes.
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function that stops the scheduler and closes connections.
//   - error: any initialization error that occurred.
func InitializeApp(ctx context.Context) (*gin.Engine, func(), error) {
	cfg := config.AppConfig
	log := logger.Component("app")

	cutover, err := token.ParseTimeOfDay(cfg.Token.RefreshAt)
	if err != nil {
		return nil, nil, err
	}
	loc, err := cfg.Token.Location()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid token timezone: %w", err)
	}

	client := groww.NewClient(
		groww.WithBaseURL(cfg.Groww.BaseURL),
		groww.WithHTTPClient(groww.NewHTTPClient(cfg.Groww.Timeout)),
	)

	var (
		db      *sql.DB
		rdb     *redis.Client
		history api.RefreshHistory
		pings   = map[string]api.PingFunc{}
		opts    = []token.Option{token.WithCutover(cutover), token.WithLocation(loc)}
	)

	// ─── Postgres (optional) ──────────────────────
	if cfg.Postgres.Enabled() {
		db, err = postgresOpener(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
		}
		if err := migrate(db); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("failed to migrate postgres: %w", err)
		}
		repo := storage.NewRefreshLogRepository(db)
		history = repo
		pings["postgres"] = repo.Ping
		opts = append(opts, token.WithRecorder(repo))
	}

	// ─── Token lifecycle ──────────────────────────
	manager := token.NewManager(credential.NewMemoryStore(), client, config.APICredentials, opts...)

	// ─── Market data (+ Redis cache) ──────────────
	svc := service.NewMarketDataService(manager, client, cfg.Groww.FetchConcurrency)
	if cfg.Redis.Enabled() {
		rdb = redisOpener(ctx, cfg)
		pings["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		svc = cache.NewCachingMarketData(rdb, cfg.Redis.CacheTTL, svc, cacheNamespace)
	}

	// Eager start-up generation; failures are logged and the lazy path retries later.
	_ = manager.Bootstrap(ctx)

	// ─── Scheduler ────────────────────────────────
	schedCtx, stopScheduler := context.WithCancel(context.WithoutCancel(ctx))
	schedDone := make(chan struct{})
	go func() {
		defer close(schedDone)
		token.NewScheduler(manager, cfg.Token.PollInterval).Run(schedCtx)
	}()

	// ─── HTTP ─────────────────────────────────────
	router := api.NewRouter(
		api.NewMarketHandler(svc),
		api.NewTokenHandler(manager, history),
		api.RouterOptions{
			RequestTimeout:     cfg.Server.RequestTimeout,
			RateLimitPerMinute: cfg.Server.RateLimitPerMinute,
			CORSOrigins:        cfg.Server.CORSAllowOrigins,
		},
	)
	api.NewHealthHandler(manager, pings).Register(router)

	log.Info().
		Bool("postgres", db != nil).
		Bool("redis", rdb != nil).
		Str("refresh_at", cutover.String()).
		Str("timezone", loc.String()).
		Msg("application initialized")

	cleanup := func() {
		stopScheduler()
		<-schedDone
		if rdb != nil {
			_ = rdb.Close()
		}
		if db != nil {
			_ = db.Close()
		}
	}

	return router, cleanup, nil
}
