package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/growwgate/internal/middleware"
)

// DefaultRequestTimeout bounds every request when RouterOptions leaves it unset.
const DefaultRequestTimeout = 30 * time.Second

// RouterOptions tunes the global middleware chain.
type RouterOptions struct {
	RequestTimeout     time.Duration
	RateLimitPerMinute int // 0 disables the limiter
	CORSOrigins        []string
}

// NewRouter creates a Gin engine with the market and token routes.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery, ErrorHandler, CORS, RateLimiter).
//   - Bounds each request with a context timeout.
//   - Mounts Swagger docs (/swagger/*any).
//
// Health endpoints (/, /healthz, /readyz) are registered by the caller via HealthHandler.Register.
func NewRouter(market *MarketHandler, tokens *TokenHandler, opts RouterOptions) *gin.Engine {
	router := gin.New()

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.CORS(opts.CORSOrigins),
		middleware.NewRateLimiter(opts.RateLimitPerMinute, time.Minute).Middleware(),
	)

	// ─── Timeout ──────────────────────────────────
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	// ─── Swagger ──────────────────────────────────
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// ─── Market data ──────────────────────────────
	router.POST("/get-ltp", market.GetLTP)
	router.POST("/get-ohlc", market.GetOHLC)
	router.POST("/get-historical-data", market.GetHistorical)

	// ─── Token lifecycle ──────────────────────────
	router.GET("/token-status", tokens.GetStatus)
	router.POST("/refresh-token", tokens.Refresh)
	router.GET("/token-history", tokens.History)

	return router
}
