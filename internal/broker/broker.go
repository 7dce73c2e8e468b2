// Package broker defines the narrow capability the service needs from the
// upstream brokerage: exchange API credentials for a session token, then use
// that token to read market data.
package broker

import (
	"context"
	"encoding/json"

	"github.com/guttosm/growwgate/internal/domain/models"
)

// Authenticator exchanges API credentials for a daily session token.
type Authenticator interface {
	AccessToken(ctx context.Context, apiKey, secret string) (string, error)
}

// MarketData reads market data with a session token.
//
// LTP and OHLC take exchange-qualified symbols (e.g. "NSE_RELIANCE") and
// return the upstream payload unchanged. Candles returns the raw candle
// payload; shape normalization happens in the candle package.
type MarketData interface {
	LTP(ctx context.Context, token string, symbols ...string) (json.RawMessage, error)
	OHLC(ctx context.Context, token string, symbols ...string) (json.RawMessage, error)
	Candles(ctx context.Context, token string, q models.HistoricalQuery) (json.RawMessage, error)
}

// Client is the full LoginAndFetch capability.
type Client interface {
	Authenticator
	MarketData
}
