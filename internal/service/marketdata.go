package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/growwgate/internal/broker"
	"github.com/guttosm/growwgate/internal/candle"
	"github.com/guttosm/growwgate/internal/domain/errs"
	"github.com/guttosm/growwgate/internal/domain/models"
	"github.com/guttosm/growwgate/internal/logger"
	"github.com/guttosm/growwgate/internal/token"
)

// DefaultConcurrency is the number of per-symbol upstream calls in flight.
const DefaultConcurrency = 4

// MarketDataService translates symbol and range requests into broker calls.
//
// Quote fetches are all-or-nothing: the first symbol that fails cancels the
// remaining calls and the whole request fails with errs.ErrUpstreamData.
type MarketDataService interface {
	FetchLTP(ctx context.Context, symbols []string) (map[string]json.RawMessage, error)
	FetchOHLC(ctx context.Context, symbols []string) (map[string]json.RawMessage, error)
	FetchHistorical(ctx context.Context, q models.HistoricalQuery) (*models.HistoricalResult, error)
}

type marketDataService struct {
	tokens      token.Source
	client      broker.MarketData
	concurrency int
}

// NewMarketDataService wires the service to a token source and broker client.
// concurrency <= 0 uses DefaultConcurrency.
func NewMarketDataService(tokens token.Source, client broker.MarketData, concurrency int) MarketDataService {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &marketDataService{tokens: tokens, client: client, concurrency: concurrency}
}

type quoteFunc func(ctx context.Context, token string, symbols ...string) (json.RawMessage, error)

func (s *marketDataService) FetchLTP(ctx context.Context, symbols []string) (map[string]json.RawMessage, error) {
	return s.fetchQuotes(ctx, "ltp", symbols, s.client.LTP)
}

func (s *marketDataService) FetchOHLC(ctx context.Context, symbols []string) (map[string]json.RawMessage, error) {
	return s.fetchQuotes(ctx, "ohlc", symbols, s.client.OHLC)
}

func (s *marketDataService) fetchQuotes(ctx context.Context, kind string, symbols []string, fetch quoteFunc) (map[string]json.RawMessage, error) {
	unique, err := validateSymbols(symbols)
	if err != nil {
		return nil, err
	}

	tok, err := s.tokens.EnsureValid(ctx)
	if err != nil {
		return nil, err
	}

	var (
		mu  sync.Mutex
		out = make(map[string]json.RawMessage, len(unique))
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, sym := range unique {
		g.Go(func() error {
			qualified := QualifySymbol(models.ExchangeNSE, sym)
			payload, err := fetch(gctx, tok, qualified)
			if err != nil {
				return fmt.Errorf("%w: %s %s: %w", errs.ErrUpstreamData, kind, qualified, err)
			}
			mu.Lock()
			out[sym] = payload
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Component("marketdata").Error().Err(err).Str("kind", kind).Int("symbols", len(unique)).Msg("quote fetch failed")
		return nil, err
	}
	return out, nil
}

func (s *marketDataService) FetchHistorical(ctx context.Context, q models.HistoricalQuery) (*models.HistoricalResult, error) {
	q.Symbol = TradingSymbol(q.Symbol)
	q.StartTime = strings.TrimSpace(q.StartTime)
	q.EndTime = strings.TrimSpace(q.EndTime)
	switch {
	case q.Symbol == "":
		return nil, fmt.Errorf("%w: symbol is required", errs.ErrValidation)
	case q.StartTime == "" || q.EndTime == "":
		return nil, fmt.Errorf("%w: start_time and end_time are required", errs.ErrValidation)
	}
	if q.IntervalMinutes <= 0 {
		q.IntervalMinutes = models.DefaultIntervalMinutes
	}
	q.Exchange = ResolveExchange(q.Exchange)

	tok, err := s.tokens.EnsureValid(ctx)
	if err != nil {
		return nil, err
	}

	raw, err := s.client.Candles(ctx, tok, q)
	if err != nil {
		return nil, fmt.Errorf("%w: candles %s_%s: %w", errs.ErrUpstreamData, q.Exchange, q.Symbol, err)
	}

	res, err := candle.Normalize(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrUpstreamData, err)
	}
	if res.Dropped > 0 || res.Shape == "" {
		logger.Component("marketdata").Warn().
			Str("symbol", q.Symbol).
			Str("shape", res.Shape).
			Int("dropped", res.Dropped).
			Int("kept", len(res.Candles)).
			Msg("candle payload partially unparsable")
	}

	return &models.HistoricalResult{
		Candles:         res.Candles,
		StartTime:       q.StartTime,
		EndTime:         q.EndTime,
		IntervalMinutes: q.IntervalMinutes,
	}, nil
}

// validateSymbols rejects empty input and blank entries and returns the
// symbols de-duplicated, in request order.
func validateSymbols(symbols []string) ([]string, error) {
	if len(symbols) == 0 {
		return nil, fmt.Errorf("%w: symbols list cannot be empty", errs.ErrValidation)
	}
	seen := make(map[string]struct{}, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if strings.TrimSpace(s) == "" {
			return nil, fmt.Errorf("%w: symbols must not be blank", errs.ErrValidation)
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out, nil
}
