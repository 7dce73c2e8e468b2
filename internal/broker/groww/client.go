package groww

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/guttosm/growwgate/internal/broker"
	"github.com/guttosm/growwgate/internal/domain/models"
	"github.com/guttosm/growwgate/internal/logger"
)

const (
	accessTokenPath = "/v1/token/api/access"
	ltpPath         = "/v1/live-data/ltp"
	ohlcPath        = "/v1/live-data/ohlc"
	candleRangePath = "/v1/historical/candle/range"

	apiVersion = "1.0"

	// maxErrorBody bounds how much of an error response ends up in logs and errors.
	maxErrorBody = 512
)

// Client talks to the Groww REST API. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient HTTPClient
	now        func() time.Time
}

var _ broker.Client = (*Client)(nil)

// NewClient returns a Groww client. Without options it targets DefaultBaseURL
// with a 10 second HTTP timeout.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: NewHTTPClient(10 * time.Second),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.baseURL = strings.TrimRight(c.baseURL, "/")
	return c
}

// envelope is the wrapper Groww puts around every data response.
type envelope struct {
	Status  string          `json:"status"`
	Payload json.RawMessage `json:"payload"`
	Error   *apiError       `json:"error"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// accessTokenRequest is the body of the approval-key login flow.
type accessTokenRequest struct {
	KeyType   string `json:"key_type"`
	Checksum  string `json:"checksum"`
	Timestamp int64  `json:"timestamp"`
}

type accessTokenResponse struct {
	Token string `json:"token"`
}

// AccessToken exchanges the API key and secret for a session token.
//
// The request is authenticated with the API key as bearer token and carries
// a SHA-256 checksum of secret+timestamp.
func (c *Client) AccessToken(ctx context.Context, apiKey, secret string) (string, error) {
	ts := c.now().Unix()
	body, err := json.Marshal(accessTokenRequest{
		KeyType:   "approval",
		Checksum:  checksum(secret, ts),
		Timestamp: ts,
	})
	if err != nil {
		return "", fmt.Errorf("encode access token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+accessTokenPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.setHeaders(req, apiKey)

	raw, err := c.do(req)
	if err != nil {
		return "", err
	}

	var out accessTokenResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("decode access token response: %w", err)
	}
	if out.Token == "" {
		return "", errors.New("access token response has no token")
	}
	return out.Token, nil
}

// LTP returns the last traded price payload for exchange-qualified symbols.
func (c *Client) LTP(ctx context.Context, token string, symbols ...string) (json.RawMessage, error) {
	return c.liveData(ctx, ltpPath, token, symbols)
}

// OHLC returns the OHLC payload for exchange-qualified symbols.
func (c *Client) OHLC(ctx context.Context, token string, symbols ...string) (json.RawMessage, error) {
	return c.liveData(ctx, ohlcPath, token, symbols)
}

// Candles returns the raw historical candle payload for q.
func (c *Client) Candles(ctx context.Context, token string, q models.HistoricalQuery) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("exchange", q.Exchange)
	params.Set("segment", SegmentCash)
	params.Set("trading_symbol", q.Symbol)
	params.Set("start_time", q.StartTime)
	params.Set("end_time", q.EndTime)
	params.Set("interval_in_minutes", strconv.Itoa(q.IntervalMinutes))

	return c.getPayload(ctx, candleRangePath, token, params)
}

func (c *Client) liveData(ctx context.Context, path, token string, symbols []string) (json.RawMessage, error) {
	if len(symbols) == 0 {
		return nil, errors.New("no symbols given")
	}
	params := url.Values{}
	params.Set("segment", SegmentCash)
	params.Set("exchange_symbols", strings.Join(symbols, ","))

	return c.getPayload(ctx, path, token, params)
}

func (c *Client) getPayload(ctx context.Context, path, token string, params url.Values) (json.RawMessage, error) {
	reqURL := c.baseURL + path + "?" + params.Encode()

	logger.Component("groww").Debug().Str("path", path).Str("query", params.Encode()).Msg("calling groww api")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req, token)

	raw, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", path, err)
	}
	if env.Error != nil || (env.Status != "" && !strings.EqualFold(env.Status, "SUCCESS")) {
		return nil, fmt.Errorf("groww %s: %s", path, env.errorMessage())
	}
	if len(env.Payload) == 0 {
		return nil, fmt.Errorf("groww %s: empty payload", path)
	}
	return env.Payload, nil
}

// do executes req and returns the body of a 2xx response.
func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Component("groww").Error().Err(err).Str("path", req.URL.Path).Msg("groww request failed")
		return nil, fmt.Errorf("request %s: %w", req.URL.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", req.URL.Path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet := truncate(string(body), maxErrorBody)
		logger.Component("groww").Error().
			Int("status", resp.StatusCode).
			Str("path", req.URL.Path).
			Str("response", snippet).
			Msg("groww api error response")
		return nil, fmt.Errorf("groww %s returned status %d: %s", req.URL.Path, resp.StatusCode, snippet)
	}
	return body, nil
}

func (c *Client) setHeaders(req *http.Request, bearer string) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("X-API-VERSION", apiVersion)
}

func (e envelope) errorMessage() string {
	if e.Error == nil {
		return "status " + e.Status
	}
	if e.Error.Code == "" {
		return e.Error.Message
	}
	return e.Error.Code + " " + e.Error.Message
}

// checksum is hex(sha256(secret + unix timestamp)).
func checksum(secret string, ts int64) string {
	sum := sha256.Sum256([]byte(secret + strconv.FormatInt(ts, 10)))
	return hex.EncodeToString(sum[:])
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
