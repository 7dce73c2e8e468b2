package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/growwgate/internal/domain/dto"
	"github.com/guttosm/growwgate/internal/domain/errs"
	"github.com/guttosm/growwgate/internal/domain/models"
	"github.com/guttosm/growwgate/internal/service"
)

type mockMarketService struct {
	quotes     map[string]json.RawMessage
	historical *models.HistoricalResult
	err        error
	gotSymbols []string
	gotQuery   models.HistoricalQuery
}

func (m *mockMarketService) FetchLTP(_ context.Context, symbols []string) (map[string]json.RawMessage, error) {
	m.gotSymbols = symbols
	return m.quotes, m.err
}

func (m *mockMarketService) FetchOHLC(_ context.Context, symbols []string) (map[string]json.RawMessage, error) {
	m.gotSymbols = symbols
	return m.quotes, m.err
}

func (m *mockMarketService) FetchHistorical(_ context.Context, q models.HistoricalQuery) (*models.HistoricalResult, error) {
	m.gotQuery = q
	return m.historical, m.err
}

var _ service.MarketDataService = (*mockMarketService)(nil)

func setupMarketRouter(s service.MarketDataService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewMarketHandler(s)
	r := gin.New()
	r.POST("/get-ltp", h.GetLTP)
	r.POST("/get-ohlc", h.GetOHLC)
	r.POST("/get-historical-data", h.GetHistorical)
	return r
}

func postJSON(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, body []byte) dto.ErrorResponse {
	t.Helper()
	var out dto.ErrorResponse
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("invalid error body %s: %v", body, err)
	}
	return out
}

func TestQuotes_TableDriven(t *testing.T) {
	cases := []struct {
		name    string
		path    string
		body    string
		svc     *mockMarketService
		status  int
		message string
	}{
		{
			name:    "malformed body",
			path:    "/get-ltp",
			body:    `{"symbols":`,
			svc:     &mockMarketService{},
			status:  http.StatusBadRequest,
			message: "Invalid request body",
		},
		{
			name:    "empty symbols",
			path:    "/get-ltp",
			body:    `{"symbols":[]}`,
			svc:     &mockMarketService{err: fmt.Errorf("%w: symbols list cannot be empty", errs.ErrValidation)},
			status:  http.StatusBadRequest,
			message: "Error fetching LTP data",
		},
		{
			name:    "client not initialized",
			path:    "/get-ltp",
			body:    `{"symbols":["TCS"]}`,
			svc:     &mockMarketService{err: errs.ErrCredential},
			status:  http.StatusInternalServerError,
			message: "Error fetching LTP data",
		},
		{
			name:    "ohlc upstream failure",
			path:    "/get-ohlc",
			body:    `{"symbols":["TCS"]}`,
			svc:     &mockMarketService{err: fmt.Errorf("%w: status 502", errs.ErrUpstreamData)},
			status:  http.StatusInternalServerError,
			message: "Error fetching OHLC data",
		},
		{
			name:   "ltp success",
			path:   "/get-ltp",
			body:   `{"symbols":["TCS","RELIANCE"]}`,
			svc:    &mockMarketService{quotes: map[string]json.RawMessage{"TCS": json.RawMessage(`{"NSE_TCS":4100.5}`), "RELIANCE": json.RawMessage(`{"NSE_RELIANCE":2900}`)}},
			status: http.StatusOK,
		},
		{
			name:   "ohlc success",
			path:   "/get-ohlc",
			body:   `{"symbols":["TCS"]}`,
			svc:    &mockMarketService{quotes: map[string]json.RawMessage{"TCS": json.RawMessage(`{"NSE_TCS":{"open":1,"high":2,"low":0.5,"close":1.5}}`)}},
			status: http.StatusOK,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := postJSON(setupMarketRouter(tc.svc), tc.path, tc.body)
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d body=%s", tc.status, w.Code, w.Body.String())
			}
			if tc.status != http.StatusOK {
				if got := decodeError(t, w.Body.Bytes()); got.Message != tc.message {
					t.Fatalf("message=%q, want %q", got.Message, tc.message)
				}
				return
			}
			var out struct {
				Data map[string]json.RawMessage `json:"data"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if len(out.Data) != len(tc.svc.quotes) {
				t.Fatalf("unexpected data %v", out.Data)
			}
			for k, v := range tc.svc.quotes {
				if !bytes.Equal(out.Data[k], v) {
					t.Fatalf("payload for %s = %s, want %s", k, out.Data[k], v)
				}
			}
		})
	}
}

func TestGetHistorical_TableDriven(t *testing.T) {
	cases := []struct {
		name      string
		body      string
		svc       *mockMarketService
		status    int
		wantQuery models.HistoricalQuery
	}{
		{
			name:   "malformed body",
			body:   `not json`,
			svc:    &mockMarketService{},
			status: http.StatusBadRequest,
		},
		{
			name:   "validation error",
			body:   `{"symbol":"","start_time":"a","end_time":"b"}`,
			svc:    &mockMarketService{err: fmt.Errorf("%w: symbol is required", errs.ErrValidation)},
			status: http.StatusBadRequest,
		},
		{
			name:   "upstream error",
			body:   `{"symbol":"TCS","start_time":"a","end_time":"b"}`,
			svc:    &mockMarketService{err: errors.Join(errs.ErrUpstreamData, errors.New("timeout"))},
			status: http.StatusInternalServerError,
		},
		{
			name: "success with defaults left to service",
			body: `{"symbol":"TCS","start_time":"2025-01-02 09:15:00","end_time":"2025-01-02 15:30:00"}`,
			svc: &mockMarketService{historical: &models.HistoricalResult{
				Candles:         []models.Candle{{Time: 1735789500, Open: 1, High: 2, Low: 0.5, Close: 1.5, Volume: 10}},
				StartTime:       "2025-01-02 09:15:00",
				EndTime:         "2025-01-02 15:30:00",
				IntervalMinutes: 5,
			}},
			status:    http.StatusOK,
			wantQuery: models.HistoricalQuery{Symbol: "TCS", StartTime: "2025-01-02 09:15:00", EndTime: "2025-01-02 15:30:00"},
		},
		{
			name: "explicit interval and exchange",
			body: `{"symbol":"TCS","start_time":"s","end_time":"e","interval":15,"exchange":"BSE"}`,
			svc: &mockMarketService{historical: &models.HistoricalResult{
				Candles: []models.Candle{}, StartTime: "s", EndTime: "e", IntervalMinutes: 15,
			}},
			status:    http.StatusOK,
			wantQuery: models.HistoricalQuery{Symbol: "TCS", StartTime: "s", EndTime: "e", IntervalMinutes: 15, Exchange: "BSE"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := postJSON(setupMarketRouter(tc.svc), "/get-historical-data", tc.body)
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d body=%s", tc.status, w.Code, w.Body.String())
			}
			if tc.status != http.StatusOK {
				if got := decodeError(t, w.Body.Bytes()); got.Message == "" {
					t.Fatalf("missing error message")
				}
				return
			}
			if tc.svc.gotQuery != tc.wantQuery {
				t.Fatalf("query=%+v, want %+v", tc.svc.gotQuery, tc.wantQuery)
			}
			var out struct {
				Candles  [][]json.Number `json:"candles"`
				Start    string          `json:"start_time"`
				End      string          `json:"end_time"`
				Interval int             `json:"interval_in_minutes"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if len(out.Candles) != len(tc.svc.historical.Candles) || out.Interval != tc.svc.historical.IntervalMinutes {
				t.Fatalf("unexpected body %s", w.Body.String())
			}
			for _, c := range out.Candles {
				if len(c) != 6 {
					t.Fatalf("candle should be a 6-element array, got %v", c)
				}
			}
		})
	}
}
