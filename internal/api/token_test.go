package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/growwgate/internal/domain/dto"
	"github.com/guttosm/growwgate/internal/domain/errs"
	"github.com/guttosm/growwgate/internal/domain/models"
	"github.com/guttosm/growwgate/internal/token"
)

var ist = time.FixedZone("IST", 5*3600+1800)

type mockTokens struct {
	status   token.Status
	regenErr error
	issuedOn string
	trigger  models.RefreshTrigger
}

func (m *mockTokens) Status() token.Status { return m.status }

func (m *mockTokens) Regenerate(_ context.Context, trigger models.RefreshTrigger) (string, error) {
	m.trigger = trigger
	if m.regenErr != nil {
		return "", m.regenErr
	}
	return "tok", nil
}

func (m *mockTokens) IssuedOn() string { return m.issuedOn }

func (m *mockTokens) Now() time.Time { return time.Date(2025, 1, 2, 10, 0, 0, 0, ist) }

type mockHistory struct {
	events   []models.RefreshEvent
	err      error
	gotLimit int
}

func (m *mockHistory) Recent(_ context.Context, limit int) ([]models.RefreshEvent, error) {
	m.gotLimit = limit
	return m.events, m.err
}

func setupTokenRouter(tm TokenManager, h RefreshHistory) *gin.Engine {
	gin.SetMode(gin.TestMode)
	th := NewTokenHandler(tm, h)
	r := gin.New()
	r.GET("/token-status", th.GetStatus)
	r.POST("/refresh-token", th.Refresh)
	r.GET("/token-history", th.History)
	return r
}

func TestGetStatus(t *testing.T) {
	cases := []struct {
		name     string
		status   token.Status
		wantDate *string
	}{
		{
			name: "no token",
			status: token.Status{
				Now:              time.Date(2025, 1, 2, 10, 0, 0, 0, ist),
				NextRefresh:      time.Date(2025, 1, 3, 3, 30, 0, 0, ist),
				ShouldRegenerate: true,
			},
		},
		{
			name: "token issued today",
			status: token.Status{
				TokenExists:     true,
				IssuedOn:        "2025-01-02",
				Now:             time.Date(2025, 1, 2, 10, 0, 0, 0, ist),
				NextRefresh:     time.Date(2025, 1, 3, 3, 30, 0, 0, ist),
				APIKeyLoaded:    true,
				APISecretLoaded: true,
			},
			wantDate: func() *string { s := "2025-01-02"; return &s }(),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupTokenRouter(&mockTokens{status: tc.status}, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/token-status", nil))
			if w.Code != http.StatusOK {
				t.Fatalf("code=%d", w.Code)
			}
			var out dto.TokenStatusResponse
			if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if out.TokenExists != tc.status.TokenExists || out.ShouldRegenerate != tc.status.ShouldRegenerate {
				t.Fatalf("unexpected flags %+v", out)
			}
			if (out.TokenGeneratedDate == nil) != (tc.wantDate == nil) ||
				(tc.wantDate != nil && *out.TokenGeneratedDate != *tc.wantDate) {
				t.Fatalf("token_generated_date=%v, want %v", out.TokenGeneratedDate, tc.wantDate)
			}
			if out.NextRefreshTime != "2025-01-03T03:30:00+05:30" || out.CurrentTime != "2025-01-02T10:00:00+05:30" {
				t.Fatalf("unexpected times %q %q", out.CurrentTime, out.NextRefreshTime)
			}
			if out.CredentialsStatus.APIKeyLoaded != tc.status.APIKeyLoaded {
				t.Fatalf("unexpected credentials status %+v", out.CredentialsStatus)
			}
		})
	}
}

func TestGetStatus_NullDateIsEncoded(t *testing.T) {
	r := setupTokenRouter(&mockTokens{}, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/token-status", nil))

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if v, ok := raw["token_generated_date"]; !ok || string(v) != "null" {
		t.Fatalf("token_generated_date should be null, got %s", v)
	}
}

func TestRefresh(t *testing.T) {
	cases := []struct {
		name   string
		tokens *mockTokens
		status int
	}{
		{name: "success", tokens: &mockTokens{issuedOn: "2025-01-02"}, status: http.StatusOK},
		{name: "missing credentials", tokens: &mockTokens{regenErr: errs.ErrCredential}, status: http.StatusInternalServerError},
		{name: "upstream rejects", tokens: &mockTokens{regenErr: errors.Join(errs.ErrUpstreamAuth, errors.New("401"))}, status: http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupTokenRouter(tc.tokens, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/refresh-token", nil))
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, w.Code)
			}
			if tc.tokens.trigger != models.TriggerManual {
				t.Fatalf("trigger=%q", tc.tokens.trigger)
			}
			if tc.status != http.StatusOK {
				if got := decodeError(t, w.Body.Bytes()); got.Message != "Error refreshing token" || got.ErrorDetails == "" {
					t.Fatalf("unexpected error body %+v", got)
				}
				return
			}
			var out dto.RefreshTokenResponse
			if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if out.Message != "Token refreshed successfully" || out.TokenGeneratedDate != "2025-01-02" || out.Timestamp != "2025-01-02T10:00:00+05:30" {
				t.Fatalf("unexpected body %+v", out)
			}
		})
	}
}

func TestHistory(t *testing.T) {
	events := []models.RefreshEvent{{ID: 1, Trigger: models.TriggerStartup, Success: true, IssuedOn: "2025-01-02"}}

	cases := []struct {
		name      string
		history   *mockHistory
		query     string
		status    int
		wantLimit int
	}{
		{name: "not configured", history: nil, query: "", status: http.StatusNotFound},
		{name: "bad limit", history: &mockHistory{}, query: "?limit=abc", status: http.StatusBadRequest},
		{name: "negative limit", history: &mockHistory{}, query: "?limit=-1", status: http.StatusBadRequest},
		{name: "db error", history: &mockHistory{err: errors.New("db down")}, query: "", status: http.StatusInternalServerError},
		{name: "default limit", history: &mockHistory{events: events}, query: "", status: http.StatusOK, wantLimit: 0},
		{name: "explicit limit", history: &mockHistory{events: events}, query: "?limit=5", status: http.StatusOK, wantLimit: 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var h RefreshHistory
			if tc.history != nil {
				h = tc.history
			}
			r := setupTokenRouter(&mockTokens{}, h)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/token-history"+tc.query, nil))
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d body=%s", tc.status, w.Code, w.Body.String())
			}
			if tc.status != http.StatusOK {
				return
			}
			if tc.history.gotLimit != tc.wantLimit {
				t.Fatalf("limit=%d, want %d", tc.history.gotLimit, tc.wantLimit)
			}
			var out []models.RefreshEvent
			if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil || len(out) != 1 || out[0].Trigger != models.TriggerStartup {
				t.Fatalf("unexpected body %s err=%v", w.Body.String(), err)
			}
		})
	}
}
