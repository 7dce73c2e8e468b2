// Package token owns the lifecycle of the broker session token: lazy
// regeneration on use, forced regeneration, and the daily scheduled refresh.
package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/guttosm/growwgate/internal/broker"
	"github.com/guttosm/growwgate/internal/credential"
	"github.com/guttosm/growwgate/internal/domain/errs"
	"github.com/guttosm/growwgate/internal/domain/models"
	"github.com/guttosm/growwgate/internal/logger"
)

const dateLayout = "2006-01-02"

// Lazy and forced regenerations collapse separately: a lazy flight may end
// without an exchange when the token turned fresh, which a forced caller
// must never observe.
const (
	flightLazy   = "regenerate-lazy"
	flightForced = "regenerate-forced"
)

// CredentialsFunc returns the configured API key and secret.
// It is called on every regeneration so late-supplied secrets are picked up.
type CredentialsFunc func() (apiKey, secret string)

// Recorder receives one event per regeneration attempt.
type Recorder interface {
	Record(ctx context.Context, ev models.RefreshEvent) error
}

// Source hands out a token that is valid for an immediate upstream call.
type Source interface {
	EnsureValid(ctx context.Context) (string, error)
}

// Manager decides when the session token must be regenerated and performs
// the regeneration. Safe for concurrent use.
type Manager struct {
	store    credential.Store
	auth     broker.Authenticator
	creds    CredentialsFunc
	cutover  TimeOfDay
	loc      *time.Location
	now      func() time.Time
	recorder Recorder

	flight singleflight.Group
}

var _ Source = (*Manager)(nil)

// Option configures a Manager.
type Option func(*Manager)

// WithCutover sets the daily rotation time (default 03:30).
func WithCutover(t TimeOfDay) Option {
	return func(m *Manager) { m.cutover = t }
}

// WithLocation sets the time zone calendar dates are evaluated in (default time.Local).
func WithLocation(loc *time.Location) Option {
	return func(m *Manager) {
		if loc != nil {
			m.loc = loc
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithRecorder attaches a refresh audit sink.
func WithRecorder(r Recorder) Option {
	return func(m *Manager) { m.recorder = r }
}

// NewManager builds a Manager over store, using auth for the credential exchange.
func NewManager(store credential.Store, auth broker.Authenticator, creds CredentialsFunc, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		auth:    auth,
		creds:   creds,
		cutover: DefaultCutover,
		loc:     time.Local,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// EnsureValid returns the current token, regenerating it first when the
// daily cutover has passed since it was issued.
func (m *Manager) EnsureValid(ctx context.Context) (string, error) {
	if m.ShouldRegenerate() {
		return m.regenerate(ctx, models.TriggerLazy, true)
	}
	cred := m.store.Current()
	if cred.Empty() {
		return "", fmt.Errorf("%w: no session token", errs.ErrCredential)
	}
	return cred.Token, nil
}

// Regenerate unconditionally exchanges the API credentials for a new token.
// Concurrent calls share one upstream exchange.
func (m *Manager) Regenerate(ctx context.Context, trigger models.RefreshTrigger) (string, error) {
	return m.regenerate(ctx, trigger, false)
}

// ShouldRegenerate applies the regeneration rule to the stored credential at the current time.
func (m *Manager) ShouldRegenerate() bool {
	return ShouldRegenerate(m.clock(), m.store.Current(), m.cutover)
}

// Bootstrap performs the eager start-up regeneration when credentials are
// configured. Failures are logged and returned; callers keep serving.
func (m *Manager) Bootstrap(ctx context.Context) error {
	log := logger.Component("token")
	key, secret := m.credentials()
	if key == "" || secret == "" {
		log.Warn().
			Bool("api_key_loaded", key != "").
			Bool("api_secret_loaded", secret != "").
			Msg("api credentials not configured; client not initialized until they are supplied")
		return fmt.Errorf("%w: API_KEY or API_SECRET not set", errs.ErrCredential)
	}
	if _, err := m.Regenerate(ctx, models.TriggerStartup); err != nil {
		log.Error().Err(err).Msg("initial token generation failed")
		return err
	}
	return nil
}

// Status is a point-in-time view of the token lifecycle.
type Status struct {
	TokenExists      bool
	IssuedOn         string // YYYY-MM-DD, empty when no token
	Now              time.Time
	NextRefresh      time.Time
	ShouldRegenerate bool
	APIKeyLoaded     bool
	APISecretLoaded  bool
}

// Status snapshots the stored credential and configuration state.
func (m *Manager) Status() Status {
	now := m.clock()
	cred := m.store.Current()
	key, secret := m.credentials()

	st := Status{
		TokenExists:      !cred.Empty(),
		Now:              now,
		NextRefresh:      NextRefresh(now, m.cutover),
		ShouldRegenerate: ShouldRegenerate(now, cred, m.cutover),
		APIKeyLoaded:     key != "",
		APISecretLoaded:  secret != "",
	}
	if d, ok := cred.IssuedOn(m.loc); ok {
		st.IssuedOn = d.Format(dateLayout)
	}
	return st
}

// IssuedOn returns the issue date of the stored token as YYYY-MM-DD.
func (m *Manager) IssuedOn() string {
	if d, ok := m.store.Current().IssuedOn(m.loc); ok {
		return d.Format(dateLayout)
	}
	return ""
}

// Now is the manager's clock in its configured location.
func (m *Manager) Now() time.Time {
	return m.clock()
}

func (m *Manager) regenerate(ctx context.Context, trigger models.RefreshTrigger, onlyIfStale bool) (string, error) {
	// The exchange must finish even if the request that started it goes away;
	// other callers may be waiting on the shared result.
	ctx = context.WithoutCancel(ctx)

	key := flightForced
	if onlyIfStale {
		key = flightLazy
	}
	v, err, _ := m.flight.Do(key, func() (any, error) {
		if onlyIfStale && !m.ShouldRegenerate() {
			return m.store.Current().Token, nil
		}
		return m.exchange(ctx, trigger)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (m *Manager) exchange(ctx context.Context, trigger models.RefreshTrigger) (string, error) {
	log := logger.Component("token")
	started := m.clock()

	key, secret := m.credentials()
	if key == "" || secret == "" {
		err := fmt.Errorf("%w: API_KEY or API_SECRET not set", errs.ErrCredential)
		m.record(ctx, trigger, err, "")
		return "", err
	}

	log.Info().Str("trigger", string(trigger)).Msg("generating new access token")

	tok, err := m.auth.AccessToken(ctx, key, secret)
	if err == nil && tok == "" {
		err = errors.New("empty token in response")
	}
	if err != nil {
		err = fmt.Errorf("%w: %w", errs.ErrUpstreamAuth, err)
		log.Error().Err(err).Str("trigger", string(trigger)).Msg("access token generation failed")
		m.record(ctx, trigger, err, "")
		return "", err
	}

	m.store.Replace(tok, started)
	issuedOn := m.IssuedOn()

	log.Info().
		Str("trigger", string(trigger)).
		Str("issued_on", issuedOn).
		Dur("took", m.clock().Sub(started)).
		Msg("access token generated")
	m.record(ctx, trigger, nil, issuedOn)
	return tok, nil
}

func (m *Manager) record(ctx context.Context, trigger models.RefreshTrigger, err error, issuedOn string) {
	if m.recorder == nil {
		return
	}
	ev := models.RefreshEvent{
		Trigger:   trigger,
		Success:   err == nil,
		IssuedOn:  issuedOn,
		CreatedAt: m.clock().UTC(),
	}
	if err != nil {
		ev.Error = err.Error()
	}
	if rerr := m.recorder.Record(ctx, ev); rerr != nil {
		logger.Component("token").Warn().Err(rerr).Msg("failed to record token refresh")
	}
}

func (m *Manager) credentials() (string, string) {
	if m.creds == nil {
		return "", ""
	}
	return m.creds()
}

func (m *Manager) clock() time.Time {
	return m.now().In(m.loc)
}
