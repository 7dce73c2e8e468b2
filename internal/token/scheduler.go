package token

import (
	"context"
	"time"

	"github.com/guttosm/growwgate/internal/domain/models"
	"github.com/guttosm/growwgate/internal/logger"
)

// MaxPollInterval bounds how late past the cutover the scheduled refresh can fire.
const MaxPollInterval = time.Minute

// Regenerator is the part of Manager the scheduler drives.
type Regenerator interface {
	Regenerate(ctx context.Context, trigger models.RefreshTrigger) (string, error)
}

// Scheduler regenerates the token once a day at the cutover. It wakes on a
// fixed interval and fires when the wall clock has passed the next cutover.
type Scheduler struct {
	regen    Regenerator
	now      func() time.Time
	cutover  TimeOfDay
	interval time.Duration

	next time.Time
}

// NewScheduler builds a scheduler for m. interval is clamped to (0, MaxPollInterval].
func NewScheduler(m *Manager, interval time.Duration) *Scheduler {
	if interval <= 0 || interval > MaxPollInterval {
		interval = MaxPollInterval
	}
	return &Scheduler{
		regen:    m,
		now:      m.clock,
		cutover:  m.cutover,
		interval: interval,
	}
}

// Run blocks until ctx is cancelled. A failed regeneration is logged and the
// next attempt is the following day's cutover (or a lazy refresh before then).
func (s *Scheduler) Run(ctx context.Context) {
	log := logger.Component("scheduler")

	s.next = NextRefresh(s.now(), s.cutover)
	log.Info().
		Str("cutover", s.cutover.String()).
		Time("next_run", s.next).
		Dur("poll_interval", s.interval).
		Msg("token refresh scheduler started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("token refresh scheduler stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick fires the regeneration if the next cutover has been reached and
// reports whether it did.
func (s *Scheduler) tick(ctx context.Context) bool {
	now := s.now()
	if now.Before(s.next) {
		return false
	}

	log := logger.Component("scheduler")
	if _, err := s.regen.Regenerate(ctx, models.TriggerScheduled); err != nil {
		log.Error().Err(err).Msg("scheduled token refresh failed")
	} else {
		log.Info().Msg("scheduled token refresh completed")
	}

	s.next = NextRefresh(now, s.cutover)
	log.Debug().Time("next_run", s.next).Msg("next token refresh scheduled")
	return true
}
