package token

import (
	"fmt"
	"time"

	"github.com/guttosm/growwgate/internal/credential"
)

// TimeOfDay is a wall-clock time without a date.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// DefaultCutover is when the broker rotates session tokens (03:30 local time).
var DefaultCutover = TimeOfDay{Hour: 3, Minute: 30}

// ParseTimeOfDay parses "HH:MM" in 24h format.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q, expected HH:MM: %w", s, err)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// On returns the instant at this time of day on day's calendar date, in day's location.
func (t TimeOfDay) On(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, t.Hour, t.Minute, 0, 0, day.Location())
}

// NextRefresh returns the first cutover strictly after now.
func NextRefresh(now time.Time, cutover TimeOfDay) time.Time {
	today := cutover.On(now)
	if now.Before(today) {
		return today
	}
	y, m, d := now.Date()
	return time.Date(y, m, d+1, cutover.Hour, cutover.Minute, 0, 0, now.Location())
}

// ShouldRegenerate decides whether cred must be replaced before use at now.
// Calendar dates are taken in now's location.
//
//  1. no credential: regenerate.
//  2. now is on a later date than the issue date and past the cutover: regenerate.
//  3. same date, past the cutover, but issued before today's cutover: regenerate.
//  4. otherwise keep the token.
func ShouldRegenerate(now time.Time, cred credential.Credential, cutover TimeOfDay) bool {
	issuedOn, ok := cred.IssuedOn(now.Location())
	if !ok {
		return true
	}

	today := dateOf(now)
	todayCutover := cutover.On(now)
	pastCutover := !now.Before(todayCutover)

	switch {
	case today.After(issuedOn):
		return pastCutover
	case today.Equal(issuedOn):
		return pastCutover && cred.IssuedAt.Before(todayCutover)
	default:
		// issue date in the future: clock moved backwards
		return false
	}
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
