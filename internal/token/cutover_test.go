package token

import (
	"testing"
	"time"

	"github.com/guttosm/growwgate/internal/credential"
)

var ist = time.FixedZone("IST", 5*3600+1800)

func at(day, hour, min int) time.Time {
	return time.Date(2025, time.January, day, hour, min, 0, 0, ist)
}

func issued(t time.Time) credential.Credential {
	return credential.Credential{Token: "tok", IssuedAt: t}
}

func TestShouldRegenerate(t *testing.T) {
	cases := []struct {
		name string
		now  time.Time
		cred credential.Credential
		want bool
	}{
		{name: "no credential before cutover", now: at(2, 1, 0), cred: credential.Credential{}, want: true},
		{name: "no credential after cutover", now: at(2, 12, 0), cred: credential.Credential{}, want: true},

		{name: "issued today, before cutover", now: at(2, 3, 29), cred: issued(at(2, 0, 10)), want: false},
		{name: "issued today after cutover, later today", now: at(2, 15, 0), cred: issued(at(2, 4, 0)), want: false},
		{name: "issued today exactly at cutover", now: at(2, 15, 0), cred: issued(at(2, 3, 30)), want: false},

		{name: "issued yesterday, before cutover", now: at(2, 3, 29), cred: issued(at(1, 10, 0)), want: false},
		{name: "issued yesterday, exactly at cutover", now: at(2, 3, 30), cred: issued(at(1, 10, 0)), want: true},
		{name: "issued yesterday, after cutover", now: at(2, 9, 15), cred: issued(at(1, 10, 0)), want: true},
		{name: "issued days ago, after cutover", now: at(5, 9, 15), cred: issued(at(1, 10, 0)), want: true},

		{name: "same day, issued before cutover, now after", now: at(2, 3, 45), cred: issued(at(2, 1, 0)), want: true},
		{name: "issue date in the future", now: at(2, 9, 0), cred: issued(at(3, 9, 0)), want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ShouldRegenerate(tc.now, tc.cred, DefaultCutover); got != tc.want {
				t.Fatalf("ShouldRegenerate(now=%s, issued=%s)=%v, want %v",
					tc.now.Format(time.RFC3339), tc.cred.IssuedAt.Format(time.RFC3339), got, tc.want)
			}
		})
	}
}

// The issue date is compared in now's location, not the location the token was stamped in.
func TestShouldRegenerate_UsesNowLocation(t *testing.T) {
	// 2025-01-01 23:00 UTC is 2025-01-02 04:30 IST, i.e. after today's cutover in IST.
	cred := issued(time.Date(2025, 1, 1, 23, 0, 0, 0, time.UTC))
	if ShouldRegenerate(at(2, 10, 0), cred, DefaultCutover) {
		t.Fatalf("token issued after today's IST cutover should be kept")
	}
}

func TestNextRefresh(t *testing.T) {
	cases := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{name: "before cutover", now: at(2, 1, 0), want: at(2, 3, 30)},
		{name: "at cutover", now: at(2, 3, 30), want: at(3, 3, 30)},
		{name: "after cutover", now: at(2, 18, 0), want: at(3, 3, 30)},
		{name: "month rollover", now: at(31, 18, 0), want: time.Date(2025, time.February, 1, 3, 30, 0, 0, ist)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NextRefresh(tc.now, DefaultCutover); !got.Equal(tc.want) {
				t.Fatalf("NextRefresh(%s)=%s, want %s", tc.now, got, tc.want)
			}
		})
	}
}

func TestParseTimeOfDay(t *testing.T) {
	got, err := ParseTimeOfDay("03:30")
	if err != nil || got != DefaultCutover {
		t.Fatalf("ParseTimeOfDay(03:30)=%v,%v", got, err)
	}
	if got.String() != "03:30" {
		t.Fatalf("String()=%q", got.String())
	}
	for _, bad := range []string{"", "3.30", "25:00", "noon"} {
		if _, err := ParseTimeOfDay(bad); err == nil {
			t.Fatalf("ParseTimeOfDay(%q) should fail", bad)
		}
	}
}
