package candle

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// maxEpochSeconds is the largest value treated as seconds; anything above is milliseconds.
const maxEpochSeconds = 9_999_999_999

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// toFloat coerces JSON numbers and numeric strings.
func toFloat(v any) (float64, bool) {
	var (
		f   float64
		err error
	)
	switch x := v.(type) {
	case float64:
		f = x
	case json.Number:
		f, err = x.Float64()
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(x), 64)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	default:
		return 0, false
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// toVolume coerces a traded quantity; anything not representable as a
// non-negative int64 becomes 0.
func toVolume(v any) int64 {
	f, ok := toFloat(v)
	if !ok || f < 0 || f >= math.MaxInt64 {
		return 0
	}
	return int64(f)
}

// toEpoch returns epoch seconds from a number, numeric string or timestamp string.
func toEpoch(v any) (int64, bool) {
	if f, ok := toFloat(v); ok {
		if f < 0 {
			return 0, false
		}
		if f > maxEpochSeconds {
			f /= 1000
		}
		return int64(f), true
	}

	s, ok := v.(string)
	if !ok {
		return 0, false
	}
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Unix(), true
		}
	}
	return 0, false
}
