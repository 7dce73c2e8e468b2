// Package candle turns the broker's historical payloads into models.Candle.
//
// The broker has answered with several layouts over time. Extraction of the
// candle list and parsing of each entry are both done by small strategies
// tried in order; the first one that matches wins. Entries no strategy can
// parse are dropped, never failing the whole batch.
package candle

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/guttosm/growwgate/internal/domain/models"
)

// shape locates the candle list inside a decoded payload.
type shape struct {
	name    string
	extract func(v any) ([]any, bool)
}

// entry parses one element of the candle list.
type entry struct {
	name  string
	parse func(v any) (models.Candle, bool)
}

var shapes = []shape{
	{name: "candles", extract: topLevelCandles},
	{name: "data.candles", extract: nestedCandles},
	{name: "array", extract: bareArray},
}

var entries = []entry{
	{name: "positional", parse: parsePositional},
	{name: "named", parse: parseNamed},
	{name: "short", parse: parseShort},
}

// Result carries the normalized candles plus what happened along the way.
type Result struct {
	Candles []models.Candle
	Shape   string // matched shape, empty when none matched
	Dropped int    // entries no strategy could parse
}

// Normalize decodes raw and normalizes it. It only fails when raw is not JSON;
// an unknown layout yields an empty Result.
func Normalize(raw []byte) (Result, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return Result{Candles: []models.Candle{}}, fmt.Errorf("decode candle payload: %w", err)
	}
	return NormalizeValue(v), nil
}

// NormalizeValue normalizes an already decoded payload. Numbers may be
// float64 or json.Number.
func NormalizeValue(v any) Result {
	res := Result{Candles: []models.Candle{}}

	var list []any
	for _, s := range shapes {
		if l, ok := s.extract(v); ok {
			list, res.Shape = l, s.name
			break
		}
	}

	for _, item := range list {
		if c, ok := parseEntry(item); ok {
			res.Candles = append(res.Candles, c)
			continue
		}
		res.Dropped++
	}
	return res
}

func parseEntry(v any) (models.Candle, bool) {
	for _, e := range entries {
		if c, ok := e.parse(v); ok {
			return c, true
		}
	}
	return models.Candle{}, false
}

func topLevelCandles(v any) ([]any, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	list, ok := obj["candles"].([]any)
	return list, ok
}

func nestedCandles(v any) ([]any, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	return topLevelCandles(obj["data"])
}

func bareArray(v any) ([]any, bool) {
	list, ok := v.([]any)
	return list, ok
}

// parsePositional accepts [t, o, h, l, c] or [t, o, h, l, c, v].
func parsePositional(v any) (models.Candle, bool) {
	arr, ok := v.([]any)
	if !ok || len(arr) < 5 {
		return models.Candle{}, false
	}
	var vol any
	if len(arr) > 5 {
		vol = arr[5]
	}
	return build(arr[0], arr[1], arr[2], arr[3], arr[4], vol)
}

var timeKeys = []string{"timestamp", "time", "datetime"}

// parseNamed accepts {"time"|"timestamp"|"datetime", "open", "high", "low", "close", "volume"}.
func parseNamed(v any) (models.Candle, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return models.Candle{}, false
	}
	var ts any
	for _, k := range timeKeys {
		if _, ok := toEpoch(obj[k]); ok {
			ts = obj[k]
			break
		}
	}
	return build(ts, obj["open"], obj["high"], obj["low"], obj["close"], obj["volume"])
}

// parseShort accepts {"t", "o", "h", "l", "c", "v"}.
func parseShort(v any) (models.Candle, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return models.Candle{}, false
	}
	return build(obj["t"], obj["o"], obj["h"], obj["l"], obj["c"], obj["v"])
}

// build assembles a candle; every field but volume is required.
// A missing, negative or out of range volume is stored as 0.
func build(ts, o, h, l, c, vol any) (models.Candle, bool) {
	epoch, ok := toEpoch(ts)
	if !ok {
		return models.Candle{}, false
	}
	var out models.Candle
	out.Time = epoch

	prices := []struct {
		src any
		dst *float64
	}{{o, &out.Open}, {h, &out.High}, {l, &out.Low}, {c, &out.Close}}
	for _, p := range prices {
		f, ok := toFloat(p.src)
		if !ok {
			return models.Candle{}, false
		}
		*p.dst = f
	}

	out.Volume = toVolume(vol)
	return out, true
}
