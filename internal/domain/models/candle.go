package models

import (
	"encoding/json"
	"fmt"
)

// Candle is one normalized OHLCV data point.
//
// Fields:
//   - Time: interval start in Unix epoch seconds.
//   - Open, High, Low, Close: prices for the interval.
//   - Volume: traded quantity (0 when the upstream omits it).
//
// On the wire a Candle is a positional array: [epoch, open, high, low, close, volume].
//
// swagger:model Candle
type Candle struct {
	Time   int64
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// MarshalJSON encodes the candle as a 6-element array.
func (c Candle) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{c.Time, c.Open, c.High, c.Low, c.Close, c.Volume})
}

// UnmarshalJSON decodes the 6-element array form produced by MarshalJSON.
// Used when candles are read back from the cache.
func (c *Candle) UnmarshalJSON(b []byte) error {
	var raw []json.Number
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if len(raw) != 6 {
		return fmt.Errorf("candle: want 6 fields, got %d", len(raw))
	}

	var (
		out Candle
		err error
	)
	if out.Time, err = raw[0].Int64(); err != nil {
		return fmt.Errorf("candle time: %w", err)
	}
	prices := []*float64{&out.Open, &out.High, &out.Low, &out.Close}
	for i, p := range prices {
		if *p, err = raw[i+1].Float64(); err != nil {
			return fmt.Errorf("candle field %d: %w", i+1, err)
		}
	}
	if out.Volume, err = raw[5].Int64(); err != nil {
		return fmt.Errorf("candle volume: %w", err)
	}

	*c = out
	return nil
}
