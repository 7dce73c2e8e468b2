package dto

import (
	"encoding/json"

	"github.com/guttosm/growwgate/internal/domain/models"
)

// QuotesResponse wraps per-symbol upstream payloads keyed by the requested symbol.
type QuotesResponse struct {
	Data map[string]json.RawMessage `json:"data" swaggertype:"object"`
}

// HistoricalResponse is returned by POST /get-historical-data.
// Each candle is encoded as [epoch, open, high, low, close, volume].
type HistoricalResponse struct {
	Candles          []models.Candle `json:"candles"`
	StartTime        string          `json:"start_time" example:"2025-01-02 09:15:00"`
	EndTime          string          `json:"end_time" example:"2025-01-02 15:30:00"`
	IntervalInMinute int             `json:"interval_in_minutes" example:"5"`
}
