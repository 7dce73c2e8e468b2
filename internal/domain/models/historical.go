package models

// Exchange codes understood by the broker.
const (
	ExchangeNSE = "NSE"
	ExchangeBSE = "BSE"
)

// DefaultIntervalMinutes is used when a historical request does not set one.
const DefaultIntervalMinutes = 5

// HistoricalQuery describes a candle range request for one symbol.
//
// StartTime and EndTime are forwarded verbatim to the broker, which accepts
// either "YYYY-MM-DD HH:MM:SS" or epoch milliseconds.
type HistoricalQuery struct {
	Symbol          string
	StartTime       string
	EndTime         string
	IntervalMinutes int
	Exchange        string
}

// HistoricalResult is the normalized answer to a HistoricalQuery.
type HistoricalResult struct {
	Candles         []Candle
	StartTime       string
	EndTime         string
	IntervalMinutes int
}
