package dto

// SymbolsRequest is the body of POST /get-ltp and POST /get-ohlc.
type SymbolsRequest struct {
	Symbols []string `json:"symbols" example:"RELIANCE,TCS"`
}

// HistoricalRequest is the body of POST /get-historical-data.
//
// Interval defaults to 5 minutes and Exchange to "NSE" when omitted.
type HistoricalRequest struct {
	Symbol    string `json:"symbol" example:"RELIANCE"`
	StartTime string `json:"start_time" example:"2025-01-02 09:15:00"`
	EndTime   string `json:"end_time" example:"2025-01-02 15:30:00"`
	Interval  *int   `json:"interval,omitempty" example:"5"`
	Exchange  string `json:"exchange,omitempty" example:"NSE"`
}
