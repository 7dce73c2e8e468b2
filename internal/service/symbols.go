package service

import (
	"strings"

	"github.com/guttosm/growwgate/internal/domain/models"
)

var knownExchanges = []string{models.ExchangeNSE, models.ExchangeBSE}

// ResolveExchange normalizes an exchange code; anything unrecognized is NSE.
func ResolveExchange(exchange string) string {
	e := strings.ToUpper(strings.TrimSpace(exchange))
	for _, k := range knownExchanges {
		if e == k {
			return k
		}
	}
	return models.ExchangeNSE
}

// QualifySymbol returns the exchange-qualified form "<EXCHANGE>_<TICKER>".
// A ticker that already carries a known exchange prefix is returned as is.
func QualifySymbol(exchange, symbol string) string {
	s := strings.TrimSpace(symbol)
	if _, _, ok := splitQualified(s); ok {
		return s
	}
	return ResolveExchange(exchange) + "_" + s
}

// TradingSymbol strips a known exchange prefix, returning the bare ticker.
func TradingSymbol(symbol string) string {
	s := strings.TrimSpace(symbol)
	if _, ticker, ok := splitQualified(s); ok {
		return ticker
	}
	return s
}

func splitQualified(s string) (exchange, ticker string, ok bool) {
	prefix, rest, found := strings.Cut(s, "_")
	if !found || rest == "" {
		return "", "", false
	}
	p := strings.ToUpper(prefix)
	for _, k := range knownExchanges {
		if p == k {
			return k, rest, true
		}
	}
	return "", "", false
}
