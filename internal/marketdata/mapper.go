package marketdata

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/smarttrade/smarttrade/internal/domain"
)

// FallbackName is used when the company profile carries no usable name.
const FallbackName = "Unknown"

// MapStockTrade normalizes a company profile payload and a price-quote
// payload into a StockTrade. It is a pure function and never fails:
// missing or malformed data degrades to defaults (name "Unknown",
// price 0), so the result is always fully populated.
//
// A quantity below 1 normalizes to 1.
func MapStockTrade(symbol string, profile, quote Payload, quantity int64) domain.StockTrade {
	if quantity < 1 {
		quantity = 1
	}
	return domain.StockTrade{
		Symbol:   symbol,
		Name:     extractName(profile),
		Price:    extractPrice(quote),
		Quantity: quantity,
	}
}

// extractName pulls the company name out of a profile payload, falling
// back to FallbackName when the payload or the "name" field is absent.
func extractName(profile Payload) string {
	if profile == nil {
		return FallbackName
	}
	v, ok := profile["name"]
	if !ok || v == nil {
		return FallbackName
	}
	name := stringify(v)
	if name == "" {
		return FallbackName
	}
	return name
}

// extractPrice pulls the current price out of a quote payload via the
// provider's "c" field. Decimal strings are parsed with '.' as the
// separator regardless of host locale (strconv is locale-independent).
// Anything missing or unparseable yields 0.
func extractPrice(quote Payload) float64 {
	if quote == nil {
		return 0
	}
	v, ok := quote["c"]
	if !ok || v == nil {
		return 0
	}
	switch p := v.(type) {
	case float64:
		return p
	case json.Number:
		f, err := p.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		f, err := strconv.ParseFloat(stringify(v), 64)
		if err != nil {
			return 0
		}
		return f
	}
}

// stringify renders a payload value the way it would print, so numeric
// and string fields both resolve to their textual form.
func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case json.Number:
		return s.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
