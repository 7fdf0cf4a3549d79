package marketdata

// Payload is a raw key-value record as decoded from a provider response.
// It is deliberately loose: providers omit fields freely and mix value
// types. The mapper is the only code that inspects keys — everything
// past it works with fully-typed domain values.
type Payload map[string]any

// StockSymbol is one entry of a provider symbol listing or search
// result, decoded into a typed value at the boundary.
type StockSymbol struct {
	Symbol      string `json:"symbol"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Currency    string `json:"currency"`
}
