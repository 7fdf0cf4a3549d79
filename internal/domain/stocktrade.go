package domain

// StockTrade is the normalized view of external market data for one
// symbol: a resolved display name, a current price, and the quantity the
// caller intends to trade. Every field is always populated — missing
// provider data degrades to defaults before a StockTrade is built, so
// consumers never need a nil check.
type StockTrade struct {
	Symbol   string
	Name     string
	Price    float64
	Quantity int64
}
