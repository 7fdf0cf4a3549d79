package domain

import (
	"sort"
	"time"
)

// OrderKind distinguishes buy orders from sell orders. Both kinds share
// the same shape; the kind tag is the only difference.
type OrderKind string

const (
	OrderKindBuy  OrderKind = "buy"
	OrderKindSell OrderKind = "sell"
)

// Valid reports whether k is one of the known order kinds.
func (k OrderKind) Valid() bool {
	return k == OrderKindBuy || k == OrderKindSell
}

// OrderRequest is an incoming, not-yet-persisted order. It is built per
// request and discarded after validation.
type OrderRequest struct {
	Symbol   string
	Name     string
	PlacedAt time.Time
	Quantity int64   // shares
	Price    float64 // currency per share
}

// Order is a persisted buy or sell intent. The ID is assigned exactly
// once at creation time and never changes afterwards.
type Order struct {
	ID       string
	Kind     OrderKind
	Symbol   string
	Name     string
	PlacedAt time.Time
	Quantity int64
	Price    float64
}

// Summary projects the order into its response form, computing the trade
// amount. The trade amount is derived at projection time, never stored.
func (o *Order) Summary() *OrderSummary {
	return &OrderSummary{
		ID:          o.ID,
		Kind:        o.Kind,
		Symbol:      o.Symbol,
		Name:        o.Name,
		PlacedAt:    o.PlacedAt,
		Quantity:    o.Quantity,
		Price:       o.Price,
		TradeAmount: o.Price * float64(o.Quantity),
	}
}

// OrderSummary is the caller-facing projection of an order. It carries
// the kind tag so buy and sell summaries can be merged into one list and
// rendered uniformly.
type OrderSummary struct {
	ID          string
	Kind        OrderKind
	Symbol      string
	Name        string
	PlacedAt    time.Time
	Quantity    int64
	Price       float64
	TradeAmount float64
}

// SortSummaries orders summaries by placement time, newest first. The
// sort is stable so summaries placed at the same instant keep their
// relative positions.
func SortSummaries(summaries []*OrderSummary) {
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].PlacedAt.After(summaries[j].PlacedAt)
	})
}
