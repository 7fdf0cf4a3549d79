package service

import (
	"context"
	"log/slog"

	"github.com/smarttrade/smarttrade/internal/domain"
	"github.com/smarttrade/smarttrade/internal/marketdata"
)

// MarketDataClient is the external market-data collaborator. The two
// single-symbol fetches never fail — the implementation substitutes
// default payloads on provider errors — while the listing and search
// calls surface errors to the caller.
type MarketDataClient interface {
	CompanyProfile(ctx context.Context, symbol string) marketdata.Payload
	PriceQuote(ctx context.Context, symbol string) marketdata.Payload
	Symbols(ctx context.Context) ([]marketdata.StockSymbol, error)
	Search(ctx context.Context, query string) ([]marketdata.StockSymbol, error)
}

// QuoteCache caches raw quote payloads per symbol. Implementations are
// fail-open: a cache miss and a cache outage look the same.
type QuoteCache interface {
	Get(ctx context.Context, symbol string) (marketdata.Payload, bool)
	Set(ctx context.Context, symbol string, quote marketdata.Payload)
}

// StockService resolves normalized stock trades and symbol listings
// from the market-data provider.
type StockService struct {
	client        MarketDataClient
	cache         QuoteCache
	defaultSymbol string
	popularStocks []string
	logger        *slog.Logger
}

// NewStockService creates a StockService. cache may be nil when no cache
// backend is configured; popularStocks bounds the ListStocks result.
func NewStockService(
	client MarketDataClient,
	cache QuoteCache,
	defaultSymbol string,
	popularStocks []string,
	logger *slog.Logger,
) *StockService {
	if logger == nil {
		logger = slog.Default()
	}
	return &StockService{
		client:        client,
		cache:         cache,
		defaultSymbol: defaultSymbol,
		popularStocks: popularStocks,
		logger:        logger,
	}
}

// GetStockTrade fetches the profile and quote for a symbol and maps them
// into an always-populated StockTrade. An empty symbol falls back to the
// configured default. Quote payloads are served from the cache when
// present; the profile is fetched every time (names rarely change but
// are cheap, and profile fetches already degrade safely).
func (s *StockService) GetStockTrade(ctx context.Context, symbol string, quantity int64) domain.StockTrade {
	if symbol == "" {
		symbol = s.defaultSymbol
	}

	quote, cached := s.cachedQuote(ctx, symbol)
	if !cached {
		quote = s.client.PriceQuote(ctx, symbol)
		// A placeholder quote means the provider was down; caching it
		// would keep masking real prices for the full TTL after the
		// provider recovers.
		if !marketdata.IsPlaceholderQuote(quote) {
			s.cacheQuote(ctx, symbol, quote)
		}
	}
	profile := s.client.CompanyProfile(ctx, symbol)

	trade := marketdata.MapStockTrade(symbol, profile, quote, quantity)
	s.logger.Debug("stock trade resolved",
		slog.String("symbol", trade.Symbol),
		slog.Float64("price", trade.Price),
		slog.Bool("quote_cached", cached),
	)
	return trade
}

// ListStocks returns the provider's US listing filtered down to the
// configured popular stocks, preserving the configured order. An empty
// popular list returns the full listing.
func (s *StockService) ListStocks(ctx context.Context) ([]marketdata.StockSymbol, error) {
	all, err := s.client.Symbols(ctx)
	if err != nil {
		return nil, err
	}
	if len(s.popularStocks) == 0 {
		return all, nil
	}

	bySymbol := make(map[string]marketdata.StockSymbol, len(all))
	for _, sym := range all {
		bySymbol[sym.Symbol] = sym
	}

	popular := make([]marketdata.StockSymbol, 0, len(s.popularStocks))
	for _, symbol := range s.popularStocks {
		if sym, ok := bySymbol[symbol]; ok {
			popular = append(popular, sym)
		}
	}
	return popular, nil
}

// SearchStocks looks up stocks matching the query via the provider.
func (s *StockService) SearchStocks(ctx context.Context, query string) ([]marketdata.StockSymbol, error) {
	if query == "" {
		return nil, domain.NewValidationError("Search query is required")
	}
	return s.client.Search(ctx, query)
}

func (s *StockService) cachedQuote(ctx context.Context, symbol string) (marketdata.Payload, bool) {
	if s.cache == nil {
		return nil, false
	}
	return s.cache.Get(ctx, symbol)
}

func (s *StockService) cacheQuote(ctx context.Context, symbol string, quote marketdata.Payload) {
	if s.cache == nil {
		return
	}
	s.cache.Set(ctx, symbol, quote)
}
