package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/smarttrade/smarttrade/internal/domain"
	"github.com/smarttrade/smarttrade/internal/marketdata"
	"github.com/smarttrade/smarttrade/internal/service"
)

// StockHandler handles HTTP requests for stock endpoints.
type StockHandler struct {
	stockSvc *service.StockService
}

// NewStockHandler creates a new StockHandler.
func NewStockHandler(stockSvc *service.StockService) *StockHandler {
	return &StockHandler{stockSvc: stockSvc}
}

// stockTradeResponse is the JSON form of a normalized stock trade.
type stockTradeResponse struct {
	Symbol   string  `json:"symbol"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int64   `json:"quantity"`
}

// stockSymbolResponse is one entry of a listing or search response.
type stockSymbolResponse struct {
	Symbol      string `json:"symbol"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Currency    string `json:"currency"`
}

// GetStockTrade handles GET /stocks/{symbol}/trade?quantity=N. The
// response always carries a populated name and price: market-data
// outages degrade to defaults instead of failing.
func (h *StockHandler) GetStockTrade(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	quantity := int64(1)
	if q := r.URL.Query().Get("quantity"); q != "" {
		parsed, err := strconv.ParseInt(q, 10, 64)
		if err != nil || parsed < 1 {
			WriteError(w, http.StatusBadRequest, "validation_error", "quantity must be a positive integer")
			return
		}
		quantity = parsed
	}

	trade := h.stockSvc.GetStockTrade(r.Context(), symbol, quantity)
	WriteJSON(w, http.StatusOK, stockTradeResponse{
		Symbol:   trade.Symbol,
		Name:     trade.Name,
		Price:    trade.Price,
		Quantity: trade.Quantity,
	})
}

// ListStocks handles GET /stocks.
func (h *StockHandler) ListStocks(w http.ResponseWriter, r *http.Request) {
	stocks, err := h.stockSvc.ListStocks(r.Context())
	if err != nil {
		mapStockError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, buildSymbolResponses(stocks))
}

// SearchStocks handles GET /stocks/search?q=query.
func (h *StockHandler) SearchStocks(w http.ResponseWriter, r *http.Request) {
	results, err := h.stockSvc.SearchStocks(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		mapStockError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, buildSymbolResponses(results))
}

func buildSymbolResponses(symbols []marketdata.StockSymbol) []stockSymbolResponse {
	result := make([]stockSymbolResponse, len(symbols))
	for i, s := range symbols {
		result[i] = stockSymbolResponse{
			Symbol:      s.Symbol,
			Description: s.Description,
			Type:        s.Type,
			Currency:    s.Currency,
		}
	}
	return result
}

// mapStockError maps stock service errors to HTTP responses. Listing and
// search surface provider failures as 502 — only the single-symbol trade
// view degrades silently.
func mapStockError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		WriteValidationError(w, validationErr.Messages)
		return
	}
	WriteError(w, http.StatusBadGateway, "market_data_unavailable", "The market data provider could not be reached")
}
