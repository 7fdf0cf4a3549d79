package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/smarttrade/smarttrade/internal/marketdata"
	"github.com/smarttrade/smarttrade/internal/service"
	"github.com/smarttrade/smarttrade/internal/store"
)

// stubMarketDataClient serves canned payloads, mimicking the real
// client's fallback behavior for unknown symbols.
type stubMarketDataClient struct {
	profiles   map[string]marketdata.Payload
	quotes     map[string]marketdata.Payload
	symbols    []marketdata.StockSymbol
	symbolsErr error
	searchErr  error
}

func (c *stubMarketDataClient) CompanyProfile(ctx context.Context, symbol string) marketdata.Payload {
	if p, ok := c.profiles[symbol]; ok {
		return p
	}
	return marketdata.Payload{}
}

func (c *stubMarketDataClient) PriceQuote(ctx context.Context, symbol string) marketdata.Payload {
	if q, ok := c.quotes[symbol]; ok {
		return q
	}
	return marketdata.Payload{"c": 100.0}
}

func (c *stubMarketDataClient) Symbols(ctx context.Context) ([]marketdata.StockSymbol, error) {
	return c.symbols, c.symbolsErr
}

func (c *stubMarketDataClient) Search(ctx context.Context, query string) ([]marketdata.StockSymbol, error) {
	if c.searchErr != nil {
		return nil, c.searchErr
	}
	return c.symbols, nil
}

func newTestServer(t *testing.T, client *stubMarketDataClient) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), nil))
	orderSvc := service.NewOrderService(store.NewMemoryOrderStore(), nil, logger)
	stockSvc := service.NewStockService(client, nil, "MSFT", nil, logger)

	srv := httptest.NewServer(NewRouter(orderSvc, stockSvc, logger))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}

const validOrderBody = `{
	"symbol": "AAPL",
	"name": "Apple Inc.",
	"placed_at": "2024-06-01T10:00:00Z",
	"quantity": 100,
	"price": 150.00
}`

func TestCreateOrder_Created(t *testing.T) {
	srv := newTestServer(t, &stubMarketDataClient{})

	resp := postJSON(t, srv.URL+"/orders/buy", validOrderBody)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("got status %d, want 201", resp.StatusCode)
	}

	var body orderSummaryResponse
	decodeJSON(t, resp, &body)

	if body.OrderID == "" {
		t.Error("expected an order_id")
	}
	if body.Kind != "buy" {
		t.Errorf("got kind %q, want buy", body.Kind)
	}
	if body.TradeAmount != 15000.00 {
		t.Errorf("got trade_amount %v, want 15000", body.TradeAmount)
	}
}

func TestCreateOrder_ValidationErrorListsAllViolations(t *testing.T) {
	srv := newTestServer(t, &stubMarketDataClient{})

	resp := postJSON(t, srv.URL+"/orders/sell", `{
		"symbol": "",
		"name": "",
		"placed_at": "2024-06-01T10:00:00Z",
		"quantity": 0,
		"price": 0
	}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", resp.StatusCode)
	}

	var body struct {
		Error   string   `json:"error"`
		Details []string `json:"details"`
	}
	decodeJSON(t, resp, &body)

	if body.Error != "validation_error" {
		t.Errorf("got error %q, want validation_error", body.Error)
	}
	if len(body.Details) != 4 {
		t.Errorf("expected all 4 violations, got %v", body.Details)
	}
}

func TestCreateOrder_DateBeforeFloor(t *testing.T) {
	srv := newTestServer(t, &stubMarketDataClient{})

	resp := postJSON(t, srv.URL+"/orders/buy", `{
		"symbol": "AAPL",
		"name": "Apple Inc.",
		"placed_at": "1999-12-31T23:59:59Z",
		"quantity": 100,
		"price": 150.00
	}`)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("got status %d, want 400", resp.StatusCode)
	}
}

func TestCreateOrder_MissingContentType(t *testing.T) {
	srv := newTestServer(t, &stubMarketDataClient{})

	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/orders/buy", bytes.NewBufferString(validOrderBody))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("got status %d, want 400", resp.StatusCode)
	}
}

func TestListOrders_MergedNewestFirst(t *testing.T) {
	srv := newTestServer(t, &stubMarketDataClient{})

	postJSON(t, srv.URL+"/orders/buy", validOrderBody).Body.Close()
	postJSON(t, srv.URL+"/orders/sell", `{
		"symbol": "MSFT",
		"name": "Microsoft Corporation",
		"placed_at": "2024-06-01T11:00:00Z",
		"quantity": 25,
		"price": 150.00
	}`).Body.Close()

	resp, err := http.Get(srv.URL + "/orders")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("got status %d, want 200", resp.StatusCode)
	}

	var body []orderSummaryResponse
	decodeJSON(t, resp, &body)

	if len(body) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(body))
	}
	if body[0].Kind != "sell" || body[1].Kind != "buy" {
		t.Errorf("expected newest first (sell, buy), got (%s, %s)", body[0].Kind, body[1].Kind)
	}
	if body[1].TradeAmount != 15000.00 || body[0].TradeAmount != 3750.00 {
		t.Errorf("unexpected trade amounts: %v, %v", body[0].TradeAmount, body[1].TradeAmount)
	}
}

func TestListOrders_EmptyStore(t *testing.T) {
	srv := newTestServer(t, &stubMarketDataClient{})

	resp, err := http.Get(srv.URL + "/orders/buy")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("got status %d, want 200", resp.StatusCode)
	}

	var body []orderSummaryResponse
	decodeJSON(t, resp, &body)
	if len(body) != 0 {
		t.Errorf("expected empty list, got %v", body)
	}
}

func TestGetStockTrade_OK(t *testing.T) {
	srv := newTestServer(t, &stubMarketDataClient{
		profiles: map[string]marketdata.Payload{"AAPL": {"name": "Apple Inc."}},
		quotes:   map[string]marketdata.Payload{"AAPL": {"c": 150.25}},
	})

	resp, err := http.Get(srv.URL + "/stocks/AAPL/trade?quantity=2")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("got status %d, want 200", resp.StatusCode)
	}

	var body stockTradeResponse
	decodeJSON(t, resp, &body)
	if body.Name != "Apple Inc." || body.Price != 150.25 || body.Quantity != 2 {
		t.Errorf("unexpected body: %+v", body)
	}
}

func TestGetStockTrade_DegradedProviderStillOK(t *testing.T) {
	srv := newTestServer(t, &stubMarketDataClient{})

	resp, err := http.Get(srv.URL + "/stocks/ZZZZ/trade")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("got status %d, want 200 even when provider data is missing", resp.StatusCode)
	}

	var body stockTradeResponse
	decodeJSON(t, resp, &body)
	if body.Name != "Unknown" || body.Price != 100.0 {
		t.Errorf("expected degraded defaults, got %+v", body)
	}
}

func TestGetStockTrade_InvalidQuantity(t *testing.T) {
	srv := newTestServer(t, &stubMarketDataClient{})

	resp, err := http.Get(srv.URL + "/stocks/AAPL/trade?quantity=zero")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("got status %d, want 400", resp.StatusCode)
	}
}

func TestSearchStocks_MissingQuery(t *testing.T) {
	srv := newTestServer(t, &stubMarketDataClient{})

	resp, err := http.Get(srv.URL + "/stocks/search")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("got status %d, want 400", resp.StatusCode)
	}
}

func TestListStocks_ProviderFailureIsBadGateway(t *testing.T) {
	srv := newTestServer(t, &stubMarketDataClient{symbolsErr: errors.New("provider down")})

	resp, err := http.Get(srv.URL + "/stocks")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("got status %d, want 502", resp.StatusCode)
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, &stubMarketDataClient{})

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("got status %d, want 200", resp.StatusCode)
	}
}
