package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the production Finnhub API endpoint.
const DefaultBaseURL = "https://finnhub.io/api/v1"

// placeholderPrice is substituted for the current price when the quote
// endpoint cannot be reached. Displaying a stale placeholder beats
// failing the whole stock view on a provider outage.
const placeholderPrice = 100.0

// IsPlaceholderQuote reports whether p is the substitute payload a
// failed quote fetch produces. Callers that cache quotes should skip
// placeholders so a real price is fetched again as soon as the provider
// recovers.
func IsPlaceholderQuote(p Payload) bool {
	if len(p) != 1 {
		return false
	}
	c, ok := p["c"]
	return ok && c == placeholderPrice
}

// Client fetches company profiles, price quotes, and symbol listings
// from the Finnhub HTTP API.
//
// The two single-symbol fetches (CompanyProfile, PriceQuote) never
// return an error: on any transport, status, or decode failure they
// substitute a safe default payload, so quote construction downstream
// never has to handle a fetch failure. Symbols and Search do propagate
// errors — browsing and search are allowed to visibly fail.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewClient creates a Finnhub client. An empty baseURL selects the
// production endpoint.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// CompanyProfile fetches the company profile for a symbol. On failure it
// returns an empty payload instead of an error; the mapper turns that
// into the fallback name.
func (c *Client) CompanyProfile(ctx context.Context, symbol string) Payload {
	var profile Payload
	if err := c.getJSON(ctx, "/stock/profile2", url.Values{"symbol": {symbol}}, &profile); err != nil {
		return Payload{}
	}
	if profile == nil {
		return Payload{}
	}
	return profile
}

// PriceQuote fetches the current price quote for a symbol. On failure it
// returns a payload carrying only the placeholder price, so the
// displayed price degrades rather than the page breaking.
func (c *Client) PriceQuote(ctx context.Context, symbol string) Payload {
	var quote Payload
	if err := c.getJSON(ctx, "/quote", url.Values{"symbol": {symbol}}, &quote); err != nil {
		return Payload{"c": placeholderPrice}
	}
	if quote == nil {
		return Payload{"c": placeholderPrice}
	}
	return quote
}

// Symbols lists the stocks traded on the US exchange.
func (c *Client) Symbols(ctx context.Context) ([]StockSymbol, error) {
	var symbols []StockSymbol
	if err := c.getJSON(ctx, "/stock/symbol", url.Values{"exchange": {"US"}}, &symbols); err != nil {
		return nil, err
	}
	return symbols, nil
}

// Search looks up stocks matching the query. The provider wraps matches
// in a "result" array, which is unwrapped here.
func (c *Client) Search(ctx context.Context, query string) ([]StockSymbol, error) {
	var wrapper struct {
		Result []StockSymbol `json:"result"`
	}
	if err := c.getJSON(ctx, "/search", url.Values{"q": {query}}, &wrapper); err != nil {
		return nil, err
	}
	if wrapper.Result == nil {
		return []StockSymbol{}, nil
	}
	return wrapper.Result, nil
}

// getJSON performs a GET against the given API path and decodes the JSON
// response body into v. Non-2xx statuses are errors.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, v any) error {
	params.Set("token", c.token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("fetch %s: unexpected status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
