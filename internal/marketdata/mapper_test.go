package marketdata

import (
	"encoding/json"
	"testing"
)

func TestMapStockTrade_BothPayloadsMissing(t *testing.T) {
	trade := MapStockTrade("AAPL", nil, nil, 1)

	if trade.Symbol != "AAPL" {
		t.Errorf("got symbol %q, want AAPL", trade.Symbol)
	}
	if trade.Name != "Unknown" {
		t.Errorf("got name %q, want Unknown", trade.Name)
	}
	if trade.Price != 0 {
		t.Errorf("got price %v, want 0", trade.Price)
	}
	if trade.Quantity != 1 {
		t.Errorf("got quantity %d, want 1", trade.Quantity)
	}
}

func TestMapStockTrade_FullPayloads(t *testing.T) {
	profile := Payload{"name": "Apple Inc."}
	quote := Payload{"c": "150.25"}

	trade := MapStockTrade("AAPL", profile, quote, 1)

	if trade.Name != "Apple Inc." {
		t.Errorf("got name %q, want Apple Inc.", trade.Name)
	}
	if trade.Price != 150.25 {
		t.Errorf("got price %v, want 150.25 (invariant decimal parsing)", trade.Price)
	}
}

func TestMapStockTrade_PriceValueForms(t *testing.T) {
	tests := []struct {
		name  string
		quote Payload
		want  float64
	}{
		{"float64 value", Payload{"c": 150.25}, 150.25},
		{"string value", Payload{"c": "150.25"}, 150.25},
		{"json number value", Payload{"c": json.Number("150.25")}, 150.25},
		{"integer value", Payload{"c": 150.0}, 150},
		{"unparseable string", Payload{"c": "not-a-price"}, 0},
		{"empty string", Payload{"c": ""}, 0},
		{"nil value", Payload{"c": nil}, 0},
		{"key absent", Payload{"pc": 149.0}, 0},
		{"nil payload", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trade := MapStockTrade("AAPL", nil, tt.quote, 1)
			if trade.Price != tt.want {
				t.Errorf("got price %v, want %v", trade.Price, tt.want)
			}
		})
	}
}

func TestMapStockTrade_NameValueForms(t *testing.T) {
	tests := []struct {
		name    string
		profile Payload
		want    string
	}{
		{"string name", Payload{"name": "Apple Inc."}, "Apple Inc."},
		{"empty name", Payload{"name": ""}, "Unknown"},
		{"nil name", Payload{"name": nil}, "Unknown"},
		{"key absent", Payload{"ticker": "AAPL"}, "Unknown"},
		{"nil payload", nil, "Unknown"},
		{"numeric name stringified", Payload{"name": json.Number("42")}, "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trade := MapStockTrade("AAPL", tt.profile, nil, 1)
			if trade.Name != tt.want {
				t.Errorf("got name %q, want %q", trade.Name, tt.want)
			}
		})
	}
}

func TestMapStockTrade_QuantityNormalizedToOne(t *testing.T) {
	for _, quantity := range []int64{-5, 0} {
		trade := MapStockTrade("AAPL", nil, nil, quantity)
		if trade.Quantity != 1 {
			t.Errorf("quantity %d: got %d, want 1", quantity, trade.Quantity)
		}
	}
}

func TestMapStockTrade_DoesNotMutateInputs(t *testing.T) {
	profile := Payload{"name": "Apple Inc."}
	quote := Payload{"c": "150.25"}

	MapStockTrade("AAPL", profile, quote, 1)

	if len(profile) != 1 || profile["name"] != "Apple Inc." {
		t.Errorf("profile mutated: %v", profile)
	}
	if len(quote) != 1 || quote["c"] != "150.25" {
		t.Errorf("quote mutated: %v", quote)
	}
}
