package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/smarttrade/smarttrade/internal/domain"
	"github.com/smarttrade/smarttrade/internal/service"
)

// OrderHandler handles HTTP requests for order endpoints.
type OrderHandler struct {
	orderSvc *service.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderSvc *service.OrderService) *OrderHandler {
	return &OrderHandler{orderSvc: orderSvc}
}

// createOrderRequest is the JSON request body for POST /orders/{buy,sell}.
type createOrderRequest struct {
	Symbol   string  `json:"symbol"`
	Name     string  `json:"name"`
	PlacedAt string  `json:"placed_at"`
	Quantity int64   `json:"quantity"`
	Price    float64 `json:"price"`
}

// orderSummaryResponse is the JSON form of an order summary.
type orderSummaryResponse struct {
	OrderID     string  `json:"order_id"`
	Kind        string  `json:"kind"`
	Symbol      string  `json:"symbol"`
	Name        string  `json:"name"`
	PlacedAt    string  `json:"placed_at"`
	Quantity    int64   `json:"quantity"`
	Price       float64 `json:"price"`
	TradeAmount float64 `json:"trade_amount"`
}

// CreateOrder returns a handler for POST /orders/buy or POST /orders/sell
// depending on the kind it is bound with.
func (h *OrderHandler) CreateOrder(kind domain.OrderKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createOrderRequest
		if err := ParseJSON(r, &req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}

		placedAt, err := time.Parse(time.RFC3339, req.PlacedAt)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "validation_error", "placed_at must be a valid RFC 3339 timestamp")
			return
		}

		summary, err := h.orderSvc.CreateOrder(r.Context(), kind, &domain.OrderRequest{
			Symbol:   req.Symbol,
			Name:     req.Name,
			PlacedAt: placedAt,
			Quantity: req.Quantity,
			Price:    req.Price,
		})
		if err != nil {
			mapOrderError(w, err)
			return
		}

		WriteJSON(w, http.StatusCreated, buildSummaryResponse(summary))
	}
}

// ListOrders returns a handler for GET /orders/buy or GET /orders/sell.
func (h *OrderHandler) ListOrders(kind domain.OrderKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summaries, err := h.orderSvc.ListOrders(r.Context(), kind)
		if err != nil {
			mapOrderError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, buildSummaryResponses(summaries))
	}
}

// ListAllOrders handles GET /orders: buy and sell merged, newest first.
func (h *OrderHandler) ListAllOrders(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.orderSvc.AllOrders(r.Context())
	if err != nil {
		mapOrderError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, buildSummaryResponses(summaries))
}

func buildSummaryResponse(s *domain.OrderSummary) orderSummaryResponse {
	return orderSummaryResponse{
		OrderID:     s.ID,
		Kind:        string(s.Kind),
		Symbol:      s.Symbol,
		Name:        s.Name,
		PlacedAt:    s.PlacedAt.UTC().Format(time.RFC3339),
		Quantity:    s.Quantity,
		Price:       s.Price,
		TradeAmount: s.TradeAmount,
	}
}

func buildSummaryResponses(summaries []*domain.OrderSummary) []orderSummaryResponse {
	result := make([]orderSummaryResponse, len(summaries))
	for i, s := range summaries {
		result[i] = buildSummaryResponse(s)
	}
	return result
}

// mapOrderError maps domain errors to HTTP responses for order endpoints.
// Store failures fall through to 500 — they are surfaced, never masked
// as validation problems.
func mapOrderError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		WriteValidationError(w, validationErr.Messages)
		return
	}

	switch {
	case errors.Is(err, domain.ErrRequestMissing):
		WriteError(w, http.StatusBadRequest, "request_missing", "Order request is required")
	case errors.Is(err, domain.ErrOrderKindInvalid):
		WriteError(w, http.StatusBadRequest, "order_kind_invalid", "Order kind must be buy or sell")
	default:
		WriteError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
