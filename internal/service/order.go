package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/smarttrade/smarttrade/internal/domain"
)

// OrderStore is the persistence collaborator the order service depends
// on: durable single-order appends and consistent reads per kind.
type OrderStore interface {
	Save(ctx context.Context, o *domain.Order) error
	ListByKind(ctx context.Context, kind domain.OrderKind) ([]*domain.Order, error)
}

// EventPublisher announces persisted orders to interested consumers.
// Publishing is fire-and-forget: a broker outage never fails an order.
type EventPublisher interface {
	OrderPlaced(ctx context.Context, o *domain.Order)
}

// OrderService handles order creation and listing for both order kinds.
// Buy and sell share one code path parameterized by the kind tag.
type OrderService struct {
	store     OrderStore
	publisher EventPublisher
	logger    *slog.Logger
}

// NewOrderService creates an OrderService. publisher may be nil when no
// event broker is configured.
func NewOrderService(store OrderStore, publisher EventPublisher, logger *slog.Logger) *OrderService {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderService{
		store:     store,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateOrder validates the request, persists a new order of the given
// kind, and returns its summary with the computed trade amount.
//
// An unknown kind fails with domain.ErrOrderKindInvalid and a nil
// request with domain.ErrRequestMissing. Field rules are all
// evaluated before reporting, so the returned ValidationError carries
// every violation at once; the date floor is checked afterwards as a
// separate rule. Nothing is written unless validation passes, and store
// failures propagate unchanged.
func (s *OrderService) CreateOrder(ctx context.Context, kind domain.OrderKind, req *domain.OrderRequest) (*domain.OrderSummary, error) {
	if !kind.Valid() {
		s.logger.Warn("unknown order kind", slog.String("kind", string(kind)))
		return nil, domain.ErrOrderKindInvalid
	}
	if req == nil {
		s.logger.Warn("order request missing", slog.String("kind", string(kind)))
		return nil, domain.ErrRequestMissing
	}

	if violations := validateOrderRequest(req); len(violations) > 0 {
		s.logger.Warn("order request invalid",
			slog.String("kind", string(kind)),
			slog.String("symbol", req.Symbol),
			slog.Int("violations", len(violations)),
		)
		return nil, &domain.ValidationError{Messages: violations}
	}
	if err := validateOrderDate(req.PlacedAt); err != nil {
		s.logger.Warn("order date too early",
			slog.String("kind", string(kind)),
			slog.Time("placed_at", req.PlacedAt),
		)
		return nil, err
	}

	order := &domain.Order{
		ID:       uuid.New().String(),
		Kind:     kind,
		Symbol:   req.Symbol,
		Name:     req.Name,
		PlacedAt: req.PlacedAt,
		Quantity: req.Quantity,
		Price:    req.Price,
	}

	if err := s.store.Save(ctx, order); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		s.publisher.OrderPlaced(ctx, order)
	}

	summary := order.Summary()
	s.logger.Info("order created",
		slog.String("order_id", order.ID),
		slog.String("kind", string(kind)),
		slog.String("symbol", order.Symbol),
		slog.Float64("trade_amount", summary.TradeAmount),
	)
	return summary, nil
}

// ListOrders returns summaries for every persisted order of the given
// kind, preserving the store's order. An empty store yields an empty
// slice, never an error.
func (s *OrderService) ListOrders(ctx context.Context, kind domain.OrderKind) ([]*domain.OrderSummary, error) {
	orders, err := s.store.ListByKind(ctx, kind)
	if err != nil {
		return nil, err
	}

	summaries := make([]*domain.OrderSummary, len(orders))
	for i, o := range orders {
		summaries[i] = o.Summary()
	}
	return summaries, nil
}

// AllOrders merges buy and sell summaries into one list sorted by
// placement time, newest first, for uniform display.
func (s *OrderService) AllOrders(ctx context.Context) ([]*domain.OrderSummary, error) {
	buys, err := s.ListOrders(ctx, domain.OrderKindBuy)
	if err != nil {
		return nil, err
	}
	sells, err := s.ListOrders(ctx, domain.OrderKindSell)
	if err != nil {
		return nil, err
	}

	merged := make([]*domain.OrderSummary, 0, len(buys)+len(sells))
	merged = append(merged, buys...)
	merged = append(merged, sells...)
	domain.SortSummaries(merged)
	return merged, nil
}
