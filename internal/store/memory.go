package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/btree"
	"github.com/smarttrade/smarttrade/internal/domain"
)

// orderEntry is the B-tree item for a persisted order.
type orderEntry struct {
	PlacedAt time.Time
	ID       string
	Order    *domain.Order
}

// orderLess defines ordering: placed_at descending, then ID ascending.
// Ascend therefore walks orders newest first.
func orderLess(a, b orderEntry) bool {
	if !a.PlacedAt.Equal(b.PlacedAt) {
		return a.PlacedAt.After(b.PlacedAt)
	}
	return a.ID < b.ID
}

// MemoryOrderStore is a thread-safe in-memory order store keeping one
// B-tree per order kind, indexed by placement time. Reads return orders
// newest first.
type MemoryOrderStore struct {
	mu    sync.RWMutex
	kinds map[domain.OrderKind]*btree.BTreeG[orderEntry]
}

// NewMemoryOrderStore creates an empty MemoryOrderStore.
func NewMemoryOrderStore() *MemoryOrderStore {
	return &MemoryOrderStore{
		kinds: map[domain.OrderKind]*btree.BTreeG[orderEntry]{
			domain.OrderKindBuy:  btree.NewG[orderEntry](2, orderLess),
			domain.OrderKindSell: btree.NewG[orderEntry](2, orderLess),
		},
	}
}

// Save appends an order. The store keeps its own copy, so the caller's
// order can be discarded after the call returns.
func (s *MemoryOrderStore) Save(ctx context.Context, o *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tree, ok := s.kinds[o.Kind]
	if !ok {
		tree = btree.NewG[orderEntry](2, orderLess)
		s.kinds[o.Kind] = tree
	}

	clone := *o
	tree.ReplaceOrInsert(orderEntry{
		PlacedAt: o.PlacedAt,
		ID:       o.ID,
		Order:    &clone,
	})
	return nil
}

// ListByKind returns all orders of the given kind, newest first. An
// empty store yields an empty slice.
func (s *MemoryOrderStore) ListByKind(ctx context.Context, kind domain.OrderKind) ([]*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tree, ok := s.kinds[kind]
	if !ok {
		return []*domain.Order{}, nil
	}

	orders := make([]*domain.Order, 0, tree.Len())
	tree.Ascend(func(e orderEntry) bool {
		clone := *e.Order
		orders = append(orders, &clone)
		return true
	})
	return orders, nil
}
