package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smarttrade/smarttrade/internal/domain"
)

const ordersSchema = `
CREATE TABLE IF NOT EXISTS orders (
    id        UUID PRIMARY KEY,
    kind      TEXT NOT NULL,
    symbol    TEXT NOT NULL,
    name      TEXT NOT NULL,
    placed_at TIMESTAMPTZ NOT NULL,
    quantity  BIGINT NOT NULL,
    price     DOUBLE PRECISION NOT NULL
);
CREATE INDEX IF NOT EXISTS orders_kind_placed_at_idx ON orders (kind, placed_at DESC);
`

// PostgresOrderStore persists orders in PostgreSQL via a pgx connection
// pool. Each save is a single-row insert; the database provides the
// atomicity and consistent reads the service relies on.
type PostgresOrderStore struct {
	pool *pgxpool.Pool
}

// NewPostgresOrderStore connects a pool to connString.
func NewPostgresOrderStore(ctx context.Context, connString string) (*PostgresOrderStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}
	return &PostgresOrderStore{pool: pool}, nil
}

// Migrate creates the orders table if it does not exist.
func (s *PostgresOrderStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, ordersSchema); err != nil {
		return fmt.Errorf("apply orders schema: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *PostgresOrderStore) Close() {
	s.pool.Close()
}

// Save inserts the order.
func (s *PostgresOrderStore) Save(ctx context.Context, o *domain.Order) error {
	_, err := s.pool.Exec(ctx,
		"INSERT INTO orders (id, kind, symbol, name, placed_at, quantity, price) VALUES ($1, $2, $3, $4, $5, $6, $7)",
		o.ID, string(o.Kind), o.Symbol, o.Name, o.PlacedAt, o.Quantity, o.Price)
	if err != nil {
		return fmt.Errorf("save order: %w", err)
	}
	return nil
}

// ListByKind returns all orders of the given kind, newest first.
func (s *PostgresOrderStore) ListByKind(ctx context.Context, kind domain.OrderKind) ([]*domain.Order, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT id, kind, symbol, name, placed_at, quantity, price FROM orders WHERE kind = $1 ORDER BY placed_at DESC, id ASC",
		string(kind))
	if err != nil {
		return nil, fmt.Errorf("list %s orders: %w", kind, err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0)
	for rows.Next() {
		var o domain.Order
		var k string
		if err := rows.Scan(&o.ID, &k, &o.Symbol, &o.Name, &o.PlacedAt, &o.Quantity, &o.Price); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		o.Kind = domain.OrderKind(k)
		orders = append(orders, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %s orders: %w", kind, err)
	}
	return orders, nil
}
