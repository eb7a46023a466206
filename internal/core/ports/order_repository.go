package ports

import (
	"context"

	"bookstore/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order with its lines and assigns the generated
	// identifier to the aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its lines.
	// Returns errs.ErrObjectNotFound when no order has that id.
	Get(ctx context.Context, id int64) (*order.Order, error)
}
